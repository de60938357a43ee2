package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitpuller/internal"
	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "gitpuller",
		Short: "One-way sync of git working copies from their upstream",
		Long: `Keep local git working copies in step with an upstream branch while
preserving local edits.

Usage modes:
  gitpuller pull --repo URL --branch main --path DIR   Clone or update one working copy
  gitpuller sync                                       Update every configured working copy (cronjob)
  gitpuller fetch-file --id ID --out FILE              Download one file from a content provider`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().Duration("timeout", entities.DefaultCommandTimeout,
		"Upper bound on every git invocation")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				return controller.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		controller.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cobraRoot := buildRootCommand()

	// Inject controllers via DIG
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.ExecuteContext(ctx); err != nil {
		stop()
		logger.Fatalf("Error executing 'gitpuller': %s", err)
	}
}
