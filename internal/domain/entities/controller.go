package entities

import "github.com/spf13/cobra"

// ControllerBind is the cobra metadata a controller exposes for its subcommand.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entrypoint bound to one subcommand.
type Controller interface {
	GetBind() ControllerBind
	AddFlags(cmd *cobra.Command)
	Execute(cmd *cobra.Command, args []string) error
}
