package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"os/exec"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

const (
	defaultBinary = "git"
	// waitDelay bounds how long output pipes are drained after the process was killed.
	waitDelay = 5 * time.Second
	// maxLineSize is the longest single progress line accepted from a command.
	maxLineSize = 1024 * 1024
)

// CommandRunner invokes the git binary. Every invocation is bounded by the
// configured command timeout.
type CommandRunner struct {
	binary   string
	settings *entities.Settings
}

// NewCommandRunner creates a CommandRunner for the git binary on PATH.
func NewCommandRunner(settings *entities.Settings) *CommandRunner {
	return &CommandRunner{binary: defaultBinary, settings: settings}
}

// Stream runs the command with stdout and stderr merged and yields each
// non-blank line. Lines end at "\n" or "\r" so git's in-place progress
// updates arrive one by one. If the consumer stops early the command still
// runs to completion.
func (it *CommandRunner) Stream(ctx context.Context, dir string, args ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		cmdCtx, cancel := it.withTimeout(ctx)
		defer cancel()

		reader, writer := io.Pipe()
		cmd := it.command(cmdCtx, dir, args)
		cmd.Stdout = writer
		cmd.Stderr = writer

		logger.Debugf("[git] Running %s %s in %q", it.binary, strings.Join(args, " "), dir)
		if err := cmd.Start(); err != nil {
			_ = writer.Close()
			yield("", it.processError(cmdCtx, args, "", err))
			return
		}

		waitErr := make(chan error, 1)
		go func() {
			err := cmd.Wait()
			_ = writer.Close()
			waitErr <- err
		}()

		var captured strings.Builder
		consuming := true
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		scanner.Split(scanProgressLines)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			captured.WriteString(line)
			captured.WriteByte('\n')
			if consuming && !yield(line, nil) {
				consuming = false
			}
		}
		// drain whatever the scanner gave up on so the process never blocks on a full pipe
		_, _ = io.Copy(io.Discard, reader)

		if err := <-waitErr; err != nil && consuming {
			yield("", it.processError(cmdCtx, args, captured.String(), err))
		}
	}
}

// Output runs a query and returns its standard output. On failure the
// ProcessError carries stderr followed by stdout.
func (it *CommandRunner) Output(ctx context.Context, dir string, args ...string) (string, error) {
	cmdCtx, cancel := it.withTimeout(ctx)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := it.command(cmdCtx, dir, args)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("[git] Querying %s %s in %q", it.binary, strings.Join(args, " "), dir)
	if err := cmd.Run(); err != nil {
		return stdout.String(), it.processError(cmdCtx, args, stderr.String()+stdout.String(), err)
	}
	return stdout.String(), nil
}

func (it *CommandRunner) command(ctx context.Context, dir string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, it.binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.WaitDelay = waitDelay
	return cmd
}

func (it *CommandRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if it.settings == nil || it.settings.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, it.settings.CommandTimeout)
}

func (it *CommandRunner) processError(ctx context.Context, args []string, output string, err error) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &entities.ProcessError{
		Args:     append([]string{it.binary}, args...),
		ExitCode: exitCode,
		Output:   output,
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
		Err:      err,
	}
}

// scanProgressLines is a bufio.SplitFunc that ends tokens at either "\n" or "\r".
func scanProgressLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
