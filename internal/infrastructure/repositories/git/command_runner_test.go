//go:build unit

package git_test

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
	"github.com/rios0rios0/gitpuller/internal/infrastructure/repositories/git"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
}

func TestScanProgressLines(t *testing.T) {
	t.Parallel()

	t.Run("should split on carriage returns and newlines", func(t *testing.T) {
		t.Parallel()

		// given
		scanner := bufio.NewScanner(strings.NewReader("Receiving 10%\rReceiving 100%\ndone"))
		scanner.Split(git.ScanProgressLines)

		// when
		var tokens []string
		for scanner.Scan() {
			tokens = append(tokens, scanner.Text())
		}

		// then
		require.NoError(t, scanner.Err())
		assert.Equal(t, []string{"Receiving 10%", "Receiving 100%", "done"}, tokens)
	})
}

func TestCommandRunnerStream(t *testing.T) {
	t.Parallel()

	t.Run("should yield non-blank lines from stdout and stderr", func(t *testing.T) {
		t.Parallel()
		requireShell(t)

		// given
		runner := git.NewCommandRunnerFor("sh", entities.DefaultSettings())

		// when
		var lines []string
		var streamErr error
		for line, err := range runner.Stream(context.Background(), "", "-c", `printf 'one\r\ntwo\n' ; printf 'three\n' >&2`) {
			if err != nil {
				streamErr = err
				break
			}
			lines = append(lines, line)
		}

		// then
		require.NoError(t, streamErr)
		assert.ElementsMatch(t, []string{"one", "two", "three"}, lines)
	})

	t.Run("should end with a process error carrying exit code and output", func(t *testing.T) {
		t.Parallel()
		requireShell(t)

		// given
		runner := git.NewCommandRunnerFor("sh", entities.DefaultSettings())

		// when
		var streamErr error
		for _, err := range runner.Stream(context.Background(), "", "-c", "echo fatal: nope; exit 3") {
			streamErr = err
		}

		// then
		var procErr *entities.ProcessError
		require.ErrorAs(t, streamErr, &procErr)
		assert.Equal(t, 3, procErr.ExitCode)
		assert.Contains(t, procErr.Output, "fatal: nope")
		assert.False(t, procErr.TimedOut)
	})

	t.Run("should run the command to completion when the consumer stops early", func(t *testing.T) {
		t.Parallel()
		requireShell(t)

		// given
		runner := git.NewCommandRunnerFor("sh", entities.DefaultSettings())
		marker := t.TempDir() + "/done"

		// when
		for range runner.Stream(context.Background(), "", "-c", "echo first; echo second; touch "+marker) {
			break
		}

		// then
		assert.FileExists(t, marker)
	})

	t.Run("should mark a command that exceeded the timeout", func(t *testing.T) {
		t.Parallel()
		requireShell(t)

		// given
		settings := entities.DefaultSettings()
		settings.CommandTimeout = 100 * time.Millisecond
		runner := git.NewCommandRunnerFor("sh", settings)

		// when
		var streamErr error
		for _, err := range runner.Stream(context.Background(), "", "-c", "exec sleep 5") {
			streamErr = err
		}

		// then
		require.ErrorIs(t, streamErr, entities.ErrCommandTimeout)
	})
}

func TestCommandRunnerOutput(t *testing.T) {
	t.Parallel()

	t.Run("should return stdout", func(t *testing.T) {
		t.Parallel()
		requireShell(t)

		// given
		runner := git.NewCommandRunnerFor("sh", entities.DefaultSettings())

		// when
		output, err := runner.Output(context.Background(), "", "-c", "printf 'a\\000b\\000'")

		// then
		require.NoError(t, err)
		assert.Equal(t, "a\x00b\x00", output)
	})

	t.Run("should fail with a process error when the binary is missing", func(t *testing.T) {
		t.Parallel()

		// given
		runner := git.NewCommandRunnerFor("gitpuller-no-such-binary", entities.DefaultSettings())

		// when
		_, err := runner.Output(context.Background(), "", "version")

		// then
		var procErr *entities.ProcessError
		require.ErrorAs(t, err, &procErr)
		assert.Equal(t, -1, procErr.ExitCode)
	})
}
