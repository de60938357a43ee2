//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"iter"
	"strings"
	"sync"

	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// StubResponse is the scripted result of one command.
type StubResponse struct {
	Lines  []string
	Output string
	Err    error
}

// StubCommandRunner implements repositories.CommandRunner from a script keyed by
// the space-joined arguments. Unscripted commands succeed with no output.
type StubCommandRunner struct {
	mu sync.Mutex

	Responses map[string]StubResponse
	// spy: space-joined arguments of every dispatched command, in order
	Calls []string
	// spy: working directory of every dispatched command, in order
	Dirs []string
}

var _ repositories.CommandRunner = (*StubCommandRunner)(nil)

// Key joins args the way the stub looks responses up.
func Key(args ...string) string {
	return strings.Join(args, " ")
}

// On scripts the response for args and returns the stub for chaining.
func (s *StubCommandRunner) On(response StubResponse, args ...string) *StubCommandRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Responses == nil {
		s.Responses = make(map[string]StubResponse)
	}
	s.Responses[Key(args...)] = response
	return s
}

// Record appends an entry to the call journal. Other doubles use it to
// interleave their own calls with the commands.
func (s *StubCommandRunner) Record(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, entry)
}

func (s *StubCommandRunner) Stream(_ context.Context, dir string, args ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		response := s.dispatch(dir, args)
		for _, line := range response.Lines {
			if !yield(line, nil) {
				return
			}
		}
		if response.Err != nil {
			yield("", response.Err)
		}
	}
}

func (s *StubCommandRunner) Output(_ context.Context, dir string, args ...string) (string, error) {
	response := s.dispatch(dir, args)
	return response.Output, response.Err
}

func (s *StubCommandRunner) dispatch(dir string, args []string) StubResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(args...)
	s.Calls = append(s.Calls, key)
	s.Dirs = append(s.Dirs, dir)
	return s.Responses[key]
}

// Count returns how many times the command with args was dispatched.
func (s *StubCommandRunner) Count(args ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(args...)
	count := 0
	for _, call := range s.Calls {
		if call == key {
			count++
		}
	}
	return count
}
