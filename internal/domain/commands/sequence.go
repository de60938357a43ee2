package commands

import (
	"iter"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

// Events is a lazy, finite stream of progress events. An error, when present,
// is the last element.
type Events = iter.Seq2[entities.ProgressEvent, error]

// Collect drains a stream, returning every event and the terminating error.
func Collect(events Events) ([]entities.ProgressEvent, error) {
	var collected []entities.ProgressEvent
	for event, err := range events {
		if err != nil {
			return collected, err
		}
		collected = append(collected, event)
	}
	return collected, nil
}

// forward re-yields events from seq, wrapping a failure as a SyncError for step.
// It returns false when the consumer stopped or seq failed.
func forward(seq Events, step entities.Step, yield func(entities.ProgressEvent, error) bool) bool {
	for event, err := range seq {
		if err != nil {
			yield(entities.ProgressEvent{}, entities.NewSyncError(step, err))
			return false
		}
		if !yield(event, nil) {
			return false
		}
	}
	return true
}

// lines turns command output into events for step.
func lines(seq iter.Seq2[string, error], step entities.Step) Events {
	return func(yield func(entities.ProgressEvent, error) bool) {
		for line, err := range seq {
			if err != nil {
				yield(entities.ProgressEvent{}, err)
				return
			}
			if !yield(entities.NewProgressEvent(step, line), nil) {
				return
			}
		}
	}
}
