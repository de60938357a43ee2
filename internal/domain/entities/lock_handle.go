package entities

import "time"

// LockHandle points at the sentinel file guarding a working copy.
// The file's absence means the working copy is free; its age decides staleness.
type LockHandle struct {
	Path string
	// AcquiredAt is set only when a stale sentinel was taken over.
	AcquiredAt time.Time
}
