package entities

// ChangeSet is the result of scanning a working copy against its upstream.
// It is recomputed on every update cycle and never persisted.
type ChangeSet struct {
	Dirty bool
	// DeletedFiles are relative paths tracked upstream but missing from disk.
	DeletedFiles []string
	// AddedUpstreamFiles are absolute paths added upstream since the last common ancestor.
	AddedUpstreamFiles []string
}

// IsEmpty reports whether the scan found nothing to reconcile.
func (c ChangeSet) IsEmpty() bool {
	return !c.Dirty && len(c.DeletedFiles) == 0 && len(c.AddedUpstreamFiles) == 0
}
