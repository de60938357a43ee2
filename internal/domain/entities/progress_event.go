package entities

// Step names a phase of a pull.
type Step string

const (
	StepPreflight  Step = "preflight"
	StepClone      Step = "clone"
	StepFetch      Step = "fetch"
	StepScan       Step = "scan"
	StepRename     Step = "rename"
	StepRestore    Step = "restore"
	StepCommit     Step = "commit"
	StepMerge      Step = "merge"
	StepLock       Step = "lock"
	StepInspect    Step = "inspect"
	StepRemoteFile Step = "remote-file"
)

// ProgressEvent is one human-readable message produced while a step runs.
type ProgressEvent struct {
	Step    Step
	Message string
}

// NewProgressEvent creates an event for the given step.
func NewProgressEvent(step Step, message string) ProgressEvent {
	return ProgressEvent{Step: step, Message: message}
}

func (e ProgressEvent) String() string {
	return e.Message
}
