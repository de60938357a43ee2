package entities

// CommitIdentity is the author and committer used for commits made by the puller.
// It is kept apart from whatever identity the user configured.
type CommitIdentity struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// DefaultCommitIdentity is attached to every automatic commit unless configured otherwise.
var DefaultCommitIdentity = CommitIdentity{ //nolint:gochecknoglobals // process-wide constant value
	Name:  "gitpuller",
	Email: "gitpuller@gitpuller.link",
}

// ConfigArgs returns the `-c` overrides that apply the identity to a single git invocation.
func (i CommitIdentity) ConfigArgs() []string {
	return []string{"-c", "user.email=" + i.Email, "-c", "user.name=" + i.Name}
}

// IsZero reports whether neither name nor email is set.
func (i CommitIdentity) IsZero() bool {
	return i.Name == "" && i.Email == ""
}
