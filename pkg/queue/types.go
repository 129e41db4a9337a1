package queue

import (
	"fmt"

	"github.com/arthur-debert/haus/pkg/users"
)

// Kind is what an operation does to its target
type Kind int

const (
	// Link creates Target as a symlink to Source
	Link Kind = iota
	// Copy writes the contents of Source to Target
	Copy
	// Removal deletes the symlink at Target
	Removal
)

func (k Kind) String() string {
	switch k {
	case Link:
		return "link"
	case Copy:
		return "copy"
	case Removal:
		return "unlink"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Operation is one queued change to a user's home directory
type Operation struct {
	Kind   Kind
	User   users.User
	Source string
	Target string
}

func (op Operation) String() string {
	switch op.Kind {
	case Removal:
		return fmt.Sprintf("%s %s", op.Kind, op.Target)
	default:
		return fmt.Sprintf("%s %s -> %s", op.Kind, op.Source, op.Target)
	}
}

// Status is the outcome of one operation
type Status string

const (
	// StatusApplied means the filesystem was changed
	StatusApplied Status = "applied"
	// StatusPlanned means the change would be applied outside noop mode
	StatusPlanned Status = "planned"
	// StatusUnchanged means the target was already in the wanted state
	StatusUnchanged Status = "unchanged"
	// StatusSkipped means the target conflicts and force was not given
	StatusSkipped Status = "skipped"
	// StatusFailed means the operation returned an error
	StatusFailed Status = "failed"
)

// Result is the outcome of executing an operation
type Result struct {
	Operation Operation
	Status    Status
	Error     error
}
