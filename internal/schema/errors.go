package schema

import "errors"

var (
	// ErrContractViolation marks an invariant breach that indicates a bug in
	// a collaborator, not a normal data condition. Callers should fail loud.
	ErrContractViolation = errors.New("contract violation")

	// ErrVersionConflict is returned when a version append would break the
	// linear history invariant (wrong parent or duplicate id).
	ErrVersionConflict = errors.New("version conflict")
)
