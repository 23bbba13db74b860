package incident

import "errors"

var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrInvalidSeverity  = errors.New("invalid incident severity")
	ErrInvalidStatus    = errors.New("invalid incident status")
	ErrAlreadyResolved  = errors.New("incident is already resolved")
)
