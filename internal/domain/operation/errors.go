package operation

import "errors"

var (
	ErrOperationNotFound      = errors.New("operation not found")
	ErrOperationAlreadyExists = errors.New("operation already exists")
	ErrInvalidStatus          = errors.New("invalid operation status")
)
