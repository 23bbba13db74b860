package machine

import "errors"

var (
	ErrMachineNotFound      = errors.New("machine not found")
	ErrMachineAlreadyExists = errors.New("machine already exists")
	ErrInvalidHandling      = errors.New("invalid handling method")
	ErrInvalidStatus        = errors.New("invalid machine status")
)
