package profile

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrProfileInactive      = errors.New("profile is inactive")
	ErrInvalidRole          = errors.New("invalid profile role")
)
