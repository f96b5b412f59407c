package registry

import "errors"

var (
	ErrUnauthorized = errors.New("registry: caller is not the registry admin")
	ErrInvalidRole  = errors.New("registry: invalid role")
	ErrInvalidID    = errors.New("registry: invalid identity")
	ErrNotFound     = errors.New("registry: registration not found")
)
