package command

import (
	"errors"
	"fmt"
)

// ErrDaemonUnavailable means the container runtime could not be reached at all.
var ErrDaemonUnavailable = errors.New("container runtime unavailable")

// NotFoundError represents "object <ref> wasn't found" inside the engine.
type NotFoundError struct {
	// Ref is a unique identifier, such as an image reference, container ID, etc.
	Ref string
	// Object is the ref type, such as "container", "image", etc.
	Object string
}

func (e *NotFoundError) Error() string {
	objType := e.Object
	if objType == "" {
		objType = "object"
	}
	return fmt.Sprintf("%s not found: %q", objType, e.Ref)
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, &NotFoundError{})
}

// ConflictError means a container with the requested name already exists.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("container name already in use: %q", e.Name)
}

func (e *ConflictError) Is(target error) bool {
	_, ok := target.(*ConflictError)
	return ok
}

func IsConflictError(err error) bool {
	return errors.Is(err, &ConflictError{})
}
