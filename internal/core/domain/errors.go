package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by both resources.
var (
	// ErrNotFound indicates the requested record does not exist.
	// HTTP Status: 404 Not Found, empty body.
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotExist indicates an event references a user id that does not
	// resolve to any user.
	// HTTP Status: 400 Bad Request
	ErrUserNotExist = errors.New("user does not exist")

	// ErrIDMismatch indicates the entity id in an update body disagrees with
	// the resource id of the request.
	// HTTP Status: 400 Bad Request
	ErrIDMismatch = errors.New("updated entity id does not match the resource id of the request")

	// ErrUserIDIncorrect indicates an update body names a user id other than
	// the stored event's owner.
	// HTTP Status: 400 Bad Request
	ErrUserIDIncorrect = errors.New("user id incorrect")
)

// MissingParamError is returned when a lookup or delete is attempted with no
// identifying parameter at all.
type MissingParamError struct {
	Params []string
}

func (e *MissingParamError) Error() string {
	named := make([]string, 0, len(e.Params))
	for _, p := range e.Params {
		if p != "" {
			named = append(named, p)
		}
	}
	if len(named) == 0 {
		return "params missing"
	}
	return fmt.Sprintf("params %s missing", strings.Join(named, ", "))
}

// ResourceExistsError is returned when a create would violate a unique key.
type ResourceExistsError struct {
	Resource string // human name of the unique field, e.g. "username", "event name"
	Value    string
}

func (e *ResourceExistsError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s already exists", e.Resource)
	}
	return fmt.Sprintf("%s %s already exists", e.Resource, e.Value)
}
