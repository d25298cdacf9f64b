package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a record does not exist. Callers can
// distinguish it from guard failures such as ReferencedError.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ReferencedError reports that a delete was refused because other records
// still reference the target.
type ReferencedError struct {
	Entity       EntityType
	ID           string
	ReferencedBy EntityType
	ReferenceID  string
}

func (e ReferencedError) Error() string {
	return fmt.Sprintf("%s %q still referenced by %s %q", e.Entity, e.ID, e.ReferencedBy, e.ReferenceID)
}

// ConflictError reports that an operation is not valid for the record's
// current state, such as confirming a non-pending order.
type ConflictError struct {
	Entity EntityType
	ID     string
	Reason string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Entity, e.ID, e.Reason)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsReferenced reports whether err is (or wraps) a ReferencedError.
func IsReferenced(err error) bool {
	var ref ReferencedError
	return errors.As(err, &ref)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c ConflictError
	return errors.As(err, &c)
}
