package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRange means an end date precedes its start date.
	ErrInvalidRange = fmt.Errorf("%w: end date before start date", ErrValidation)

	// ErrOutOfParentRange means a child date falls outside the parent's range.
	ErrOutOfParentRange = fmt.Errorf("%w: date outside parent range", ErrValidation)

	// ErrParentNotFound means a referenced parent id does not resolve.
	ErrParentNotFound = errors.New("parent not found")

	// ErrNotFound means the target id of a read, update or delete does not resolve.
	ErrNotFound = errors.New("not found")
)

// RangeError reports a date-range violation. Kind is ErrInvalidRange or
// ErrOutOfParentRange.
type RangeError struct {
	Kind        error
	Start       *time.Time
	End         *time.Time
	ParentStart *time.Time
	ParentEnd   *time.Time
}

func (e *RangeError) Error() string {
	if errors.Is(e.Kind, ErrOutOfParentRange) && e.ParentStart != nil && e.ParentEnd != nil {
		return fmt.Sprintf("dates must fall within the parent range %s..%s",
			e.ParentStart.Format(DateLayout), e.ParentEnd.Format(DateLayout))
	}
	if e.Start != nil && e.End != nil {
		return fmt.Sprintf("end date %s is before start date %s",
			e.End.Format(DateLayout), e.Start.Format(DateLayout))
	}
	return e.Kind.Error()
}

func (e *RangeError) Unwrap() error { return e.Kind }

// StorageError wraps an opaque failure surfaced by a storage adapter.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrorKind classifies an error for callers choosing a response.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindParentNotFound
	KindNotFound
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindParentNotFound:
		return "parent_not_found"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// KindOf returns the classification of err. Parent misses are checked before
// plain not-found so the two never collapse into one kind.
func KindOf(err error) ErrorKind {
	var storageErr *StorageError
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrParentNotFound):
		return KindParentNotFound
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.As(err, &storageErr):
		return KindStorage
	default:
		return KindUnknown
	}
}

// Validationf builds an error wrapping ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
