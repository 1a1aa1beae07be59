package repository

import "github.com/alexanderramin/escopo/internal/domain"

// ErrNotFound is returned (wrapped) when a lookup, update or delete targets a
// missing row.
var ErrNotFound = domain.ErrNotFound

func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}
