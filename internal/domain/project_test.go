package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectValidate(t *testing.T) {
	p := &Project{Name: "Portal", Status: ProjectEmAndamento}
	assert.NoError(t, p.Validate())

	p.Name = ""
	assert.ErrorIs(t, p.Validate(), ErrValidation)

	p = &Project{Name: "Portal", Status: "active"}
	require.Error(t, p.Validate())

	p = &Project{Name: "Portal", Status: ProjectPausado, StartDate: date("2024-05-01"), TargetDate: date("2024-04-01")}
	assert.ErrorIs(t, p.Validate(), ErrInvalidRange)
}

func TestDisplayID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())

	p = &Project{ID: "abc"}
	assert.Equal(t, "abc", p.DisplayID())
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{nil, KindUnknown},
		{Validationf("bad"), KindValidation},
		{&RangeError{Kind: ErrOutOfParentRange}, KindValidation},
		{fmt.Errorf("nivel2 %q: %w", "x", ErrParentNotFound), KindParentNotFound},
		{fmt.Errorf("nivel2: %w", ErrNotFound), KindNotFound},
		{&StorageError{Op: "insert", Err: errors.New("disk full")}, KindStorage},
		{errors.New("boom"), KindUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err), "err=%v", tc.err)
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := fmt.Errorf("creating node: %w", &StorageError{Op: "insert nivel1", Err: inner})
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "storage: insert nivel1")
}
