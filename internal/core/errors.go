package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/inventory/internal/database"
	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/google/uuid"
)

// StorageError wraps a failure reported by the store. Ref correlates the
// message a user sees with the diagnostic log line.
type StorageError struct {
	Op  string
	Ref uuid.UUID
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Kind classifies the underlying driver error.
func (e *StorageError) Kind() database.ErrorKind {
	return database.Classify(e.Err)
}

// storageFailure logs err with a fresh reference and returns it wrapped.
func storageFailure(ctx context.Context, op string, err error) *StorageError {
	se := &StorageError{Op: op, Ref: uuid.New(), Err: err}
	logging.WithFields(ctx, "op", op).ErrorContext(ctx, "storage operation failed",
		"ref", se.Ref.String(),
		"kind", se.Kind().String(),
		"error", err,
	)
	return se
}
