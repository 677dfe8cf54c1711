package party

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the addressed party, participant or queue
	// entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a caller attempts a host-only operation
	// on a party they do not host.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned on duplicate joins and other uniqueness
	// violations.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition is returned for status changes the party state
	// machine does not allow, and for mutations against an Ended party.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrContention is returned when sequence allocation exhausts its retry
	// budget. Callers may retry the whole enqueue.
	ErrContention = errors.New("queue contention")

	// ErrStoreUnavailable is returned on transient backend failures. Callers
	// may retry with backoff; a timed-out mutation has indeterminate outcome
	// and state should be re-queried.
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// mapStoreError translates pgx-level failures into the package's error
// taxonomy. Errors it does not recognize pass through unchanged.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s", ErrContention, pgErr.Code)
		}
		return err
	}
	if pgconn.SafeToRetry(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
