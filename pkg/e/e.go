package e

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotOwner         = errors.New("not_owner")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUniqueViolation  = fmt.Errorf("unique violation: %w", ErrConflict)
	ErrDeadline         = fmt.Errorf("deadline exceeded: %w", ErrStoreUnavailable)
	ErrCanceled         = fmt.Errorf("context canceled: %w", ErrStoreUnavailable)
	ErrEventQueueEmpty  = errors.New("zone event queue is empty")
)

// FieldError names the request field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (f *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", f.Field, f.Reason)
}

func (f *FieldError) Unwrap() error { return ErrInvalidInput }

func InvalidField(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// Retryable reports whether err is a transient infrastructure failure.
func Retryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
		case "23503", "23514", "22P02":
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		case "57014":
			return fmt.Errorf("%s: %w", op, ErrDeadline)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrStoreUnavailable)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %v: %w", op, netErr, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrStoreUnavailable)
}
