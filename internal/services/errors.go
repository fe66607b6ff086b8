package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrStorageUnavailable means no persistent storage could be opened or used.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound means an operation that needs an existing record found none.
	ErrNotFound = errors.New("record not found")
	// ErrQuotaExceeded means the database rejected a write for lack of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrEncodingFailure means a file's bytes could not be read.
	ErrEncodingFailure = errors.New("failed to encode file")
	// ErrInvalidRecord means the record failed validation before any write.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidTransition means a deployment status change is not allowed.
	ErrInvalidTransition = errors.New("invalid deployment status transition")
)

// classifyError maps driver errors onto the store's error kinds.
// The original error stays in the chain.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("failed to %s: %w", op, err)
	case errors.Is(err, ErrStorageUnavailable), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrEncodingFailure),
		errors.Is(err, ErrInvalidRecord), errors.Is(err, ErrInvalidTransition):
		return fmt.Errorf("failed to %s: %w", op, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to %s: %w: %w", op, ErrNotFound, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrFull:
			return fmt.Errorf("failed to %s: %w: %w", op, ErrQuotaExceeded, err)
		case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrReadonly,
			sqlite3.ErrPerm, sqlite3.ErrCorrupt, sqlite3.ErrIoErr, sqlite3.ErrAuth:
			return fmt.Errorf("failed to %s: %w: %w", op, ErrStorageUnavailable, err)
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "53100" || pgErr.Code == "53200" || pgErr.Code == "54000":
			// disk_full, out_of_memory, program_limit_exceeded
			return fmt.Errorf("failed to %s: %w: %w", op, ErrQuotaExceeded, err)
		case len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "57" || pgErr.Code[:2] == "28"):
			// connection exception, operator intervention, invalid authorization
			return fmt.Errorf("failed to %s: %w: %w", op, ErrStorageUnavailable, err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrStorageUnavailable, err)
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}
