// Package pgerrs maps PostgreSQL driver failures onto the errs vocabulary so
// callers above the storage layer never inspect driver types.
package pgerrs

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Translate classifies err. Conflicts (serialization failures, deadlocks,
// lock timeouts, duplicate keys) become errs.WriteConflictError; timeouts,
// cancellations and connection failures become errs.StorageUnavailableError.
// Anything already classified, and anything unrecognised, is returned as is.
func Translate(err error, entity string, id any) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(entity, id, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.SerializationFailure,
			pgErr.Code == pgerrcode.DeadlockDetected,
			pgErr.Code == pgerrcode.LockNotAvailable,
			pgErr.Code == pgerrcode.UniqueViolation:
			return errs.NewWriteConflictErrorWithCause(entity, id, err)
		case pgErr.Code == pgerrcode.QueryCanceled,
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CrashShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow,
			pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code):
			return errs.NewStorageUnavailableError(entity, err)
		}
		return err
	}

	if IsTransient(err) {
		return errs.NewStorageUnavailableError(entity, err)
	}
	return err
}

// IsTransient reports failures that originate below SQL: timeouts, closed
// connections and the like.
func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isClassified(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrWriteConflict) ||
		errors.Is(err, errs.ErrStorageUnavailable)
}
