package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

// wrapStoreError tags connectivity failures with domain.ErrStoreUnavailable so
// handlers can tell "the store is down" apart from a bad query. Counter
// overflow is reported as domain.ErrDailyTotalExceeded.
func wrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isOutOfRange(err) {
		return fmt.Errorf("repository: %s: %w: %w", op, domain.ErrDailyTotalExceeded, err)
	}
	if isUnavailable(err) {
		return fmt.Errorf("repository: %s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("repository: %s failed: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isUnavailableSQLState(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return isUnavailableSQLState(string(pqErr.Code))
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return strings.Contains(err.Error(), "database is closed")
}

// 22003 is numeric_value_out_of_range.
func isOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22003"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "22003"
	}
	return false
}

// Class 08 is connection exception. 57P01-57P03 are shutdown states and 53300
// is too_many_connections.
func isUnavailableSQLState(code string) bool {
	if strings.HasPrefix(code, "08") {
		return true
	}
	switch code {
	case "57P01", "57P02", "57P03", "53300":
		return true
	}
	return false
}
