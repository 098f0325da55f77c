package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"docvault/internal/repository"
)

// classifyError maps a driver-level failure onto the repository's closed
// StorageError vocabulary. This is the only place driver errors are
// interpreted; nothing above this package ever sees a pgconn or net error.
//
// sql.ErrNoRows is not a failure and must be handled at the call site
// before classification (absent row == nil result).
func classifyError(err error) *repository.StorageError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// Class 23: integrity constraint violation.
		case strings.HasPrefix(pgErr.Code, "23"):
			name := pgErr.ConstraintName
			if name == "" {
				name = pgErr.Code
			}
			return repository.NewConstraintViolation(name, err)
		// 57014: query canceled (statement_timeout or context deadline).
		case pgErr.Code == "57014":
			return repository.NewTimeout(err)
		// Class 08: connection exception; 57P0x: server shutdown states.
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return repository.NewConnectionFailure(err)
		default:
			return repository.NewUnknown(pgErr.Message, err)
		}
	}

	var connErr *pgconn.ConnectError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return repository.NewTimeout(err)
	case pgconn.Timeout(err):
		return repository.NewTimeout(err)
	case errors.As(err, &connErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return repository.NewConnectionFailure(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return repository.NewTimeout(err)
		}
		return repository.NewConnectionFailure(err)
	}

	return repository.NewUnknown(err.Error(), err)
}
