package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"docvault/internal/repository"
)

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "net unreachable" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantCode       repository.StorageErrorCode
		wantConstraint string
		wantMessage    string
	}{
		{
			name:           "unique violation carries constraint name",
			err:            &pgconn.PgError{Code: "23505", ConstraintName: "documents_storage_path_key"},
			wantCode:       repository.StorageConstraintViolation,
			wantConstraint: "documents_storage_path_key",
		},
		{
			name:           "constraint violation without name falls back to sqlstate",
			err:            &pgconn.PgError{Code: "23502"},
			wantCode:       repository.StorageConstraintViolation,
			wantConstraint: "23502",
		},
		{
			name:     "query canceled is a timeout",
			err:      &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"},
			wantCode: repository.StorageTimeout,
		},
		{
			name:     "connection exception class",
			err:      &pgconn.PgError{Code: "08006"},
			wantCode: repository.StorageConnectionFailure,
		},
		{
			name:     "admin shutdown",
			err:      &pgconn.PgError{Code: "57P01"},
			wantCode: repository.StorageConnectionFailure,
		},
		{
			name:        "other sqlstate preserves the server message",
			err:         &pgconn.PgError{Code: "42P01", Message: `relation "documents" does not exist`},
			wantCode:    repository.StorageUnknown,
			wantMessage: `relation "documents" does not exist`,
		},
		{
			name:     "context deadline",
			err:      context.DeadlineExceeded,
			wantCode: repository.StorageTimeout,
		},
		{
			name:     "context canceled",
			err:      context.Canceled,
			wantCode: repository.StorageTimeout,
		},
		{
			name:     "bad connection",
			err:      driver.ErrBadConn,
			wantCode: repository.StorageConnectionFailure,
		},
		{
			name:     "net timeout",
			err:      &fakeNetError{timeout: true},
			wantCode: repository.StorageTimeout,
		},
		{
			name:     "net unreachable",
			err:      &fakeNetError{timeout: false},
			wantCode: repository.StorageConnectionFailure,
		},
		{
			name:        "anything else preserves its message",
			err:         errors.New("mystery failure"),
			wantCode:    repository.StorageUnknown,
			wantMessage: "mystery failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)

			assert.Equal(t, tt.wantCode, got.Code)
			if tt.wantConstraint != "" {
				assert.Equal(t, tt.wantConstraint, got.Constraint)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got.Message)
			}
			// The original cause stays attached for internal reporting.
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
