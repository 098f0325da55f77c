package postgres

import (
	"context"
	"database/sql"
	"errors"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// DownloadTokenPostgres is a PostgreSQL implementation of
// repository.DownloadTokenRepository.
type DownloadTokenPostgres struct {
	db *sql.DB
}

// NewDownloadTokenPostgres creates a new DownloadTokenPostgres repository.
func NewDownloadTokenPostgres(db *sql.DB) *DownloadTokenPostgres {
	return &DownloadTokenPostgres{db: db}
}

var _ repository.DownloadTokenRepository = (*DownloadTokenPostgres)(nil)

const tokenColumns = "id, token, document_id, expires_at, created_at, used_at"

// Create inserts a new token row and returns the stored record.
func (r *DownloadTokenPostgres) Create(ctx context.Context, t *model.DownloadToken) (*model.DownloadToken, error) {
	const q = `
		INSERT INTO download_tokens (token, document_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING ` + tokenColumns
	row := r.db.QueryRowContext(ctx, q, t.Token, t.DocumentID, t.ExpiresAt)
	out, err := scanToken(row)
	if err != nil {
		return nil, classifyError(err)
	}
	return out, nil
}

// FindValidToken looks up a token row and evaluates its expiry in the same
// query, against the database clock. No row yields TOKEN_NOT_FOUND; a row
// whose expiry instant has passed yields TOKEN_EXPIRED. used_at is returned
// untouched; consumption checks are the caller's concern.
func (r *DownloadTokenPostgres) FindValidToken(ctx context.Context, token string) (*model.DownloadToken, error) {
	const q = `
		SELECT ` + tokenColumns + `, expires_at <= now() AS expired
		FROM download_tokens
		WHERE token = $1
	`
	row := r.db.QueryRowContext(ctx, q, token)

	var (
		t       model.DownloadToken
		usedAt  sql.NullTime
		expired bool
	)
	if err := row.Scan(&t.ID, &t.Token, &t.DocumentID, &t.ExpiresAt, &t.CreatedAt, &usedAt, &expired); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewTokenNotFound(token)
		}
		return nil, classifyError(err)
	}
	if expired {
		return nil, repository.NewTokenExpired(token)
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	return &t, nil
}

// MarkUsed stamps used_at iff it is still unset, in a single conditional
// UPDATE. A false return means the row was already used (or removed), which
// is how a lost consume race is detected.
func (r *DownloadTokenPostgres) MarkUsed(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE download_tokens SET used_at = now() WHERE id = $1 AND used_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, classifyError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classifyError(err)
	}
	return n == 1, nil
}

func scanToken(row rowScanner) (*model.DownloadToken, error) {
	var (
		t      model.DownloadToken
		usedAt sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Token, &t.DocumentID, &t.ExpiresAt, &t.CreatedAt, &usedAt); err != nil {
		return nil, err
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	return &t, nil
}
