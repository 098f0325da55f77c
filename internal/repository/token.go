package repository

import (
	"context"

	"docvault/internal/model"
)

// DownloadTokenRepository defines data access for download tokens.
//
// Unlike document lookups, FindValidToken reports invalidity through typed
// errors (TOKEN_NOT_FOUND, TOKEN_EXPIRED) because the expiry comparison runs
// inside the lookup query, against the database clock.
type DownloadTokenRepository interface {
	// Create inserts a new token row and returns the stored record.
	Create(ctx context.Context, token *model.DownloadToken) (*model.DownloadToken, error)

	// FindValidToken returns the unexpired row for the given token value.
	// It fails with TOKEN_NOT_FOUND when no row matches and TOKEN_EXPIRED
	// when the row exists but its expiry instant has passed. The used_at
	// column is returned as-is; consumption checks belong to the caller.
	FindValidToken(ctx context.Context, token string) (*model.DownloadToken, error)

	// MarkUsed stamps used_at on the row iff it is still unset, as one
	// conditional UPDATE. It returns false when the row was already used
	// (or gone), which is how a lost consume race is detected.
	MarkUsed(ctx context.Context, id int64) (bool, error)
}
