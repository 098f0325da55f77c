package model

import "time"

// DownloadToken is a single-use bearer secret granting time-boxed access to
// one document's bytes. Possession of the token string alone is sufficient to
// download the file once before ExpiresAt.
//
// DocumentID is a logical reference: tokens are not removed when their
// document is deleted, so consumption must handle a missing document.
type DownloadToken struct {
	ID         int64      `json:"id"`
	Token      string     `json:"token"`
	DocumentID int64      `json:"document_id"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
}

// Used reports whether the token has already been consumed.
func (t *DownloadToken) Used() bool {
	return t.UsedAt != nil
}
