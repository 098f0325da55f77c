package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"

	"docvault/internal/config"
	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

// tokenByteLen is the entropy of a download token: 32 random bytes,
// hex-encoded to 64 characters. Collisions are not a practical concern.
const tokenByteLen = 32

// DownloadLink is what Issue hands back to the transport layer.
type DownloadLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadContent is what a successful consumption returns: the document
// record plus its stored bytes, ready to stream.
type DownloadContent struct {
	Document *model.Document
	Content  []byte
}

// DownloadTokenService governs the lifecycle of single-use download links.
// Every error it returns is a *DomainError.
type DownloadTokenService interface {
	// Issue creates a time-boxed download link for an existing document.
	// A missing document fails before any token row is created.
	Issue(ctx context.Context, documentID int64) (*DownloadLink, error)

	// Consume redeems a token exactly once and returns the document with
	// its content. It fails for unknown, expired, or already-used tokens,
	// and for tokens whose document or backing file is gone.
	Consume(ctx context.Context, token string) (*DownloadContent, error)
}

// downloadTokenService is a concrete implementation of DownloadTokenService.
type downloadTokenService struct {
	tokens repository.DownloadTokenRepository
	docs   repository.DocumentRepository
	store  storage.Storage
	ttl    time.Duration
	log    zerolog.Logger
}

var _ DownloadTokenService = (*downloadTokenService)(nil)

// NewDownloadTokenService constructs a new DownloadTokenService.
func NewDownloadTokenService(tokens repository.DownloadTokenRepository, docs repository.DocumentRepository, store storage.Storage, docCfg config.DocumentConfig, log zerolog.Logger) DownloadTokenService {
	return &downloadTokenService{
		tokens: tokens,
		docs:   docs,
		store:  store,
		ttl:    docCfg.DownloadLinkTTL,
		log:    log,
	}
}

func (s *downloadTokenService) Issue(ctx context.Context, documentID int64) (*DownloadLink, error) {
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, translate("fetch document", err)
	}
	if doc == nil {
		// No orphaned token rows for documents that never existed.
		return nil, NewDocumentNotFound(documentID)
	}

	token, err := generateToken()
	if err != nil {
		return nil, translate("generate download token", err)
	}

	stored, err := s.tokens.Create(ctx, &model.DownloadToken{
		Token:      token,
		DocumentID: documentID,
		ExpiresAt:  time.Now().UTC().Add(s.ttl),
	})
	if err != nil {
		return nil, translate("store download token", err)
	}

	return &DownloadLink{
		Token:     stored.Token,
		URL:       "/download/" + stored.Token,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (s *downloadTokenService) Consume(ctx context.Context, token string) (*DownloadContent, error) {
	tok, err := s.tokens.FindValidToken(ctx, token)
	if err != nil {
		return nil, translate("consume download link", err)
	}
	// The lookup filters on expiry only; "already used" is not a query
	// predicate and must be re-checked here.
	if tok.Used() {
		return nil, NewDownloadTokenAlreadyUsed(token)
	}

	doc, err := s.docs.FindByID(ctx, tok.DocumentID)
	if err != nil {
		return nil, translate("fetch document", err)
	}
	if doc == nil {
		// Tokens outlive their document; deletion does not cascade.
		return nil, NewDocumentNotFound(tok.DocumentID)
	}

	exists, err := s.store.Exists(ctx, doc.StoragePath)
	if err != nil {
		return nil, translate("check stored file", err)
	}
	if !exists {
		return nil, NewFileNotFound(doc.StoragePath)
	}

	content, err := s.store.Read(ctx, doc.StoragePath)
	if err != nil {
		return nil, translate("read stored file", err)
	}

	// Whoever flips used_at first wins; a concurrent loser sees zero rows
	// and reports the link as already used. A failed flip, on the other
	// hand, is bookkeeping: the gate above already ran, so the download
	// still goes out.
	marked, err := s.tokens.MarkUsed(ctx, tok.ID)
	if err != nil {
		s.log.Warn().Err(err).Int64("token_id", tok.ID).Msg("mark-used failed, serving download anyway")
	} else if !marked {
		return nil, NewDownloadTokenAlreadyUsed(token)
	}

	return &DownloadContent{Document: doc, Content: content}, nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenByteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
