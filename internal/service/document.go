package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docvault/internal/config"
	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

const pdfContentType = "application/pdf"

// DocumentService defines the use cases for handling documents. Every
// error it returns is a *DomainError.
type DocumentService interface {
	// Upload validates the content (declared type, size limit, sniffed
	// type), writes the bytes to file storage under a generated name, and
	// persists the metadata. If the metadata write fails the stored file
	// is removed again on a best-effort basis.
	Upload(ctx context.Context, r io.Reader, originalName, contentType string, declaredSize int64, tags []string) (*model.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// Update replaces the document's tags when tags is non-nil (an empty
	// slice clears them). A nil tags pointer changes nothing and returns
	// the current record.
	Update(ctx context.Context, id int64, tags *[]string) (*model.Document, error)

	// Delete removes the backing file (best effort) and the record, and
	// returns the record as it was before deletion.
	Delete(ctx context.Context, id int64) (*model.Document, error)

	// SearchByTags returns documents whose tags match any of the query
	// tags, case-insensitively, by equality or substring containment.
	SearchByTags(ctx context.Context, tags []string) ([]model.Document, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo        repository.DocumentRepository
	store       storage.Storage
	uploadPath  string
	maxFileSize int64
	log         zerolog.Logger
}

var _ DocumentService = (*documentService)(nil)

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, store storage.Storage, storageCfg config.StorageConfig, docCfg config.DocumentConfig, log zerolog.Logger) DocumentService {
	return &documentService{
		repo:        repo,
		store:       store,
		uploadPath:  storageCfg.UploadPath,
		maxFileSize: docCfg.MaxFileSize,
		log:         log,
	}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalName, contentType string, declaredSize int64, tags []string) (*model.Document, error) {
	// Cheap rejections first, before touching the content.
	if !strings.EqualFold(contentType, pdfContentType) {
		return nil, NewInvalidFileType(fmt.Sprintf("only PDF uploads are accepted, got %q", contentType))
	}
	if declaredSize > s.maxFileSize {
		return nil, NewFileTooLarge(s.maxFileSize, declaredSize)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, translate("read upload content", err)
	}
	actualSize := int64(len(data))
	if actualSize > s.maxFileSize {
		return nil, NewFileTooLarge(s.maxFileSize, actualSize)
	}
	// The declared type is client-supplied; the sniffed content decides.
	if mtype := mimetype.Detect(data); !mtype.Is(pdfContentType) {
		return nil, NewInvalidFileType(fmt.Sprintf("file content is %s, only PDF is accepted", mtype.String()))
	}

	if err := s.store.EnsureDir(ctx, s.uploadPath); err != nil {
		return nil, translate("prepare upload directory", err)
	}

	filename := generateFilename()
	path := filepath.ToSlash(filepath.Join(s.uploadPath, filename))

	if err := s.store.Write(ctx, path, data); err != nil {
		return nil, translate("store file", err)
	}

	doc := &model.Document{
		Filename:     filename,
		OriginalName: originalName,
		StoragePath:  path,
		Size:         actualSize,
		Tags:         tags,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Roll back the file so a failed upload leaves nothing behind.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			s.log.Error().Err(delErr).Str("path", path).Msg("rollback file delete failed")
		}
		return nil, translate("store document metadata", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, translate("list documents", err)
	}
	return docs, nil
}

func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate("fetch document", err)
	}
	if doc == nil {
		return nil, NewDocumentNotFound(id)
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id int64, tags *[]string) (*model.Document, error) {
	doc, err := s.repo.Update(ctx, id, repository.DocumentPatch{Tags: tags})
	if err != nil {
		return nil, translate("update document", err)
	}
	if doc == nil {
		return nil, NewDocumentNotFound(id)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate("fetch document", err)
	}
	if doc == nil {
		return nil, NewDocumentNotFound(id)
	}

	// File removal is best effort; the record is removed regardless so a
	// missing backing file can never make a document undeletable.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		s.log.Warn().Err(err).Int64("document_id", id).Str("path", doc.StoragePath).
			Msg("file delete failed, removing record anyway")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, translate("delete document", err)
	}
	return doc, nil
}

func (s *documentService) SearchByTags(ctx context.Context, tags []string) ([]model.Document, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil, NewInvalidSearchTags("at least one non-empty tag is required")
	}

	docs, err := s.repo.FindByTags(ctx, cleaned)
	if err != nil {
		return nil, translate("search documents", err)
	}
	return docs, nil
}

// generateFilename builds the stored name from a UTC timestamp and a UUID,
// so names sort by upload time and never collide.
func generateFilename() string {
	return time.Now().UTC().Format("20060102150405") + "_" + uuid.New().String() + ".pdf"
}
