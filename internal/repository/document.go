package repository

import (
	"context"

	"docvault/internal/model"
)

// DocumentPatch carries the fields a partial update may change.
// A nil field means "leave untouched"; a non-nil empty slice is a real value
// (it clears the tags).
type DocumentPatch struct {
	Tags *[]string
}

// DocumentRepository defines data access for document metadata using SQL
// queries only; what the rows mean is decided in the service layer.
//
// Absent rows: FindByID and Update return (nil, nil) when no row matches;
// they never surface "not found" as an error.
type DocumentRepository interface {
	// Create inserts a new document record. The store assigns the ID and the
	// created/updated timestamps; the returned document carries them.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or (nil, nil) if absent.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// FindAll returns every document, newest first.
	FindAll(ctx context.Context) ([]model.Document, error)

	// Update applies the patch to the row and returns the stored result, or
	// (nil, nil) if the row is absent. A patch with nothing set reads the
	// row without mutating it.
	Update(ctx context.Context, id int64, patch DocumentPatch) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id int64) error

	// FindByTags returns documents whose stored tags match any of the given
	// query tags, where "match" is a case-insensitive equality or substring
	// containment of the query tag within the stored tag.
	FindByTags(ctx context.Context, tags []string) ([]model.Document, error)
}
