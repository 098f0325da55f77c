package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = "id, filename, original_name, storage_path, size, tags, created_at, updated_at"

// Create inserts a new document row and returns the stored record.
// The store assigns id, created_at, and updated_at.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (filename, original_name, storage_path, size, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.Filename,
		doc.OriginalName,
		doc.StoragePath,
		doc.Size,
		marshalTags(doc.Tags),
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, classifyError(err)
	}
	return out, nil
}

// FindByID fetches a single document by its ID. Absent rows are (nil, nil).
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyError(err)
	}
	return d, nil
}

// FindAll returns every document, newest first.
func (r *DocumentPostgres) FindAll(ctx context.Context) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	items, err := collectDocuments(rows)
	if err != nil {
		return nil, classifyError(err)
	}
	return items, nil
}

// Update applies the patch to the row and returns the stored result.
// A patch with nothing to change degrades to a plain read, leaving
// updated_at untouched. Absent rows are (nil, nil).
func (r *DocumentPostgres) Update(ctx context.Context, id int64, patch repository.DocumentPatch) (*model.Document, error) {
	if patch.Tags == nil {
		return r.FindByID(ctx, id)
	}

	const q = `
		UPDATE documents
		SET tags = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q, id, marshalTags(*patch.Tags))
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyError(err)
	}
	return d, nil
}

// Delete removes a document by ID. It does not return an error if the row
// does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return classifyError(err)
	}
	// Ignore rows affected; deleting an absent row is not a failure.
	_, _ = res.RowsAffected()
	return nil
}

// FindByTags returns documents matching any of the query tags. Tags live in
// a JSON-serialized TEXT column, so candidate rows are scanned and the match
// predicate is applied per stored tag here rather than in SQL.
func (r *DocumentPostgres) FindByTags(ctx context.Context, tags []string) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	all, err := collectDocuments(rows)
	if err != nil {
		return nil, classifyError(err)
	}

	matched := make([]model.Document, 0)
	for _, d := range all {
		if tagsMatch(d.Tags, tags) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

// tagsMatch reports whether any stored tag equals, or contains as a
// substring, any query tag, case-insensitively on both sides. The
// asymmetry is intentional: "INV" matches a document tagged "invoice",
// while "2024" does not match "report".
func tagsMatch(stored, query []string) bool {
	for _, st := range stored {
		s := strings.ToLower(st)
		for _, qt := range query {
			q := strings.ToLower(qt)
			if s == q || strings.Contains(s, q) {
				return true
			}
		}
	}
	return false
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanDocument.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d       model.Document
		rawTags string
	)
	if err := row.Scan(
		&d.ID,
		&d.Filename,
		&d.OriginalName,
		&d.StoragePath,
		&d.Size,
		&rawTags,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.Tags = unmarshalTags(rawTags)
	return &d, nil
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// unmarshalTags leniently decodes the stored tag list. Malformed or empty
// stored values materialize as an empty list, never as an error: tags are
// non-critical metadata and a bad row must not poison reads.
func unmarshalTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
