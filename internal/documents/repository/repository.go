package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("document not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Document struct {
	ID           uuid.UUID
	LeadID       *uuid.UUID
	PersonID     *uuid.UUID
	EnrollmentID *uuid.UUID
	DocumentType string
	FileKey      string
	FileName     string
	Note         *string
	UploadedAt   time.Time
}

const columns = `id, lead_id, person_id, enrollment_id, document_type, file_key, file_name, note, uploaded_at`

func scan(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.LeadID, &d.PersonID, &d.EnrollmentID, &d.DocumentType,
		&d.FileKey, &d.FileName, &d.Note, &d.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return d, err
}

type CreateParams struct {
	LeadID       *uuid.UUID
	PersonID     *uuid.UUID
	EnrollmentID *uuid.UUID
	DocumentType string
	FileKey      string
	FileName     string
	Note         *string
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Document, error) {
	return scan(r.pool.QueryRow(ctx, `
		INSERT INTO documents (lead_id, person_id, enrollment_id, document_type, file_key, file_name, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+columns,
		params.LeadID, params.PersonID, params.EnrollmentID,
		params.DocumentType, params.FileKey, params.FileName, params.Note,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Document, error) {
	return scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM documents WHERE id = $1`, id))
}

func (r *Repository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]Document, error) {
	return r.list(ctx, `SELECT `+columns+` FROM documents WHERE lead_id = $1 ORDER BY uploaded_at DESC`, leadID)
}

func (r *Repository) ListByPerson(ctx context.Context, personID uuid.UUID) ([]Document, error) {
	return r.list(ctx, `SELECT `+columns+` FROM documents WHERE person_id = $1 ORDER BY uploaded_at DESC`, personID)
}

func (r *Repository) list(ctx context.Context, query string, arg any) ([]Document, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := make([]Document, 0)
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
