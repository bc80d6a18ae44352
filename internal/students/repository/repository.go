package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("student not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Student struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	City      *string
	PhotoKey  *string
	Notes     *string
	IsActive  bool
	CreatedAt time.Time
}

type CreateParams struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	City      *string
	Notes     *string
}

type UpdateParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	City      *string
	Notes     *string
	IsActive  *bool
}

const columns = `id, first_name, last_name, email, phone, city, photo_key, notes, is_active, created_at`

func scan(row pgx.Row) (Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.City,
		&s.PhotoKey, &s.Notes, &s.IsActive, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	return s, err
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Student, error) {
	return scan(r.pool.QueryRow(ctx, `
		INSERT INTO persons (first_name, last_name, email, phone, city, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+columns,
		params.FirstName, params.LastName, params.Email, params.Phone, params.City, params.Notes,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Student, error) {
	return scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM persons WHERE id = $1`, id))
}

// List returns students newest first. The search term matches name, email or
// phone case-insensitively; inactive students are hidden unless asked for.
func (r *Repository) List(ctx context.Context, search string, includeInactive bool) ([]Student, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+columns+` FROM persons
		WHERE ($1 = '' OR
			first_name ILIKE '%' || $1 || '%' OR
			last_name ILIKE '%' || $1 || '%' OR
			email ILIKE '%' || $1 || '%' OR
			phone ILIKE '%' || $1 || '%')
		AND ($2 OR is_active)
		ORDER BY created_at DESC
	`, search, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]Student, 0)
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Student, error) {
	return scan(r.pool.QueryRow(ctx, `
		UPDATE persons SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			city = COALESCE($6, city),
			notes = COALESCE($7, notes),
			is_active = COALESCE($8, is_active)
		WHERE id = $1
		RETURNING `+columns,
		id, params.FirstName, params.LastName, params.Email, params.Phone,
		params.City, params.Notes, params.IsActive,
	))
}

func (r *Repository) SetPhotoKey(ctx context.Context, id uuid.UUID, key *string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE persons SET photo_key = $2 WHERE id = $1`, id, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SourceLead returns the lead this student was converted from, if any.
func (r *Repository) SourceLead(ctx context.Context, personID uuid.UUID) (*uuid.UUID, error) {
	var leadID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM leads WHERE converted_person_id = $1`, personID).Scan(&leadID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &leadID, nil
}
