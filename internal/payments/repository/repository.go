package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("payment not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Payment struct {
	ID            uuid.UUID
	LeadID        *uuid.UUID
	PersonID      *uuid.UUID
	SessionID     *uuid.UUID
	AmountCents   int64
	PaymentDate   time.Time
	PaymentMethod *string
	Note          *string
	CreatedAt     time.Time
}

const columns = `id, lead_id, person_id, training_session_id, amount_cents, payment_date, payment_method, note, created_at`

func scan(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.LeadID, &p.PersonID, &p.SessionID, &p.AmountCents,
		&p.PaymentDate, &p.PaymentMethod, &p.Note, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, ErrNotFound
	}
	return p, err
}

type CreateParams struct {
	LeadID        *uuid.UUID
	PersonID      *uuid.UUID
	SessionID     *uuid.UUID
	AmountCents   int64
	PaymentDate   time.Time
	PaymentMethod *string
	Note          *string
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Payment, error) {
	return scan(r.pool.QueryRow(ctx, `
		INSERT INTO payments (lead_id, person_id, training_session_id, amount_cents, payment_date, payment_method, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+columns,
		params.LeadID, params.PersonID, params.SessionID, params.AmountCents,
		params.PaymentDate, params.PaymentMethod, params.Note,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Payment, error) {
	return scan(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM payments WHERE id = $1`, id))
}

func (r *Repository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]Payment, error) {
	return r.list(ctx, `SELECT `+columns+` FROM payments WHERE lead_id = $1 ORDER BY payment_date DESC`, leadID)
}

func (r *Repository) ListByPerson(ctx context.Context, personID uuid.UUID) ([]Payment, error) {
	return r.list(ctx, `SELECT `+columns+` FROM payments WHERE person_id = $1 ORDER BY payment_date DESC`, personID)
}

func (r *Repository) list(ctx context.Context, query string, arg any) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]Payment, 0)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

type UpdateParams struct {
	AmountCents   *int64
	PaymentDate   *time.Time
	PaymentMethod *string
	Note          *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Payment, error) {
	return scan(r.pool.QueryRow(ctx, `
		UPDATE payments SET
			amount_cents = COALESCE($2, amount_cents),
			payment_date = COALESCE($3, payment_date),
			payment_method = COALESCE($4, payment_method),
			note = COALESCE($5, note)
		WHERE id = $1
		RETURNING `+columns,
		id, params.AmountCents, params.PaymentDate, params.PaymentMethod, params.Note,
	))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
