// Package directory resolves staff notification recipients from the users
// table.
package directory

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Adapter struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{pool: pool}
}

func (a *Adapter) AdminEmails(ctx context.Context) ([]string, error) {
	rows, err := a.pool.Query(ctx, `SELECT email FROM users WHERE role = 'admin'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
