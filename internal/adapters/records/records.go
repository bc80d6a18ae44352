// Package records implements the cross-module read ports declared by the
// leads and students modules. It queries the peripheral tables directly so
// detail views do not couple those modules to each other's services.
package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	leadports "kurscrm_backend/internal/leads/ports"
	studentports "kurscrm_backend/internal/students/ports"
)

type Adapter struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{pool: pool}
}

var (
	_ leadports.LeadRecords       = (*Adapter)(nil)
	_ studentports.StudentRecords = (*Adapter)(nil)
)

const enrollmentQuery = `
	SELECT e.id, t.name, s.start_date, e.status, s.price_cents, e.enrollment_date, e.attendance_rate
	FROM enrollments e
	JOIN training_sessions s ON s.id = e.training_session_id
	JOIN trainings t ON t.id = s.training_id
	WHERE %s = $1
	ORDER BY e.enrollment_date DESC`

func enrollmentSQL(column string) string { return fmt.Sprintf(enrollmentQuery, column) }
func documentSQL(column string) string   { return fmt.Sprintf(documentQuery, column) }
func paymentSQL(column string) string    { return fmt.Sprintf(paymentQuery, column) }

func (a *Adapter) EnrollmentsForLead(ctx context.Context, leadID uuid.UUID) ([]leadports.EnrollmentRecord, error) {
	rows, err := a.pool.Query(ctx, enrollmentSQL("e.lead_id"), leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]leadports.EnrollmentRecord, 0)
	for rows.Next() {
		var r leadports.EnrollmentRecord
		var attendance *int
		if err := rows.Scan(&r.ID, &r.TrainingName, &r.SessionStart, &r.Status,
			&r.PriceCents, &r.EnrollmentDate, &attendance); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (a *Adapter) EnrollmentsForPerson(ctx context.Context, personID uuid.UUID) ([]studentports.EnrollmentRecord, error) {
	rows, err := a.pool.Query(ctx, enrollmentSQL("e.person_id"), personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]studentports.EnrollmentRecord, 0)
	for rows.Next() {
		var r studentports.EnrollmentRecord
		if err := rows.Scan(&r.ID, &r.TrainingName, &r.SessionStart, &r.Status,
			&r.PriceCents, &r.EnrollmentDate, &r.AttendanceRate); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

const documentQuery = `
	SELECT id, document_type, file_name, uploaded_at
	FROM documents
	WHERE %s = $1
	ORDER BY uploaded_at DESC`

func (a *Adapter) DocumentsForLead(ctx context.Context, leadID uuid.UUID) ([]leadports.DocumentRecord, error) {
	rows, err := a.pool.Query(ctx, documentSQL("lead_id"), leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]leadports.DocumentRecord, 0)
	for rows.Next() {
		var r leadports.DocumentRecord
		if err := rows.Scan(&r.ID, &r.DocumentType, &r.FileName, &r.UploadedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (a *Adapter) DocumentsForPerson(ctx context.Context, personID uuid.UUID) ([]studentports.DocumentRecord, error) {
	rows, err := a.pool.Query(ctx, documentSQL("person_id"), personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]studentports.DocumentRecord, 0)
	for rows.Next() {
		var r studentports.DocumentRecord
		if err := rows.Scan(&r.ID, &r.DocumentType, &r.FileName, &r.UploadedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

const paymentQuery = `
	SELECT id, amount_cents, payment_date, payment_method, training_session_id
	FROM payments
	WHERE %s = $1
	ORDER BY payment_date DESC`

func (a *Adapter) PaymentsForLead(ctx context.Context, leadID uuid.UUID) ([]leadports.PaymentRecord, error) {
	rows, err := a.pool.Query(ctx, paymentSQL("lead_id"), leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]leadports.PaymentRecord, 0)
	for rows.Next() {
		var r leadports.PaymentRecord
		if err := rows.Scan(&r.ID, &r.AmountCents, &r.PaymentDate, &r.PaymentMethod, &r.SessionID); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (a *Adapter) PaymentsForPerson(ctx context.Context, personID uuid.UUID) ([]studentports.PaymentRecord, error) {
	rows, err := a.pool.Query(ctx, paymentSQL("person_id"), personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]studentports.PaymentRecord, 0)
	for rows.Next() {
		var r studentports.PaymentRecord
		if err := rows.Scan(&r.ID, &r.AmountCents, &r.PaymentDate, &r.PaymentMethod, &r.SessionID); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
