package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound           = errors.New("training not found")
	ErrSessionNotFound    = errors.New("training session not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Training struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	DefaultDuration *int
	IsActive        bool
	CreatedAt       time.Time
}

type Session struct {
	ID           uuid.UUID
	TrainingID   uuid.UUID
	StartDate    time.Time
	EndDate      *time.Time
	InstructorID *uuid.UUID
	PriceCents   int64
	CreatedAt    time.Time
}

type Enrollment struct {
	ID             uuid.UUID
	LeadID         *uuid.UUID
	PersonID       *uuid.UUID
	SessionID      uuid.UUID
	Status         string
	EnrollmentDate time.Time
	AttendanceRate *int
	InstructorNote *string
}

func scanTraining(row pgx.Row) (Training, error) {
	var t Training
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.DefaultDuration, &t.IsActive, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Training{}, ErrNotFound
	}
	return t, err
}

func scanSession(row pgx.Row) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.TrainingID, &s.StartDate, &s.EndDate, &s.InstructorID, &s.PriceCents, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	return s, err
}

func scanEnrollment(row pgx.Row) (Enrollment, error) {
	var e Enrollment
	err := row.Scan(&e.ID, &e.LeadID, &e.PersonID, &e.SessionID, &e.Status,
		&e.EnrollmentDate, &e.AttendanceRate, &e.InstructorNote)
	if errors.Is(err, pgx.ErrNoRows) {
		return Enrollment{}, ErrEnrollmentNotFound
	}
	return e, err
}

const trainingColumns = `id, name, description, default_duration, is_active, created_at`
const sessionColumns = `id, training_id, start_date, end_date, instructor_id, price_cents, created_at`
const enrollmentColumns = `id, lead_id, person_id, training_session_id, status, enrollment_date, attendance_rate, instructor_note`

func (r *Repository) CreateTraining(ctx context.Context, name string, description *string, duration *int) (Training, error) {
	return scanTraining(r.pool.QueryRow(ctx, `
		INSERT INTO trainings (name, description, default_duration)
		VALUES ($1, $2, $3)
		RETURNING `+trainingColumns,
		name, description, duration,
	))
}

func (r *Repository) GetTraining(ctx context.Context, id uuid.UUID) (Training, error) {
	return scanTraining(r.pool.QueryRow(ctx,
		`SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id))
}

func (r *Repository) ListTrainings(ctx context.Context, search string, includeInactive bool) ([]Training, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+trainingColumns+` FROM trainings
		WHERE ($1 OR is_active)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name ASC
	`, includeInactive, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainings := make([]Training, 0)
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

func (r *Repository) UpdateTraining(ctx context.Context, id uuid.UUID, name, description *string, duration *int, isActive *bool) (Training, error) {
	return scanTraining(r.pool.QueryRow(ctx, `
		UPDATE trainings SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			default_duration = COALESCE($4, default_duration),
			is_active = COALESCE($5, is_active)
		WHERE id = $1
		RETURNING `+trainingColumns,
		id, name, description, duration, isActive,
	))
}

type CreateSessionParams struct {
	TrainingID   uuid.UUID
	StartDate    time.Time
	EndDate      *time.Time
	InstructorID *uuid.UUID
	PriceCents   int64
}

func (r *Repository) CreateSession(ctx context.Context, params CreateSessionParams) (Session, error) {
	return scanSession(r.pool.QueryRow(ctx, `
		INSERT INTO training_sessions (training_id, start_date, end_date, instructor_id, price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+sessionColumns,
		params.TrainingID, params.StartDate, params.EndDate, params.InstructorID, params.PriceCents,
	))
}

func (r *Repository) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	return scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM training_sessions WHERE id = $1`, id))
}

func (r *Repository) ListSessions(ctx context.Context, trainingID uuid.UUID) ([]Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM training_sessions
		WHERE training_id = $1
		ORDER BY start_date DESC
	`, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

type UpdateSessionParams struct {
	StartDate    *time.Time
	EndDate      *time.Time
	InstructorID *uuid.UUID
	PriceCents   *int64
}

func (r *Repository) UpdateSession(ctx context.Context, id uuid.UUID, params UpdateSessionParams) (Session, error) {
	return scanSession(r.pool.QueryRow(ctx, `
		UPDATE training_sessions SET
			start_date = COALESCE($2, start_date),
			end_date = COALESCE($3, end_date),
			instructor_id = COALESCE($4, instructor_id),
			price_cents = COALESCE($5, price_cents)
		WHERE id = $1
		RETURNING `+sessionColumns,
		id, params.StartDate, params.EndDate, params.InstructorID, params.PriceCents,
	))
}

type CreateEnrollmentParams struct {
	LeadID    *uuid.UUID
	PersonID  *uuid.UUID
	SessionID uuid.UUID
	Status    string
}

func (r *Repository) CreateEnrollment(ctx context.Context, params CreateEnrollmentParams) (Enrollment, error) {
	return scanEnrollment(r.pool.QueryRow(ctx, `
		INSERT INTO enrollments (lead_id, person_id, training_session_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+enrollmentColumns,
		params.LeadID, params.PersonID, params.SessionID, params.Status,
	))
}

func (r *Repository) GetEnrollment(ctx context.Context, id uuid.UUID) (Enrollment, error) {
	return scanEnrollment(r.pool.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id))
}

func (r *Repository) ListEnrollmentsBySession(ctx context.Context, sessionID uuid.UUID) ([]Enrollment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+enrollmentColumns+` FROM enrollments
		WHERE training_session_id = $1
		ORDER BY enrollment_date ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]Enrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

type UpdateEnrollmentParams struct {
	Status         *string
	AttendanceRate *int
	InstructorNote *string
}

func (r *Repository) UpdateEnrollment(ctx context.Context, id uuid.UUID, params UpdateEnrollmentParams) (Enrollment, error) {
	return scanEnrollment(r.pool.QueryRow(ctx, `
		UPDATE enrollments SET
			status = COALESCE($2, status),
			attendance_rate = COALESCE($3, attendance_rate),
			instructor_note = COALESCE($4, instructor_note)
		WHERE id = $1
		RETURNING `+enrollmentColumns,
		id, params.Status, params.AttendanceRate, params.InstructorNote,
	))
}

func (r *Repository) DeleteEnrollment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}
