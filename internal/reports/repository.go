package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type RevenueReport struct {
	TotalCents   int64            `json:"totalCents"`
	PaymentCount int              `json:"paymentCount"`
	ByMethod     map[string]int64 `json:"byMethodCents"`
}

// Revenue sums recorded payments inside the date window. A zero time on
// either bound leaves that side open.
func (r *Repository) Revenue(ctx context.Context, from, to time.Time) (RevenueReport, error) {
	report := RevenueReport{ByMethod: make(map[string]int64)}

	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(payment_method, 'unspecified'), SUM(amount_cents), COUNT(*)
		FROM payments
		WHERE ($1::date IS NULL OR payment_date >= $1)
		AND ($2::date IS NULL OR payment_date <= $2)
		GROUP BY 1
	`, nullableDate(from), nullableDate(to))
	if err != nil {
		return RevenueReport{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var method string
		var sum int64
		var count int
		if err := rows.Scan(&method, &sum, &count); err != nil {
			return RevenueReport{}, err
		}
		report.ByMethod[method] = sum
		report.TotalCents += sum
		report.PaymentCount += count
	}
	return report, rows.Err()
}

type OverviewReport struct {
	ActiveStudents    int `json:"activeStudents"`
	OpenLeads         int `json:"openLeads"`
	ConvertedLeads    int `json:"convertedLeads"`
	ActiveEnrollments int `json:"activeEnrollments"`
}

func (r *Repository) Overview(ctx context.Context) (OverviewReport, error) {
	var report OverviewReport
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM persons WHERE is_active),
			(SELECT COUNT(*) FROM leads WHERE lead_stage NOT IN ('converted', 'lost')),
			(SELECT COUNT(*) FROM leads WHERE converted_person_id IS NOT NULL),
			(SELECT COUNT(*) FROM enrollments WHERE status = 'enrolled')
	`).Scan(&report.ActiveStudents, &report.OpenLeads, &report.ConvertedLeads, &report.ActiveEnrollments)
	return report, err
}

type TrainingEnrollmentRow struct {
	TrainingID   uuid.UUID `json:"trainingId"`
	TrainingName string    `json:"trainingName"`
	Enrolled     int       `json:"enrolled"`
	Completed    int       `json:"completed"`
	Dropped      int       `json:"dropped"`
}

func (r *Repository) EnrollmentByTraining(ctx context.Context) ([]TrainingEnrollmentRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.name,
			COUNT(*) FILTER (WHERE e.status = 'enrolled'),
			COUNT(*) FILTER (WHERE e.status = 'completed'),
			COUNT(*) FILTER (WHERE e.status = 'dropped')
		FROM trainings t
		JOIN training_sessions s ON s.training_id = t.id
		JOIN enrollments e ON e.training_session_id = s.id
		GROUP BY t.id, t.name
		ORDER BY t.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]TrainingEnrollmentRow, 0)
	for rows.Next() {
		var row TrainingEnrollmentRow
		if err := rows.Scan(&row.TrainingID, &row.TrainingName, &row.Enrolled, &row.Completed, &row.Dropped); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

type InstructorSessionRow struct {
	SessionID    uuid.UUID  `json:"sessionId"`
	TrainingName string     `json:"trainingName"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Enrolled     int        `json:"enrolled"`
}

// InstructorDashboard lists the sessions assigned to one instructor with
// current enrollment counts, upcoming first.
func (r *Repository) InstructorDashboard(ctx context.Context, instructorID uuid.UUID) ([]InstructorSessionRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, t.name, s.start_date, s.end_date,
			(SELECT COUNT(*) FROM enrollments e WHERE e.training_session_id = s.id AND e.status = 'enrolled')
		FROM training_sessions s
		JOIN trainings t ON t.id = s.training_id
		WHERE s.instructor_id = $1
		ORDER BY s.start_date DESC
	`, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]InstructorSessionRow, 0)
	for rows.Next() {
		var row InstructorSessionRow
		if err := rows.Scan(&row.SessionID, &row.TrainingName, &row.StartDate, &row.EndDate, &row.Enrolled); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
