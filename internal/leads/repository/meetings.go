package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMeetingNotFound = errors.New("meeting not found")

type Meeting struct {
	ID           uuid.UUID
	LeadID       uuid.UUID
	UserID       *uuid.UUID
	MeetingDate  time.Time
	Summary      string
	PrivateNote  *string
	FollowUpDate *time.Time
	CreatedAt    time.Time
}

type CreateMeetingParams struct {
	LeadID       uuid.UUID
	UserID       *uuid.UUID
	MeetingDate  time.Time
	Summary      string
	PrivateNote  *string
	FollowUpDate *time.Time
}

type UpdateMeetingParams struct {
	MeetingDate  *time.Time
	Summary      *string
	PrivateNote  *string
	FollowUpDate *time.Time
}

// LeadMeetingSummary is the derived contact history written back onto the
// lead whenever its meeting set changes.
type LeadMeetingSummary struct {
	FirstMeetingDate  *time.Time
	FirstMeetingBy    *uuid.UUID
	SecondMeetingDate *time.Time
	SecondMeetingBy   *uuid.UUID
	LastContactDate   *time.Time
	NextFollowUp      *time.Time
}

// SummaryFunc derives the lead summary from the full chronological meeting
// list. The repository calls it inside the mutation transaction so the
// written summary always reflects the committed meeting set.
type SummaryFunc func(meetings []Meeting) LeadMeetingSummary

const meetingColumns = `id, lead_id, user_id, meeting_date, summary, private_note, follow_up_date, created_at`

func scanMeeting(row pgx.Row) (Meeting, error) {
	var m Meeting
	err := row.Scan(
		&m.ID, &m.LeadID, &m.UserID, &m.MeetingDate, &m.Summary,
		&m.PrivateNote, &m.FollowUpDate, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Meeting{}, ErrMeetingNotFound
	}
	return m, err
}

// RecordMeeting inserts the meeting and refreshes the lead's derived summary
// in one transaction. The lead row is locked first so concurrent recordings
// serialize per lead and each one sees the complete meeting list.
func (r *Repository) RecordMeeting(ctx context.Context, params CreateMeetingParams, refresh SummaryFunc) (Meeting, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Meeting{}, err
	}
	defer tx.Rollback(ctx)

	if err := lockLead(ctx, tx, params.LeadID); err != nil {
		return Meeting{}, err
	}

	meeting, err := scanMeeting(tx.QueryRow(ctx, `
		INSERT INTO meetings (lead_id, user_id, meeting_date, summary, private_note, follow_up_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+meetingColumns,
		params.LeadID, params.UserID, params.MeetingDate, params.Summary,
		params.PrivateNote, params.FollowUpDate,
	))
	if err != nil {
		return Meeting{}, err
	}

	if err := refreshLeadSummary(ctx, tx, params.LeadID, refresh); err != nil {
		return Meeting{}, err
	}

	return meeting, tx.Commit(ctx)
}

func (r *Repository) GetMeeting(ctx context.Context, id uuid.UUID) (Meeting, error) {
	return scanMeeting(r.pool.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id))
}

// ListMeetings returns the lead's meetings in chronological order.
func (r *Repository) ListMeetings(ctx context.Context, leadID uuid.UUID) ([]Meeting, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE lead_id = $1 ORDER BY meeting_date ASC, created_at ASC`,
		leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetings := make([]Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// UpdateMeeting edits an existing meeting without touching the lead summary.
// Edits are corrections of the record, not new contact.
func (r *Repository) UpdateMeeting(ctx context.Context, id uuid.UUID, params UpdateMeetingParams) (Meeting, error) {
	return scanMeeting(r.pool.QueryRow(ctx, `
		UPDATE meetings SET
			meeting_date = COALESCE($2, meeting_date),
			summary = COALESCE($3, summary),
			private_note = COALESCE($4, private_note),
			follow_up_date = COALESCE($5, follow_up_date)
		WHERE id = $1
		RETURNING `+meetingColumns,
		id, params.MeetingDate, params.Summary, params.PrivateNote, params.FollowUpDate,
	))
}

// DeleteMeeting removes the meeting and refreshes the lead summary from the
// remaining meetings, in one transaction.
func (r *Repository) DeleteMeeting(ctx context.Context, id uuid.UUID, refresh SummaryFunc) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var leadID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT lead_id FROM meetings WHERE id = $1`, id).Scan(&leadID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrMeetingNotFound
	}
	if err != nil {
		return err
	}

	if err := lockLead(ctx, tx, leadID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id); err != nil {
		return err
	}

	if err := refreshLeadSummary(ctx, tx, leadID, refresh); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func lockLead(ctx context.Context, tx pgx.Tx, leadID uuid.UUID) error {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM leads WHERE id = $1 FOR UPDATE`, leadID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func refreshLeadSummary(ctx context.Context, tx pgx.Tx, leadID uuid.UUID, refresh SummaryFunc) error {
	rows, err := tx.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE lead_id = $1 ORDER BY meeting_date ASC, created_at ASC`,
		leadID)
	if err != nil {
		return err
	}
	defer rows.Close()

	meetings := make([]Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return err
		}
		meetings = append(meetings, m)
	}
	if rows.Err() != nil {
		return rows.Err()
	}
	rows.Close()

	summary := refresh(meetings)

	_, err = tx.Exec(ctx, `
		UPDATE leads SET
			first_meeting_date = $2,
			first_meeting_by = $3,
			second_meeting_date = $4,
			second_meeting_by = $5,
			last_contact_date = $6,
			next_follow_up = COALESCE($7, next_follow_up),
			updated_at = now()
		WHERE id = $1
	`, leadID,
		summary.FirstMeetingDate, summary.FirstMeetingBy,
		summary.SecondMeetingDate, summary.SecondMeetingBy,
		summary.LastContactDate, summary.NextFollowUp,
	)
	return err
}
