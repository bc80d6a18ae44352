package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InterestRelation distinguishes the three lead-to-training relations.
type InterestRelation string

const (
	RelationInterested InterestRelation = "interested"
	RelationPotential  InterestRelation = "potential"
	RelationPrevious   InterestRelation = "previous"
)

type Lead struct {
	ID                  uuid.UUID
	FirstName           string
	LastName            string
	Email               *string
	Phone               *string
	City                *string
	InstagramUsername   *string
	Profession          *string
	ContactSource       string
	LeadStage           string
	EducationBackground string
	InterestType        string
	NextFollowUp        *time.Time
	FirstMeetingDate    *time.Time
	FirstMeetingBy      *uuid.UUID
	SecondMeetingDate   *time.Time
	SecondMeetingBy     *uuid.UUID
	LastContactDate     *time.Time
	ConvertedPersonID   *uuid.UUID
	ConvertedAt         *time.Time
	ConvertedBy         *uuid.UUID
	Notes               *string
	InterestedTrainings []uuid.UUID
	PotentialTrainings  []uuid.UUID
	PreviousTrainings   []uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Person is the student record a lead converts into. The students module owns
// the full person lifecycle; this slice of it exists so conversion can create
// and link the person inside a single transaction.
type Person struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	City      *string
	Notes     *string
	IsActive  bool
	CreatedAt time.Time
}

type CreateLeadParams struct {
	FirstName           string
	LastName            string
	Email               *string
	Phone               *string
	City                *string
	InstagramUsername   *string
	Profession          *string
	ContactSource       string
	EducationBackground string
	InterestType        string
	NextFollowUp        *time.Time
	Notes               *string
}

type UpdateLeadParams struct {
	FirstName           *string
	LastName            *string
	Email               *string
	Phone               *string
	City                *string
	InstagramUsername   *string
	Profession          *string
	ContactSource       *string
	LeadStage           *string
	EducationBackground *string
	InterestType        *string
	NextFollowUp        *time.Time
	ClearNextFollowUp   bool
	Notes               *string
}

const leadColumns = `id, first_name, last_name, email, phone, city, instagram_username, profession,
	contact_source, lead_stage, education_background, interest_type, next_follow_up,
	first_meeting_date, first_meeting_by, second_meeting_date, second_meeting_by, last_contact_date,
	converted_person_id, converted_at, converted_by, notes, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone, &lead.City,
		&lead.InstagramUsername, &lead.Profession,
		&lead.ContactSource, &lead.LeadStage, &lead.EducationBackground, &lead.InterestType,
		&lead.NextFollowUp,
		&lead.FirstMeetingDate, &lead.FirstMeetingBy, &lead.SecondMeetingDate, &lead.SecondMeetingBy,
		&lead.LastContactDate,
		&lead.ConvertedPersonID, &lead.ConvertedAt, &lead.ConvertedBy, &lead.Notes,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			first_name, last_name, email, phone, city, instagram_username, profession,
			contact_source, education_background, interest_type, next_follow_up, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+leadColumns,
		params.FirstName, params.LastName, params.Email, params.Phone, params.City,
		params.InstagramUsername, params.Profession,
		params.ContactSource, params.EducationBackground, params.InterestType,
		params.NextFollowUp, params.Notes,
	)
	return scanLead(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		return Lead{}, err
	}

	if err := r.loadInterests(ctx, []*Lead{&lead}); err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// ListOrdered returns all leads newest-first with their training interest
// relations populated. This is the base collection the filter service works on.
func (r *Repository) ListOrdered(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	refs := make([]*Lead, len(leads))
	for i := range leads {
		refs[i] = &leads[i]
	}
	if err := r.loadInterests(ctx, refs); err != nil {
		return nil, err
	}

	return leads, nil
}

func (r *Repository) loadInterests(ctx context.Context, leads []*Lead) error {
	if len(leads) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(leads))
	index := make(map[uuid.UUID]*Lead, len(leads))
	for i, lead := range leads {
		ids[i] = lead.ID
		index[lead.ID] = lead
	}

	rows, err := r.pool.Query(ctx, `
		SELECT lead_id, training_id, relation
		FROM lead_training_interests
		WHERE lead_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var leadID, trainingID uuid.UUID
		var relation string
		if err := rows.Scan(&leadID, &trainingID, &relation); err != nil {
			return err
		}
		lead, ok := index[leadID]
		if !ok {
			continue
		}
		switch InterestRelation(relation) {
		case RelationInterested:
			lead.InterestedTrainings = append(lead.InterestedTrainings, trainingID)
		case RelationPotential:
			lead.PotentialTrainings = append(lead.PotentialTrainings, trainingID)
		case RelationPrevious:
			lead.PreviousTrainings = append(lead.PreviousTrainings, trainingID)
		}
	}
	return rows.Err()
}

// A converted lead keeps its stage: the person link and the stage only move
// together, through Convert. Stage edits on a linked lead are ignored.
const updateLeadQuery = `
	UPDATE leads SET
		first_name = COALESCE($2, first_name),
		last_name = COALESCE($3, last_name),
		email = COALESCE($4, email),
		phone = COALESCE($5, phone),
		city = COALESCE($6, city),
		instagram_username = COALESCE($7, instagram_username),
		profession = COALESCE($8, profession),
		contact_source = COALESCE($9, contact_source),
		lead_stage = CASE WHEN converted_person_id IS NOT NULL THEN lead_stage ELSE COALESCE($10, lead_stage) END,
		education_background = COALESCE($11, education_background),
		interest_type = COALESCE($12, interest_type),
		next_follow_up = CASE WHEN $14 THEN NULL ELSE COALESCE($13, next_follow_up) END,
		notes = COALESCE($15, notes),
		updated_at = now()
	WHERE id = $1
	RETURNING ` + leadColumns

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, updateLeadQuery,
		id,
		params.FirstName, params.LastName, params.Email, params.Phone, params.City,
		params.InstagramUsername, params.Profession,
		params.ContactSource, params.LeadStage, params.EducationBackground, params.InterestType,
		params.NextFollowUp, params.ClearNextFollowUp, params.Notes,
	)
	return scanLead(row)
}

// ReplaceInterests overwrites one of the lead's training interest relations.
func (r *Repository) ReplaceInterests(ctx context.Context, leadID uuid.UUID, relation InterestRelation, trainingIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM lead_training_interests WHERE lead_id = $1 AND relation = $2`,
		leadID, string(relation)); err != nil {
		return err
	}

	for _, trainingID := range trainingIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO lead_training_interests (lead_id, training_id, relation)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, leadID, trainingID, string(relation)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const personColumns = `id, first_name, last_name, email, phone, city, notes, is_active, created_at`

const convertLockLeadQuery = `SELECT converted_person_id FROM leads WHERE id = $1 FOR UPDATE`

const convertCopyPersonQuery = `
	INSERT INTO persons (first_name, last_name, email, phone, city, notes)
	SELECT first_name, last_name, email, phone, city, notes FROM leads WHERE id = $1
	RETURNING ` + personColumns

const convertLinkLeadQuery = `
	UPDATE leads SET
		converted_person_id = $2,
		converted_at = $3,
		converted_by = $4,
		lead_stage = 'converted',
		updated_at = now()
	WHERE id = $1 AND converted_person_id IS NULL`

// Convert links the lead to a newly created person record, copying the
// identity fields verbatim. The lead row is locked for the duration of the
// transaction so two concurrent conversions cannot both create a person; if
// the lead is already linked, the existing person is returned and created is
// false.
func (r *Repository) Convert(ctx context.Context, leadID, actorID uuid.UUID, now time.Time) (Person, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Person{}, false, err
	}
	defer tx.Rollback(ctx)

	var existingPersonID *uuid.UUID
	err = tx.QueryRow(ctx, convertLockLeadQuery, leadID).Scan(&existingPersonID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Person{}, false, ErrNotFound
	}
	if err != nil {
		return Person{}, false, err
	}

	if existingPersonID != nil {
		person, err := scanPerson(tx.QueryRow(ctx,
			`SELECT `+personColumns+` FROM persons WHERE id = $1`, *existingPersonID))
		if err != nil {
			return Person{}, false, err
		}
		return person, false, tx.Commit(ctx)
	}

	person, err := scanPerson(tx.QueryRow(ctx, convertCopyPersonQuery, leadID))
	if err != nil {
		return Person{}, false, err
	}

	tag, err := tx.Exec(ctx, convertLinkLeadQuery, leadID, person.ID, now, actorID)
	if err != nil {
		return Person{}, false, err
	}
	if tag.RowsAffected() == 0 {
		// Unreachable under the row lock, but never link twice.
		return Person{}, false, errors.New("lead already converted")
	}

	return person, true, tx.Commit(ctx)
}

func scanPerson(row pgx.Row) (Person, error) {
	var person Person
	err := row.Scan(
		&person.ID, &person.FirstName, &person.LastName, &person.Email, &person.Phone,
		&person.City, &person.Notes, &person.IsActive, &person.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Person{}, ErrNotFound
	}
	return person, err
}
