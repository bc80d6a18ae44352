// Package service implements the lead domain logic: CRUD, the in-memory
// filter over the lead collection, the meeting summary lifecycle, and the
// lead to student conversion.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kurscrm_backend/internal/events"
	"kurscrm_backend/internal/leads/ports"
	"kurscrm_backend/internal/leads/repository"
	"kurscrm_backend/internal/leads/transport"
	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/phone"
	"kurscrm_backend/platform/validator"
)

type Service struct {
	repo     *repository.Repository
	records  ports.LeadRecords
	bus      events.Bus
	logger   *logger.Logger
	validate *validator.Validator
	now      func() time.Time
}

// New wires the lead service. loc is the school's timezone; "today" in the
// follow-up filter means the calendar date there, not in UTC.
func New(repo *repository.Repository, records ports.LeadRecords, bus events.Bus, loc *time.Location, log *logger.Logger, validate *validator.Validator) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		records:  records,
		bus:      bus,
		logger:   log,
		validate: validate,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindValidation, "invalid lead payload", err)
	}

	params := repository.CreateLeadParams{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               optional(req.Email),
		Phone:               normalizedPhone(req.Phone),
		City:                optional(req.City),
		InstagramUsername:   optional(req.InstagramUsername),
		Profession:          optional(req.Profession),
		ContactSource:       string(req.ContactSource),
		EducationBackground: string(req.EducationBackground),
		InterestType:        string(req.InterestType),
		NextFollowUp:        req.NextFollowUp,
		Notes:               optional(req.Notes),
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err, "leads.Create")
	}

	if err := s.saveInterests(ctx, lead.ID, req.InterestedTrainings, req.PotentialTrainings, req.PreviousTrainings); err != nil {
		return transport.LeadResponse{}, mapRepoError(err, "leads.Create")
	}
	lead.InterestedTrainings = req.InterestedTrainings
	lead.PotentialTrainings = req.PotentialTrainings
	lead.PreviousTrainings = req.PreviousTrainings

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		FirstName:     lead.FirstName,
		LastName:      lead.LastName,
		ContactSource: lead.ContactSource,
	})

	return toLeadResponse(lead), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err, "leads.Get")
	}
	return toLeadResponse(lead), nil
}

// GetDetail aggregates the lead with its meetings and the peripheral records
// other modules hold for it.
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoError(err, "leads.GetDetail")
	}

	meetings, err := s.repo.ListMeetings(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoError(err, "leads.GetDetail")
	}

	enrollments, err := s.records.EnrollmentsForLead(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoError(err, "leads.GetDetail")
	}
	documents, err := s.records.DocumentsForLead(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoError(err, "leads.GetDetail")
	}
	payments, err := s.records.PaymentsForLead(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoError(err, "leads.GetDetail")
	}

	detail := transport.LeadDetailResponse{
		Lead:        toLeadResponse(lead),
		Meetings:    make([]transport.MeetingResponse, 0, len(meetings)),
		Enrollments: make([]transport.EnrollmentSummary, 0, len(enrollments)),
		Documents:   make([]transport.DocumentSummary, 0, len(documents)),
		Payments:    make([]transport.PaymentSummary, 0, len(payments)),
	}

	for _, m := range meetings {
		detail.Meetings = append(detail.Meetings, toMeetingResponse(m))
	}
	for _, e := range enrollments {
		detail.Enrollments = append(detail.Enrollments, transport.EnrollmentSummary{
			ID:             e.ID,
			TrainingName:   e.TrainingName,
			SessionStart:   e.SessionStart,
			Status:         e.Status,
			PriceCents:     e.PriceCents,
			EnrollmentDate: e.EnrollmentDate,
		})
		if e.Status == "enrolled" || e.Status == "completed" {
			detail.Financials.EnrolledTotalCents += e.PriceCents
		}
	}
	for _, d := range documents {
		detail.Documents = append(detail.Documents, transport.DocumentSummary{
			ID:           d.ID,
			DocumentType: d.DocumentType,
			FileName:     d.FileName,
			UploadedAt:   d.UploadedAt,
		})
	}
	for _, p := range payments {
		detail.Payments = append(detail.Payments, transport.PaymentSummary{
			ID:            p.ID,
			AmountCents:   p.AmountCents,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
			SessionID:     p.SessionID,
		})
		detail.Financials.PaidTotalCents += p.AmountCents
	}
	detail.Financials.BalanceCents = detail.Financials.EnrolledTotalCents - detail.Financials.PaidTotalCents

	return detail, nil
}

// List returns the leads matching the request criteria, newest first.
// Unparseable criteria values were already dropped during parsing, so this
// never fails on user input.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	leads, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return transport.LeadListResponse{}, mapRepoError(err, "leads.List")
	}

	filtered := ParseCriteria(req).Apply(leads, s.now())

	resp := transport.LeadListResponse{
		Items: make([]transport.LeadResponse, 0, len(filtered)),
		Total: len(filtered),
	}
	for _, lead := range filtered {
		resp.Items = append(resp.Items, toLeadResponse(lead))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindValidation, "invalid lead payload", err)
	}

	params := repository.UpdateLeadParams{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               normalizedPhonePtr(req.Phone),
		City:                req.City,
		InstagramUsername:   req.InstagramUsername,
		Profession:          req.Profession,
		ContactSource:       stringPtr(req.ContactSource),
		LeadStage:           stringPtr(req.LeadStage),
		EducationBackground: stringPtr(req.EducationBackground),
		InterestType:        stringPtr(req.InterestType),
		NextFollowUp:        req.NextFollowUp,
		ClearNextFollowUp:   req.ClearNextFollowUp,
		Notes:               req.Notes,
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err, "leads.Update")
	}

	if req.InterestedTrainings != nil || req.PotentialTrainings != nil || req.PreviousTrainings != nil {
		if err := s.saveInterests(ctx, id, req.InterestedTrainings, req.PotentialTrainings, req.PreviousTrainings); err != nil {
			return transport.LeadResponse{}, mapRepoError(err, "leads.Update")
		}
	}

	lead, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err, "leads.Update")
	}
	return toLeadResponse(lead), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "leads.Delete")
	}
	return nil
}

// Convert creates the student record for the lead and links the two,
// marking the lead converted. Calling it again returns the already linked
// student without side effects.
func (s *Service) Convert(ctx context.Context, leadID, actorID uuid.UUID) (transport.PersonResponse, error) {
	person, created, err := s.repo.Convert(ctx, leadID, actorID, s.now())
	if err != nil {
		return transport.PersonResponse{}, mapRepoError(err, "leads.Convert")
	}

	if created {
		s.bus.Publish(ctx, events.LeadConverted{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      leadID,
			PersonID:    person.ID,
			ConvertedBy: actorID,
			FullName:    person.FirstName + " " + person.LastName,
		})
		s.logger.Info("lead converted", "lead_id", leadID, "person_id", person.ID)
	}

	return toPersonResponse(person), nil
}

func (s *Service) saveInterests(ctx context.Context, leadID uuid.UUID, interested, potential, previous []uuid.UUID) error {
	relations := []struct {
		relation repository.InterestRelation
		ids      []uuid.UUID
	}{
		{repository.RelationInterested, interested},
		{repository.RelationPotential, potential},
		{repository.RelationPrevious, previous},
	}
	for _, r := range relations {
		if err := s.repo.ReplaceInterests(ctx, leadID, r.relation, r.ids); err != nil {
			return err
		}
	}
	return nil
}

func mapRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("lead not found").WithOp(op)
	case errors.Is(err, repository.ErrMeetingNotFound):
		return apperr.NotFound("meeting not found").WithOp(op)
	default:
		return apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp(op)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringPtr[T ~string](value *T) *string {
	if value == nil {
		return nil
	}
	s := string(*value)
	return &s
}

func normalizedPhone(raw string) *string {
	if raw == "" {
		return nil
	}
	normalized := phone.NormalizeE164(raw)
	return &normalized
}

func normalizedPhonePtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	return normalizedPhone(*raw)
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                  lead.ID,
		FirstName:           lead.FirstName,
		LastName:            lead.LastName,
		Email:               lead.Email,
		Phone:               lead.Phone,
		City:                lead.City,
		InstagramUsername:   lead.InstagramUsername,
		Profession:          lead.Profession,
		ContactSource:       transport.ContactSource(lead.ContactSource),
		LeadStage:           transport.LeadStage(lead.LeadStage),
		EducationBackground: transport.EducationBackground(lead.EducationBackground),
		InterestType:        transport.InterestType(lead.InterestType),
		NextFollowUp:        lead.NextFollowUp,
		FirstMeetingDate:    lead.FirstMeetingDate,
		FirstMeetingBy:      lead.FirstMeetingBy,
		SecondMeetingDate:   lead.SecondMeetingDate,
		SecondMeetingBy:     lead.SecondMeetingBy,
		LastContactDate:     lead.LastContactDate,
		ConvertedPersonID:   lead.ConvertedPersonID,
		ConvertedAt:         lead.ConvertedAt,
		ConvertedBy:         lead.ConvertedBy,
		Notes:               lead.Notes,
		InterestedTrainings: lead.InterestedTrainings,
		PotentialTrainings:  lead.PotentialTrainings,
		PreviousTrainings:   lead.PreviousTrainings,
		CreatedAt:           lead.CreatedAt,
		UpdatedAt:           lead.UpdatedAt,
	}
}

func toMeetingResponse(m repository.Meeting) transport.MeetingResponse {
	return transport.MeetingResponse{
		ID:           m.ID,
		LeadID:       m.LeadID,
		UserID:       m.UserID,
		MeetingDate:  m.MeetingDate,
		Summary:      m.Summary,
		PrivateNote:  m.PrivateNote,
		FollowUpDate: m.FollowUpDate,
	}
}

func toPersonResponse(p repository.Person) transport.PersonResponse {
	return transport.PersonResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		City:      p.City,
		Notes:     p.Notes,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}
