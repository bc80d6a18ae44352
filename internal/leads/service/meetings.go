package service

import (
	"context"

	"github.com/google/uuid"

	"kurscrm_backend/internal/events"
	"kurscrm_backend/internal/leads/repository"
	"kurscrm_backend/internal/leads/transport"
	"kurscrm_backend/platform/apperr"
)

// RecordMeeting persists a meeting and refreshes the lead's derived summary
// fields from the full chronological meeting list, all in one transaction.
// The published event carries the meeting's chronological ordinal, which may
// differ from recording order when meetings are backfilled.
func (s *Service) RecordMeeting(ctx context.Context, leadID, recordedBy uuid.UUID, req transport.CreateMeetingRequest) (transport.MeetingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.MeetingResponse{}, apperr.Wrap(apperr.KindValidation, "invalid meeting payload", err)
	}

	params := repository.CreateMeetingParams{
		LeadID:       leadID,
		UserID:       &recordedBy,
		MeetingDate:  req.MeetingDate,
		Summary:      req.Summary,
		PrivateNote:  optional(req.PrivateNote),
		FollowUpDate: req.FollowUpDate,
	}

	meeting, err := s.repo.RecordMeeting(ctx, params, ComputeMeetingSummary)
	if err != nil {
		return transport.MeetingResponse{}, mapRepoError(err, "leads.RecordMeeting")
	}

	ordinal, err := s.meetingOrdinal(ctx, leadID, meeting.ID)
	if err != nil {
		return transport.MeetingResponse{}, mapRepoError(err, "leads.RecordMeeting")
	}

	s.bus.Publish(ctx, events.MeetingRecorded{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      leadID,
		MeetingID:   meeting.ID,
		RecordedBy:  recordedBy,
		MeetingDate: meeting.MeetingDate,
		Ordinal:     ordinal,
	})

	return toMeetingResponse(meeting), nil
}

func (s *Service) ListMeetings(ctx context.Context, leadID uuid.UUID) ([]transport.MeetingResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		return nil, mapRepoError(err, "leads.ListMeetings")
	}

	meetings, err := s.repo.ListMeetings(ctx, leadID)
	if err != nil {
		return nil, mapRepoError(err, "leads.ListMeetings")
	}

	resp := make([]transport.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		resp = append(resp, toMeetingResponse(m))
	}
	return resp, nil
}

// UpdateMeeting edits the meeting record itself. Edits correct the record
// rather than register new contact, so the lead summary is left untouched.
func (s *Service) UpdateMeeting(ctx context.Context, meetingID uuid.UUID, req transport.UpdateMeetingRequest) (transport.MeetingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.MeetingResponse{}, apperr.Wrap(apperr.KindValidation, "invalid meeting payload", err)
	}

	meeting, err := s.repo.UpdateMeeting(ctx, meetingID, repository.UpdateMeetingParams{
		MeetingDate:  req.MeetingDate,
		Summary:      req.Summary,
		PrivateNote:  req.PrivateNote,
		FollowUpDate: req.FollowUpDate,
	})
	if err != nil {
		return transport.MeetingResponse{}, mapRepoError(err, "leads.UpdateMeeting")
	}
	return toMeetingResponse(meeting), nil
}

func (s *Service) DeleteMeeting(ctx context.Context, meetingID uuid.UUID) error {
	if err := s.repo.DeleteMeeting(ctx, meetingID, ComputeMeetingSummary); err != nil {
		return mapRepoError(err, "leads.DeleteMeeting")
	}
	return nil
}

func (s *Service) meetingOrdinal(ctx context.Context, leadID, meetingID uuid.UUID) (int, error) {
	meetings, err := s.repo.ListMeetings(ctx, leadID)
	if err != nil {
		return 0, err
	}
	for i, m := range meetings {
		if m.ID == meetingID {
			return i + 1, nil
		}
	}
	return len(meetings), nil
}
