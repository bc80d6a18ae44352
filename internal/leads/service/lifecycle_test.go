package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"kurscrm_backend/internal/leads/repository"
)

func meetingAt(day int, userID *uuid.UUID) repository.Meeting {
	return repository.Meeting{
		ID:          uuid.New(),
		MeetingDate: time.Date(2026, 2, day, 10, 0, 0, 0, time.UTC),
		UserID:      userID,
		Summary:     "call",
	}
}

func TestComputeMeetingSummaryEmpty(t *testing.T) {
	summary := ComputeMeetingSummary(nil)
	if summary.FirstMeetingDate != nil || summary.SecondMeetingDate != nil || summary.LastContactDate != nil {
		t.Fatalf("empty meeting list produced non-empty summary: %+v", summary)
	}
}

func TestComputeMeetingSummarySingleMeeting(t *testing.T) {
	staff := uuid.New()
	m := meetingAt(5, &staff)

	summary := ComputeMeetingSummary([]repository.Meeting{m})

	if summary.FirstMeetingDate == nil || !summary.FirstMeetingDate.Equal(m.MeetingDate) {
		t.Error("first meeting date not set from the only meeting")
	}
	if summary.FirstMeetingBy == nil || *summary.FirstMeetingBy != staff {
		t.Error("first meeting staff not recorded")
	}
	if summary.SecondMeetingDate != nil {
		t.Error("second meeting set with a single meeting")
	}
	if summary.LastContactDate == nil || !summary.LastContactDate.Equal(m.MeetingDate) {
		t.Error("last contact should equal the only meeting date")
	}
}

func TestComputeMeetingSummaryOrdinals(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	meetings := []repository.Meeting{
		meetingAt(1, &alice),
		meetingAt(8, &bob),
		meetingAt(20, nil),
	}

	summary := ComputeMeetingSummary(meetings)

	if !summary.FirstMeetingDate.Equal(meetings[0].MeetingDate) || *summary.FirstMeetingBy != alice {
		t.Error("first meeting should be the chronologically earliest")
	}
	if !summary.SecondMeetingDate.Equal(meetings[1].MeetingDate) || *summary.SecondMeetingBy != bob {
		t.Error("second meeting should be the chronologically second")
	}
	if !summary.LastContactDate.Equal(meetings[2].MeetingDate) {
		t.Error("last contact should be the chronologically latest")
	}
}

// A meeting backfilled with an earlier date displaces the previous first and
// second meetings when the summary is recomputed.
func TestComputeMeetingSummaryBackfillShiftsOrdinals(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	before := ComputeMeetingSummary([]repository.Meeting{
		meetingAt(10, &alice),
		meetingAt(15, &bob),
	})
	if *before.FirstMeetingBy != alice || *before.SecondMeetingBy != bob {
		t.Fatal("setup: unexpected initial ordinals")
	}

	// Backfilled meeting dated before the existing two; the list arrives
	// sorted chronologically.
	after := ComputeMeetingSummary([]repository.Meeting{
		meetingAt(3, &carol),
		meetingAt(10, &alice),
		meetingAt(15, &bob),
	})

	if *after.FirstMeetingBy != carol {
		t.Error("backfilled earlier meeting should become the first meeting")
	}
	if *after.SecondMeetingBy != alice {
		t.Error("previous first meeting should shift to second")
	}
	if !after.LastContactDate.Equal(time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)) {
		t.Error("last contact should stay the latest meeting")
	}
}

func TestComputeMeetingSummaryFollowUpFromLatestCarrier(t *testing.T) {
	early := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	m1 := meetingAt(1, nil)
	m1.FollowUpDate = &early
	m2 := meetingAt(8, nil)
	m2.FollowUpDate = &late
	m3 := meetingAt(12, nil)

	summary := ComputeMeetingSummary([]repository.Meeting{m1, m2, m3})

	if summary.NextFollowUp == nil || !summary.NextFollowUp.Equal(late) {
		t.Errorf("next follow-up should come from the latest meeting that set one, got %v", summary.NextFollowUp)
	}
}
