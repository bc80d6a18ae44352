package service

import (
	"kurscrm_backend/internal/leads/repository"
)

// ComputeMeetingSummary derives the lead's contact history from its full
// chronological meeting list. Recomputing from scratch means a backfilled
// meeting with an earlier date retroactively becomes the first meeting, and
// deleting a meeting rolls the ordinals back.
func ComputeMeetingSummary(meetings []repository.Meeting) repository.LeadMeetingSummary {
	var summary repository.LeadMeetingSummary

	if len(meetings) >= 1 {
		first := meetings[0]
		summary.FirstMeetingDate = &first.MeetingDate
		summary.FirstMeetingBy = first.UserID
	}
	if len(meetings) >= 2 {
		second := meetings[1]
		summary.SecondMeetingDate = &second.MeetingDate
		summary.SecondMeetingBy = second.UserID
	}
	if len(meetings) > 0 {
		last := meetings[len(meetings)-1]
		summary.LastContactDate = &last.MeetingDate
	}

	// The most recent meeting carrying a follow-up date wins.
	for i := len(meetings) - 1; i >= 0; i-- {
		if meetings[i].FollowUpDate != nil {
			summary.NextFollowUp = meetings[i].FollowUpDate
			break
		}
	}

	return summary
}
