// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"kurscrm_backend/platform/events"
	"kurscrm_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is created.
type LeadCreated struct {
	BaseEvent
	LeadID        uuid.UUID `json:"leadId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	ContactSource string    `json:"contactSource"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// MeetingRecorded is published after a meeting is persisted and the lead's
// meeting summary fields have been updated.
type MeetingRecorded struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	MeetingID   uuid.UUID `json:"meetingId"`
	RecordedBy  uuid.UUID `json:"recordedBy"`
	MeetingDate time.Time `json:"meetingDate"`
	Ordinal     int       `json:"ordinal"`
}

func (e MeetingRecorded) EventName() string { return "leads.meeting.recorded" }

// LeadConverted is published when a lead is converted into a student.
type LeadConverted struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	PersonID    uuid.UUID `json:"personId"`
	ConvertedBy uuid.UUID `json:"convertedBy"`
	FullName    string    `json:"fullName"`
}

func (e LeadConverted) EventName() string { return "leads.converted" }

// LeadFollowUpDue is published by the scheduler worker when a lead's
// next_follow_up date arrives.
type LeadFollowUpDue struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	FullName string    `json:"fullName"`
	DueDate  time.Time `json:"dueDate"`
}

func (e LeadFollowUpDue) EventName() string { return "leads.follow_up.due" }
