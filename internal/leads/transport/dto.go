package transport

import (
	"time"

	"github.com/google/uuid"
)

// Enum values
type ContactSource string

const (
	ContactSourceInstagram ContactSource = "instagram"
	ContactSourceReferral  ContactSource = "referral"
	ContactSourceWebsite   ContactSource = "website"
	ContactSourceWalkIn    ContactSource = "walk_in"
	ContactSourcePhone     ContactSource = "phone"
	ContactSourceOther     ContactSource = "other"
)

type LeadStage string

const (
	LeadStageNew        LeadStage = "new"
	LeadStageContacted  LeadStage = "contacted"
	LeadStageInterested LeadStage = "interested"
	LeadStageFollowUp   LeadStage = "follow_up"
	LeadStageConverted  LeadStage = "converted"
	LeadStageLost       LeadStage = "lost"
)

type EducationBackground string

const (
	EducationHighSchool EducationBackground = "high_school"
	EducationUniversity EducationBackground = "university"
	EducationGraduate   EducationBackground = "graduate"
	EducationOther      EducationBackground = "other"
)

type InterestType string

const (
	InterestTypeHobby    InterestType = "hobby"
	InterestTypeCareer   InterestType = "career"
	InterestTypeAcademic InterestType = "academic"
	InterestTypeOther    InterestType = "other"
)

// Request DTOs
type CreateLeadRequest struct {
	FirstName            string              `json:"firstName" validate:"required,min=1,max=100"`
	LastName             string              `json:"lastName" validate:"required,min=1,max=100"`
	Email                string              `json:"email,omitempty" validate:"omitempty,email"`
	Phone                string              `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	City                 string              `json:"city,omitempty" validate:"omitempty,max=100"`
	InstagramUsername    string              `json:"instagramUsername,omitempty" validate:"omitempty,max=100"`
	Profession           string              `json:"profession,omitempty" validate:"omitempty,max=200"`
	ContactSource        ContactSource       `json:"contactSource" validate:"required,oneof=instagram referral website walk_in phone other"`
	EducationBackground  EducationBackground `json:"educationBackground" validate:"required,oneof=high_school university graduate other"`
	InterestType         InterestType        `json:"interestType" validate:"required,oneof=hobby career academic other"`
	NextFollowUp         *time.Time          `json:"nextFollowUp,omitempty"`
	Notes                string              `json:"notes,omitempty" validate:"max=5000"`
	InterestedTrainings  []uuid.UUID         `json:"interestedTrainingIds,omitempty"`
	PotentialTrainings   []uuid.UUID         `json:"potentialTrainingIds,omitempty"`
	PreviousTrainings    []uuid.UUID         `json:"previousTrainingIds,omitempty"`
}

type UpdateLeadRequest struct {
	FirstName           *string              `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName            *string              `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email               *string              `json:"email,omitempty" validate:"omitempty,email"`
	Phone               *string              `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	City                *string              `json:"city,omitempty" validate:"omitempty,max=100"`
	InstagramUsername   *string              `json:"instagramUsername,omitempty" validate:"omitempty,max=100"`
	Profession          *string              `json:"profession,omitempty" validate:"omitempty,max=200"`
	ContactSource       *ContactSource       `json:"contactSource,omitempty" validate:"omitempty,oneof=instagram referral website walk_in phone other"`
	LeadStage           *LeadStage           `json:"leadStage,omitempty" validate:"omitempty,oneof=new contacted interested follow_up lost"`
	EducationBackground *EducationBackground `json:"educationBackground,omitempty" validate:"omitempty,oneof=high_school university graduate other"`
	InterestType        *InterestType        `json:"interestType,omitempty" validate:"omitempty,oneof=hobby career academic other"`
	NextFollowUp        *time.Time           `json:"nextFollowUp,omitempty"`
	ClearNextFollowUp   bool                 `json:"clearNextFollowUp,omitempty"`
	Notes               *string              `json:"notes,omitempty" validate:"omitempty,max=5000"`
	InterestedTrainings []uuid.UUID          `json:"interestedTrainingIds,omitempty"`
	PotentialTrainings  []uuid.UUID          `json:"potentialTrainingIds,omitempty"`
	PreviousTrainings   []uuid.UUID          `json:"previousTrainingIds,omitempty"`
}

// ListLeadsRequest carries the raw filter criteria. All fields are optional;
// values that do not parse into the filter domain are ignored rather than
// rejected, so this request is never validated with oneof tags.
type ListLeadsRequest struct {
	Search              string   `form:"q"`
	ContactSource       string   `form:"contact_source"`
	LeadStage           string   `form:"lead_stage"`
	EducationBackground string   `form:"education_background"`
	InterestType        string   `form:"interest_type"`
	Profession          string   `form:"profession"`
	InterestedTraining  []string `form:"interested_training"`
	PotentialTraining   []string `form:"potential_training"`
	PreviousTraining    []string `form:"previous_training"`
	FollowUpToday       string   `form:"follow_up_today"`
}

type CreateMeetingRequest struct {
	MeetingDate  time.Time  `json:"meetingDate" validate:"required"`
	Summary      string     `json:"summary" validate:"required,min=1,max=5000"`
	PrivateNote  string     `json:"privateNote,omitempty" validate:"max=5000"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

type UpdateMeetingRequest struct {
	MeetingDate  *time.Time `json:"meetingDate,omitempty"`
	Summary      *string    `json:"summary,omitempty" validate:"omitempty,min=1,max=5000"`
	PrivateNote  *string    `json:"privateNote,omitempty" validate:"omitempty,max=5000"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

// Response DTOs
type LeadResponse struct {
	ID                  uuid.UUID           `json:"id"`
	FirstName           string              `json:"firstName"`
	LastName            string              `json:"lastName"`
	Email               *string             `json:"email,omitempty"`
	Phone               *string             `json:"phone,omitempty"`
	City                *string             `json:"city,omitempty"`
	InstagramUsername   *string             `json:"instagramUsername,omitempty"`
	Profession          *string             `json:"profession,omitempty"`
	ContactSource       ContactSource       `json:"contactSource"`
	LeadStage           LeadStage           `json:"leadStage"`
	EducationBackground EducationBackground `json:"educationBackground"`
	InterestType        InterestType        `json:"interestType"`
	NextFollowUp        *time.Time          `json:"nextFollowUp,omitempty"`
	FirstMeetingDate    *time.Time          `json:"firstMeetingDate,omitempty"`
	FirstMeetingBy      *uuid.UUID          `json:"firstMeetingBy,omitempty"`
	SecondMeetingDate   *time.Time          `json:"secondMeetingDate,omitempty"`
	SecondMeetingBy     *uuid.UUID          `json:"secondMeetingBy,omitempty"`
	LastContactDate     *time.Time          `json:"lastContactDate,omitempty"`
	ConvertedPersonID   *uuid.UUID          `json:"convertedPersonId,omitempty"`
	ConvertedAt         *time.Time          `json:"convertedAt,omitempty"`
	ConvertedBy         *uuid.UUID          `json:"convertedBy,omitempty"`
	Notes               *string             `json:"notes,omitempty"`
	InterestedTrainings []uuid.UUID         `json:"interestedTrainingIds,omitempty"`
	PotentialTrainings  []uuid.UUID         `json:"potentialTrainingIds,omitempty"`
	PreviousTrainings   []uuid.UUID         `json:"previousTrainingIds,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

type MeetingResponse struct {
	ID           uuid.UUID  `json:"id"`
	LeadID       uuid.UUID  `json:"leadId"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	MeetingDate  time.Time  `json:"meetingDate"`
	Summary      string     `json:"summary"`
	PrivateNote  *string    `json:"privateNote,omitempty"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

// PersonResponse is the conversion result: the student record created from
// (or already linked to) the lead.
type PersonResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	City      *string   `json:"city,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// FinancialSummary aggregates a lead's enrollments and payments.
// Balance is the enrolled session prices minus recorded payments.
type FinancialSummary struct {
	EnrolledTotalCents int64 `json:"enrolledTotalCents"`
	PaidTotalCents     int64 `json:"paidTotalCents"`
	BalanceCents       int64 `json:"balanceCents"`
}

type EnrollmentSummary struct {
	ID             uuid.UUID `json:"id"`
	TrainingName   string    `json:"trainingName"`
	SessionStart   time.Time `json:"sessionStart"`
	Status         string    `json:"status"`
	PriceCents     int64     `json:"priceCents"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

type DocumentSummary struct {
	ID           uuid.UUID `json:"id"`
	DocumentType string    `json:"documentType"`
	FileName     string    `json:"fileName"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type PaymentSummary struct {
	ID            uuid.UUID  `json:"id"`
	AmountCents   int64      `json:"amountCents"`
	PaymentDate   time.Time  `json:"paymentDate"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	SessionID     *uuid.UUID `json:"sessionId,omitempty"`
}

type LeadDetailResponse struct {
	Lead        LeadResponse        `json:"lead"`
	Meetings    []MeetingResponse   `json:"meetings"`
	Enrollments []EnrollmentSummary `json:"enrollments"`
	Documents   []DocumentSummary   `json:"documents"`
	Payments    []PaymentSummary    `json:"payments"`
	Financials  FinancialSummary    `json:"financials"`
}
