package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kurscrm_backend/internal/leads/repository"
	"kurscrm_backend/internal/leads/transport"
)

// FilterCriteria is the parsed, normalized form of a lead list query.
// A zero criteria matches every lead.
type FilterCriteria struct {
	Search              string
	ContactSource       string
	LeadStage           string
	EducationBackground string
	InterestType        string
	Profession          string
	InterestedTrainings []uuid.UUID
	PotentialTrainings  []uuid.UUID
	PreviousTrainings   []uuid.UUID
	FollowUpToday       bool
}

var (
	validContactSources = map[string]bool{
		"instagram": true, "referral": true, "website": true,
		"walk_in": true, "phone": true, "other": true,
	}
	validLeadStages = map[string]bool{
		"new": true, "contacted": true, "interested": true,
		"follow_up": true, "converted": true, "lost": true,
	}
	validEducationBackgrounds = map[string]bool{
		"high_school": true, "university": true, "graduate": true, "other": true,
	}
	validInterestTypes = map[string]bool{
		"hobby": true, "career": true, "academic": true, "other": true,
	}
)

// ParseCriteria turns raw query values into filter criteria. Values that do
// not parse (unknown enum values, malformed UUIDs) are dropped so a sloppy
// query narrows nothing instead of failing the request.
func ParseCriteria(req transport.ListLeadsRequest) FilterCriteria {
	criteria := FilterCriteria{
		Search:     strings.TrimSpace(req.Search),
		Profession: strings.TrimSpace(req.Profession),
	}

	if validContactSources[req.ContactSource] {
		criteria.ContactSource = req.ContactSource
	}
	if validLeadStages[req.LeadStage] {
		criteria.LeadStage = req.LeadStage
	}
	if validEducationBackgrounds[req.EducationBackground] {
		criteria.EducationBackground = req.EducationBackground
	}
	if validInterestTypes[req.InterestType] {
		criteria.InterestType = req.InterestType
	}

	criteria.InterestedTrainings = parseUUIDs(req.InterestedTraining)
	criteria.PotentialTrainings = parseUUIDs(req.PotentialTraining)
	criteria.PreviousTrainings = parseUUIDs(req.PreviousTraining)

	switch strings.ToLower(req.FollowUpToday) {
	case "true", "1", "yes":
		criteria.FollowUpToday = true
	}

	return criteria
}

func parseUUIDs(raw []string) []uuid.UUID {
	var ids []uuid.UUID
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Apply filters the leads in place of a database query, preserving the input
// order. Criteria combine with AND; the free-text search matches any of the
// identity fields. now anchors the follow-up-today check.
func (c FilterCriteria) Apply(leads []repository.Lead, now time.Time) []repository.Lead {
	result := make([]repository.Lead, 0, len(leads))
	for _, lead := range leads {
		if c.matches(lead, now) {
			result = append(result, lead)
		}
	}
	return result
}

func (c FilterCriteria) matches(lead repository.Lead, now time.Time) bool {
	if c.Search != "" && !matchesSearch(lead, c.Search) {
		return false
	}
	if c.ContactSource != "" && lead.ContactSource != c.ContactSource {
		return false
	}
	if c.LeadStage != "" && lead.LeadStage != c.LeadStage {
		return false
	}
	if c.EducationBackground != "" && lead.EducationBackground != c.EducationBackground {
		return false
	}
	if c.InterestType != "" && lead.InterestType != c.InterestType {
		return false
	}
	if c.Profession != "" {
		if lead.Profession == nil || !containsFold(*lead.Profession, c.Profession) {
			return false
		}
	}
	if !containsAll(lead.InterestedTrainings, c.InterestedTrainings) {
		return false
	}
	if !containsAll(lead.PotentialTrainings, c.PotentialTrainings) {
		return false
	}
	if !containsAll(lead.PreviousTrainings, c.PreviousTrainings) {
		return false
	}
	if c.FollowUpToday {
		if lead.NextFollowUp == nil || !sameDay(*lead.NextFollowUp, now) {
			return false
		}
	}
	return true
}

func matchesSearch(lead repository.Lead, term string) bool {
	if containsFold(lead.FirstName, term) || containsFold(lead.LastName, term) {
		return true
	}
	for _, field := range []*string{lead.Email, lead.Phone, lead.InstagramUsername} {
		if field != nil && containsFold(*field, term) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// containsAll reports whether every wanted ID appears in the lead's relation.
// An empty wanted set never narrows.
func containsAll(have, wanted []uuid.UUID) bool {
	for _, want := range wanted {
		found := false
		for _, id := range have {
			if id == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sameDay compares the stored follow-up date with today. next_follow_up is a
// DATE column and scans as midnight UTC, so its UTC calendar date is the
// stored date; today is read in whatever location now carries, the school's
// configured timezone.
func sameDay(followUp, now time.Time) bool {
	fy, fm, fd := followUp.UTC().Date()
	ny, nm, nd := now.Date()
	return fy == ny && fm == nm && fd == nd
}
