package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"kurscrm_backend/internal/leads/repository"
	"kurscrm_backend/internal/leads/transport"
)

func strp(s string) *string { return &s }

func testLeads() []repository.Lead {
	return []repository.Lead{
		{
			ID:                  uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			FirstName:           "Ayse",
			LastName:            "Yilmaz",
			Email:               strp("ayse@example.com"),
			Phone:               strp("+905551112233"),
			InstagramUsername:   strp("ayse.draws"),
			Profession:          strp("Graphic Designer"),
			ContactSource:       "instagram",
			LeadStage:           "new",
			EducationBackground: "university",
			InterestType:        "career",
		},
		{
			ID:                  uuid.MustParse("00000000-0000-0000-0000-000000000002"),
			FirstName:           "Mehmet",
			LastName:            "Demir",
			Phone:               strp("+905559998877"),
			Profession:          strp("Teacher"),
			ContactSource:       "referral",
			LeadStage:           "contacted",
			EducationBackground: "graduate",
			InterestType:        "hobby",
		},
		{
			ID:                  uuid.MustParse("00000000-0000-0000-0000-000000000003"),
			FirstName:           "Zeynep",
			LastName:            "Kaya",
			Email:               strp("zeynep@example.com"),
			ContactSource:       "website",
			LeadStage:           "new",
			EducationBackground: "high_school",
			InterestType:        "career",
		},
	}
}

func idsOf(leads []repository.Lead) []uuid.UUID {
	ids := make([]uuid.UUID, len(leads))
	for i, l := range leads {
		ids[i] = l.ID
	}
	return ids
}

func TestApplyEmptyCriteriaIsIdentity(t *testing.T) {
	leads := testLeads()
	got := FilterCriteria{}.Apply(leads, time.Now())
	if len(got) != len(leads) {
		t.Fatalf("got %d leads, want %d", len(got), len(leads))
	}
	for i := range leads {
		if got[i].ID != leads[i].ID {
			t.Errorf("position %d: order changed, got %s want %s", i, got[i].ID, leads[i].ID)
		}
	}
}

func TestApplySearchMatchesAnyIdentityField(t *testing.T) {
	leads := testLeads()
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"first name", "ayse", []string{"Ayse"}},
		{"last name case insensitive", "DEMIR", []string{"Mehmet"}},
		{"email", "zeynep@", []string{"Zeynep"}},
		{"phone fragment", "555999", []string{"Mehmet"}},
		{"instagram handle", "draws", []string{"Ayse"}},
		{"no match", "nonexistent", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCriteria{Search: tt.search}.Apply(leads, time.Now())
			if len(got) != len(tt.want) {
				t.Fatalf("got %d leads, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].FirstName != name {
					t.Errorf("got %s, want %s", got[i].FirstName, name)
				}
			}
		})
	}
}

func TestApplyExactEnumFilters(t *testing.T) {
	leads := testLeads()

	got := FilterCriteria{ContactSource: "instagram"}.Apply(leads, time.Now())
	if len(got) != 1 || got[0].FirstName != "Ayse" {
		t.Fatalf("contact source filter: got %v", idsOf(got))
	}

	got = FilterCriteria{LeadStage: "new"}.Apply(leads, time.Now())
	if len(got) != 2 {
		t.Fatalf("stage filter: got %d leads, want 2", len(got))
	}

	got = FilterCriteria{InterestType: "career", EducationBackground: "university"}.Apply(leads, time.Now())
	if len(got) != 1 || got[0].FirstName != "Ayse" {
		t.Fatalf("combined filter: got %v", idsOf(got))
	}
}

func TestApplyProfessionSubstring(t *testing.T) {
	got := FilterCriteria{Profession: "design"}.Apply(testLeads(), time.Now())
	if len(got) != 1 || got[0].FirstName != "Ayse" {
		t.Fatalf("got %v", idsOf(got))
	}
}

func TestApplyTrainingContainment(t *testing.T) {
	ceramics := uuid.MustParse("10000000-0000-0000-0000-000000000001")
	painting := uuid.MustParse("10000000-0000-0000-0000-000000000002")

	leads := testLeads()
	leads[0].InterestedTrainings = []uuid.UUID{ceramics, painting}
	leads[1].InterestedTrainings = []uuid.UUID{ceramics}

	got := FilterCriteria{InterestedTrainings: []uuid.UUID{ceramics}}.Apply(leads, time.Now())
	if len(got) != 2 {
		t.Fatalf("single training: got %d leads, want 2", len(got))
	}

	// All requested trainings must be present, not any.
	got = FilterCriteria{InterestedTrainings: []uuid.UUID{ceramics, painting}}.Apply(leads, time.Now())
	if len(got) != 1 || got[0].FirstName != "Ayse" {
		t.Fatalf("both trainings: got %v", idsOf(got))
	}
}

func TestApplyFollowUpToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	leads := testLeads()
	leads[0].NextFollowUp = &today
	leads[1].NextFollowUp = &tomorrow

	got := FilterCriteria{FollowUpToday: true}.Apply(leads, now)
	if len(got) != 1 || got[0].FirstName != "Ayse" {
		t.Fatalf("got %v", idsOf(got))
	}
}

func TestApplyFollowUpTodayUsesLocalDate(t *testing.T) {
	// 01:30 on March 11 in the school's timezone is still March 10 in UTC.
	// The date columns scan as midnight UTC; today must be resolved in the
	// location now carries.
	trt := time.FixedZone("TRT", 3*60*60)
	now := time.Date(2026, 3, 11, 1, 30, 0, 0, trt)
	dueToday := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	dueYesterday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	leads := testLeads()
	leads[0].NextFollowUp = &dueToday
	leads[1].NextFollowUp = &dueYesterday

	got := FilterCriteria{FollowUpToday: true}.Apply(leads, now)
	if len(got) != 1 || got[0].FirstName != "Ayse" {
		t.Fatalf("lead due today in local time not the only match: got %v", idsOf(got))
	}
}

func TestParseCriteriaDropsInvalidValues(t *testing.T) {
	criteria := ParseCriteria(transport.ListLeadsRequest{
		ContactSource:      "carrier_pigeon",
		LeadStage:          "new",
		InterestedTraining: []string{"not-a-uuid", "10000000-0000-0000-0000-000000000001"},
		FollowUpToday:      "maybe",
	})

	if criteria.ContactSource != "" {
		t.Errorf("invalid contact source kept: %q", criteria.ContactSource)
	}
	if criteria.LeadStage != "new" {
		t.Errorf("valid stage dropped: %q", criteria.LeadStage)
	}
	if len(criteria.InterestedTrainings) != 1 {
		t.Errorf("got %d training ids, want 1", len(criteria.InterestedTrainings))
	}
	if criteria.FollowUpToday {
		t.Error("unparseable follow_up_today treated as true")
	}
}

func TestParseCriteriaEmptyRequest(t *testing.T) {
	criteria := ParseCriteria(transport.ListLeadsRequest{})
	leads := testLeads()
	if got := criteria.Apply(leads, time.Now()); len(got) != len(leads) {
		t.Fatalf("empty request narrowed the collection: %d of %d", len(got), len(leads))
	}
}
