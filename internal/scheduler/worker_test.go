package scheduler

import (
	"strings"
	"testing"
)

func TestFollowUpScanQueryResolvesTodayInSchoolTimezone(t *testing.T) {
	query := strings.ToLower(followUpScanQuery)

	requiredFragments := []string{
		"next_follow_up = (now() at time zone $1)::date",
		"lead_stage not in ('converted', 'lost')",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected scan query fragment %q to be present", fragment)
		}
	}
}
