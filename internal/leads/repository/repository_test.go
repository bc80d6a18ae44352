package repository

import (
	"strings"
	"testing"
)

func TestUpdateLeadQueryKeepsConvertedStage(t *testing.T) {
	query := strings.ToLower(updateLeadQuery)

	fragment := "lead_stage = case when converted_person_id is not null then lead_stage else coalesce($10, lead_stage) end"
	if !strings.Contains(query, fragment) {
		t.Fatalf("expected converted-stage guard fragment %q to be present", fragment)
	}
}

func TestConvertLockQueryTakesRowLock(t *testing.T) {
	query := strings.ToLower(convertLockLeadQuery)

	if !strings.Contains(query, "for update") {
		t.Fatal("conversion lock query should take a row lock")
	}
}

func TestConvertCopyQueryCopiesIdentityFieldsVerbatim(t *testing.T) {
	query := strings.ToLower(convertCopyPersonQuery)

	requiredFragments := []string{
		"insert into persons (first_name, last_name, email, phone, city, notes)",
		"select first_name, last_name, email, phone, city, notes from leads where id = $1",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected field-copy fragment %q to be present", fragment)
		}
	}
}

func TestConvertLinkQueryGuardsAgainstRelinking(t *testing.T) {
	query := strings.ToLower(convertLinkLeadQuery)

	requiredFragments := []string{
		"where id = $1 and converted_person_id is null",
		"lead_stage = 'converted'",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected conversion guard fragment %q to be present", fragment)
		}
	}
}
