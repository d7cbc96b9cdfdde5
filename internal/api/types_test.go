package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestInstantUnmarshal_ZSuffix(t *testing.T) {
	var ts Instant
	if err := json.Unmarshal([]byte(`"2026-03-01T12:00:00Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts.Time, want)
	}
	if ts.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", ts.Location())
	}
}

func TestInstantUnmarshal_OffsetNormalizedToUTC(t *testing.T) {
	var ts Instant
	if err := json.Unmarshal([]byte(`"2026-03-01T20:00:00+08:00"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !ts.Equal(want) || ts.Location() != time.UTC {
		t.Errorf("got %v in %v, want %v in UTC", ts.Time, ts.Location(), want)
	}
}

func TestInstantUnmarshal_Invalid(t *testing.T) {
	var ts Instant
	if err := json.Unmarshal([]byte(`"next tuesday"`), &ts); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestAssignmentPastDue(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	a := Assignment{Title: "HW", DueDate: Instant{due}}

	if a.PastDue(due.Add(-time.Hour)) {
		t.Error("assignment should not be past due an hour before the deadline")
	}
	if !a.PastDue(due.Add(time.Hour)) {
		t.Error("assignment should be past due an hour after the deadline")
	}
	// "Now" in a non-UTC zone must compare correctly.
	zone := time.FixedZone("UTC+8", 8*3600)
	if a.PastDue(due.Add(-time.Hour).In(zone)) {
		t.Error("zone conversion must not change the comparison")
	}
}

func TestAssignmentSubmittable(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	late := due.Add(time.Hour)

	a := Assignment{DueDate: Instant{due}, AllowLateSubmission: false}
	if a.Submittable(late) {
		t.Error("past due without late submission must not be submittable")
	}
	a.AllowLateSubmission = true
	if !a.Submittable(late) {
		t.Error("past due with late submission allowed must be submittable")
	}
}
