package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Instant is a UTC-normalized timestamp. All server timestamps are parsed
// through it so due-date comparisons never mix timezone representations.
type Instant struct {
	time.Time
}

func (t *Instant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

func (t Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// User is the profile returned by the login endpoint.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Assignment is a gradable task definition as served by GET /api/assignments.
type Assignment struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Description         string  `json:"description,omitempty"`
	DueDate             Instant `json:"dueDate"`
	AllowLateSubmission bool    `json:"allowLateSubmission"`
}

// PastDue reports whether the due date has passed at the given instant.
func (a *Assignment) PastDue(now time.Time) bool {
	return now.UTC().After(a.DueDate.Time)
}

// Submittable reports whether a submission would be accepted at the given
// instant: either the assignment is not yet due or late submissions are
// allowed.
func (a *Assignment) Submittable(now time.Time) bool {
	return !a.PastDue(now) || a.AllowLateSubmission
}

// Submission is the record created by a successful upload.
type Submission struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	SubmittedAt *Instant     `json:"submittedAt"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is one uploaded file on a submission.
type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}
