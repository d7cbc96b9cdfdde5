// Package api implements the client side of the homework submission
// protocol: login, assignment resolution, and multipart submission upload.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ConfirmFunc asks the user whether a fuzzy-matched assignment is the one
// they meant. Non-interactive callers should pass a function returning false.
type ConfirmFunc func(title string) bool

// Client drives the submission workflow against a homework server. It owns
// the bearer token for the life of the process: Login stores it once and
// every later call attaches it.
type Client struct {
	transport *Transport
	token     string
	user      User
	out       io.Writer
}

// NewClient creates a client for the given server base URL. Progress and
// diagnostic lines are written to out (os.Stdout when nil).
func NewClient(serverURL string, out io.Writer) *Client {
	if out == nil {
		out = os.Stdout
	}
	return &Client{transport: NewTransport(serverURL), out: out}
}

// User returns the profile stored by a successful Login.
func (c *Client) User() User { return c.user }

// Login authenticates against POST /api/auth/login and stores the bearer
// token and user profile. A 401 maps to ErrInvalidCredentials; network
// failures keep their distinct *ConnectionError type.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.transport.DoJSON(ctx, http.MethodPost, "/api/auth/login", body, &resp, nil); err != nil {
		var srv *ServerError
		if errors.As(err, &srv) && srv.StatusCode == http.StatusUnauthorized {
			return ErrInvalidCredentials
		}
		return err
	}
	c.token = resp.Token
	c.user = resp.User
	fmt.Fprintf(c.out, "✓ Logged in as %s %s\n", resp.User.FirstName, resp.User.LastName)
	fmt.Fprintf(c.out, "  Email: %s\n", resp.User.Email)
	fmt.Fprintf(c.out, "  Role: %s\n", resp.User.Role)
	return nil
}

// AuthHeader returns the bearer header for authenticated calls, or
// ErrNotAuthenticated before a successful Login.
func (c *Client) AuthHeader() (map[string]string, error) {
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}
	return map[string]string{"Authorization": "Bearer " + c.token}, nil
}

// ListAssignments fetches the assignment collection. The endpoint may return
// a bare array or an object wrapping it under "assignments"; both are
// accepted. When showAll is false, assignments already past due that do not
// allow late submission are dropped.
func (c *Client) ListAssignments(ctx context.Context, showAll bool) ([]Assignment, error) {
	headers, err := c.AuthHeader()
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.transport.DoJSON(ctx, http.MethodGet, "/api/assignments", nil, &raw, headers); err != nil {
		return nil, err
	}
	assignments, err := decodeAssignments(raw)
	if err != nil {
		return nil, err
	}
	if showAll {
		return assignments, nil
	}
	now := time.Now().UTC()
	var open []Assignment
	for _, a := range assignments {
		if a.Submittable(now) {
			open = append(open, a)
		}
	}
	return open, nil
}

func decodeAssignments(raw json.RawMessage) ([]Assignment, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var out []Assignment
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode assignments: %w", err)
		}
		return out, nil
	}
	var wrapper struct {
		Assignments []Assignment `json:"assignments"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return wrapper.Assignments, nil
}

// FindAssignment resolves a human-supplied name to exactly one assignment.
// Match cascade, first tier that yields a result wins:
//  1. exact title match
//  2. case-insensitive exact match
//  3. case-insensitive substring match, where each candidate must be accepted
//     through confirm; declining moves on to the next candidate.
//
// When nothing matches, all known assignments are listed to help the user and
// a *NotFoundError is returned.
func (c *Client) FindAssignment(ctx context.Context, name string, confirm ConfirmFunc) (*Assignment, error) {
	assignments, err := c.ListAssignments(ctx, true)
	if err != nil {
		return nil, err
	}

	for i := range assignments {
		if assignments[i].Title == name {
			return &assignments[i], nil
		}
	}

	lower := strings.ToLower(name)
	for i := range assignments {
		if strings.ToLower(assignments[i].Title) == lower {
			return &assignments[i], nil
		}
	}

	if confirm != nil {
		for i := range assignments {
			if strings.Contains(strings.ToLower(assignments[i].Title), lower) {
				fmt.Fprintf(c.out, "Found similar assignment: %s\n", assignments[i].Title)
				if confirm(assignments[i].Title) {
					return &assignments[i], nil
				}
			}
		}
	}

	fmt.Fprintf(c.out, "✗ Assignment %q not found\n", name)
	fmt.Fprintln(c.out, "\nAvailable assignments:")
	for _, a := range assignments {
		fmt.Fprintf(c.out, "  - %s (Due: %s)\n", a.Title, a.DueDate.Format("2006-01-02 15:04"))
	}
	return nil, &NotFoundError{Name: name}
}

// CreateSubmission reads the archive fully into memory and uploads it as a
// submitted submission via multipart POST /api/submissions.
func (c *Client) CreateSubmission(ctx context.Context, assignmentID, archivePath, comment string) (*Submission, error) {
	headers, err := c.AuthHeader()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	fields := map[string]string{
		"assignmentId": assignmentID,
		"textContent":  comment,
		"status":       "submitted",
	}
	file := FilePart{
		Field:       "files",
		FileName:    filepath.Base(archivePath),
		ContentType: "application/zip",
		Data:        data,
	}

	fmt.Fprintln(c.out, "Uploading submission...")
	var sub Submission
	if err := c.transport.DoMultipart(ctx, "/api/submissions", fields, []FilePart{file}, &sub, headers); err != nil {
		return nil, err
	}

	fmt.Fprintln(c.out, "✓ Submission successful!")
	fmt.Fprintf(c.out, "  Submission ID: %s\n", sub.ID)
	fmt.Fprintf(c.out, "  Status: %s\n", sub.Status)
	if sub.SubmittedAt != nil {
		fmt.Fprintf(c.out, "  Submitted at: %s\n", sub.SubmittedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(c.out, "  Attachments: %d file(s)\n", len(sub.Attachments))
	return &sub, nil
}
