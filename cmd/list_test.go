package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newListServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		fmt.Fprintf(w, `{"token":"tok-1","user":{"firstName":"Ada","lastName":"Lovelace","email":%q,"role":"student"}}`, creds.Email)
	})
	mux.HandleFunc("/api/assignments", func(w http.ResponseWriter, r *http.Request) {
		future := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
		past := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, `{"assignments":[
			{"id":"1","title":"Open HW","dueDate":%q,"allowLateSubmission":false},
			{"id":"2","title":"Closed HW","dueDate":%q,"allowLateSubmission":false},
			{"id":"3","title":"Late HW","dueDate":%q,"allowLateSubmission":true}
		]}`, future, past, past)
	})
	return httptest.NewServer(mux)
}

func TestRunList_HidesClosedByDefault(t *testing.T) {
	srv := newListServer(t)
	defer srv.Close()

	var out bytes.Buffer
	err := runList(context.Background(), listOptions{
		configPath: filepath.Join(t.TempDir(), "config.json"),
		server:     srv.URL,
		email:      "ada@example.edu",
		prompter:   &fakePrompter{secret: "pw"},
		out:        &out,
	})
	if err != nil {
		t.Fatal(err)
	}

	listing := out.String()
	if !strings.Contains(listing, "Open HW") || !strings.Contains(listing, "Late HW") {
		t.Errorf("submittable assignments missing:\n%s", listing)
	}
	if strings.Contains(listing, "Closed HW") {
		t.Errorf("closed assignment should be hidden by default:\n%s", listing)
	}
	if !strings.Contains(listing, "[late allowed]") {
		t.Errorf("late-allowed marker missing:\n%s", listing)
	}
}

func TestRunList_ShowAll(t *testing.T) {
	srv := newListServer(t)
	defer srv.Close()

	var out bytes.Buffer
	err := runList(context.Background(), listOptions{
		configPath: filepath.Join(t.TempDir(), "config.json"),
		server:     srv.URL,
		email:      "ada@example.edu",
		showAll:    true,
		prompter:   &fakePrompter{secret: "pw"},
		out:        &out,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Closed HW") {
		t.Errorf("--all must include closed assignments:\n%s", out.String())
	}
}
