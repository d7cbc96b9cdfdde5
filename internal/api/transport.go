package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const (
	// requestTimeout bounds ordinary JSON calls.
	requestTimeout = 10 * time.Second
	// uploadTimeout bounds multipart uploads, which carry the archive.
	uploadTimeout = 60 * time.Second
)

// Transport issues JSON and multipart requests against the homework API and
// normalizes responses: 2xx bodies decode into the caller's value, non-2xx
// bodies become a *ServerError, and network failures become a
// *ConnectionError.
type Transport struct {
	BaseURL string
	client  *http.Client
}

// NewTransport creates a transport for the given server base URL. A trailing
// slash is stripped so paths can always be joined with a leading slash.
func NewTransport(baseURL string) *Transport {
	return &Transport{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// DoJSON sends a request with an optional JSON body and decodes the JSON
// response into out (which may be nil to discard it). When method is empty it
// defaults to GET, or POST if a body is present.
func (t *Transport) DoJSON(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	if method == "" {
		method = http.MethodGet
		if body != nil {
			method = http.MethodPost
		}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, t.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return t.do(req, out)
}

// FilePart is one file attached to a multipart request.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// DoMultipart POSTs a multipart/form-data body built from scalar fields and
// file parts, then decodes the JSON response into out.
func (t *Transport) DoMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out any, headers map[string]string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("encode form field %q: %w", name, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.FileName))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("encode file part %q: %w", f.FileName, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("encode file part %q: %w", f.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return t.do(req, out)
}

func (t *Transport) do(req *http.Request, out any) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return &ConnectionError{URL: t.BaseURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{URL: t.BaseURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		// An empty 2xx body is a valid empty result.
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed response from %s: %w", req.URL, err)
	}
	return nil
}

// serverError extracts the server's "error" field when the body is JSON,
// falling back to the raw body.
func serverError(status int, body []byte) *ServerError {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return &ServerError{StatusCode: status, Message: payload.Error}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &ServerError{StatusCode: status, Message: fmt.Sprintf("server returned status %d: %s", status, msg)}
}
