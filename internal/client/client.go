// Package client is a Go client for the notary API, used by the notaryctl
// dashboard binary and by end-to-end tests. Every action is attempted once;
// callers re-trigger on failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"notary-portal/notary-portal-backend/internal/audit"
	"notary-portal/notary-portal-backend/internal/auth"
	"notary-portal/notary-portal-backend/internal/documents"
)

// APIError carries the HTTP status of a failed call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// LoginResponse is the login payload.
type LoginResponse struct {
	Token  string        `json:"token"`
	Notary auth.Identity `json:"notary"`
}

// Client talks to a notary API server. After a successful Login the session
// token is sent as a bearer credential on every call.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

// Token returns the current session token, empty before login.
func (c *Client) Token() string { return c.token }

// Login authenticates and stores the session token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "application/json", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Upload sends one PDF file as the multipart field "pdf".
func (c *Client) Upload(ctx context.Context, path string) (*documents.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf"; filename="%s"`, filepath.Base(path)))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var out documents.UploadResult
	if err := c.do(ctx, http.MethodPost, "/api/upload", writer.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sign requests a signing of an uploaded file.
func (c *Client) Sign(ctx context.Context, documentID, filename string) (*documents.SignResult, error) {
	body, _ := json.Marshal(map[string]string{"filename": filename})
	var out documents.SignResult
	if err := c.do(ctx, http.MethodPost, "/api/sign/"+documentID, "application/json", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches a stored file's bytes.
func (c *Client) Download(ctx context.Context, filename string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/download/"+filename, "", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: "Download failed"}
	}
	return io.ReadAll(resp.Body)
}

// AuditTrail fetches all audit entries in append order.
func (c *Client) AuditTrail(ctx context.Context) ([]audit.Entry, error) {
	var out []audit.Entry
	if err := c.do(ctx, http.MethodGet, "/api/audit", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Verify checks a stored file against an expected content hash.
func (c *Client) Verify(ctx context.Context, filename, expectedHash string) (*documents.VerifyResult, error) {
	body, _ := json.Marshal(map[string]string{"filename": filename, "expectedHash": expectedHash})
	var out documents.VerifyResult
	if err := c.do(ctx, http.MethodPost, "/api/verify", "application/json", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
