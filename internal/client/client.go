// Package client implements the HTTP client for the Spin Bot API, used
// by the terminal frontend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spinfactor/spinbot/internal/domain"
)

// APIClient talks to the assistant API over HTTP.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// GetSection fetches one catalog section. Unknown ids return
// domain.ErrSectionNotFound.
func (c *APIClient) GetSection(ctx context.Context, id string) (domain.Section, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sections/"+id, nil)
	if err != nil {
		return domain.Section{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Section{}, fmt.Errorf("get section: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Section{}, domain.ErrSectionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Section{}, fmt.Errorf("get section: unexpected status %d", resp.StatusCode)
	}

	var section domain.Section
	if err := json.NewDecoder(resp.Body).Decode(&section); err != nil {
		return domain.Section{}, fmt.Errorf("decode section: %w", err)
	}
	return section, nil
}

// Ask sends a free-text question, with the active section for context.
func (c *APIClient) Ask(ctx context.Context, question, activeSection string) (string, bool, error) {
	payload := map[string]string{"question": question}
	if activeSection != "" {
		payload["activeSection"] = activeSection
	}

	var reply struct {
		Answer   string `json:"answer"`
		Escalate bool   `json:"escalate"`
	}
	status, err := c.postJSON(ctx, "/api/chat", payload, &reply)
	if err != nil {
		return "", false, err
	}
	if status != http.StatusOK {
		return "", false, fmt.Errorf("chat: unexpected status %d", status)
	}
	return reply.Answer, reply.Escalate, nil
}

// SubmitContact sends a contact-form submission. Validation failures
// and server-side errors come back as plain errors carrying the
// server's message.
func (c *APIClient) SubmitContact(ctx context.Context, sub domain.ContactSubmission) error {
	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	status, err := c.postJSON(ctx, "/api/contact", sub, &result)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("contact submission rejected: %s", result.Error)
	}
	return nil
}

// postJSON posts payload and decodes the response body into out. Error
// statuses still decode the body so the caller sees the server message;
// the HTTP status is returned for the caller to branch on.
func (c *APIClient) postJSON(ctx context.Context, path string, payload, out interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
