package incidentchatctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Options carries everything a command needs so tests can point the CLI at
// an httptest server and capture its output.
type Options struct {
	BaseURL    string
	APIKey     string
	ClientID   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Stdout     io.Writer
	Stderr     io.Writer
}

func (o Options) normalized() Options {
	if strings.TrimSpace(o.BaseURL) == "" {
		o.BaseURL = "http://localhost:8080"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	if o.Stderr == nil {
		o.Stderr = io.Discard
	}
	return o
}

type apiClient struct {
	baseURL  string
	apiKey   string
	clientID string
	http     *http.Client
}

func newAPIClient(opts Options) *apiClient {
	return &apiClient{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		apiKey:   strings.TrimSpace(opts.APIKey),
		clientID: strings.TrimSpace(opts.ClientID),
		http:     opts.HTTPClient,
	}
}

func (c *apiClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *apiClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

func (c *apiClient) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("http %d: %s", resp.StatusCode, apiErrorMessage(raw))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// apiErrorMessage pulls the message out of the server's error envelope,
// falling back to the raw body for anything that is not JSON.
func apiErrorMessage(raw []byte) string {
	var envelope struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		if envelope.ErrorCode != "" {
			return fmt.Sprintf("%s: %s", envelope.ErrorCode, envelope.Message)
		}
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}
