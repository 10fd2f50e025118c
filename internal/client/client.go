// Package client talks to the remote verdict service.
package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/user/phishguard/internal/model"
)

// Client is a client for the verdict service API.
type Client struct {
	baseURL     string
	apiKey      string
	maxFileSize int64
	httpClient  *http.Client

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewClient creates a new verdict service client.
func NewClient(baseURL, apiKey string, timeout time.Duration, maxFileSize int64) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		maxFileSize: maxFileSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		inflight: make(map[string]struct{}),
	}
}

type predictURLRequest struct {
	URL string `json:"url"`
}

// predictResponse is the raw classification payload from the service.
type predictResponse struct {
	Result    string                 `json:"result"`
	RiskScore *float64               `json:"risk_score"`
	Features  map[string]interface{} `json:"features"`
	Filename  string                 `json:"filename"`
	Size      int64                  `json:"size"`
	Hash      string                 `json:"hash"`
	Details   string                 `json:"details"`
	Error     string                 `json:"error"`
}

type logsResponse struct {
	Logs  []model.ScanRecord `json:"logs"`
	Error string             `json:"error,omitempty"`
}

// SubmitURL submits a URL for classification.
func (c *Client) SubmitURL(ctx context.Context, rawURL string) (*model.ScanOutcome, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &ValidationError{Msg: "url must not be empty"}
	}

	key := normalizeURL(rawURL)
	if err := c.acquire(key); err != nil {
		return nil, err
	}
	defer c.release(key)

	body, err := json.Marshal(predictURLRequest{URL: rawURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_url", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	payload, err := c.doPredict(req)
	if err != nil {
		return nil, err
	}
	return normalizeOutcome(payload, "Phishing"), nil
}

// SubmitFile submits file contents for classification.
func (c *Client) SubmitFile(ctx context.Context, data []byte, filename string) (*model.ScanOutcome, error) {
	if len(data) == 0 {
		return nil, &ValidationError{Msg: "file must not be empty"}
	}
	if c.maxFileSize > 0 && int64(len(data)) > c.maxFileSize {
		return nil, &ValidationError{
			Msg: fmt.Sprintf("file exceeds maximum size of %d bytes", c.maxFileSize),
		}
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if err := c.acquire(key); err != nil {
		return nil, err
	}
	defer c.release(key)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_file", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	payload, err := c.doPredict(req)
	if err != nil {
		return nil, err
	}

	outcome := normalizeOutcome(payload, "Malicious")
	if outcome.Hash == "" {
		outcome.Hash = key
	}
	if outcome.Filename == "" {
		outcome.Filename = filename
	}
	if outcome.Size == 0 {
		outcome.Size = int64(len(data))
	}
	return outcome, nil
}

// Logs fetches the full threat log.
func (c *Client) Logs(ctx context.Context) ([]model.ScanRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/logs", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch logs", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ServiceError{Status: resp.StatusCode, Msg: string(body)}
	}

	var result logsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return nil, &ServiceError{Msg: result.Error}
	}
	return result.Logs, nil
}

// DeleteLog deletes a record by id. Deleting an unknown id is a no-op.
func (c *Client) DeleteLog(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/logs/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "delete log", Err: err}
	}
	defer resp.Body.Close()

	// 404 is treated as success: ids are never reused, so an absent
	// record is already in the requested state.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &ServiceError{Status: resp.StatusCode, Msg: string(body)}
	}
	return nil
}

// ExtensionStatus fetches the extension heartbeat state.
func (c *Client) ExtensionStatus(ctx context.Context) (model.HeartbeatState, error) {
	var state model.HeartbeatState

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/extension-status", nil)
	if err != nil {
		return state, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return state, &TransportError{Op: "fetch extension status", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return state, &ServiceError{Status: resp.StatusCode, Msg: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return state, fmt.Errorf("failed to decode response: %w", err)
	}
	return state, nil
}

// Ping sends a heartbeat to the service on behalf of the extension.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ping", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "ping", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &ServiceError{Status: resp.StatusCode, Msg: string(body)}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
}

func (c *Client) doPredict(req *http.Request) (*predictResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "submit scan", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ServiceError{Status: resp.StatusCode, Msg: string(body)}
	}

	var payload predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Error != "" {
		return nil, &ServiceError{Msg: payload.Error}
	}
	return &payload, nil
}

// normalizeOutcome converts a raw classification payload into a ScanOutcome.
// positiveResult is the result string the service uses for a bad verdict
// ("Phishing" for URLs, "Malicious" for files).
//
// When the service omits risk_score, the fixed sentinels 0.99 (bad verdict)
// and 0.01 (safe) are substituted and Estimated is set. This is the only
// place the fallback is applied.
func normalizeOutcome(p *predictResponse, positiveResult string) *model.ScanOutcome {
	bad := p.Result == positiveResult

	out := &model.ScanOutcome{
		Result:   p.Result,
		Features: p.Features,
		Details:  p.Details,
		Filename: p.Filename,
		Size:     p.Size,
		Hash:     p.Hash,
	}

	if p.RiskScore != nil {
		out.RiskScore = *p.RiskScore
	} else {
		out.Estimated = true
		if bad {
			out.RiskScore = 0.99
		} else {
			out.RiskScore = 0.01
		}
	}

	out.Verdict = model.BucketVerdict(bad, out.RiskScore)
	return out
}

// normalizeURL produces the idempotency key for a URL submission:
// lowercased scheme and host, default port and trailing slash stripped.
func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimRight(strings.ToLower(strings.TrimSpace(raw)), "/")
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" && strings.HasSuffix(u.Host, ":80")) ||
		(u.Scheme == "https" && strings.HasSuffix(u.Host, ":443")) {
		u.Host = u.Host[:strings.LastIndex(u.Host, ":")]
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}

func (c *Client) acquire(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[key]; ok {
		return ErrScanInFlight
	}
	c.inflight[key] = struct{}{}
	return nil
}

func (c *Client) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, key)
}
