// README: HTTP gateway to the remote planner backend (plan, edit, explain, email, readiness).
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"voyage/internal/intent"
	"voyage/internal/logger"
)

// The backend returns the full result of each operation; the gateway passes
// bodies through undecided and never retries. Interpretation belongs to the
// reconciler.
type Client struct {
	baseURL string
	httpc   *http.Client
	ready   *gocache.Cache
	log     *logger.Logger
}

// readyTTL matches the UI's readiness polling interval.
const readyTTL = 15 * time.Second

const readyCacheKey = "health/ready"

func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		ready:   gocache.New(readyTTL, time.Minute),
		log:     log,
	}
}

// GatewayError carries a human-readable cause for a failed backend call.
type GatewayError struct {
	Status int
	Cause  string
}

func (e *GatewayError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("planner backend returned %d: %s", e.Status, e.Cause)
	}
	return "planner backend unreachable: " + e.Cause
}

// Send routes a classified utterance to the matching backend endpoint. Each
// endpoint takes the text under its own key; the text is passed verbatim.
func (c *Client) Send(ctx context.Context, op intent.Kind, text string) (*Response, error) {
	var path, field string
	switch op {
	case intent.KindPlan:
		path, field = "/api/plan", "user_input"
	case intent.KindEdit:
		path, field = "/api/edit", "edit_command"
	case intent.KindQuestion:
		path, field = "/api/explain", "question"
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}

	var out Response
	if err := c.postJSON(ctx, path, map[string]string{field: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset clears the backend's planning state for a fresh session.
func (c *Client) Reset(ctx context.Context) error {
	var out struct {
		Message string `json:"message"`
	}
	return c.postJSON(ctx, "/api/reset", struct{}{}, &out)
}

// Ready probes backend readiness. Results are cached for the polling
// interval so a busy UI never hammers the probe.
func (c *Client) Ready(ctx context.Context) Readiness {
	if v, ok := c.ready.Get(readyCacheKey); ok {
		return v.(Readiness)
	}

	r := c.probeReady(ctx)
	c.ready.SetDefault(readyCacheKey, r)
	return r
}

func (c *Client) probeReady(ctx context.Context) Readiness {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health/ready", nil)
	if err != nil {
		return Readiness{}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("readiness probe failed", "err", err)
		return Readiness{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Readiness{}
	}
	var body struct {
		LLMConfigured bool `json:"llm_configured"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Readiness{Ready: true}
	}
	return Readiness{Ready: true, LLMConfigured: body.LLMConfigured}
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &GatewayError{Cause: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Status: resp.StatusCode, Cause: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &GatewayError{Status: resp.StatusCode, Cause: errorCause(raw, resp.Status)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &GatewayError{Status: resp.StatusCode, Cause: "undecodable response body"}
	}
	return nil
}

// errorCause pulls a human-readable message out of a non-2xx body. FastAPI
// style backends put it under "detail"; others under "message".
func errorCause(raw []byte, fallback string) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fallback
}
