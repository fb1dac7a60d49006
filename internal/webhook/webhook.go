// internal/webhook/webhook.go
//
// Leadmodal – Submission Pipeline transport.
//
// Context
//   One JSON POST per submission to an opaque endpoint, never retried.  The
//   response is folded into one of three outcomes:
//
//     1. The body is JSON with a non-empty "errors" object → FieldErrors,
//        whatever the status code.
//     2. Status 200 and "success" is not literally false → Accepted.  An
//        empty body counts as {}.
//     3. Anything else → Rejected: any other status (201 and 204 included),
//        transport failure, or a body
//        that is present but not a JSON object.
//
//   The caller owns the context; there is no client-side cancellation beyond
//   the configured timeout.
//
//------------------------------------------------------------------------------

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"github.com/yanizio/leadmodal/internal/metrics"
)

// DefaultTimeout bounds one request including the body read.
const DefaultTimeout = 15 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// ErrNoURL is returned by New when the endpoint is empty.
var ErrNoURL = errors.New("webhook url is empty")

// Payload is the JSON object posted to the endpoint.
type Payload map[string]any

// Kind classifies an Outcome.
type Kind int

const (
	Rejected Kind = iota
	Accepted
	FieldErrors
)

func (k Kind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case FieldErrors:
		return "field_errors"
	default:
		return "rejected"
	}
}

// Outcome is the interpreted result of one Submit.
type Outcome struct {
	Kind   Kind
	Errors map[string]string // FieldErrors only
	Status int               // 0 on transport failure
	Err    error             // why a Rejected outcome was rejected
}

// Submitter is what the modal controller calls.
type Submitter interface {
	Submit(ctx context.Context, p Payload) Outcome
}

// Client posts payloads to a fixed URL.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
	log     *zap.SugaredLogger
}

var _ Submitter = (*Client)(nil)

// Option tweaks a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithTimeout sets the per-request timeout.  Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Client) { c.log = l } }

// New returns a Client for url.
func New(url string, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, ErrNoURL
	}
	c := &Client{
		url:     url,
		http:    cleanhttp.DefaultPooledClient(),
		timeout: DefaultTimeout,
		log:     zap.S(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Submit performs exactly one POST and interprets the reply.
func (c *Client) Submit(ctx context.Context, p Payload) Outcome {
	start := time.Now()
	out := c.submit(ctx, p)
	metrics.WebhookLatency.Observe(time.Since(start).Seconds())
	metrics.WebhookOutcomeTotal.WithLabelValues(out.Kind.String()).Inc()

	if out.Kind == Rejected {
		c.log.Warnw("webhook rejected", "status", out.Status, "err", out.Err)
	} else {
		c.log.Infow("webhook answered", "status", out.Status, "outcome", out.Kind.String())
	}
	return out
}

func (c *Client) submit(ctx context.Context, p Payload) Outcome {
	body, err := json.Marshal(p)
	if err != nil {
		return Outcome{Kind: Rejected, Err: fmt.Errorf("encode payload: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: Rejected, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{Kind: Rejected, Err: fmt.Errorf("post: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Outcome{Kind: Rejected, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return Interpret(resp.StatusCode, raw)
}

// reply is the subset of the response body we look at.
type reply struct {
	Success *bool           `json:"success"`
	Errors  json.RawMessage `json:"errors"`
}

// Interpret maps a status code and body to an Outcome.
func Interpret(status int, body []byte) Outcome {
	var r reply
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &r); err != nil {
			return Outcome{Kind: Rejected, Status: status, Err: fmt.Errorf("decode body: %w", err)}
		}
	}

	if errs := fieldErrors(r.Errors); len(errs) > 0 {
		return Outcome{Kind: FieldErrors, Errors: errs, Status: status}
	}

	if status != http.StatusOK {
		return Outcome{Kind: Rejected, Status: status, Err: fmt.Errorf("status %d", status)}
	}
	if r.Success != nil && !*r.Success {
		return Outcome{Kind: Rejected, Status: status, Err: errors.New("success=false")}
	}
	return Outcome{Kind: Accepted, Status: status}
}

// fieldErrors decodes an errors object.  Non-string messages are rendered as
// their JSON text; anything that is not an object yields nil.
func fieldErrors(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) == 0 {
		return nil
	}
	out := make(map[string]string, len(obj))
	for name, v := range obj {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			s = string(v)
		}
		out[name] = s
	}
	return out
}
