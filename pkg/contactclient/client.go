// Package contactclient submits contact forms to the relay and turns every
// response class into a notice for the person who filled in the form.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/joeblew999/plat-contact/pkg/config"
	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/log"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/rest/httpc"
)

const (
	defaultName = "contact-client"
	// maxDiagnosticBody caps how much of an error body is read for logging.
	maxDiagnosticBody = 64 << 10
)

// Kind classifies the outcome of a submission.
type Kind int

const (
	KindSent       Kind = iota // relay accepted and sent the message
	KindInvalid                // a required field was empty; nothing was sent
	KindBusy                   // another submission was still in flight
	KindRejected               // 2xx JSON body without success
	KindHTTPError              // non-2xx status
	KindUnexpected             // 2xx with a body that is not JSON
	KindNetwork                // the request never completed
)

func (k Kind) String() string {
	switch k {
	case KindSent:
		return "sent"
	case KindInvalid:
		return "invalid"
	case KindBusy:
		return "busy"
	case KindRejected:
		return "rejected"
	case KindHTTPError:
		return "http_error"
	case KindUnexpected:
		return "unexpected"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Notice is what the form shows after a submission attempt.
type Notice struct {
	Kind      Kind
	Text      string
	Status    int
	MessageID string
}

// Form is the surface the client drives.
type Form interface {
	// Values returns the current field values.
	Values() contact.Submission
	// Lock disables the submit control and shows the in-progress label.
	// The returned func restores both.
	Lock() (restore func())
	Notify(n Notice)
	// Reset clears the fields after a successful send.
	Reset()
}

type (
	// Option customizes a Client.
	Option func(c *Client)

	// Client posts submissions to one relay endpoint.
	Client struct {
		name       string
		baseURL    string
		path       string
		httpClient *http.Client
		service    httpc.Service
		inFlight   *syncx.AtomicBool
	}
)

// WithBaseURL sets the relay origin.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithPath sets the relay endpoint path.
func WithPath(path string) Option {
	return func(c *Client) {
		c.path = path
	}
}

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithName sets the service name used by Health and EmailConfig.
func WithName(name string) Option {
	return func(c *Client) {
		c.name = name
	}
}

// New returns a client configured from the environment and opts.
func New(opts ...Option) *Client {
	c := &Client{
		name:     defaultName,
		baseURL:  config.GetBackendURL(),
		path:     config.GetContactPath(),
		inFlight: syncx.NewAtomicBool(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: config.GetTimeout()}
	}
	c.service = httpc.NewServiceWithClient(c.name, c.httpClient)
	return c
}

// Submit validates the form, posts it once and reports the outcome through
// f.Notify. The submit control is held for the duration of the request and
// released on every path.
func (c *Client) Submit(ctx context.Context, f Form) Notice {
	s := f.Values().Trimmed()
	if err := s.Validate(); err != nil {
		n := Notice{Kind: KindInvalid, Text: contact.NoticeMissingFields}
		f.Notify(n)
		return n
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		n := Notice{Kind: KindBusy, Text: contact.NoticeBusy}
		f.Notify(n)
		return n
	}
	defer c.inFlight.Set(false)

	restore := f.Lock()
	defer restore()

	n := c.Post(ctx, s)
	if n.Kind == KindSent {
		f.Reset()
	}
	f.Notify(n)
	return n
}

// contactResponse is the union of the relay success and failure bodies.
type contactResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

// Post sends s to the relay exactly once and classifies the response.
func (c *Client) Post(ctx context.Context, s contact.Submission) Notice {
	body, err := json.Marshal(s)
	if err != nil {
		log.Error("contact encode error", "error", err)
		return Notice{Kind: KindNetwork, Text: contact.NoticeNetwork}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.path), bytes.NewReader(body))
	if err != nil {
		log.Error("contact request error", "error", err)
		return Notice{Kind: KindNetwork, Text: contact.NoticeNetwork}
	}
	req.Header.Set("Content-Type", "application/json")

	// One POST per valid submission; the c.service breaker does not apply here.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("contact send error", "error", err)
		return Notice{Kind: KindNetwork, Text: contact.NoticeNetwork}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("contact send failed", "status", resp.StatusCode, "body", readText(resp.Body))
		return Notice{
			Kind:   KindHTTPError,
			Text:   contact.StatusNotice(resp.StatusCode),
			Status: resp.StatusCode,
		}
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		log.Error("unexpected response", "status", resp.StatusCode,
			"contentType", resp.Header.Get("Content-Type"), "body", readText(resp.Body))
		return Notice{Kind: KindUnexpected, Text: contact.NoticeUnexpected, Status: resp.StatusCode}
	}

	var out contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("unexpected response", "status", resp.StatusCode, "error", err)
		return Notice{Kind: KindUnexpected, Text: contact.NoticeUnexpected, Status: resp.StatusCode}
	}

	if !out.Success {
		log.Warn("contact rejected", "status", resp.StatusCode, "error", out.Error)
		return Notice{
			Kind:   KindRejected,
			Text:   contact.RejectedNotice(out.Error),
			Status: resp.StatusCode,
		}
	}

	log.Info("contact message sent", "messageId", out.MessageID)
	return Notice{
		Kind:      KindSent,
		Text:      contact.NoticeSent,
		Status:    resp.StatusCode,
		MessageID: out.MessageID,
	}
}

// HealthStatus is the relay liveness report.
type HealthStatus struct {
	Ok              bool `json:"ok"`
	EmailConfigured bool `json:"emailConfigured"`
}

// EmailConfig is the relay transport snapshot.
type EmailConfig struct {
	EmailConfigured bool   `json:"emailConfigured"`
	SmtpHost        string `json:"smtpHost"`
	SmtpPort        int    `json:"smtpPort"`
	SmtpSecure      bool   `json:"smtpSecure"`
	EmailReceiver   string `json:"emailReceiver"`
	EmailFromName   string `json:"emailFromName"`
	Env             string `json:"env"`
	HasTransporter  bool   `json:"hasTransporter"`
}

// Health queries GET /api/health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmailConfig queries GET /api/debug/email-config.
func (c *Client) EmailConfig(ctx context.Context) (*EmailConfig, error) {
	var out EmailConfig
	if err := c.getJSON(ctx, "/api/debug/email-config", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StatusError is returned by Health and EmailConfig for non-2xx responses.
type StatusError struct {
	Status int
	Msg    string
}

func (e *StatusError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("contactclient: status %d", e.Status)
	}
	return fmt.Sprintf("contactclient: status %d: %s", e.Status, e.Msg)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}

	resp, err := c.service.DoRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var failure contactResponse
		if isJSON(resp.Header.Get("Content-Type")) {
			_ = json.NewDecoder(resp.Body).Decode(&failure)
		}
		return &StatusError{Status: resp.StatusCode, Msg: failure.Error}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json"
}

func readText(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxDiagnosticBody))
	if err != nil {
		return ""
	}
	return string(b)
}
