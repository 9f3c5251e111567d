// Package gate sends operator "open gate" requests to the admin endpoint and
// reports failures through a pluggable notifier.
package gate

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	defaultAdminPrefix = "admin"
	defaultHeaderName  = "X-CSRFToken"
	maxBodyBytes       = 1 << 16
	alertPrefix        = "An error occurred: "
)

// ErrInvalidConfig indicates the dispatcher was configured with unusable options.
var ErrInvalidConfig = errors.New("gate: invalid config")

// HTTPClient matches the subset of http.Client used by Dispatcher.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Event is the UI action that triggered a dispatch.
type Event interface {
	PreventDefault()
}

// EventFunc adapts a function to Event.
type EventFunc func()

// PreventDefault calls f.
func (f EventFunc) PreventDefault() { f() }

// Config locates the admin endpoint.
type Config struct {
	// BaseURL is the scheme and host of the admin deployment.
	BaseURL string
	// AdminPrefix is the first path segment of the admin site; defaults to "admin".
	AdminPrefix string
	// HeaderName carries the token; defaults to X-CSRFToken.
	HeaderName string
}

// RequestError describes a failed gate request.
type RequestError struct {
	// Status is the HTTP status, or 0 when no response arrived.
	Status int
	// Text is the operator-facing error text.
	Text string
	// Body is the sanitised response body, if any.
	Body string
	Err  error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("gate: request failed (%d): %s", e.Status, e.Text)
	}
	return "gate: request failed: " + e.Text
}

// Unwrap exposes the transport error.
func (e *RequestError) Unwrap() error { return e.Err }

// AlertMessage is the text shown to the operator for err.
func AlertMessage(err *RequestError) string {
	if err == nil {
		return ""
	}
	return alertPrefix + err.Text
}

// Result is the outcome of one gate request.
type Result struct {
	DispatchID string
	GateID     string
	Status     int
	Body       string
	Err        *RequestError
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient overrides the transport.
func WithHTTPClient(client HTTPClient) Option {
	return func(d *Dispatcher) {
		if client != nil {
			d.client = client
		}
	}
}

// WithTokenProvider sets where the anti-forgery token comes from.
func WithTokenProvider(p TokenProvider) Option {
	return func(d *Dispatcher) {
		if p != nil {
			d.tokens = p
		}
	}
}

// WithNotifier sets the failure channel.
func WithNotifier(n Notifier) Option {
	return func(d *Dispatcher) {
		if n != nil {
			d.notifier = n
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher issues gate requests.
type Dispatcher struct {
	base     *url.URL
	prefix   string
	header   string
	client   HTTPClient
	tokens   TokenProvider
	notifier Notifier
	logger   *zap.Logger
	strip    *bluemonday.Policy
}

// NewDispatcher validates cfg and builds a Dispatcher. Without options it uses
// http.DefaultClient, no token and a no-op logger; alerts go to the logger.
func NewDispatcher(cfg Config, opts ...Option) (*Dispatcher, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: parse base URL: %v", ErrInvalidConfig, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL must be absolute", ErrInvalidConfig)
	}

	prefix := strings.Trim(strings.TrimSpace(cfg.AdminPrefix), "/")
	if prefix == "" {
		prefix = defaultAdminPrefix
	}
	header := strings.TrimSpace(cfg.HeaderName)
	if header == "" {
		header = defaultHeaderName
	}

	d := &Dispatcher{
		base:   base,
		prefix: prefix,
		header: header,
		client: http.DefaultClient,
		tokens: StaticToken(""),
		logger: zap.NewNop(),
		strip:  bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.notifier == nil {
		d.notifier = LogNotifier{Logger: d.logger}
	}
	return d, nil
}

// Path returns the request path for gateID.
func (d *Dispatcher) Path(gateID string) string {
	return "/" + d.prefix + "/visitors/camera/request_gate/" + url.PathEscape(gateID) + "/"
}

// Endpoint returns the absolute request URL for gateID.
func (d *Dispatcher) Endpoint(gateID string) string {
	ref, err := url.Parse(d.Path(gateID))
	if err != nil {
		return strings.TrimRight(d.base.String(), "/") + d.Path(gateID)
	}
	return d.base.ResolveReference(ref).String()
}

// Dispatch handles a gate button press: the event's default action is
// suppressed and a single request is sent in the background. The returned
// channel receives exactly one Result; callers may ignore it. The request is
// detached from ctx cancellation once dispatched.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event, gateID string) <-chan Result {
	if ev != nil {
		ev.PreventDefault()
	}
	d.logger.Debug("gate request dispatched", zap.String("gate_id", gateID))

	done := make(chan Result, 1)
	detached := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		done <- d.Send(detached, gateID)
	}()
	return done
}

// Send performs one gate request synchronously, logs the outcome and raises
// an alert on failure.
func (d *Dispatcher) Send(ctx context.Context, gateID string) Result {
	res := Result{DispatchID: ulid.Make().String(), GateID: gateID}
	logger := d.logger.With(
		zap.String("dispatch_id", res.DispatchID),
		zap.String("gate_id", gateID),
	)

	token, ok := d.tokens.CSRFToken(ctx)
	logger.Debug("csrf token resolved", zap.Bool("present", ok))

	status, body, err := d.post(ctx, gateID, token)
	res.Status = status
	res.Body = body
	if err != nil {
		res.Err = err
		logger.Error("gate request failed",
			zap.String("error", err.Text),
			zap.Int("status", err.Status),
			zap.String("body", err.Body),
			zap.NamedError("detail", err.Err),
		)
		d.notifier.Alert(ctx, AlertMessage(err))
		return res
	}

	logger.Info("gate request succeeded",
		zap.Int("status", status),
		zap.String("response", body),
	)
	return res
}

func (d *Dispatcher) post(ctx context.Context, gateID, token string) (int, string, *RequestError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint(gateID), nil)
	if err != nil {
		return 0, "", &RequestError{Text: err.Error(), Err: err}
	}
	req.Header.Set(d.header, token)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, "", &RequestError{Text: transportText(err), Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	body := d.summarise(resp.Header.Get("Content-Type"), raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, &RequestError{
			Status: resp.StatusCode,
			Text:   http.StatusText(resp.StatusCode),
			Body:   body,
		}
	}
	if readErr != nil {
		return resp.StatusCode, body, &RequestError{Status: resp.StatusCode, Text: transportText(readErr), Err: readErr}
	}
	return resp.StatusCode, body, nil
}

// summarise strips markup from HTML error pages so logs carry readable text.
func (d *Dispatcher) summarise(contentType string, raw []byte) string {
	body := string(raw)
	if strings.Contains(strings.ToLower(contentType), "html") {
		body = html.UnescapeString(d.strip.Sanitize(body))
		body = strings.Join(strings.Fields(body), " ")
	}
	return strings.TrimSpace(body)
}

func transportText(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
