package gate_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gpark.dev/acs-admin/internal/admin/gate"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Alert(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func awaitResult(t *testing.T, ch <-chan gate.Result) gate.Result {
	t.Helper()

	select {
	case res := <-ch:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not complete")
		return gate.Result{}
	}
}

func TestDispatchSendsSingleAuthenticatedPost(t *testing.T) {
	t.Parallel()

	var (
		calls      atomic.Int32
		gotMethod  string
		gotPath    string
		gotToken   string
		gotBodyLen int
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-CSRFToken")
		body, _ := io.ReadAll(r.Body)
		gotBodyLen = len(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"success","message":"Gate opened manually"}`)
	}))
	t.Cleanup(ts.Close)

	core, logs := observer.New(zapcore.DebugLevel)
	notifier := &recordingNotifier{}
	d, err := gate.NewDispatcher(gate.Config{BaseURL: ts.URL},
		gate.WithHTTPClient(ts.Client()),
		gate.WithTokenProvider(gate.CookieString("sessionid=xyz; csrftoken=abc123")),
		gate.WithNotifier(notifier),
		gate.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)

	prevented := 0
	ev := gate.EventFunc(func() { prevented++ })
	res := awaitResult(t, d.Dispatch(context.Background(), ev, "12"))

	require.True(t, res.OK())
	require.Equal(t, 1, prevented)
	require.EqualValues(t, 1, calls.Load())
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/admin/visitors/camera/request_gate/12/", gotPath)
	require.Equal(t, "abc123", gotToken)
	require.Zero(t, gotBodyLen)
	require.Equal(t, http.StatusOK, res.Status)
	require.Contains(t, res.Body, "Gate opened manually")
	require.NotEmpty(t, res.DispatchID)
	require.Empty(t, notifier.Messages())

	success := logs.FilterMessage("gate request succeeded").All()
	require.Len(t, success, 1)
	require.Contains(t, success[0].ContextMap()["response"], "Gate opened manually")
}

func TestDispatchNetworkErrorAlerts(t *testing.T) {
	t.Parallel()

	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("Network Error")
	})}
	core, logs := observer.New(zapcore.ErrorLevel)
	notifier := &recordingNotifier{}

	d, err := gate.NewDispatcher(gate.Config{BaseURL: "http://gate.invalid"},
		gate.WithHTTPClient(client),
		gate.WithTokenProvider(gate.StaticToken("abc123")),
		gate.WithNotifier(notifier),
		gate.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)

	res := awaitResult(t, d.Dispatch(context.Background(), gate.EventFunc(func() {}), "12"))

	require.False(t, res.OK())
	require.Zero(t, res.Err.Status)
	require.Equal(t, "Network Error", res.Err.Text)
	require.Equal(t, []string{"An error occurred: Network Error"}, notifier.Messages())
	require.Equal(t, 1, logs.FilterMessage("gate request failed").Len())
}

func TestDispatchNonSuccessStatusAlerts(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "<html><body><h1>No eligible   event</h1></body></html>")
	}))
	t.Cleanup(ts.Close)

	notifier := &recordingNotifier{}
	d, err := gate.NewDispatcher(gate.Config{BaseURL: ts.URL},
		gate.WithHTTPClient(ts.Client()),
		gate.WithNotifier(notifier),
	)
	require.NoError(t, err)

	res := d.Send(context.Background(), "gate-7")

	require.False(t, res.OK())
	require.Equal(t, http.StatusBadRequest, res.Err.Status)
	require.Equal(t, "Bad Request", res.Err.Text)
	require.Equal(t, "No eligible event", res.Err.Body)
	require.Equal(t, []string{"An error occurred: Bad Request"}, notifier.Messages())
}

func TestDispatchWithoutTokenSendsEmptyHeader(t *testing.T) {
	t.Parallel()

	var present bool
	var value string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["X-Csrftoken"]
		value = r.Header.Get("X-CSRFToken")
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(ts.Close)

	notifier := &recordingNotifier{}
	d, err := gate.NewDispatcher(gate.Config{BaseURL: ts.URL},
		gate.WithHTTPClient(ts.Client()),
		gate.WithTokenProvider(gate.CookieString("sessionid=xyz")),
		gate.WithNotifier(notifier),
	)
	require.NoError(t, err)

	res := d.Send(context.Background(), "12")
	require.True(t, present)
	require.Empty(t, value)
	require.Equal(t, http.StatusForbidden, res.Status)
	require.Equal(t, []string{"An error occurred: Forbidden"}, notifier.Messages())
}

func TestDoubleDispatchSendsTwoRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	d, err := gate.NewDispatcher(gate.Config{BaseURL: ts.URL}, gate.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	first := d.Dispatch(context.Background(), nil, "12")
	second := d.Dispatch(context.Background(), nil, "12")
	a, b := awaitResult(t, first), awaitResult(t, second)

	require.True(t, a.OK())
	require.True(t, b.OK())
	require.NotEqual(t, a.DispatchID, b.DispatchID)
	require.EqualValues(t, 2, calls.Load())
}

func TestDispatchIgnoresCallerCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	d, err := gate.NewDispatcher(gate.Config{BaseURL: ts.URL}, gate.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	ch := d.Dispatch(ctx, nil, "12")
	cancel()
	close(release)

	require.True(t, awaitResult(t, ch).OK())
}

func TestEndpoint(t *testing.T) {
	t.Parallel()

	d, err := gate.NewDispatcher(gate.Config{BaseURL: "https://acs.example.com/", AdminPrefix: "/ops/"})
	require.NoError(t, err)
	require.Equal(t, "https://acs.example.com/ops/visitors/camera/request_gate/12/", d.Endpoint("12"))
	require.Equal(t, "/ops/visitors/camera/request_gate/a%2Fb/", d.Path("a/b"))
	require.True(t, strings.HasSuffix(d.Endpoint("a/b"), "/request_gate/a%2Fb/"))
}

func TestNewDispatcherValidatesBaseURL(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"", "   ", "/relative", "acs.example.com"} {
		_, err := gate.NewDispatcher(gate.Config{BaseURL: base})
		require.ErrorIs(t, err, gate.ErrInvalidConfig, base)
	}
}
