package integrations

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperr "github.com/matzehuels/artifactscout/pkg/errors"
	"github.com/matzehuels/artifactscout/pkg/observability"
)

func testClient(srv *httptest.Server, opts Options) *Client {
	opts.HTTPClient = srv.Client()
	if opts.InitialBackoff == 0 {
		opts.InitialBackoff = time.Millisecond
	}
	return NewClient(opts)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Options{})

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.userAgent != "artifactscout" {
		t.Errorf("userAgent = %q", client.userAgent)
	}
	if client.attempts != 3 || client.backoff != time.Second {
		t.Errorf("retry defaults = %d/%v", client.attempts, client.backoff)
	}
	if client.breakers.threshold != 5 {
		t.Errorf("breaker threshold = %d, want 5", client.breakers.threshold)
	}
}

func TestClientGetXML(t *testing.T) {
	type doc struct {
		Name string `xml:"name"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(`<doc><name>hello</name></doc>`))
	}))
	defer server.Close()

	var got doc
	if err := testClient(server, Options{}).GetXML(context.Background(), server.URL, nil, &got); err != nil {
		t.Fatalf("GetXML() error: %v", err)
	}
	if got.Name != "hello" {
		t.Errorf("GetXML() name = %q, want %q", got.Name, "hello")
	}
}

func TestClientGetXML_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<doc><name>`))
	}))
	defer server.Close()

	var v struct{ XMLName xml.Name }
	if err := testClient(server, Options{}).GetXML(context.Background(), server.URL, nil, &v); err == nil {
		t.Error("GetXML() should fail on truncated XML")
	}
}

func TestClientHeadersAndAuth(t *testing.T) {
	var ua, custom, user, pass string
	var hasAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		custom = r.Header.Get("X-Custom")
		user, pass, hasAuth = r.BasicAuth()
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := testClient(server, Options{UserAgent: "scout-test", Headers: map[string]string{"X-Custom": "v"}})
	body, err := client.GetText(context.Background(), server.URL, &BasicAuth{User: "u", Password: "p"})
	if err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if body != "ok" {
		t.Errorf("body = %q", body)
	}
	if ua != "scout-test" || custom != "v" {
		t.Errorf("headers: ua=%q custom=%q", ua, custom)
	}
	if !hasAuth || user != "u" || pass != "p" {
		t.Errorf("basic auth = %v %q %q", hasAuth, user, pass)
	}
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		status    int
		wantFound bool
		wantNet   bool
		wantCalls int32
	}{
		{http.StatusNotFound, true, false, 1},
		{http.StatusGone, true, false, 1},
		{http.StatusForbidden, false, true, 1},
		{http.StatusInternalServerError, false, true, 3},
		{http.StatusTooManyRequests, false, true, 3},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := testClient(server, Options{BreakerThreshold: 100}).GetBytes(context.Background(), server.URL, nil)
			if errors.Is(err, ErrNotFound) != tt.wantFound {
				t.Errorf("errors.Is(ErrNotFound) = %v for %v", !tt.wantFound, err)
			}
			if errors.Is(err, ErrNetwork) != tt.wantNet {
				t.Errorf("errors.Is(ErrNetwork) = %v for %v", !tt.wantNet, err)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

func TestClientRetryThenSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	body, err := testClient(server, Options{}).GetText(context.Background(), server.URL, nil)
	if err != nil || body != "ok" {
		t.Fatalf("GetText() = %q, %v", body, err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestClientCircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testClient(server, Options{Attempts: 1, BreakerThreshold: 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.GetBytes(ctx, server.URL, nil); err == nil {
			t.Fatal("expected failure")
		}
	}

	_, err := client.GetBytes(ctx, server.URL, nil)
	if !apperr.Is(err, apperr.ErrCodeCircuitOpen) {
		t.Fatalf("third call error = %v, want CIRCUIT_OPEN", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("open circuit should also be a network error")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2 (open breaker must not hit the server)", calls.Load())
	}

	states := client.BreakerStates()
	if states[hostOf(server.URL)] != "open" {
		t.Errorf("BreakerStates() = %v", states)
	}
}

func TestClientCircuitBreaker_SuccessResetsCount(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1)%2 == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := testClient(server, Options{Attempts: 1, BreakerThreshold: 2})
	for i := 0; i < 6; i++ {
		_, err := client.GetBytes(context.Background(), server.URL, nil)
		if apperr.Is(err, apperr.ErrCodeCircuitOpen) {
			t.Fatalf("call %d: breaker open after alternating failures", i)
		}
	}
	if calls.Load() != 6 {
		t.Errorf("calls = %d, want 6", calls.Load())
	}
	if client.BreakerStates()[hostOf(server.URL)] != "closed" {
		t.Errorf("BreakerStates() = %v", client.BreakerStates())
	}
}

func TestClientNotFoundDoesNotTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := testClient(server, Options{Attempts: 1, BreakerThreshold: 1})
	for i := 0; i < 3; i++ {
		_, err := client.GetBytes(context.Background(), server.URL, nil)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d: err = %v, want ErrNotFound", i, err)
		}
	}
	if client.BreakerStates()[hostOf(server.URL)] != "closed" {
		t.Error("404 responses should not trip the breaker")
	}
}

func TestClientHTTPHooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	counters := observability.NewCounters()
	observability.SetHTTPHooks(counters)
	defer observability.Reset()

	if _, err := testClient(server, Options{}).GetBytes(context.Background(), server.URL+"/a", nil); err != nil {
		t.Fatal(err)
	}
	if got := counters.Snapshot().HTTPRequests; got != 1 {
		t.Errorf("HTTPRequests = %d, want 1", got)
	}
}

func TestCheckStatus(t *testing.T) {
	if err := checkStatus(http.StatusOK); err != nil {
		t.Errorf("checkStatus(200) = %v", err)
	}
	if err := checkStatus(http.StatusNotFound); err != ErrNotFound {
		t.Errorf("checkStatus(404) = %v", err)
	}
	if !IsRetryable(checkStatus(http.StatusBadGateway)) {
		t.Error("checkStatus(502) should be retryable")
	}
	if IsRetryable(checkStatus(http.StatusUnauthorized)) {
		t.Error("checkStatus(401) should not be retryable")
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://repo/maven2/", []string{"org", "lib"}, "https://repo/maven2/org/lib"},
		{"https://repo/maven2", []string{"a b"}, "https://repo/maven2/a%20b"},
		{"https://repo", nil, "https://repo"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("JoinURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}
