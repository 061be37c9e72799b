package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/cronlens/internal/config"
	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/metrics"
)

var fixedNow = time.Date(2026, 3, 10, 8, 15, 0, 0, time.UTC)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Estimator.Timezone = "UTC"
	cfg.Estimator.Count = 3
	if mutate != nil {
		mutate(cfg)
	}

	reg := prometheus.NewRegistry()
	s, err := New(Options{
		Config:   cfg,
		Metrics:  metrics.New("test", reg),
		Gatherer: reg,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if params != nil {
		target += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rr := get(t, s, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestValidate(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		field string
		value string
		code  int
		valid bool
	}{
		{"minute", "*/5", http.StatusOK, true},
		{"minute", "60", http.StatusOK, false},
		{"hour", "0-23", http.StatusOK, true},
		{"weekday", "7", http.StatusOK, true},
		{"dow", "1-5,0", http.StatusOK, true},
		{"month", "", http.StatusOK, false},
		{"second", "0", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			rr := get(t, s, "/api/validate", url.Values{"field": {tt.field}, "value": {tt.value}})
			require.Equal(t, tt.code, rr.Code)
			if tt.code != http.StatusOK {
				return
			}
			var resp ValidateResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.valid, resp.Valid)
		})
	}
}

func TestParse(t *testing.T) {
	s := newTestServer(t, nil)

	rr := get(t, s, "/api/parse", url.Values{"expr": {"  */15  9-17 * * 1-5 "}})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Expression string `json:"expression"`
		Fields     map[string]struct {
			Raw   string `json:"raw"`
			Terms []struct {
				Kind     string `json:"kind"`
				Interval int    `json:"interval"`
			} `json:"terms"`
		} `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "*/15 9-17 * * 1-5", resp.Expression)
	assert.Equal(t, "*/15", resp.Fields["minute"].Raw)
	require.Len(t, resp.Fields["minute"].Terms, 1)
	assert.Equal(t, "step", resp.Fields["minute"].Terms[0].Kind)
	assert.Equal(t, 15, resp.Fields["minute"].Terms[0].Interval)
	assert.Equal(t, "range", resp.Fields["weekday"].Terms[0].Kind)

	rr = get(t, s, "/api/parse", url.Values{"expr": {"* * * *"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "expected 5 fields")
}

func TestDescribe(t *testing.T) {
	s := newTestServer(t, nil)

	rr := get(t, s, "/api/describe", url.Values{"expr": {"0 0 * * *"}, "lang": {"zh-CN"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var out cron.Explanation
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, cron.TypeEveryDay, out.Result.Type)
	assert.Equal(t, "每天午夜", out.Result.Text)
	require.Len(t, out.Next, 3)
	assert.True(t, out.Next[0].Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))
}

func TestDescribe_InvalidIsNotAnHTTPError(t *testing.T) {
	s := newTestServer(t, nil)

	rr := get(t, s, "/api/describe", url.Values{"expr": {"not a cron"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var out cron.Explanation
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, cron.TypeError, out.Result.Type)
	assert.Equal(t, "Invalid cron expression", out.Result.Text)
	assert.Empty(t, out.Next)
}

func TestDescribe_DefaultLocaleFromConfig(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Describe.Locale = "zh" })

	rr := get(t, s, "/api/describe", url.Values{"expr": {"* * * * *"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "每分钟")
}

func TestNext(t *testing.T) {
	s := newTestServer(t, nil)

	rr := get(t, s, "/api/next", url.Values{
		"expr":  {"30 12 * * *"},
		"from":  {"2026-01-01T00:00:00Z"},
		"count": {"2"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp NextResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Next, 2)
	assert.True(t, resp.Next[0].Equal(time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC)))
	assert.True(t, resp.Next[1].Equal(time.Date(2026, 1, 2, 12, 30, 0, 0, time.UTC)))
}

func TestNext_FromUsesConfiguredTimezone(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Estimator.Timezone = "Asia/Tokyo" })

	rr := get(t, s, "/api/next", url.Values{
		"expr":  {"0 9 * * *"},
		"from":  {"2026-01-01T00:00:00Z"},
		"count": {"1"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp NextResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Next, 1)
	// 2026-01-01T00:00Z is already 09:00 in Tokyo, so the next run is a day later
	assert.True(t, resp.Next[0].Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)), "got %s", resp.Next[0])
	assert.Contains(t, rr.Body.String(), "2026-01-02T09:00:00+09:00")
}

func TestDescribe_FromUsesConfiguredTimezone(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Estimator.Timezone = "Asia/Tokyo" })

	rr := get(t, s, "/api/describe", url.Values{
		"expr":  {"0 9 * * *"},
		"from":  {"2026-01-01T00:30:00Z"},
		"count": {"1"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var out cron.Explanation
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	require.Len(t, out.Next, 1)
	assert.True(t, out.Next[0].Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)), "got %s", out.Next[0])
}

func TestNext_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		params url.Values
	}{
		{"invalid expression", url.Values{"expr": {"60 * * * *"}}},
		{"invalid count", url.Values{"expr": {"* * * * *"}, "count": {"zero"}}},
		{"count below one", url.Values{"expr": {"* * * * *"}, "count": {"0"}}},
		{"count above maximum", url.Values{"expr": {"* * * * *"}, "count": {"51"}}},
		{"invalid from", url.Values{"expr": {"* * * * *"}, "from": {"yesterday"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, s, "/api/next", tt.params)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestNext_ImpossibleExpressionReturnsEmpty(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Estimator.HorizonDays = 400 })

	rr := get(t, s, "/api/next", url.Values{"expr": {"0 0 31 2 *"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp NextResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Empty(t, resp.Next)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Metrics.Enabled = true })

	get(t, s, "/api/describe", url.Values{"expr": {"*/5 * * * *"}})

	rr := get(t, s, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `test_describe_total{type="custom"} 1`)
	assert.Contains(t, body, `test_http_requests_total{route="/api/describe",status="200"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	s := newTestServer(t, nil)

	rr := get(t, s, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNew_InvalidTimezone(t *testing.T) {
	cfg := config.Default()
	cfg.Estimator.Timezone = "Nowhere/Invalid"

	_, err := New(Options{Config: cfg})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Nowhere/Invalid"))
}
