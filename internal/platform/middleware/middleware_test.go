package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessexplorer/internal/platform/logger"
	"accessexplorer/internal/platform/metrics"
	"accessexplorer/pkg/requestcontext"
	"accessexplorer/pkg/testutil"
)

type stubValidator struct {
	subject string
	err     error
}

func (s stubValidator) Subject(string) (string, error) {
	return s.subject, s.err
}

func subjectEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.Subject(r.Context())))
	})
}

func bearer(token string) func(*http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		r.Header.Set("Authorization", "Bearer "+token)
		return r
	}
}

func TestRequireBearer(t *testing.T) {
	log := logger.Discard()

	t.Run("missing header", func(t *testing.T) {
		h := RequireBearer(stubValidator{subject: "0xabc"}, log)(subjectEcho())
		rec := testutil.Do(t, h, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := testutil.DecodeJSON[map[string]string](t, rec)
		assert.Equal(t, "unauthorized", body["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		h := RequireBearer(stubValidator{err: errors.New("bad signature")}, log)(subjectEcho())
		rec := testutil.Do(t, h, http.MethodGet, "/", nil, bearer("garbage"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token stores subject", func(t *testing.T) {
		h := RequireBearer(stubValidator{subject: "0xabc"}, log)(subjectEcho())
		rec := testutil.Do(t, h, http.MethodGet, "/", nil, bearer("good"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0xabc", rec.Body.String())
	})
}

func TestRequestContext(t *testing.T) {
	var gotID, gotIP, gotUA string
	h := RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		gotID = requestcontext.RequestID(ctx)
		gotIP = requestcontext.ClientIP(ctx)
		gotUA = requestcontext.UserAgent(ctx)
	}))

	rec := testutil.Do(t, h, http.MethodGet, "/", nil, func(r *http.Request) *http.Request {
		r.RemoteAddr = "10.1.2.3:5555"
		r.Header.Set("User-Agent", "curl/8.0")
		return r
	})

	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "10.1.2.3", gotIP)
	assert.Equal(t, "curl/8.0", gotUA)
}

func TestClientIPFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::1]:8080"
	assert.Equal(t, "::1", ClientIPFromRequest(req))

	req.RemoteAddr = "192.168.0.1"
	assert.Equal(t, "192.168.0.1", ClientIPFromRequest(req))

	req.RemoteAddr = ""
	assert.Equal(t, "unknown", ClientIPFromRequest(req))
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := testutil.Do(t, h, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := testutil.DecodeJSON[map[string]string](t, rec)
	assert.Equal(t, "internal_error", body["error"])
	assert.Empty(t, body["error_description"])
}

func TestRateLimiter(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	limiter := NewRateLimiter(0.001, 1, m, logger.Discard())
	h := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	fromClient := func(ip string) func(*http.Request) *http.Request {
		return func(r *http.Request) *http.Request {
			r.RemoteAddr = ip + ":1234"
			return r
		}
	}

	first := testutil.Do(t, h, http.MethodGet, "/", nil, fromClient("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := testutil.Do(t, h, http.MethodGet, "/", nil, fromClient("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	other := testutil.Do(t, h, http.MethodGet, "/", nil, fromClient("10.0.0.2"))
	assert.Equal(t, http.StatusNoContent, other.Code)

	assert.InDelta(t, 1.0, promtestutil.ToFloat64(m.RateLimited), 0.001)
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(0, 0, nil, logger.Discard())
	h := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for range 5 {
		rec := testutil.Do(t, h, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/chains/{chainId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	testutil.Do(t, r, http.MethodGet, "/api/chains/30", nil)
	testutil.Do(t, r, http.MethodGet, "/api/chains/1", nil)

	count := promtestutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/chains/{chainId}", "202"))
	assert.InDelta(t, 2.0, count, 0.001)
}
