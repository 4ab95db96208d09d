package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labiga/LaBiga-OrderService/internal/config"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeScripter подменяет Redis: отдает заранее заданный результат Lua
// скрипта и запоминает ключи, с которыми его вызывали
type fakeScripter struct {
	mu     sync.Mutex
	keys   []string
	result []interface{}
	err    error
}

func (f *fakeScripter) run(keys []string) *redis.Cmd {
	f.mu.Lock()
	f.keys = append(f.keys, keys...)
	f.mu.Unlock()
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	return redis.NewCmdResult(f.result, nil)
}

func (f *fakeScripter) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalSha(ctx context.Context, sha string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalRO(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalShaRO(ctx context.Context, sha string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) ScriptExists(ctx context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeScripter) ScriptLoad(ctx context.Context, script string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func testRateLimitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       30,
		RefillTokens:   1,
		RefillInterval: 2,
		TTL:            600,
		Prefix:         "rl",
	}
}

func serveLimited(t *testing.T, cfg config.RateLimitConfig, scripter *fakeScripter, mutate func(*http.Request)) (*httptest.ResponseRecorder, *int) {
	t.Helper()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.RemoteAddr = "198.51.100.4:51000"
	if mutate != nil {
		mutate(req)
	}

	rec := httptest.NewRecorder()
	RateLimit(cfg, scripter, nopLogger{})(next).ServeHTTP(rec, req)
	return rec, &calls
}

func TestRateLimit_AllowsWithinCapacity(t *testing.T) {
	scripter := &fakeScripter{result: []interface{}{int64(1), int64(29), int64(0)}}

	rec, calls := serveLimited(t, testRateLimitConfig(), scripter, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "30", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "29", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_BlocksWhenBucketEmpty(t *testing.T) {
	scripter := &fakeScripter{result: []interface{}{int64(0), int64(0), int64(1500)}}

	rec, calls := serveLimited(t, testRateLimitConfig(), scripter, nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 0, *calls)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "demasiadas solicitudes")
}

func TestRateLimit_PassesThroughOnRedisError(t *testing.T) {
	scripter := &fakeScripter{err: assert.AnError}

	rec, calls := serveLimited(t, testRateLimitConfig(), scripter, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	cfg := testRateLimitConfig()
	cfg.Enabled = false
	scripter := &fakeScripter{result: []interface{}{int64(0), int64(0), int64(1500)}}

	rec, calls := serveLimited(t, cfg, scripter, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, scripter.keys)
}

func TestRateLimit_KeyUsesFirstForwardedAddress(t *testing.T) {
	scripter := &fakeScripter{result: []interface{}{int64(1), int64(29), int64(0)}}

	_, _ = serveLimited(t, testRateLimitConfig(), scripter, func(r *http.Request) {
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 10.0.0.2")
	})

	require.Len(t, scripter.keys, 1)
	assert.Equal(t, "rl:203.0.113.7:/api/v1/orders", scripter.keys[0])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.RemoteAddr = "198.51.100.4:51000"
	assert.Equal(t, "198.51.100.4", clientIP(req))

	// Цепочка прокси: клиентский адрес - первый элемент списка
	req.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
