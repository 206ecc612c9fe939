package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecoveryMiddleware_RespondsWithJSON(t *testing.T) {
	h := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`, rec.Body.String())
}

func TestIPLimiter_SeparateBuckets(t *testing.T) {
	l := newIPLimiter(2, time.Hour)

	a := l.get("198.51.100.1")
	assert.Same(t, a, l.get("198.51.100.1"))
	assert.True(t, a.Allow())
	assert.True(t, a.Allow())
	assert.False(t, a.Allow())

	assert.True(t, l.get("198.51.100.2").Allow())
}

func TestIPLimiter_Defaults(t *testing.T) {
	l := newIPLimiter(0, 0)
	assert.Equal(t, 1, l.burst)
}

func TestIPLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	l := newIPLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	first := l.get("198.51.100.1")
	assert.False(t, first.Allow() && first.Allow())
	l.get("198.51.100.2")
	assert.Equal(t, 2, l.size())

	now = now.Add(30 * time.Second)
	l.get("198.51.100.2")
	assert.Equal(t, 2, l.size(), "nothing idle for a full window yet")

	now = now.Add(45 * time.Second)
	l.get("198.51.100.2")
	assert.Equal(t, 1, l.size(), "198.51.100.1 idle for 75s is dropped")

	again := l.get("198.51.100.1")
	assert.NotSame(t, first, again)
	assert.True(t, again.Allow(), "a fresh bucket starts full")
}
