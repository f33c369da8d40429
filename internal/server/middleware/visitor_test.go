package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/civicvote/internal/server/visitor"
)

func newTestIssuer(t *testing.T) *visitor.Issuer {
	t.Helper()
	issuer, err := visitor.NewIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	return issuer
}

func echoVisitor(t *testing.T, seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := VisitorID(r.Context())
		require.True(t, ok)
		*seen = id
	})
}

func TestVisitorMiddleware_MintsWhenMissing(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := newTestIssuer(t)

	var seen string
	handler := VisitorMiddleware(logger, issuer, CookieConfig{})(echoVisitor(t, &seen))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/votes", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1, "exactly one identity per request")

	c := cookies[0]
	assert.Equal(t, DefaultCookieName, c.Name)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), c.MaxAge)

	parsed, err := issuer.Parse(c.Value)
	require.NoError(t, err)
	assert.Equal(t, parsed, seen)
}

func TestVisitorMiddleware_KeepsValidCookie(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := newTestIssuer(t)

	token, visitorID, _, err := issuer.Mint()
	require.NoError(t, err)

	var seen string
	handler := VisitorMiddleware(logger, issuer, CookieConfig{Name: "custom_uid"})(echoVisitor(t, &seen))

	req := httptest.NewRequest(http.MethodGet, "/api/votes", nil)
	req.AddCookie(&http.Cookie{Name: "custom_uid", Value: token})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Result().Cookies(), "valid identity must not be overwritten")
	assert.Equal(t, visitorID, seen)
}

func TestVisitorMiddleware_ReplacesForgedCookie(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := newTestIssuer(t)

	var seen string
	handler := VisitorMiddleware(logger, issuer, CookieConfig{})(echoVisitor(t, &seen))

	req := httptest.NewRequest(http.MethodPost, "/api/votes", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "someone-elses-id"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "someone-elses-id", seen)

	parsed, err := issuer.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, parsed, seen)
}

func TestVisitorID_EmptyContext(t *testing.T) {
	_, ok := VisitorID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
