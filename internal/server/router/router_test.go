package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/civicvote/internal/catalog"
	"github.com/iudanet/civicvote/internal/crypto"
	"github.com/iudanet/civicvote/internal/server/ledger"
	"github.com/iudanet/civicvote/internal/server/metrics"
	"github.com/iudanet/civicvote/internal/server/middleware"
	"github.com/iudanet/civicvote/internal/server/storage/sqlite"
	"github.com/iudanet/civicvote/internal/server/visitor"
	"github.com/iudanet/civicvote/pkg/api"
)

const testSecret = "router-test-secret-0123"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	keyer, err := crypto.NewKeyer([]byte(testSecret))
	require.NoError(t, err)
	issuer, err := visitor.NewIssuer([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	cat, err := catalog.Default()
	require.NoError(t, err)

	m := metrics.New()
	svc := ledger.New(st, keyer, m, logger, 0)

	srv := httptest.NewServer(New(Deps{
		Logger:  logger,
		Ledger:  svc,
		Catalog: cat,
		Storage: svc,
		Metrics: m,
		Issuer:  issuer,
		Cookie:  middleware.CookieConfig{Name: middleware.DefaultCookieName},
		Version: "test",
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getVotes(t *testing.T, c *http.Client, base, ids string) api.VotesResponse {
	t.Helper()
	resp, err := c.Get(base + "/api/votes?ids=" + ids)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.VotesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func postVote(t *testing.T, c *http.Client, base, body string) (*http.Response, api.SetVoteResponse) {
	t.Helper()
	resp, err := c.Post(base+"/api/votes", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out api.SetVoteResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestRouter_EndToEndVote(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	before := getVotes(t, browser, srv.URL, "rol-v1")
	assert.Equal(t, api.VoteCounts{}, before.Counts["rol-v1"])
	assert.Empty(t, before.UserVotes)

	resp, result := postVote(t, browser, srv.URL, `{"contentId":"rol-v1","vote":"down"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, result.Up)
	assert.Equal(t, 1, result.Down)
	require.NotNil(t, result.UserVote)
	assert.Equal(t, "down", *result.UserVote)

	after := getVotes(t, browser, srv.URL, "rol-v1")
	assert.Equal(t, api.VoteCounts{Down: 1}, after.Counts["rol-v1"])
	assert.Equal(t, "down", after.UserVotes["rol-v1"])

	// Другой браузер получает свою идентичность и не видит чужой голос
	other := getVotes(t, newBrowser(t), srv.URL, "rol-v1")
	assert.Equal(t, api.VoteCounts{Down: 1}, other.Counts["rol-v1"])
	assert.Empty(t, other.UserVotes)
}

func TestRouter_IdentityIsStable(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	resp, err := browser.Get(srv.URL + "/api/votes?ids=a")
	require.NoError(t, err)
	resp.Body.Close()
	require.Len(t, resp.Cookies(), 1, "first request mints identity")

	resp, err = browser.Get(srv.URL + "/api/votes?ids=a")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Cookies(), "valid identity is not re-issued")

	// Повторное голосование тем же посетителем не создает второй бюллетень
	for i := 0; i < 3; i++ {
		r, _ := postVote(t, browser, srv.URL, `{"contentId":"a","vote":"up"}`)
		require.Equal(t, http.StatusOK, r.StatusCode)
	}
	assert.Equal(t, api.VoteCounts{Up: 1}, getVotes(t, browser, srv.URL, "a").Counts["a"])
}

func TestRouter_Errors(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	resp, _ := postVote(t, browser, srv.URL, `{"contentId":"a"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	r, err := browser.Get(srv.URL + "/api/votes?ids=bad%20id")
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/votes", nil)
	require.NoError(t, err)
	r, err = browser.Do(req)
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, r.StatusCode)
}

func TestRouter_ContentHealthMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/content?category=Elections")
	require.NoError(t, err)
	var content api.ContentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&content))
	resp.Body.Close()
	assert.NotEmpty(t, content.Items)
	assert.Empty(t, resp.Cookies(), "catalog does not mint identities")

	resp, err = http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/votes?ids=a")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="GET /api/votes"`)
}
