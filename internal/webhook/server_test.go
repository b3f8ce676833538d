package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavel-review/gavel/internal/cache"
	"github.com/gavel-review/gavel/internal/project"
)

func newTestServer(t *testing.T) (*Server, *cache.Store) {
	t.Helper()
	store := cache.NewStore(t.TempDir(), 7)
	return New(":0", store), store
}

func post(t *testing.T, s *Server, event, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("X-GitHub-Event", event)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPullRequestOpened(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s, "pull_request", `{"action":"opened","pull_request":{"number":7},"repository":{"full_name":"octo/gavel"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PROCESSED", rec.Body.String())
}

func TestPullRequestIgnoredAction(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s, "pull_request", `{"action":"labeled","pull_request":{"number":7}}`)
	assert.Equal(t, "SKIP", rec.Body.String())
}

func TestPullRequestInvalidJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s, "pull_request", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentRefreshInvalidatesCache(t *testing.T) {
	s, store := newTestServer(t)
	require.NoError(t, store.Save(&project.Context{TechStack: []string{"go"}}))

	rec := post(t, s, "issue_comment", `{"comment":{"body":"please /gavel refresh this"}}`)
	assert.Equal(t, "REFRESH", rec.Body.String())

	_, ok := store.Load()
	assert.False(t, ok, "refresh must drop the cached context")
}

func TestCommentReview(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s, "issue_comment", `{"comment":{"body":"/gavel review"}}`)
	assert.Equal(t, "REVIEW", rec.Body.String())
}

func TestCommentUnrecognized(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s, "issue_comment", `{"comment":{"body":"nice change"}}`)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestUnknownEvent(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s, "push", `{}`)
	assert.Equal(t, "OK", rec.Body.String())
}
