package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	platform string
	event    []byte
}

// channelReviewer signals each invocation so tests can wait on the detached
// goroutine without sleeping.
type channelReviewer struct {
	calls chan call
	err   error
}

func newChannelReviewer() *channelReviewer {
	return &channelReviewer{calls: make(chan call, 8)}
}

func (r *channelReviewer) HandlePRReview(_ context.Context, platform string, event []byte) error {
	r.calls <- call{platform: platform, event: event}
	return r.err
}

func (r *channelReviewer) wait(t *testing.T) call {
	t.Helper()
	select {
	case c := <-r.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("reviewer was not invoked")
		return call{}
	}
}

func (r *channelReviewer) assertNotInvoked(t *testing.T) {
	t.Helper()
	select {
	case c := <-r.calls:
		t.Fatalf("unexpected review invocation for %q", c.platform)
	case <-time.After(50 * time.Millisecond):
	}
}

func post(t *testing.T, handler http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGitHubWebhook_PullRequestEventTriggersReview(t *testing.T) {
	reviewer := newChannelReviewer()
	handler := New(3333, reviewer).Routes()

	payload := `{"number":7}`
	rec := post(t, handler, "/webhook/github", payload, map[string]string{"X-GitHub-Event": "pull_request"})
	require.Equal(t, http.StatusOK, rec.Code)

	c := reviewer.wait(t)
	assert.Equal(t, "github", c.platform)
	assert.Equal(t, payload, string(c.event))
}

func TestGitHubWebhook_OtherEventsAreAckedAndIgnored(t *testing.T) {
	reviewer := newChannelReviewer()
	handler := New(3333, reviewer).Routes()

	rec := post(t, handler, "/webhook/github", `{}`, map[string]string{"X-GitHub-Event": "push"})
	require.Equal(t, http.StatusOK, rec.Code)
	reviewer.assertNotInvoked(t)
}

func TestBitbucketWebhook_PullRequestPrefixTriggersReview(t *testing.T) {
	reviewer := newChannelReviewer()
	handler := New(3333, reviewer).Routes()

	for _, key := range []string{"pullrequest:created", "pullrequest:updated"} {
		rec := post(t, handler, "/webhook/bitbucket", `{"pullrequest":{"id":4}}`, map[string]string{"X-Event-Key": key})
		require.Equal(t, http.StatusOK, rec.Code)

		c := reviewer.wait(t)
		assert.Equal(t, "bitbucket", c.platform)
	}
}

func TestBitbucketWebhook_RepoEventsAreAckedAndIgnored(t *testing.T) {
	reviewer := newChannelReviewer()
	handler := New(3333, reviewer).Routes()

	rec := post(t, handler, "/webhook/bitbucket", `{}`, map[string]string{"X-Event-Key": "repo:push"})
	require.Equal(t, http.StatusOK, rec.Code)
	reviewer.assertNotInvoked(t)
}

func TestWebhook_AcksBeforeReviewCompletes(t *testing.T) {
	// An unbuffered channel blocks the reviewer until the test drains it:
	// the 200 must land while the review is still pending.
	reviewer := &channelReviewer{calls: make(chan call)}
	handler := New(3333, reviewer).Routes()

	rec := post(t, handler, "/webhook/github", `{}`, map[string]string{"X-GitHub-Event": "pull_request"})
	assert.Equal(t, http.StatusOK, rec.Code)
	reviewer.wait(t)
}

func TestWebhook_ReviewFailureStillAcked(t *testing.T) {
	reviewer := newChannelReviewer()
	reviewer.err = errors.New("HTTP 502")
	handler := New(3333, reviewer).Routes()

	rec := post(t, handler, "/webhook/github", `{}`, map[string]string{"X-GitHub-Event": "pull_request"})
	assert.Equal(t, http.StatusOK, rec.Code)
	reviewer.wait(t)
}

func TestWebhook_RejectsNonPOST(t *testing.T) {
	reviewer := newChannelReviewer()
	handler := New(3333, reviewer).Routes()

	req := httptest.NewRequest(http.MethodGet, "/webhook/github", nil)
	req.Header.Set("X-GitHub-Event", "pull_request")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	reviewer.assertNotInvoked(t)
}
