// Package server is the inbound webhook boundary. It filters provider events
// down to pull-request actions and hands them to the review pipeline.
//
// Acknowledgment policy: the webhook is always answered 200 immediately and
// review processing is detached in a goroutine. Review failures are pure log
// events; providers see no synchronous error path.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcp-bot/reviewd/internal/common"
)

// maxBodySize caps webhook payloads at 10 MiB.
const maxBodySize = 10 << 20

// Reviewer runs one PR review end to end.
type Reviewer interface {
	HandlePRReview(ctx context.Context, platform string, event []byte) error
}

// Server hosts the webhook endpoints.
type Server struct {
	reviewer Reviewer
	port     int

	// reviewTimeout bounds one detached review run.
	reviewTimeout time.Duration
}

// New creates a webhook server around a reviewer.
func New(port int, reviewer Reviewer) *Server {
	return &Server{
		reviewer:      reviewer,
		port:          port,
		reviewTimeout: 10 * time.Minute,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/github", s.handleGitHub)
	mux.HandleFunc("/webhook/bitbucket", s.handleBitbucket)
	return mux
}

// ListenAndServe blocks serving webhooks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	common.LogInfo(fmt.Sprintf("Listening at http://localhost:%d", s.port), nil)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if r.Header.Get("X-GitHub-Event") == "pull_request" {
		common.LogInfo("Received GitHub PR event", nil)
		s.detach("github", body)
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleBitbucket(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if strings.HasPrefix(r.Header.Get("X-Event-Key"), "pullrequest:") {
		common.LogInfo("Received Bitbucket PR event", nil)
		s.detach("bitbucket", body)
	}
	w.WriteHeader(http.StatusOK)
}

// detach runs one review in the background; the webhook has already been
// acknowledged by the time it finishes.
func (s *Server) detach(platform string, event []byte) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.reviewTimeout)
		defer cancel()
		if err := s.reviewer.HandlePRReview(ctx, platform, event); err != nil {
			common.LogError(fmt.Sprintf("[x] %s review failed: %v", platform, err), false, false, nil)
		}
	}()
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}
