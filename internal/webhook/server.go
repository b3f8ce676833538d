package webhook

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gavel-review/gavel/internal/cache"
)

// Server receives GitHub webhook events. Pull request events acknowledge
// reviewable actions, and issue comments carrying gavel commands trigger a
// context refresh or a review.
type Server struct {
	store  *cache.Store
	server *http.Server
}

// New creates a Server listening on addr backed by the given cache store.
func New(addr string, store *cache.Store) *Server {
	s := &Server{store: store}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /webhook", s.handleWebhook)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving webhook requests.
func (s *Server) ListenAndServe() error {
	log.Printf("webhook server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routing for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	event := r.Header.Get("X-GitHub-Event")
	delivery := r.Header.Get("X-GitHub-Delivery")
	log.Printf("received webhook: %s (%s)", event, delivery)

	switch event {
	case "pull_request":
		s.handlePullRequest(w, r)
	case "issue_comment":
		s.handleComment(w, r)
	default:
		w.Write([]byte("OK"))
	}
}

type pullRequestEvent struct {
	Action      string `json:"action"`
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

func (s *Server) handlePullRequest(w http.ResponseWriter, r *http.Request) {
	var event pullRequestEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	switch event.Action {
	case "opened", "synchronize", "reopened":
	default:
		w.Write([]byte("SKIP"))
		return
	}

	log.Printf("processing PR #%d in %s", event.PullRequest.Number, event.Repository.FullName)
	w.Write([]byte("PROCESSED"))
}

type issueCommentEvent struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	var event issueCommentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	body := event.Comment.Body
	switch {
	case strings.Contains(body, "/gavel refresh"):
		// A refresh command throws away the cached project context so the
		// next review re-analyzes the repository.
		if err := s.store.Invalidate(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte("REFRESH"))
	case strings.Contains(body, "/gavel review"):
		w.Write([]byte("REVIEW"))
	default:
		w.Write([]byte("OK"))
	}
}
