// Package server is the HTTP shell around the conversation engine: webhook
// verification, inbound delivery handling, health and metrics endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lodgebot/internal/conversation"
	"lodgebot/internal/listing"
	"lodgebot/internal/store/redis"
)

// Engine handles one inbound event end to end.
type Engine interface {
	HandleEvent(ctx context.Context, ev conversation.Event) (conversation.Outcome, error)
}

// Messenger sends outbound messages to parties.
type Messenger interface {
	Deliver(ctx context.Context, d conversation.Directive) error
	DeliverText(ctx context.Context, recipient, body string) error
}

// Locker serializes processing per party.
type Locker interface {
	Acquire(ctx context.Context, partyID string, ttl time.Duration) (redis.UnlockFunc, error)
}

// Archiver persists confirmed listings. It may be nil when no database
// is configured.
type Archiver interface {
	Insert(ctx context.Context, l listing.Listing) error
	CountByParty(ctx context.Context, partyID string) (int, error)
}

// Config tunes webhook behavior.
type Config struct {
	// VerifyToken is matched against hub.verify_token on the GET handshake.
	VerifyToken string
	// OwnerPhone receives the confirmed listing summary. Empty disables
	// operator notifications.
	OwnerPhone string
	// LockTTL bounds how long one delivery may hold a party lock.
	LockTTL time.Duration
}

// Server routes webhook traffic into the conversation engine.
type Server struct {
	cfg      Config
	engine   Engine
	msgr     Messenger
	locks    Locker
	archiver Archiver
}

// New builds the server. locks and archiver are optional.
func New(cfg Config, engine Engine, msgr Messenger, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		msgr:   msgr,
	}
	if s.cfg.LockTTL <= 0 {
		s.cfg.LockTTL = 30 * time.Second
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option customizes a Server.
type Option func(*Server)

// WithLocker enables per-party serialization.
func WithLocker(l Locker) Option {
	return func(s *Server) { s.locks = l }
}

// WithArchiver enables listing persistence on confirm.
func WithArchiver(a Archiver) Option {
	return func(s *Server) { s.archiver = a }
}

// Router assembles the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestContext)
	r.Use(recoverPanics)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/webhook", func(r chi.Router) {
		r.Use(countRequests)
		r.Get("/", s.handleVerify)
		r.Post("/", s.handleWebhook)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
