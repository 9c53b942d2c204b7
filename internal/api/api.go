// Package api runs the HTTP surface and the inbound-message pump. The
// HTTP server carries the Twilio webhook, a health check and the user
// data-deletion endpoint; the pump drains the messaging service's
// response channel through the conversation router and sends the replies
// back out in order.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nocaptbsm/aarogya--sarthi/internal/messaging"
)

// DefaultAddr is the default HTTP listen address.
const DefaultAddr = ":8080"

// DefaultRouteTimeout bounds the processing of one inbound message,
// covering all collaborator calls it triggers.
const DefaultRouteTimeout = 30 * time.Second

// Router advances one conversation per inbound message.
type Router interface {
	Route(ctx context.Context, identity, rawInput string) []string
}

// UserStore is the slice of the persistence layer the deletion endpoint needs.
type UserStore interface {
	DeleteProfile(ctx context.Context, identity string) error
}

// SessionStore deletes the ephemeral conversation state for an identity.
type SessionStore interface {
	Delete(ctx context.Context, identity string) error
}

// Opts holds configuration options for the API server.
type Opts struct {
	Addr         string
	RouteTimeout time.Duration
	Webhook      http.HandlerFunc
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the HTTP listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithRouteTimeout overrides the per-message processing timeout.
func WithRouteTimeout(timeout time.Duration) Option {
	return func(o *Opts) { o.RouteTimeout = timeout }
}

// WithTwilioWebhook mounts the Twilio inbound webhook handler at
// POST /webhook/twilio.
func WithTwilioWebhook(handler http.HandlerFunc) Option {
	return func(o *Opts) { o.Webhook = handler }
}

// Server ties the HTTP surface and the response pump together.
type Server struct {
	addr         string
	routeTimeout time.Duration
	router       Router
	service      messaging.Service
	users        UserStore
	sessions     SessionStore
	httpServer   *http.Server
}

// NewServer creates the API server.
func NewServer(rt Router, service messaging.Service, users UserStore, sessions SessionStore, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr, RouteTimeout: DefaultRouteTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		addr:         cfg.Addr,
		routeTimeout: cfg.RouteTimeout,
		router:       rt,
		service:      service,
		users:        users,
		sessions:     sessions,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthHandler)
	mux.HandleFunc("DELETE /users/{identity}", s.deleteUserHandler)
	if cfg.Webhook != nil {
		mux.HandleFunc("POST /webhook/twilio", cfg.Webhook)
	}
	s.httpServer = &http.Server{Addr: cfg.Addr, Handler: mux}

	return s
}

// Start launches the messaging service, the response pump and the HTTP
// listener. It returns once the listener is running; ListenAndServe
// errors are reported on the returned channel.
func (s *Server) Start(ctx context.Context) (<-chan error, error) {
	if err := s.service.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start messaging service: %w", err)
	}

	go s.pumpResponses(ctx)
	go s.drainReceipts(ctx)

	errs := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
		close(errs)
	}()
	return errs, nil
}

// Stop shuts down the HTTP listener and the messaging service.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	return s.service.Stop()
}

// pumpResponses drains inbound messages through the router and sends the
// replies back in order. Ordering per user is guaranteed by the router's
// per-identity serialization plus in-order sends here.
func (s *Server) pumpResponses(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case response, ok := <-s.service.Responses():
			if !ok {
				return
			}
			s.handleResponse(ctx, response.From, response.Body)
		}
	}
}

func (s *Server) handleResponse(ctx context.Context, from, body string) {
	identity, err := s.service.ValidateAndCanonicalizeRecipient(from)
	if err != nil {
		slog.Warn("Dropping inbound message with invalid sender", "from", from, "error", err)
		return
	}

	routeCtx, cancel := context.WithTimeout(ctx, s.routeTimeout)
	defer cancel()

	replies := s.router.Route(routeCtx, identity, body)
	for _, reply := range replies {
		if err := s.service.SendMessage(routeCtx, identity, reply); err != nil {
			slog.Error("Failed to send reply", "identity", identity, "error", err)
			return
		}
	}
}

// drainReceipts consumes delivery receipts so the channel never blocks.
func (s *Server) drainReceipts(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case receipt, ok := <-s.service.Receipts():
			if !ok {
				return
			}
			slog.Debug("Delivery receipt", "to", receipt.To, "status", receipt.Status)
		}
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// deleteUserHandler removes a user's profile and session on request, for
// data-deletion compliance.
func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("identity")
	identity, err := s.service.ValidateAndCanonicalizeRecipient(raw)
	if err != nil {
		http.Error(w, "invalid identity", http.StatusBadRequest)
		return
	}

	if err := s.users.DeleteProfile(r.Context(), identity); err != nil {
		slog.Error("Failed to delete profile", "identity", identity, "error", err)
		http.Error(w, "failed to delete user", http.StatusInternalServerError)
		return
	}
	if err := s.sessions.Delete(r.Context(), identity); err != nil {
		slog.Error("Failed to delete session", "identity", identity, "error", err)
		http.Error(w, "failed to delete session", http.StatusInternalServerError)
		return
	}

	slog.Info("User data deleted", "identity", identity)
	w.WriteHeader(http.StatusNoContent)
}
