// Package router implements the conversation state machine: it takes one
// inbound message for an identity, loads the profile and session, advances
// the registration wizard or dispatches to the active feature handler, and
// persists the replacement session. It is the only writer of session state
// and serializes processing per identity, so concurrent messages from the
// same user observe a consistent state sequence.
package router

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nocaptbsm/aarogya--sarthi/internal/flow"
	"github.com/nocaptbsm/aarogya--sarthi/internal/i18n"
	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// menuKeyword returns a registered user to the main menu from any state,
// abandoning whatever sub-flow was active.
const menuKeyword = "menu"

// ProfileStore is the slice of the persistence layer the router needs.
type ProfileStore interface {
	CreateProfile(ctx context.Context, profile models.Profile) (string, error)
	FetchProfile(ctx context.Context, identity string) (*models.Profile, error)
}

// SessionStore persists the per-identity conversation session.
type SessionStore interface {
	Get(ctx context.Context, identity string) (*models.Session, error)
	Put(ctx context.Context, identity string, session models.Session) error
	Delete(ctx context.Context, identity string) error
}

// Opts holds configuration options for the router.
type Opts struct {
	Symptoms flow.Handler
	Vaccines flow.Handler
	Tips     flow.Handler
	Alerts   flow.Handler
}

// Option defines a configuration option for the router.
type Option func(*Opts)

// WithSymptomHandler overrides the symptom-checker handler.
func WithSymptomHandler(h flow.Handler) Option {
	return func(o *Opts) { o.Symptoms = h }
}

// WithVaccineHandler overrides the vaccination-reminders handler.
func WithVaccineHandler(h flow.Handler) Option {
	return func(o *Opts) { o.Vaccines = h }
}

// WithTipsHandler overrides the preventive-tips handler.
func WithTipsHandler(h flow.Handler) Option {
	return func(o *Opts) { o.Tips = h }
}

// WithAlertsHandler overrides the outbreak-alerts handler.
func WithAlertsHandler(h flow.Handler) Option {
	return func(o *Opts) { o.Alerts = h }
}

// Router advances one conversation per inbound message.
type Router struct {
	profiles ProfileStore
	sessions SessionStore
	symptoms flow.Handler
	vaccines flow.Handler
	tips     flow.Handler
	alerts   flow.Handler
	locks    *keyedMutex
}

// New creates a router. Handlers default to instances with no
// collaborators, which reply with user-safe failure messages; production
// wiring overrides them via options.
func New(profiles ProfileStore, sessions SessionStore, opts ...Option) *Router {
	cfg := Opts{
		Symptoms: flow.NewSymptomChecker(nil),
		Vaccines: flow.NewVaccineFinder(nil),
		Tips:     flow.NewTips(),
		Alerts:   flow.NewAlerts(nil, nil, nil),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Router{
		profiles: profiles,
		sessions: sessions,
		symptoms: cfg.Symptoms,
		vaccines: cfg.Vaccines,
		tips:     cfg.Tips,
		alerts:   cfg.Alerts,
		locks:    newKeyedMutex(),
	}
}

// Route processes one inbound message and returns the ordered replies to
// send. It always returns at least one reply; handler and collaborator
// failures surface as user-safe messages, never as an empty reply set.
func (r *Router) Route(ctx context.Context, identity, rawInput string) (replies []string) {
	unlock := r.locks.Lock(identity)
	defer unlock()

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Panic while routing message", "identity", identity, "panic", rec)
			replies = []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySomethingWentWrong)}
		}
	}()

	replies = r.route(ctx, identity, rawInput)
	if len(replies) == 0 {
		slog.Error("Routing produced no replies", "identity", identity)
		replies = []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySomethingWentWrong)}
	}
	return replies
}

func (r *Router) route(ctx context.Context, identity, rawInput string) []string {
	input := strings.TrimSpace(rawInput)
	lowered := strings.ToLower(input)

	profile, err := r.profiles.FetchProfile(ctx, identity)
	if err != nil {
		slog.Error("Failed to fetch profile", "identity", identity, "error", err)
		return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySomethingWentWrong)}
	}

	stored, err := r.sessions.Get(ctx, identity)
	if err != nil {
		slog.Error("Failed to fetch session", "identity", identity, "error", err)
		return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySomethingWentWrong)}
	}
	session := models.Session{}
	if stored != nil {
		session = *stored
	}
	if profile != nil {
		// The profile is the source of truth for the reply language.
		session.Language = profile.Language
	}

	slog.Debug("Routing message", "identity", identity, "state", session.State, "registered", profile != nil)

	if lowered == menuKeyword {
		return r.handleMenuKeyword(ctx, identity, profile)
	}
	if profile == nil {
		return r.advanceRegistration(ctx, identity, session, input, lowered)
	}
	return r.dispatchRegistered(ctx, identity, profile, session, input)
}

// handleMenuKeyword resets the conversation to its entry point. For a
// registered user that is the main menu; for an unregistered user the
// greeting prompt. The reset is idempotent.
func (r *Router) handleMenuKeyword(ctx context.Context, identity string, profile *models.Profile) []string {
	if profile == nil {
		if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingGreeting}) {
			return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(i18n.DefaultLanguage, i18n.KeySayHi)}
	}
	if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingMenuChoice, Language: profile.Language}) {
		return []string{i18n.Lookup(profile.Language, i18n.KeySomethingWentWrong)}
	}
	return []string{i18n.Lookup(profile.Language, i18n.KeyMainMenu)}
}

// dispatchRegistered routes a registered user's message by session state.
func (r *Router) dispatchRegistered(ctx context.Context, identity string, profile *models.Profile, session models.Session, input string) []string {
	switch session.State {
	case models.StateAwaitingMenuChoice:
		return r.handleMenuChoice(ctx, identity, profile, session, input)

	case models.StateAwaitingSymptoms:
		return r.applyResult(ctx, identity, profile.Language, r.symptoms.Handle(ctx, profile, session, input))

	case models.StateAwaitingVaccineChoice:
		return r.applyResult(ctx, identity, profile.Language, r.vaccines.Handle(ctx, profile, session, input))

	default:
		// No session, or a stale wizard state left over from before the
		// profile existed. Greet and offer the menu.
		if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingMenuChoice, Language: profile.Language}) {
			return []string{i18n.Lookup(profile.Language, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(profile.Language, i18n.KeyWelcomeBack, profile.Name)}
	}
}

// handleMenuChoice starts the chosen feature sub-flow.
func (r *Router) handleMenuChoice(ctx context.Context, identity string, profile *models.Profile, session models.Session, input string) []string {
	switch input {
	case "1":
		return r.applyResult(ctx, identity, profile.Language, r.symptoms.Begin(ctx, profile, session))
	case "2":
		return r.applyResult(ctx, identity, profile.Language, r.vaccines.Begin(ctx, profile, session))
	case "3":
		return r.applyResult(ctx, identity, profile.Language, r.tips.Begin(ctx, profile, session))
	case "4":
		return r.applyResult(ctx, identity, profile.Language, r.alerts.Begin(ctx, profile, session))
	case "5":
		if err := r.sessions.Delete(ctx, identity); err != nil {
			slog.Error("Failed to delete session on exit", "identity", identity, "error", err)
			return []string{i18n.Lookup(profile.Language, i18n.KeySomethingWentWrong)}
		}
		return []string{i18n.Lookup(profile.Language, i18n.KeyExitMessage)}
	default:
		return []string{
			i18n.Lookup(profile.Language, i18n.KeyInvalidOption),
			i18n.Lookup(profile.Language, i18n.KeyMainMenu),
		}
	}
}

// applyResult commits a handler result: continue stores the replacement
// session, done resets to the menu state and appends the main menu, failed
// logs the reason and leaves the stored session untouched so the user's
// next message retries.
func (r *Router) applyResult(ctx context.Context, identity string, lang models.Language, result models.HandlerResult) []string {
	switch result.Kind {
	case models.ResultContinue:
		if !r.putSession(ctx, identity, result.Session) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return result.Replies

	case models.ResultDone:
		if !r.putSession(ctx, identity, models.Session{State: models.StateAwaitingMenuChoice, Language: lang}) {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return append(result.Replies, i18n.Lookup(lang, i18n.KeyMainMenu))

	case models.ResultFailed:
		slog.Error("Feature handler failed", "identity", identity, "reason", result.Reason)
		if len(result.Replies) == 0 {
			return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
		}
		return result.Replies

	default:
		slog.Error("Unknown handler result kind", "identity", identity, "kind", result.Kind)
		return []string{i18n.Lookup(lang, i18n.KeySomethingWentWrong)}
	}
}

// putSession stores the session, logging and reporting failure.
func (r *Router) putSession(ctx context.Context, identity string, session models.Session) bool {
	if err := r.sessions.Put(ctx, identity, session); err != nil {
		slog.Error("Failed to store session", "identity", identity, "state", session.State, "error", err)
		return false
	}
	return true
}
