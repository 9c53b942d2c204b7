package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nocaptbsm/aarogya--sarthi/internal/i18n"
	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// Alerts shows the user the first outbreak alert they have not yet seen,
// translated into their language. It is a one-shot flow.
type Alerts struct {
	feed       FeedFetcher
	translator Translator
	seen       SeenAlerts
}

// NewAlerts creates the outbreak-alerts handler. A nil translator keeps
// alerts in English; a nil feed fails gracefully.
func NewAlerts(feed FeedFetcher, translator Translator, seen SeenAlerts) *Alerts {
	return &Alerts{feed: feed, translator: translator, seen: seen}
}

// Begin fetches the candidate alerts, picks the first one this user has
// not seen, translates it if needed and marks it seen.
func (h *Alerts) Begin(ctx context.Context, profile *models.Profile, session models.Session) models.HandlerResult {
	if profile == nil {
		return models.Failed("outbreak alerts require a registered profile",
			i18n.Lookup(session.Language, i18n.KeySomethingWentWrong))
	}
	if h.feed == nil {
		return models.Failed("alert feed not configured",
			i18n.Lookup(session.Language, i18n.KeyAlertsUnavailable))
	}

	alerts, err := h.feed.FetchCandidateAlerts(ctx)
	if err != nil {
		return models.Failed("alert feed fetch failed: "+err.Error(),
			i18n.Lookup(session.Language, i18n.KeyAlertsUnavailable))
	}

	alert, ok := h.firstUnseen(ctx, profile.Identity, alerts)
	if !ok {
		return models.Done(i18n.Lookup(session.Language, i18n.KeyNoNewAlerts))
	}

	title, summary := alert.Title, alert.Summary
	if session.Language != models.LanguageEnglish && h.translator != nil {
		translatedTitle, translatedSummary, err := h.translator.Translate(ctx, session.Language, title, summary)
		if err != nil {
			slog.Error("Alert translation failed, keeping English", "error", err, "language", session.Language)
		} else {
			title, summary = translatedTitle, translatedSummary
		}
	}

	if h.seen != nil {
		if err := h.seen.MarkAlertSeen(ctx, profile.Identity, alert.ID); err != nil {
			slog.Error("Failed to mark alert as seen", "error", err, "identity", profile.Identity, "alertID", alert.ID)
		}
	}

	message := fmt.Sprintf("*%s*\n\n*%s*\n%s",
		i18n.Lookup(session.Language, i18n.KeyAlertIntro), title, summary)
	return models.Done(message)
}

// Handle is never dispatched to because the flow holds no state; it simply
// replays Begin for safety.
func (h *Alerts) Handle(ctx context.Context, profile *models.Profile, session models.Session, _ string) models.HandlerResult {
	return h.Begin(ctx, profile, session)
}

// firstUnseen returns the first alert the user has not been shown. A seen
// lookup failure is logged and the alert treated as unseen so a flaky
// store never silences alerts.
func (h *Alerts) firstUnseen(ctx context.Context, identity string, alerts []models.Alert) (models.Alert, bool) {
	for _, alert := range alerts {
		if h.seen == nil {
			return alert, true
		}
		seen, err := h.seen.HasSeenAlert(ctx, identity, alert.ID)
		if err != nil {
			slog.Error("Seen-alert lookup failed, treating as unseen", "error", err, "identity", identity, "alertID", alert.ID)
			return alert, true
		}
		if !seen {
			return alert, true
		}
	}
	return models.Alert{}, false
}
