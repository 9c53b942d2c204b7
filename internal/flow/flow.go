// Package flow implements the feature sub-flows reachable from the main
// menu: symptom triage, vaccination-center lookup, seasonal health tips
// and outbreak alerts.
//
// Each handler is pure with respect to session state: it receives the
// current session by value and returns a tagged result carrying either a
// total replacement session (continue), final replies (done) or a failure
// reason. Handlers never write to the session store themselves.
package flow

import (
	"context"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// Handler is one menu-reachable feature sub-flow.
type Handler interface {
	// Begin starts the sub-flow after the user picks it from the menu.
	Begin(ctx context.Context, profile *models.Profile, session models.Session) models.HandlerResult

	// Handle processes one inbound message while the sub-flow is active.
	Handle(ctx context.Context, profile *models.Profile, session models.Session, input string) models.HandlerResult
}

// Oracle produces the next assistant reply in a triage conversation.
type Oracle interface {
	Converse(ctx context.Context, persona string, turns []models.ChatTurn) (string, error)
}

// Translator renders an alert title and summary into a target language.
type Translator interface {
	Translate(ctx context.Context, lang models.Language, title, summary string) (string, string, error)
}

// PlacesSearcher finds vaccination centers by free-text query.
type PlacesSearcher interface {
	Search(ctx context.Context, query string) ([]models.Place, error)
}

// FeedFetcher returns the current candidate outbreak alerts.
type FeedFetcher interface {
	FetchCandidateAlerts(ctx context.Context) ([]models.Alert, error)
}

// SeenAlerts tracks which alerts a user has already been shown.
type SeenAlerts interface {
	HasSeenAlert(ctx context.Context, identity, alertID string) (bool, error)
	MarkAlertSeen(ctx context.Context, identity, alertID string) error
}
