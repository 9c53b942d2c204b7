package flow

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nocaptbsm/aarogya--sarthi/internal/genai"
	"github.com/nocaptbsm/aarogya--sarthi/internal/i18n"
	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// scratchChatHistory holds the JSON-encoded triage conversation turns.
const scratchChatHistory = "chat_history"

// exitKeyword ends the symptom checker and returns the user to the menu.
const exitKeyword = "exit"

// SymptomChecker runs the multi-turn AI triage conversation.
type SymptomChecker struct {
	oracle Oracle
}

// NewSymptomChecker creates the symptom-checker handler. A nil oracle is
// allowed; the handler then fails gracefully with a user-safe message.
func NewSymptomChecker(oracle Oracle) *SymptomChecker {
	return &SymptomChecker{oracle: oracle}
}

// Begin opens the triage conversation with an empty history.
func (h *SymptomChecker) Begin(_ context.Context, _ *models.Profile, session models.Session) models.HandlerResult {
	next := models.Session{State: models.StateAwaitingSymptoms, Language: session.Language}
	next = next.WithScratch(scratchChatHistory, "[]")
	return models.Continue(next, i18n.Lookup(session.Language, i18n.KeySymptomCheckerStart))
}

// Handle forwards the user's message to the oracle along with the stored
// conversation history and returns the model's reply. The exit keyword
// ends the conversation; the router appends the main menu.
func (h *SymptomChecker) Handle(ctx context.Context, _ *models.Profile, session models.Session, input string) models.HandlerResult {
	if strings.EqualFold(strings.TrimSpace(input), exitKeyword) {
		return models.Done()
	}
	if h.oracle == nil {
		return models.Failed("symptom checker oracle not configured",
			i18n.Lookup(session.Language, i18n.KeyAIUnavailable))
	}

	history := decodeHistory(session.Scratch[scratchChatHistory])
	history = append(history, models.ChatTurn{Speaker: "user", Text: input})

	answer, err := h.oracle.Converse(ctx, genai.SymptomPersona, history)
	if err != nil {
		return models.Failed("symptom checker conversation failed: "+err.Error(),
			i18n.Lookup(session.Language, i18n.KeyAIUnavailable))
	}

	history = append(history, models.ChatTurn{Speaker: "model", Text: answer})
	encoded, err := json.Marshal(history)
	if err != nil {
		return models.Failed("failed to encode chat history: "+err.Error(),
			i18n.Lookup(session.Language, i18n.KeyAIUnavailable))
	}

	next := models.Session{State: models.StateAwaitingSymptoms, Language: session.Language}
	next = next.WithScratch(scratchChatHistory, string(encoded))
	return models.Continue(next, answer)
}

// decodeHistory parses the stored history, starting fresh when the scratch
// value is missing or corrupt.
func decodeHistory(raw string) []models.ChatTurn {
	if raw == "" {
		return nil
	}
	var history []models.ChatTurn
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		slog.Error("Corrupt chat history in session scratch, starting fresh", "error", err)
		return nil
	}
	return history
}
