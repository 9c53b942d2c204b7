// Package genai provides the language-model collaborator used for symptom
// triage conversations and outbreak-alert translation, backed by the OpenAI
// chat completions API.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// SymptomPersona is the system prompt for the symptom-triage conversation.
// The assistant must not diagnose and must always point the user to a real
// medical professional.
const SymptomPersona = "You are Aarogya Sarthi, a helpful AI health assistant. " +
	"Your role is to understand a user's health symptoms in their chosen language " +
	"(English, Hindi, Odia, Kui, or Santali) and ask 2-3 clarifying questions to better " +
	"understand the situation. Respond ONLY in the language of the user's last message. " +
	"Based on the conversation, provide potential next steps or things to look out for. " +
	"IMPORTANT: You are not a doctor. Do not provide a diagnosis. Always end your response " +
	"by strongly advising the user to consult a real medical professional for an accurate " +
	"diagnosis and treatment."

// translationPersona is the system prompt for alert translation.
const translationPersona = "You are an expert translator specializing in public health announcements."

// DefaultTimeout bounds every outbound completion call.
const DefaultTimeout = 20 * time.Second

// Opts holds configuration options for the GenAI client.
type Opts struct {
	APIKey  string
	Model   openai.ChatModel
	Timeout time.Duration
}

// Option defines a configuration option for the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) {
		o.APIKey = key
	}
}

// WithModel overrides the chat model.
func WithModel(model openai.ChatModel) Option {
	return func(o *Opts) {
		o.Model = model
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Opts) {
		o.Timeout = timeout
	}
}

// Client wraps the OpenAI chat completion service.
type Client struct {
	client  openai.Client
	model   openai.ChatModel
	timeout time.Duration
}

// NewClient initializes a GenAI client. The API key is required.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{Model: openai.ChatModelGPT4oMini, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}

	slog.Debug("GenAI client initialized", "model", cfg.Model, "timeout", cfg.Timeout)
	return &Client{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Converse sends the triage persona plus the prior conversation turns and
// returns the model's next reply.
func (c *Client) Converse(ctx context.Context, persona string, turns []models.ChatTurn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	messages = append(messages, openai.SystemMessage(persona))
	for _, turn := range turns {
		if turn.Speaker == "user" {
			messages = append(messages, openai.UserMessage(turn.Text))
		} else {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		slog.Error("GenAI Converse failed", "error", err, "turns", len(turns))
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	slog.Debug("GenAI Converse succeeded", "turns", len(turns))
	return resp.Choices[0].Message.Content, nil
}

// Translate renders an alert title and summary into the target language.
// The model is asked for a fixed "Title:/Summary:" format; if the reply
// cannot be parsed, the original English text is returned unchanged.
func (c *Client) Translate(ctx context.Context, lang models.Language, title, summary string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Translate the following health alert title and summary into the language with code '%s'. "+
			"Respond ONLY with the translation, formatted exactly like this:\n"+
			"Title: [translated title]\n"+
			"Summary: [translated summary]\n\n"+
			"---START---\nTitle: %s\nSummary: %s\n---END---",
		lang, title, summary)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(translationPersona),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		slog.Error("GenAI Translate failed", "error", err, "language", lang)
		return "", "", fmt.Errorf("translation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("translation returned no choices")
	}

	translatedTitle, translatedSummary, ok := parseTranslation(resp.Choices[0].Message.Content)
	if !ok {
		slog.Warn("GenAI Translate could not parse reply, keeping English", "language", lang)
		return title, summary, nil
	}
	return translatedTitle, translatedSummary, nil
}

// parseTranslation extracts the Title:/Summary: lines from a model reply.
func parseTranslation(text string) (title, summary string, ok bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return "", "", false
	}
	if !strings.HasPrefix(lines[0], "Title:") || !strings.HasPrefix(lines[1], "Summary:") {
		return "", "", false
	}
	title = strings.TrimSpace(strings.TrimPrefix(lines[0], "Title:"))
	summary = strings.TrimSpace(strings.TrimPrefix(lines[1], "Summary:"))
	return title, summary, title != ""
}
