// Package model sends chat prompts to LLM providers and parses their
// classification replies. Providers share a Session type that carries the
// system prompt and running message history across the trials of one
// evaluation.
package model

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider completes a chat conversation and returns the assistant reply.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// FromConfig builds a provider for a model entry. The API key comes from the
// caller so secrets never live in the config file.
func FromConfig(cfg spec.ModelConfig, apiKey string, client HTTPDoer) (Provider, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model: model name is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("model: api key is required")
	}
	if client == nil {
		client = http.DefaultClient
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "openai":
		base, err = newOpenAIProvider(cfg, apiKey, defaultOpenAIBaseURL, client)
	case "deepinfra":
		base, err = newOpenAIProvider(cfg, apiKey, defaultDeepInfraBaseURL, client)
	case "gemini":
		base, err = newGeminiProvider(cfg, apiKey, client)
	default:
		return nil, fmt.Errorf("model: unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return withRetry(base, cfg), nil
}

// Session holds the system prompt and message history for one conversation.
// Feedback from each trial stays in the history so the model can infer the
// hidden rule from prior turns.
type Session struct {
	provider Provider
	history  []Message
}

// NewSession starts a conversation with a system prompt.
func NewSession(provider Provider, systemPrompt string) *Session {
	history := make([]Message, 0, 8)
	if systemPrompt != "" {
		history = append(history, Message{Role: RoleSystem, Content: systemPrompt})
	}
	return &Session{provider: provider, history: history}
}

// Send appends a user message, completes the conversation, and records the
// assistant reply in the history.
func (s *Session) Send(ctx context.Context, content string) (string, error) {
	s.history = append(s.history, Message{Role: RoleUser, Content: content})
	reply, err := s.provider.Complete(ctx, s.history)
	if err != nil {
		// Drop the unanswered turn so a retry at the caller level
		// does not duplicate the prompt.
		s.history = s.history[:len(s.history)-1]
		return "", err
	}
	s.history = append(s.history, Message{Role: RoleAssistant, Content: reply})
	return reply, nil
}

// AddFeedback appends a user turn without requesting a completion. The next
// Send includes it in the conversation.
func (s *Session) AddFeedback(content string) {
	s.history = append(s.history, Message{Role: RoleUser, Content: content})
}

// History returns the accumulated conversation.
func (s *Session) History() []Message {
	return s.history
}
