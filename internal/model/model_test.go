package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kenneds6/LLM-cognitive-flexibility/internal/spec"
)

// fakeDoer replays canned HTTP responses and records requests.
type fakeDoer struct {
	responses []*http.Response
	errs      []error
	requests  []*http.Request
	bodies    []string
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(body))
	}
	index := len(f.requests) - 1
	if index < len(f.errs) && f.errs[index] != nil {
		return nil, f.errs[index]
	}
	return f.responses[index], nil
}

func jsonResponse(status int, payload string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(payload))),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func openAIReply(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + mustJSON(content) + `}}]}`
}

func geminiReply(content string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` + mustJSON(content) + `}]}}]}`
}

func mustJSON(s string) string {
	encoded, _ := json.Marshal(s)
	return string(encoded)
}

func TestFromConfigRejectsUnknownProvider(t *testing.T) {
	cfg := spec.ModelConfig{Provider: "anthropic", Model: "claude"}
	if _, err := FromConfig(cfg, "key", &fakeDoer{}); err == nil {
		t.Fatalf("expected unsupported provider error")
	}
}

func TestFromConfigRequiresAPIKey(t *testing.T) {
	cfg := spec.ModelConfig{Provider: "openai", Model: "gpt-4"}
	if _, err := FromConfig(cfg, "", &fakeDoer{}); err == nil {
		t.Fatalf("expected missing api key error")
	}
}

func TestOpenAIComplete(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{jsonResponse(200, openAIReply("Option 2"))}}
	provider, err := FromConfig(spec.ModelConfig{
		Provider:    "openai",
		Model:       "gpt-4",
		Temperature: 0.7,
		MaxTokens:   100,
	}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}

	reply, err := provider.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "Option 2" {
		t.Fatalf("expected reply %q, got %q", "Option 2", reply)
	}

	req := doer.requests[0]
	if req.URL.String() != "https://api.openai.com/v1/chat/completions" {
		t.Fatalf("unexpected endpoint %q", req.URL)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer secret" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	if !strings.Contains(doer.bodies[0], `"model":"gpt-4"`) {
		t.Fatalf("request body missing model: %s", doer.bodies[0])
	}
}

func TestDeepInfraUsesOpenAICompatibleEndpoint(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{jsonResponse(200, openAIReply("1"))}}
	provider, err := FromConfig(spec.ModelConfig{
		Provider: "deepinfra",
		Model:    "meta-llama/Llama-3-70b",
	}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	if _, err := provider.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := doer.requests[0].URL.String(); got != "https://api.deepinfra.com/v1/openai/chat/completions" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}

func TestOpenAICompleteReportsAPIError(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{jsonResponse(429, `{"error":{"message":"rate limited"}}`)}}
	provider, err := FromConfig(spec.ModelConfig{Provider: "openai", Model: "gpt-4"}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	_, err = provider.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGeminiCompleteSeparatesSystemInstruction(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{jsonResponse(200, geminiReply("vowel"))}}
	provider, err := FromConfig(spec.ModelConfig{
		Provider: "gemini",
		Model:    "gemini-1.5-pro",
	}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}

	reply, err := provider.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "classify letters"},
		{Role: RoleUser, Content: "a5"},
		{Role: RoleAssistant, Content: "vowel"},
		{Role: RoleUser, Content: "b5"},
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "vowel" {
		t.Fatalf("expected reply %q, got %q", "vowel", reply)
	}

	body := doer.bodies[0]
	if !strings.Contains(body, `"systemInstruction"`) {
		t.Fatalf("expected systemInstruction in request: %s", body)
	}
	if !strings.Contains(body, `"role":"model"`) {
		t.Fatalf("expected assistant turn mapped to model role: %s", body)
	}
	if !strings.Contains(doer.requests[0].URL.Path, "gemini-1.5-pro:generateContent") {
		t.Fatalf("unexpected endpoint %q", doer.requests[0].URL)
	}
}

func TestRetryRecoversAfterTransientFailure(t *testing.T) {
	doer := &fakeDoer{
		responses: []*http.Response{nil, jsonResponse(200, openAIReply("2"))},
		errs:      []error{errors.New("connection reset"), nil},
	}
	provider, err := FromConfig(spec.ModelConfig{
		Provider:      "openai",
		Model:         "gpt-4",
		RetryAttempts: 3,
	}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}

	reply, err := provider.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "2" {
		t.Fatalf("expected reply %q, got %q", "2", reply)
	}
	if len(doer.requests) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(doer.requests))
	}
}

func TestRetryGivesUpAfterBoundedAttempts(t *testing.T) {
	failure := errors.New("unavailable")
	doer := &fakeDoer{
		responses: []*http.Response{nil, nil, nil},
		errs:      []error{failure, failure, failure},
	}
	inner, err := FromConfig(spec.ModelConfig{
		Provider:      "openai",
		Model:         "gpt-4",
		RetryAttempts: 3,
	}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	retry, ok := inner.(*retryProvider)
	if !ok {
		t.Fatalf("expected retry wrapper, got %T", inner)
	}
	retry.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	if _, err := retry.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); !errors.Is(err, failure) {
		t.Fatalf("expected final failure, got %v", err)
	}
	if len(doer.requests) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(doer.requests))
	}
}

func TestSessionKeepsHistory(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, openAIReply("Option 1")),
		jsonResponse(200, openAIReply("Option 3")),
	}}
	provider, err := FromConfig(spec.ModelConfig{Provider: "openai", Model: "gpt-4"}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}

	session := NewSession(provider, "match cards")
	if _, err := session.Send(context.Background(), "trial 1"); err != nil {
		t.Fatalf("send: %v", err)
	}
	session.AddFeedback("Correct!")
	if _, err := session.Send(context.Background(), "trial 2"); err != nil {
		t.Fatalf("send: %v", err)
	}

	history := session.History()
	roles := make([]string, 0, len(history))
	for _, message := range history {
		roles = append(roles, message.Role)
	}
	want := []string{RoleSystem, RoleUser, RoleAssistant, RoleUser, RoleUser, RoleAssistant}
	if len(roles) != len(want) {
		t.Fatalf("expected %d turns, got %d: %v", len(want), len(roles), roles)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Fatalf("turn %d: expected role %q, got %q", i, want[i], roles[i])
		}
	}
	if !strings.Contains(doer.bodies[1], "Correct!") {
		t.Fatalf("expected feedback in second request: %s", doer.bodies[1])
	}
}

func TestSessionDropsUnansweredTurnOnError(t *testing.T) {
	doer := &fakeDoer{
		responses: []*http.Response{nil},
		errs:      []error{errors.New("boom")},
	}
	provider, err := FromConfig(spec.ModelConfig{Provider: "openai", Model: "gpt-4"}, "secret", doer)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}

	session := NewSession(provider, "match cards")
	if _, err := session.Send(context.Background(), "trial 1"); err == nil {
		t.Fatalf("expected send error")
	}
	if got := len(session.History()); got != 1 {
		t.Fatalf("expected only the system turn, got %d turns", got)
	}
}

func TestExtractChoice(t *testing.T) {
	cases := []struct {
		reply string
		want  int
	}{
		{"Option 2", 1},
		{"I choose option 4 because it matches.", 3},
		{"3", 2},
		{"The answer is 1.", 0},
	}
	for _, tc := range cases {
		got, err := ExtractChoice(tc.reply, 4)
		if err != nil {
			t.Fatalf("%q: %v", tc.reply, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %d, got %d", tc.reply, tc.want, got)
		}
	}
}

func TestExtractChoiceRejectsBadReplies(t *testing.T) {
	for _, reply := range []string{"", "no idea", "option 5", "0"} {
		if _, err := ExtractChoice(reply, 4); err == nil {
			t.Fatalf("expected error for reply %q", reply)
		}
	}
}

func TestExtractClassification(t *testing.T) {
	cases := []struct {
		reply string
		want  string
	}{
		{"vowel", "vowel"},
		{"The letter is a Consonant.", "consonant"},
		{"It is even, not odd.", "even"},
		{"ODD", "odd"},
	}
	for _, tc := range cases {
		got, err := ExtractClassification(tc.reply)
		if err != nil {
			t.Fatalf("%q: %v", tc.reply, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.reply, tc.want, got)
		}
	}

	if _, err := ExtractClassification("no classification here"); err == nil {
		t.Fatalf("expected error for reply without keyword")
	}
}
