package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// mockLLMService implements driven.LLMService for testing.
// Every request is recorded; CompleteFunc decides the response.
type mockLLMService struct {
	mu           sync.Mutex
	requests     []driven.CompletionRequest
	CompleteFunc func(req driven.CompletionRequest) (*driven.Completion, error)
	attachments  map[string]bool
}

func newMockLLM(response string) *mockLLMService {
	return &mockLLMService{
		CompleteFunc: func(_ driven.CompletionRequest) (*driven.Completion, error) {
			return &driven.Completion{Text: response, StopReason: "end_turn"}, nil
		},
	}
}

func (m *mockLLMService) Complete(_ context.Context, req driven.CompletionRequest) (*driven.Completion, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.CompleteFunc(req)
}

func (m *mockLLMService) SupportsAttachment(mimeType string) bool {
	return m.attachments[mimeType]
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

func (m *mockLLMService) lastRequest() driven.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return driven.CompletionRequest{}
	}
	return m.requests[len(m.requests)-1]
}

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}

// mockSecrets implements driven.SecretSource for testing.
type mockSecrets map[string]string

func (m mockSecrets) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}

// --- Test helpers ---

func sessionWith(sources ...domain.Source) *domain.Session {
	sess := domain.NewSession("test-session")
	for _, src := range sources {
		sess.AddSource(src)
	}
	return sess
}

func textSource(id, name, text string) domain.Source {
	return domain.NewSource(id, name, domain.SourceKindText, text, 0)
}

func pdfSource(id, name, text string, pages int) domain.Source {
	return domain.NewSource(id, name, domain.SourceKindPDF, text, pages)
}

func userPrompt(req driven.CompletionRequest) string {
	if len(req.Messages) == 0 {
		return ""
	}
	return req.Messages[len(req.Messages)-1].Content
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
