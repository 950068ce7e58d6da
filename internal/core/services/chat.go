package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers questions about the loaded material.
type ChatService struct {
	gen     *Generator
	prompts *Prompts
	limits  domain.Limits
	window  int
}

// NewChatService creates a chat service that sends at most window prior turns per question.
func NewChatService(gen *Generator, prompts *Prompts, limits domain.Limits, window int) *ChatService {
	if window <= 0 {
		window = domain.DefaultChatWindow
	}
	return &ChatService{
		gen:     gen,
		prompts: prompts,
		limits:  limits,
		window:  window,
	}
}

// Ask answers one question. The exchange is appended to the session only
// when the LLM call succeeds.
func (s *ChatService) Ask(ctx context.Context, sess *domain.Session, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}
	corpus, err := requireCorpus(sess)
	if err != nil {
		return "", err
	}

	logger.Section("Chat")
	text, truncated := Truncate(corpus.Text, s.limits.ChatChars)

	sources := sess.Sources()
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}

	system, err := s.prompts.Render(driven.PromptChatSystem, ChatPromptData{
		SourceNames: names,
		Corpus:      text,
	})
	if err != nil {
		return "", err
	}

	history := sess.RecentTurns(s.window)
	logger.Debug("Sending %d prior turn(s)", len(history))

	answer, err := s.gen.Generate(ctx, GenerationRequest{
		Task:      "chat",
		System:    system,
		History:   history,
		Prompt:    question,
		MaxTokens: ChatBudget.For(corpus.TotalUnits, s.gen.Ceiling()),
		Truncated: truncated,
	})
	if err != nil {
		return "", err
	}

	sess.AppendExchange(question, answer)
	return answer, nil
}
