// Package ratelimit throttles requests to an LLM service.
// It only delays calls; it never retries a failed one.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// LLMService wraps another LLM service with a token bucket.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter
}

// Wrap returns next throttled to requestsPerMinute. A non-positive rate
// returns next unchanged.
func Wrap(next driven.LLMService, requestsPerMinute int) driven.LLMService {
	if next == nil || requestsPerMinute <= 0 {
		return next
	}
	return New(next, rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1))
}

// New wraps next with an explicit limiter.
func New(next driven.LLMService, limiter *rate.Limiter) *LLMService {
	return &LLMService{next: next, limiter: limiter}
}

// Complete waits for a token and then forwards the request.
func (s *LLMService) Complete(ctx context.Context, req driven.CompletionRequest) (*driven.Completion, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return s.next.Complete(ctx, req)
}

// SupportsAttachment forwards to the wrapped service.
func (s *LLMService) SupportsAttachment(mimeType string) bool {
	return s.next.SupportsAttachment(mimeType)
}

// ModelName forwards to the wrapped service.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping is not throttled.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}
