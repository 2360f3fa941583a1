package tutor

import (
	"context"

	"github.com/lernkraft/lernkraft/internal/llm"
)

// German fallback content, returned whenever the oracle is unavailable
// or its response is unusable. Shaped like real results so callers never
// need an error branch.
const (
	fallbackExerciseQuestion = "Konnte keine Aufgabe generieren. Bitte versuche es später noch einmal."
	fallbackNoProviderText   = "Fehler: API Key fehlt."
	fallbackFeedbackText     = "Fehler bei der Überprüfung."
	fallbackChatText         = "Ich habe gerade Schwierigkeiten, dir zu antworten."
)

// Service is the gateway to the generative-text oracle. All three
// operations are infallible from the caller's perspective: configuration
// failures, transport errors and malformed responses collapse into
// deterministic fallback values here and never propagate upward.
//
// The Service performs no retries and no caching; one user action maps
// to exactly one oracle call attempt.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a gateway over the given provider. A nil provider
// is valid and models a missing API credential: every operation then
// returns its fallback immediately without an outbound call.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Available reports whether an oracle backend is configured.
func (s *Service) Available() bool {
	return s.provider != nil
}

// GenerateExercise asks the oracle for one practice exercise on the
// given subject and topic. The topic must be validated non-empty by the
// caller; the session layer rejects empty topics before calling here.
func (s *Service) GenerateExercise(ctx context.Context, subject Subject, topic string) Exercise {
	if s.provider == nil {
		return Exercise{Question: fallbackNoProviderText}
	}

	ctx = llm.WithPurpose(ctx, "exercise-gen")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExercisePrompt(subject, topic)},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fallbackExercise()
	}

	ex, ok := decodeExercise(resp.Content)
	if !ok {
		return fallbackExercise()
	}
	return ex
}

// CheckAnswer asks the oracle to grade the learner's answer and returns
// feedback text. Failures yield a fixed apologetic string.
func (s *Service) CheckAnswer(ctx context.Context, question, userAnswer, correctAnswer string) string {
	if s.provider == nil {
		return "Fehler: Konnte Antwort nicht prüfen."
	}

	ctx = llm.WithPurpose(ctx, "answer-check")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCheckPrompt(question, userAnswer, correctAnswer)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil || len(resp.Content) == 0 {
		return fallbackFeedbackText
	}
	return string(resp.Content)
}

// ChatTurn sends one conversation turn to the oracle. The history must
// already include the message being sent; the oracle holds no state
// between calls, so the full turn log travels every time. The tutor
// persona is attached as the system instruction.
func (s *Service) ChatTurn(ctx context.Context, history []ChatMessage) string {
	if s.provider == nil {
		return "Entschuldigung, ich bin gerade nicht erreichbar."
	}

	ctx = llm.WithPurpose(ctx, "tutor-chat")

	msgs := make([]llm.Message, len(history))
	for i, h := range history {
		role := llm.RoleUser
		if h.FromTutor {
			role = llm.RoleAssistant
		}
		msgs[i] = llm.Message{Role: role, Content: h.Content}
	}

	req := llm.Request{
		System:      chatSystemPrompt,
		Messages:    msgs,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil || len(resp.Content) == 0 {
		return fallbackChatText
	}
	return string(resp.Content)
}

func fallbackExercise() Exercise {
	return Exercise{Question: fallbackExerciseQuestion}
}
