package qa

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/asantekofi/ricedoctor/internal/model/disease"
)

var ErrEmptyQuestion = errors.New("question is empty")

// NotFoundReply is returned when no knowledge-base keyword appears in the
// question.
const NotFoundReply = "I couldn't match your question to a specific disease. " +
	"Try including the name, like 'blast', 'blight', or 'tungro'."

// Result is the outcome of one question.
type Result struct {
	Answer  string `json:"answer"`
	Disease string `json:"disease,omitempty"`
	Matched bool   `json:"matched"`
}

// Service selects a context passage for a question and delegates answer
// generation to the configured provider. A nil provider means the model was
// unavailable at startup; the service then degrades to returning the raw
// passage.
type Service struct {
	store    disease.Store
	provider Provider
}

// NewService wires the knowledge base and the optional QA provider.
func NewService(store disease.Store, provider Provider) *Service {
	return &Service{store: store, provider: provider}
}

// ProviderAvailable reports whether a hosted model is wired in.
func (s *Service) ProviderAvailable() bool {
	return s.provider != nil
}

// Ask answers a single question to completion.
func (s *Service) Ask(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}

	entry, ok := s.store.Match(question)
	if !ok {
		return Result{Answer: NotFoundReply}, nil
	}

	if s.provider == nil {
		return fallback(entry), nil
	}

	answer, err := s.provider.Answer(ctx, question, entry.Description)
	if err != nil || strings.TrimSpace(answer) == "" {
		// Model failures never fail the interaction; the raw passage is
		// still a useful reply.
		log.Printf("[qa] provider failed, falling back to passage: %v", err)
		return fallback(entry), nil
	}

	return Result{Answer: answer, Disease: entry.Name, Matched: true}, nil
}

// AskStream resolves the context for a question and opens a streamed answer.
// When no stream is possible (no match, no provider, or provider error) the
// returned stream is nil and the Result already carries the final answer.
func (s *Service) AskStream(ctx context.Context, question string) (Result, *schema.StreamReader[*schema.Message], error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, nil, ErrEmptyQuestion
	}

	entry, ok := s.store.Match(question)
	if !ok {
		return Result{Answer: NotFoundReply}, nil, nil
	}

	if s.provider == nil {
		return fallback(entry), nil, nil
	}

	stream, err := s.provider.Stream(ctx, question, entry.Description)
	if err != nil {
		log.Printf("[qa] provider stream failed, falling back to passage: %v", err)
		return fallback(entry), nil, nil
	}

	return Result{Disease: entry.Name, Matched: true}, stream, nil
}

func fallback(entry disease.Entry) Result {
	return Result{Answer: entry.Description, Disease: entry.Name, Matched: true}
}
