package qa

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/asantekofi/ricedoctor/internal/model/disease"
)

type fakeProvider struct {
	answer string
	err    error
}

func (f *fakeProvider) Answer(_ context.Context, _, _ string) (string, error) {
	return f.answer, f.err
}

func (f *fakeProvider) Stream(_ context.Context, _, _ string) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in fake")
}

func TestAskMatchedQuestion(t *testing.T) {
	store := disease.NewMemoryStore(disease.Seed())
	svc := NewService(store, &fakeProvider{answer: "the fungus Magnaporthe oryzae"})

	result, err := svc.Ask(context.Background(), "What causes rice blast?")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if !result.Matched {
		t.Fatal("expected a matched result")
	}
	if result.Disease != "Rice Blast" {
		t.Fatalf("unexpected disease: %q", result.Disease)
	}
	if result.Answer != "the fungus Magnaporthe oryzae" {
		t.Fatalf("unexpected answer: %q", result.Answer)
	}
}

func TestAskProviderErrorFallsBackToPassage(t *testing.T) {
	store := disease.NewMemoryStore(disease.Seed())
	svc := NewService(store, &fakeProvider{err: errors.New("model down")})

	result, err := svc.Ask(context.Background(), "what is sheath blight?")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if !result.Matched {
		t.Fatal("expected a matched result despite provider failure")
	}
	if !strings.Contains(result.Answer, "Rhizoctonia solani") {
		t.Fatalf("expected raw passage fallback, got %q", result.Answer)
	}
}

func TestAskNilProviderFallsBackToPassage(t *testing.T) {
	store := disease.NewMemoryStore(disease.Seed())
	svc := NewService(store, nil)

	result, err := svc.Ask(context.Background(), "tell me about tungro")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if !result.Matched || result.Disease != "Rice Tungro" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.Contains(result.Answer, "leafhoppers") {
		t.Fatalf("expected raw passage, got %q", result.Answer)
	}
}

func TestAskNoMatchReturnsFixedReply(t *testing.T) {
	store := disease.NewMemoryStore(disease.Seed())
	svc := NewService(store, &fakeProvider{answer: "should never be called"})

	result, err := svc.Ask(context.Background(), "tell me about aliens")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if result.Matched {
		t.Fatal("expected no match")
	}
	if result.Answer != NotFoundReply {
		t.Fatalf("expected fixed not-found reply, got %q", result.Answer)
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	store := disease.NewMemoryStore(disease.Seed())
	svc := NewService(store, nil)

	if _, err := svc.Ask(context.Background(), "   "); err != ErrEmptyQuestion {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAskStreamFallsBackWithoutProvider(t *testing.T) {
	store := disease.NewMemoryStore(disease.Seed())
	svc := NewService(store, nil)

	result, stream, err := svc.AskStream(context.Background(), "what is bakanae?")
	if err != nil {
		t.Fatalf("AskStream err: %v", err)
	}
	if stream != nil {
		t.Fatal("expected nil stream without provider")
	}
	if !result.Matched || result.Answer == "" {
		t.Fatalf("expected final fallback answer, got %+v", result)
	}
}
