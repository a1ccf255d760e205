package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/asantekofi/ricedoctor/internal/config"
)

// Provider abstracts the hosted extractive QA capability so handlers and
// tests can swap in fakes.
type Provider interface {
	Answer(ctx context.Context, question, passage string) (string, error)
	Stream(ctx context.Context, question, passage string) (*schema.StreamReader[*schema.Message], error)
}

const systemPrompt = "You are an assistant for rice farmers. Answer the question using only the passage " +
	"below. Reply with the shortest span of the passage that answers the question, without adding " +
	"information that is not in the passage. If the passage does not contain the answer, reply with " +
	"the most relevant sentence of the passage.\n\nPassage:\n{passage}"

// ArkProvider answers questions through a compiled eino chain backed by an
// Ark chat model.
type ArkProvider struct {
	cfg   config.QAConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArkProvider builds and compiles the QA chain. The model client is
// created once here and reused for the process lifetime.
func NewArkProvider(ctx context.Context, cfg config.QAConfig) (*ArkProvider, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{question}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile qa chain: %w", err)
	}

	return &ArkProvider{cfg: cfg, chain: runnable}, nil
}

// StreamingEnabled reports whether streamed answers were configured.
func (p *ArkProvider) StreamingEnabled() bool {
	return p.cfg.Stream
}

// Answer runs the chain once and returns the extracted span.
func (p *ArkProvider) Answer(ctx context.Context, question, passage string) (string, error) {
	response, err := p.chain.Invoke(ctx, chainInput(question, passage))
	if err != nil {
		return "", fmt.Errorf("failed to run qa chain: %w", err)
	}
	return strings.TrimSpace(response.Content), nil
}

// Stream runs the chain in streaming mode.
func (p *ArkProvider) Stream(ctx context.Context, question, passage string) (*schema.StreamReader[*schema.Message], error) {
	if !p.cfg.Stream {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	stream, err := p.chain.Stream(ctx, chainInput(question, passage))
	if err != nil {
		return nil, fmt.Errorf("failed to stream qa chain output: %w", err)
	}
	return stream, nil
}

func chainInput(question, passage string) map[string]any {
	return map[string]any{
		"passage":  passage,
		"question": question,
	}
}
