package main

import (
	"context"
	"fmt"
	"log"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicBackend serves the same Backend contract through the Anthropic
// Messages API. It is selected with backend_provider=anthropic, for setups
// without a local Ollama install. The API has no tags/pull management, so
// ListModels reports the configured model and PullModel is a no-op.
type AnthropicBackend struct {
	client anthropic.Client
	model  string
}

func NewAnthropicBackend(apiKey, model string) *AnthropicBackend {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicBackend{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

const anthropicSystemPrompt = "You analyze OCR'd screen activity. Respond with JSON only (no markdown)."

func (a *AnthropicBackend) Analyze(ctx context.Context, req AnalysisRequest) (backendAnalysis, error) {
	raw, err := a.complete(ctx, buildAnalysisPrompt(req))
	if err != nil {
		return backendAnalysis{}, err
	}
	return parseBackendAnalysis(raw)
}

func (a *AnthropicBackend) AnalyzeFocus(ctx context.Context, req AnalysisRequest) (backendFocus, error) {
	raw, err := a.complete(ctx, buildFocusPrompt(req))
	if err != nil {
		return backendFocus{}, err
	}
	return parseBackendFocus(raw)
}

func (a *AnthropicBackend) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, backendCallTimeout)
	defer cancel()

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: anthropicSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Printf("anthropic error: %v", err)
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}

func (a *AnthropicBackend) ListModels(ctx context.Context) ([]string, error) {
	return []string{a.model}, nil
}

func (a *AnthropicBackend) PullModel(ctx context.Context, model string) error {
	return nil
}
