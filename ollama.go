package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// OllamaBackend talks to a local Ollama server over its REST API.
type OllamaBackend struct {
	host   string
	client *http.Client
}

func NewOllamaBackend(host string) *OllamaBackend {
	return &OllamaBackend{
		host:   host,
		client: externalHTTPClient,
	}
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// generateOptions keeps the model deterministic-ish and the answer short.
var generateOptions = map[string]any{
	"temperature": 0.3,
	"top_p":       0.9,
	"num_predict": 500,
}

func (o *OllamaBackend) Analyze(ctx context.Context, req AnalysisRequest) (backendAnalysis, error) {
	raw, err := o.generate(ctx, req.Model, buildAnalysisPrompt(req))
	if err != nil {
		return backendAnalysis{}, err
	}
	return parseBackendAnalysis(raw)
}

func (o *OllamaBackend) AnalyzeFocus(ctx context.Context, req AnalysisRequest) (backendFocus, error) {
	raw, err := o.generate(ctx, req.Model, buildFocusPrompt(req))
	if err != nil {
		return backendFocus{}, err
	}
	return parseBackendFocus(raw)
}

// generate runs a single non-streaming completion with format=json.
func (o *OllamaBackend) generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, backendCallTimeout)
	defer cancel()

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Format:  "json",
		Options: generateOptions,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(respBody))
	}

	var gen ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", fmt.Errorf("decoding generate response: %w", err)
	}
	return gen.Response, nil
}

// ListModels pings /api/tags; it doubles as the reachability probe.
func (o *OllamaBackend) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", o.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags returned %d", resp.StatusCode)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding tags response: %w", err)
	}
	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

func (o *OllamaBackend) PullModel(ctx context.Context, model string) error {
	ctx, cancel := context.WithTimeout(ctx, pullTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"name": model})
	if err != nil {
		return fmt.Errorf("marshaling pull request: %w", err)
	}

	log.Printf("ollama pull model=%s", model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.host+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ollama pull: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; pull streams progress lines.
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama pull returned %d", resp.StatusCode)
	}
	return nil
}
