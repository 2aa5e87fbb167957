package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeOllama serves the three API endpoints the backend uses.
func fakeOllama(t *testing.T, generateResponse string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]string{{"name": "dolphin-mistral:latest"}},
		})
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad generate request: %v", err)
		}
		if req.Stream {
			t.Error("stream must be false")
		}
		if req.Format != "json" {
			t.Errorf("format: got %q, want json", req.Format)
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: generateResponse})
	})
	mux.HandleFunc("/api/pull", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success"}`))
	})
	return httptest.NewServer(mux)
}

func TestOllamaBackend_Analyze(t *testing.T) {
	ts := fakeOllama(t, `{"summary": "coding", "category": "Programming", "productivity_score": 8, "key_activities": [], "confidence": 0.9}`)
	defer ts.Close()

	backend := NewOllamaBackend(ts.URL)
	out, err := backend.Analyze(context.Background(), AnalysisRequest{
		Text:    "some screen text long enough",
		Model:   "dolphin-mistral:latest",
		Context: AnalysisContext{AppName: "App"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Category != CategoryProgramming || out.Confidence != 0.9 {
		t.Errorf("got %+v", out)
	}
}

func TestOllamaBackend_AnalyzeFocus(t *testing.T) {
	ts := fakeOllama(t, `{"classification": "not_focused", "confidence": 0.7, "reasoning": "off task"}`)
	defer ts.Close()

	backend := NewOllamaBackend(ts.URL)
	out, err := backend.AnalyzeFocus(context.Background(), AnalysisRequest{
		Text:    "some screen text long enough",
		Model:   "dolphin-mistral:latest",
		Context: AnalysisContext{AppName: "App", UserFocus: "goal"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Classification != FocusNotFocused {
		t.Errorf("classification: got %q", out.Classification)
	}
}

func TestOllamaBackend_ListModels(t *testing.T) {
	ts := fakeOllama(t, "")
	defer ts.Close()

	models, err := NewOllamaBackend(ts.URL).ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 1 || models[0] != "dolphin-mistral:latest" {
		t.Errorf("got %v", models)
	}
}

func TestOllamaBackend_ListModelsUnreachable(t *testing.T) {
	backend := NewOllamaBackend("http://127.0.0.1:1")
	if _, err := backend.ListModels(context.Background()); err == nil {
		t.Error("expected error for unreachable host")
	}
}

func TestOllamaBackend_GenerateErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer ts.Close()

	backend := NewOllamaBackend(ts.URL)
	_, err := backend.Analyze(context.Background(), AnalysisRequest{
		Text:    "some screen text long enough",
		Model:   "missing",
		Context: AnalysisContext{AppName: "App"},
	})
	if err == nil {
		t.Error("expected error for non-200 generate")
	}
}

func TestOllamaBackend_MalformedModelOutput(t *testing.T) {
	ts := fakeOllama(t, "I cannot answer in JSON, sorry")
	defer ts.Close()

	backend := NewOllamaBackend(ts.URL)
	_, err := backend.Analyze(context.Background(), AnalysisRequest{
		Text:    "some screen text long enough",
		Model:   "dolphin-mistral:latest",
		Context: AnalysisContext{AppName: "App"},
	})
	if err == nil {
		t.Error("expected error for non-JSON model output")
	}
}

func TestOllamaBackend_PullModel(t *testing.T) {
	ts := fakeOllama(t, "")
	defer ts.Close()

	if err := NewOllamaBackend(ts.URL).PullModel(context.Background(), "llama3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
