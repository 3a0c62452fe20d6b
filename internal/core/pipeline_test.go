package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/velocityai/velocity/internal/model"
)

func testConfig(t *testing.T, wikipediaURL, duckduckgoURL string) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 2 * time.Second
	cfg.Interrogator.WikipediaBaseURL = wikipediaURL
	cfg.Interrogator.DuckDuckGoBaseURL = duckduckgoURL
	cfg.Interrogator.RespectRobots = false
	return cfg
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	return server
}

func offlinePipeline(t *testing.T) *Pipeline {
	t.Helper()
	failing := failingServer(t)
	p, err := NewPipeline(testConfig(t, failing.URL, failing.URL))
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

func TestAskFallsBackToLocalKnowledge(t *testing.T) {
	p := offlinePipeline(t)

	result, err := p.Ask(context.Background(), "what is python", "")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if result.Answer.Summary == "" {
		t.Error("expected non-empty summary")
	}
	for _, src := range result.Answer.Sources {
		if !strings.HasPrefix(src, "knowledge_base:") {
			t.Errorf("unexpected source %q with endpoints down", src)
		}
	}
	if result.Answer.Confidence != confidenceLocal {
		t.Errorf("confidence = %f, want %f", result.Answer.Confidence, confidenceLocal)
	}
	if !strings.Contains(result.Rendered, "Confidence: ") {
		t.Errorf("rendered output missing confidence line: %q", result.Rendered)
	}
}

func TestAskUsesEncyclopedicSource(t *testing.T) {
	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Python","extract":"Python is a high-level programming language created by Guido van Rossum and first released in 1991."}`))
	}))
	t.Cleanup(wiki.Close)

	p, err := NewPipeline(testConfig(t, wiki.URL, failingServer(t).URL))
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	result, err := p.Ask(context.Background(), "what is python", "")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if result.Answer.Confidence != confidenceWikipedia {
		t.Errorf("confidence = %f, want %f", result.Answer.Confidence, confidenceWikipedia)
	}
	if result.Answer.ConfidenceLabel != model.ConfidenceHigh {
		t.Errorf("label = %s, want High", result.Answer.ConfidenceLabel)
	}
	if !strings.Contains(result.Answer.Summary, "Python") {
		t.Errorf("summary = %q", result.Answer.Summary)
	}
}

func TestAskServesSecondCallFromCache(t *testing.T) {
	p := offlinePipeline(t)
	ctx := context.Background()

	first, err := p.Ask(ctx, "what is python", "")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if first.FromCache {
		t.Error("first call must not come from cache")
	}

	second, err := p.Ask(ctx, "what is python", "")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !second.FromCache {
		t.Error("second call should come from cache")
	}
	if second.Answer.Summary != first.Answer.Summary {
		t.Errorf("cached answer differs:\nfirst:  %q\nsecond: %q", first.Answer.Summary, second.Answer.Summary)
	}
}

func TestAskDisabledCache(t *testing.T) {
	failing := failingServer(t)
	cfg := testConfig(t, failing.URL, failing.URL)
	cfg.Cache.Enabled = false

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	ctx := context.Background()
	if _, err := p.Ask(ctx, "what is python", ""); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	second, err := p.Ask(ctx, "what is python", "")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if second.FromCache {
		t.Error("cache disabled but answer served from cache")
	}
}

func TestAskTracksConversationSessions(t *testing.T) {
	p := offlinePipeline(t)
	ctx := context.Background()

	if _, err := p.Ask(ctx, "what is python", "session-1"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got := p.ActiveSessions(); got != 1 {
		t.Errorf("ActiveSessions() = %d, want 1", got)
	}
	if !p.EndSession("session-1") {
		t.Error("expected session to exist")
	}
	if got := p.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", got)
	}
}

func TestEvaluateHypothesesFromRecords(t *testing.T) {
	p := offlinePipeline(t)
	ctx := context.Background()

	records := p.Gather(ctx, []string{"what is python"})
	if len(records) == 0 {
		t.Fatal("expected evidence records")
	}

	hypotheses := []string{
		"Python is a high-level interpreted programming language",
		"Python is a species of large constricting snake only",
	}
	scores := p.EvaluateHypotheses(ctx, hypotheses, records)

	if len(scores) != len(hypotheses) {
		t.Fatalf("expected %d scores, got %d", len(hypotheses), len(scores))
	}
	for i, s := range scores {
		if s.Hypothesis != hypotheses[i] {
			t.Errorf("score %d out of order", i)
		}
		if s.Score < 0 || s.Score > 1 {
			t.Errorf("score %d = %f outside [0,1]", i, s.Score)
		}
	}
}

func TestPoolConfidence(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    float64
	}{
		{"empty", nil, 0.0},
		{"single wikipedia", []string{"wikipedia:Python"}, confidenceWikipedia},
		{"mixed", []string{"wikipedia:A", "knowledge_base:b"}, (confidenceWikipedia + confidenceLocal) / 2},
		{"unknown tag", []string{"weird"}, confidenceSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := poolConfidence(tt.sources); got != tt.want {
				t.Errorf("poolConfidence(%v) = %f, want %f", tt.sources, got, tt.want)
			}
		})
	}
}
