package nlp

import (
	"strings"
	"testing"

	"github.com/velocityai/velocity/internal/model"
)

func sampleAnswer() model.StructuredAnswer {
	return model.StructuredAnswer{
		Summary:  "Python is a high-level programming language.",
		KeyFacts: []string{"It was first released in 1991."},
		Entities: []model.Entity{
			{Name: "Python", Category: model.CategoryTopic},
		},
		Sources:         []string{"wikipedia:Python", "https://www.example.com/python"},
		QueryType:       model.QueryDefinition,
		ConfidenceLabel: model.ConfidenceHigh,
		Confidence:      0.9,
	}
}

func TestRenderAlwaysShowsConfidence(t *testing.T) {
	tests := []struct {
		name   string
		answer model.StructuredAnswer
	}{
		{"full answer", sampleAnswer()},
		{"empty answer", model.StructuredAnswer{ConfidenceLabel: model.ConfidenceVeryLow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.answer, false)
			if !strings.Contains(out, "Confidence: ") {
				t.Errorf("missing confidence line in %q", out)
			}
		})
	}
}

func TestRenderSourceLabels(t *testing.T) {
	out := Render(sampleAnswer(), false)

	if !strings.Contains(out, "Sources: wikipedia, example.com") {
		t.Errorf("unexpected source labels in %q", out)
	}
}

func TestRenderVerboseEntities(t *testing.T) {
	answer := sampleAnswer()

	quiet := Render(answer, false)
	if strings.Contains(quiet, "Entities:") {
		t.Errorf("entities shown without verbose: %q", quiet)
	}

	loud := Render(answer, true)
	if !strings.Contains(loud, "[TOPIC] Python") {
		t.Errorf("entities missing in verbose output: %q", loud)
	}
}

func TestRenderCapsSources(t *testing.T) {
	answer := sampleAnswer()
	answer.Sources = []string{
		"wikipedia:A", "duckduckgo:B", "search:https://c.example",
		"knowledge_base:d", "knowledge_base:e", "wikipedia:F",
	}

	out := Render(answer, false)
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "Sources: ") {
			continue
		}
		labels := strings.Split(strings.TrimPrefix(line, "Sources: "), ", ")
		if len(labels) > maxRenderedSources {
			t.Errorf("rendered %d source labels, want at most %d", len(labels), maxRenderedSources)
		}
	}
}

func TestRenderKeyFactsBullets(t *testing.T) {
	out := Render(sampleAnswer(), false)
	if !strings.Contains(out, "Key Facts:") {
		t.Errorf("missing key facts header in %q", out)
	}
	if !strings.Contains(out, "  • It was first released in 1991.") {
		t.Errorf("missing bullet in %q", out)
	}
}
