package nlp

import (
	"strings"
	"testing"

	"github.com/velocityai/velocity/internal/model"
)

func TestDetectQueryType(t *testing.T) {
	tests := []struct {
		query string
		want  model.QueryType
	}{
		{"Who is Ada Lovelace?", model.QueryBiographical},
		{"Kael Valen kimdir?", model.QueryBiographical},
		{"What is Python?", model.QueryDefinition},
		{"Python nedir?", model.QueryDefinition},
		{"Python vs JavaScript", model.QueryComparative},
		{"how to install the toolchain", model.QueryProcedural},
		{"why is the sky blue", model.QueryCausal},
		{"tell me about Paris", model.QueryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := DetectQueryType(tt.query); got != tt.want {
				t.Errorf("DetectQueryType(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestQuerySubject(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Who is Ada Lovelace?", "Ada Lovelace"},
		{"Kael Valen kimdir?", "Kael Valen"},
		{"What is quantum computing?", "quantum computing"},
		{"Paris", "Paris"},
		{"where does the sun set?", "where does the sun set"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := QuerySubject(tt.query); got != tt.want {
				t.Errorf("QuerySubject(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractKeyFactsDeduplicates(t *testing.T) {
	ranked := []model.Sentence{
		{Text: "Python is a high-level programming language used worldwide.", Index: 0, Score: 0.9},
		{Text: "Python is a high-level programming language used widely.", Index: 1, Score: 0.8},
		{Text: "It supports object-oriented and functional styles of development.", Index: 2, Score: 0.7},
	}

	facts := ExtractKeyFacts(ranked, "what is python", 5)
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts after dedupe, got %d: %v", len(facts), facts)
	}
	for _, f := range facts {
		if len(f) <= minFactChars {
			t.Errorf("fact too short: %q", f)
		}
		if !strings.ContainsAny(f[len(f)-1:], ".!?") {
			t.Errorf("fact missing terminal punctuation: %q", f)
		}
	}
}

func TestExtractKeyFactsRespectsLimit(t *testing.T) {
	ranked := []model.Sentence{
		{Text: "Quantum computers use qubits in superposition states.", Index: 0, Score: 0.9},
		{Text: "Entanglement links qubit pairs across physical distance boundaries.", Index: 1, Score: 0.8},
		{Text: "Classical machines encode information strictly as zeros and ones.", Index: 2, Score: 0.7},
	}

	facts := ExtractKeyFacts(ranked, "quantum computing", 2)
	if len(facts) != 2 {
		t.Errorf("expected 2 facts, got %d", len(facts))
	}
}

func TestComposeRestoresDocumentOrder(t *testing.T) {
	ranked := []model.Sentence{
		{Text: "the ranking stage scores candidates with transparent heuristics", Index: 5, Score: 0.9},
		{Text: "velocity gathers live evidence from public knowledge endpoints", Index: 1, Score: 0.5},
	}

	out := Compose(ranked, nil, "tell me about velocity", model.QueryGeneral, 5)

	first := strings.Index(out, "Velocity gathers")
	second := strings.Index(out, "The ranking stage")
	if first == -1 || second == -1 {
		t.Fatalf("expected both sentences in output, got %q", out)
	}
	if first > second {
		t.Errorf("expected document order restored, got %q", out)
	}
}

func TestComposeBiographicalLeadsWithIdentity(t *testing.T) {
	ranked := []model.Sentence{
		{Text: "the team shipped four releases during the last cycle", Index: 0, Score: 0.9},
		{Text: "Kael Valen is a researcher known for systematic learning", Index: 3, Score: 0.8, IsBiographical: true},
	}

	out := Compose(ranked, nil, "Kael Valen kimdir?", model.QueryBiographical, 5)
	if !strings.HasPrefix(out, "Kael Valen is a researcher") {
		t.Errorf("expected biographical sentence first, got %q", out)
	}
}

func TestComposeEmptySelection(t *testing.T) {
	out := Compose(nil, nil, "What is flurbotron?", model.QueryDefinition, 5)
	want := "No clear information found for 'flurbotron'."
	if out != want {
		t.Errorf("Compose() = %q, want %q", out, want)
	}
}
