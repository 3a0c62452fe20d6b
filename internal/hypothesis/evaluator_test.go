package hypothesis

import (
	"context"
	"testing"

	"github.com/velocityai/velocity/internal/model"
)

func sampleState() model.EvidenceState {
	var state model.EvidenceState
	state.AddEvidence("python", model.EvidenceItem{
		Content:    "Python is a high-level programming language created by Guido van Rossum",
		Confidence: 0.9,
	})
	state.AddEvidence("python", model.EvidenceItem{
		Content:    "Python emphasizes code readability and supports multiple paradigms",
		Confidence: 0.7,
	})
	return state
}

func TestEvaluateParallelScoresInRange(t *testing.T) {
	e := NewEvaluator()
	hypotheses := []string{
		"Python is a high-level programming language with readable syntax",
		"The moon is made of green cheese and orbits backwards",
		"",
	}

	scores := e.EvaluateParallel(context.Background(), hypotheses, sampleState())

	if len(scores) != len(hypotheses) {
		t.Fatalf("expected %d scores, got %d", len(hypotheses), len(scores))
	}
	for i, s := range scores {
		if s.Score < 0 || s.Score > 1 {
			t.Errorf("score %d = %f, outside [0,1]", i, s.Score)
		}
		if s.Hypothesis != hypotheses[i] {
			t.Errorf("score %d hypothesis = %q, want %q (input order preserved)", i, s.Hypothesis, hypotheses[i])
		}
		if s.Method != scoringMethod {
			t.Errorf("score %d method = %q, want %q", i, s.Method, scoringMethod)
		}
	}
}

func TestEvaluateParallelEmpty(t *testing.T) {
	e := NewEvaluator()
	scores := e.EvaluateParallel(context.Background(), nil, sampleState())
	if len(scores) != 0 {
		t.Errorf("expected no scores, got %v", scores)
	}
}

func TestScoreHypothesisEvidenceSupport(t *testing.T) {
	state := sampleState()

	supported := scoreHypothesis("Python is a high-level programming language created by Guido van Rossum", state)
	unsupported := scoreHypothesis("Bananas ripen faster in warm bags", state)

	if supported <= unsupported {
		t.Errorf("supported score %f should exceed unsupported %f", supported, unsupported)
	}
}

func TestScoreHypothesisContradictionPenalty(t *testing.T) {
	state := sampleState()
	claim := "Python was created in 1991"

	base := scoreHypothesis(claim, state)

	state.Contradictions = append(state.Contradictions, model.Contradiction{
		ClaimA:   "Python was created in 1991",
		ClaimB:   "Python was created in 2005",
		Severity: 1.0,
	})
	penalized := scoreHypothesis(claim, state)

	if penalized >= base {
		t.Errorf("penalized score %f should be below base %f", penalized, base)
	}
}

func TestScoreHypothesisDeterministic(t *testing.T) {
	var state model.EvidenceState
	topics := []string{"python", "go", "rust", "java", "haskell", "lisp", "prolog"}
	for i, topic := range topics {
		state.AddEvidence(topic, model.EvidenceItem{
			Content:    "the " + topic + " language supports structured programming",
			Confidence: 0.1 + 0.1*float64(i),
		})
	}

	hypothesis := "the language supports structured programming"
	first := scoreHypothesis(hypothesis, state)
	for i := 0; i < 100; i++ {
		if got := scoreHypothesis(hypothesis, state); got != first {
			t.Fatalf("run %d score = %v, first run = %v", i, got, first)
		}
	}
}

func TestScoreHypothesisEmptyHypothesis(t *testing.T) {
	score := scoreHypothesis("", model.EvidenceState{})
	if score != 0 {
		t.Errorf("score = %f, want 0", score)
	}
}

func TestTextOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "alpha beta", "alpha beta", 1.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
		{"empty", "", "alpha", 0.0},
		{"case insensitive", "Alpha Beta", "alpha beta", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("textOverlap(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStatsTracking(t *testing.T) {
	e := NewEvaluator()
	e.EvaluateParallel(context.Background(), []string{"a claim", "another claim"}, model.EvidenceState{})

	stats := e.GetStats()
	if stats.HypothesesEvaluated != 2 {
		t.Errorf("hypotheses evaluated = %d, want 2", stats.HypothesesEvaluated)
	}
}
