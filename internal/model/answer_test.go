package model

import "testing"

func TestLabelForConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		want       ConfidenceLabel
	}{
		{1.0, ConfidenceHigh},
		{0.8, ConfidenceHigh},
		{0.79, ConfidenceModerate},
		{0.55, ConfidenceModerate},
		{0.54, ConfidenceLow},
		{0.3, ConfidenceLow},
		{0.29, ConfidenceVeryLow},
		{0.0, ConfidenceVeryLow},
	}

	for _, tt := range tests {
		if got := LabelForConfidence(tt.confidence); got != tt.want {
			t.Errorf("LabelForConfidence(%f) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestAddEvidence(t *testing.T) {
	var state EvidenceState

	state.AddEvidence("python", EvidenceItem{Content: "a", Confidence: 0.9})
	state.AddEvidence("python", EvidenceItem{Content: "b", Confidence: 0.5})
	state.AddEvidence("go", EvidenceItem{Content: "c", Confidence: 0.7})

	if len(state.Knowledge["python"]) != 2 {
		t.Errorf("python bucket = %d items, want 2", len(state.Knowledge["python"]))
	}
	if len(state.Knowledge["go"]) != 1 {
		t.Errorf("go bucket = %d items, want 1", len(state.Knowledge["go"]))
	}
}
