package model

// EvidenceRecord is one piece of retrieved text attributed to a source.
// Produced by the interrogator; immutable once returned, ownership passes
// to the caller.
type EvidenceRecord struct {
	Success  bool              `json:"success"`
	Query    string            `json:"query"`
	Source   string            `json:"source"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EvidenceItem is a piece of evidence inside a topic bucket of an
// EvidenceState, carrying its own confidence.
type EvidenceItem struct {
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

// Contradiction is a pair of conflicting claims with an associated severity,
// used to penalize hypotheses that repeat either claim.
type Contradiction struct {
	ClaimA   string  `json:"claim_a"`
	ClaimB   string  `json:"claim_b"`
	Severity float64 `json:"severity"` // 0..1
}

// EvidenceState is the accumulated evidence pool consumed by the hypothesis
// evaluator: evidence grouped into topic buckets plus detected contradictions.
type EvidenceState struct {
	Knowledge      map[string][]EvidenceItem `json:"knowledge"`
	Contradictions []Contradiction           `json:"contradictions"`
}

// AddEvidence appends an evidence item to a topic bucket.
func (s *EvidenceState) AddEvidence(topic string, item EvidenceItem) {
	if s.Knowledge == nil {
		s.Knowledge = make(map[string][]EvidenceItem)
	}
	s.Knowledge[topic] = append(s.Knowledge[topic], item)
}

// HypothesisScore is the evaluation of one candidate hypothesis against
// an evidence state. One per hypothesis per call; never persisted.
type HypothesisScore struct {
	Hypothesis string  `json:"hypothesis"`
	Score      float64 `json:"score"` // clamped to [0,1]
	Method     string  `json:"method"`
}
