package model

// Sentence is a scored, classified sentence produced during ranking.
// Index always refers to the position in the cleaned, segmented document
// and is never re-numbered after sorting.
type Sentence struct {
	Text           string  `json:"text"`
	Index          int     `json:"index"`
	Score          float64 `json:"score"`           // final composite score
	Relevance      float64 `json:"relevance"`       // query relevance
	PositionScore  float64 `json:"position_score"`
	LengthScore    float64 `json:"length_score"`
	EntityScore    float64 `json:"entity_score"`
	IsDefinition   bool    `json:"is_definition"`
	IsBiographical bool    `json:"is_biographical"`
}

// EntityCategory classifies an extracted entity
type EntityCategory string

const (
	CategoryRole   EntityCategory = "ROLE"
	CategoryOrg    EntityCategory = "ORG"
	CategoryTopic  EntityCategory = "TOPIC"
	CategoryPerson EntityCategory = "PERSON"
)

// Entity represents an extracted named entity with metadata
type Entity struct {
	Name       string            `json:"name"`
	Category   EntityCategory    `json:"category"`
	Aliases    []string          `json:"aliases,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// QueryType classifies the rhetorical shape of a question
type QueryType string

const (
	QueryBiographical QueryType = "biographical"
	QueryDefinition   QueryType = "definition"
	QueryComparative  QueryType = "comparative"
	QueryProcedural   QueryType = "procedural"
	QueryCausal       QueryType = "causal"
	QueryGeneral      QueryType = "general"
)

// ConfidenceLabel is a coarse, human-readable confidence bucket
type ConfidenceLabel string

const (
	ConfidenceHigh     ConfidenceLabel = "High"
	ConfidenceModerate ConfidenceLabel = "Moderate"
	ConfidenceLow      ConfidenceLabel = "Low"
	ConfidenceVeryLow  ConfidenceLabel = "VeryLow"
)

// Cutoffs for confidence labeling. Empirically chosen, tunable.
const (
	ConfidenceHighCutoff     = 0.8
	ConfidenceModerateCutoff = 0.55
	ConfidenceLowCutoff      = 0.3
)

// LabelForConfidence maps a numeric confidence to its label.
// This is a pure function: the label is never set independently.
func LabelForConfidence(c float64) ConfidenceLabel {
	switch {
	case c >= ConfidenceHighCutoff:
		return ConfidenceHigh
	case c >= ConfidenceModerateCutoff:
		return ConfidenceModerate
	case c >= ConfidenceLowCutoff:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// StructuredAnswer is the terminal artifact of one synthesis call.
// Immutable once returned.
type StructuredAnswer struct {
	Summary         string          `json:"summary"`
	KeyFacts        []string        `json:"key_facts"`
	Entities        []Entity        `json:"entities"`
	Sources         []string        `json:"sources"`
	QueryType       QueryType       `json:"query_type"`
	ConfidenceLabel ConfidenceLabel `json:"confidence_label"`
	Confidence      float64         `json:"confidence"`
	RawDebug        string          `json:"raw_debug,omitempty"` // cleaned combined text, truncated
}
