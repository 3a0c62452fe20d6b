package nlp

import (
	"fmt"
	"strings"

	"github.com/velocityai/velocity/internal/model"
)

const rawDebugLimit = 500

// Engine is the pure-algorithmic answer synthesis engine.
//
// No trained model. The pipeline is clean -> segment -> rank -> extract ->
// compose, and every stage is deterministic: identical input produces
// byte-identical output, which the cache layer relies on.
type Engine struct {
	maxSummarySentences int
	maxKeyFacts         int
}

// NewEngine creates an answer engine with the given synthesis limits.
func NewEngine(maxSummarySentences, maxKeyFacts int) *Engine {
	if maxSummarySentences <= 0 {
		maxSummarySentences = 5
	}
	if maxKeyFacts <= 0 {
		maxKeyFacts = 5
	}
	return &Engine{
		maxSummarySentences: maxSummarySentences,
		maxKeyFacts:         maxKeyFacts,
	}
}

// Synthesize runs the full pipeline over raw evidence texts and returns a
// structured answer. It never fails: when no usable text remains after
// cleaning and segmentation, a sentinel VeryLow answer is returned.
func (e *Engine) Synthesize(rawTexts []string, query string, sources []string, confidence float64) model.StructuredAnswer {
	queryType := DetectQueryType(query)
	subject := QuerySubject(query)

	var queryEntities []string
	if subject != "" {
		queryEntities = []string{subject}
	}

	var cleaned []string
	for _, t := range rawTexts {
		if t == "" {
			continue
		}
		if c := Clean(t); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	combined := strings.Join(cleaned, " ")
	if strings.TrimSpace(combined) == "" {
		return e.emptyAnswer(query, queryType, sources)
	}

	sentences := Segment(combined)
	if len(sentences) == 0 {
		return e.emptyAnswer(query, queryType, sources)
	}

	ranked := Rank(sentences, query, queryEntities)
	entities := ExtractEntities(combined)
	keyFacts := ExtractKeyFacts(ranked, query, e.maxKeyFacts)
	summary := Compose(ranked, entities, query, queryType, e.maxSummarySentences)

	debug := combined
	if len(debug) > rawDebugLimit {
		debug = debug[:rawDebugLimit]
	}

	return model.StructuredAnswer{
		Summary:         summary,
		KeyFacts:        keyFacts,
		Entities:        entities,
		Sources:         sources,
		QueryType:       queryType,
		ConfidenceLabel: model.LabelForConfidence(confidence),
		Confidence:      confidence,
		RawDebug:        debug,
	}
}

// emptyAnswer is the sentinel returned when synthesis has nothing to work
// with. Data unavailability is never an error.
func (e *Engine) emptyAnswer(query string, queryType model.QueryType, sources []string) model.StructuredAnswer {
	subject := QuerySubject(query)
	return model.StructuredAnswer{
		Summary:         fmt.Sprintf("Could not find enough information about '%s'.", subject),
		KeyFacts:        []string{},
		Entities:        []model.Entity{},
		Sources:         sources,
		QueryType:       queryType,
		ConfidenceLabel: model.ConfidenceVeryLow,
		Confidence:      0.0,
	}
}
