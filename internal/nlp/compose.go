package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/velocityai/velocity/internal/model"
)

// Pairwise token-overlap thresholds for deduplication. Containment on raw
// token sets (shared / len(candidate)), not true Jaccard. Tunable.
const (
	factOverlapThreshold     = 0.60
	sentenceOverlapThreshold = 0.55
	minFactChars             = 15
)

var (
	reQTypeBio        = regexp.MustCompile(`\b(kimdir|who is|who was|who are)\b`)
	reQTypeDefinition = regexp.MustCompile(`\b(nedir|what is|what are|define|tanımla)\b`)
	reQTypeComparison = regexp.MustCompile(`\bvs\b|\bcompare\b|\bkarşılaştır\b|\bfark\b|\bdifference\b`)
	reQTypeProcedural = regexp.MustCompile(`\bhow to\b|\bnasıl\b|\bsteps\b|\badımlar\b`)
	reQTypeCausal     = regexp.MustCompile(`\bwhy\b|\bneden\b|\bsebep\b`)

	reSubjectWhoIs  = regexp.MustCompile(`(?i)(?:who is|who was)\s+(.+)`)
	reSubjectKimdir = regexp.MustCompile(`(?i)(.+?)\s+kimdir`)
	reSubjectWhatIs = regexp.MustCompile(`(?i)(?:what is|what are)\s+(.+)`)
	reSubjectNedir  = regexp.MustCompile(`(?i)(.+?)\s+nedir`)
)

// DetectQueryType classifies the rhetorical shape of the question.
// General is the default when nothing matches.
func DetectQueryType(query string) model.QueryType {
	q := strings.ToLower(query)
	switch {
	case reQTypeBio.MatchString(q):
		return model.QueryBiographical
	case reQTypeDefinition.MatchString(q):
		return model.QueryDefinition
	case reQTypeComparison.MatchString(q):
		return model.QueryComparative
	case reQTypeProcedural.MatchString(q):
		return model.QueryProcedural
	case reQTypeCausal.MatchString(q):
		return model.QueryCausal
	default:
		return model.QueryGeneral
	}
}

// QuerySubject extracts the main subject from a question, best effort.
// Falls back to the whole query stripped of trailing punctuation.
func QuerySubject(query string) string {
	q := strings.TrimSpace(query)
	if m := reSubjectWhoIs.FindStringSubmatch(q); m != nil {
		return strings.TrimRight(strings.TrimSpace(m[1]), "?.")
	}
	if m := reSubjectKimdir.FindStringSubmatch(q); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reSubjectWhatIs.FindStringSubmatch(q); m != nil {
		return strings.TrimRight(strings.TrimSpace(m[1]), "?.")
	}
	if m := reSubjectNedir.FindStringSubmatch(q); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(strings.TrimRight(q, "?.!"))
}

func tokenSetOf(text string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToLower(text)) {
		set[t] = true
	}
	return set
}

// overlapRatio returns |a ∩ b| / |a|. Zero when a is empty.
func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 {
		return 0
	}
	shared := 0
	for t := range a {
		if b[t] {
			shared++
		}
	}
	return float64(shared) / float64(len(a))
}

// ExtractKeyFacts pulls concise facts from ranked sentences in score order.
// A candidate is dropped when its token set overlaps an already-kept fact's
// by more than 60%. Multi-sentence fragments are trimmed to their first
// sentence, with terminal punctuation ensured.
func ExtractKeyFacts(ranked []model.Sentence, query string, maxFacts int) []string {
	var facts []string
	var seenSets []map[string]bool

	for _, sent := range ranked {
		if len(facts) >= maxFacts {
			break
		}
		tokens := tokenSetOf(sent.Text)
		dup := false
		for _, existing := range seenSets {
			if overlapRatio(tokens, existing) > factOverlapThreshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seenSets = append(seenSets, tokens)

		first := strings.TrimSpace(splitAfterTerminators(sent.Text)[0])
		if len(first) <= minFactChars {
			continue
		}
		if !strings.ContainsAny(first[len(first)-1:], ".!?") {
			first += "."
		}
		facts = append(facts, first)
	}
	return facts
}

// Compose builds the prose summary: top-scored non-duplicate sentences
// (pairwise overlap threshold 55%) restored to original document order, with
// query-type-specific reordering for biographical and definition questions.
// When nothing survives selection, a fixed not-found message naming the
// query subject is returned.
func Compose(ranked []model.Sentence, entities []model.Entity, query string, queryType model.QueryType, maxSentences int) string {
	subject := QuerySubject(query)

	var selected []model.Sentence
	var seenSets []map[string]bool
	for _, sent := range ranked {
		if len(selected) >= maxSentences {
			break
		}
		tokens := tokenSetOf(sent.Text)
		dup := false
		for _, existing := range seenSets {
			if overlapRatio(tokens, existing) > sentenceOverlapThreshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seenSets = append(seenSets, tokens)
		selected = append(selected, sent)
	}

	if len(selected) == 0 {
		return fmt.Sprintf("No clear information found for '%s'.", subject)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Index < selected[j].Index
	})

	switch queryType {
	case model.QueryBiographical:
		// Lead with sentences that say who the subject is.
		sort.SliceStable(selected, func(i, j int) bool {
			a := selected[i].IsBiographical || selected[i].IsDefinition
			b := selected[j].IsBiographical || selected[j].IsDefinition
			return a && !b
		})
	case model.QueryDefinition:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].IsDefinition && !selected[j].IsDefinition
		})
	}

	parts := make([]string, 0, len(selected))
	for _, sent := range selected {
		text := strings.TrimSpace(sent.Text)
		if text == "" {
			continue
		}
		parts = append(parts, normalizeSentence(text))
	}
	return strings.Join(parts, " ")
}
