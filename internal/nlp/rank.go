package nlp

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/velocityai/velocity/internal/model"
)

// Composite score weights. Empirically tuned; treat as configuration
// constants, not design invariants.
const (
	weightRelevance    = 0.45
	weightPosition     = 0.15
	weightLength       = 0.10
	weightEntity       = 0.20
	weightDefinition   = 0.10
	weightBiographical = 0.10

	entityMatchBonus = 0.5
	positionDecay    = 1.2
)

// Definition and biographical signal phrases (English + Turkish).
var (
	reDefinition = regexp.MustCompile(`(?i)\b(is a|is an|is the|refers to|defined as|are|` +
		`bir|olan|olarak|anlamına gelir|denir|demektir)\b`)
	reBiographical = regexp.MustCompile(`(?i)\b(born|founded|created|developed|known for|career|researcher|` +
		`author|architect|engineer|scientist|professor|CEO|developer|` +
		`doğum|kurucu|geliştirici|bilinen|kariyer|araştırmacı|` +
		`mühendis|yazar|bilim insanı|yazılımcı)\b`)
)

// idfWeights computes IDF per token across the sentence set, treating the
// sentences themselves as a mini-corpus: idf(w) = ln((N+1)/(df(w)+1)) + 1.
func idfWeights(sentences []string) map[string]float64 {
	n := len(sentences)
	if n == 0 {
		return nil
	}
	df := make(map[string]int)
	for _, s := range sentences {
		seen := make(map[string]bool)
		for _, w := range strings.Fields(strings.ToLower(s)) {
			if !seen[w] {
				seen[w] = true
				df[w]++
			}
		}
	}
	idf := make(map[string]float64, len(df))
	for w, freq := range df {
		idf[w] = math.Log(float64(n+1)/float64(freq+1)) + 1
	}
	return idf
}

// Rank scores every sentence against the query on four axes (relevance,
// position, length, entity match) plus definition/biographical signals, and
// returns the list sorted by non-increasing composite score. The sort is
// stable: ties keep original index order, which callers rely on for
// reproducible output.
func Rank(sentences []string, query string, queryEntities []string) []model.Sentence {
	if len(sentences) == 0 {
		return nil
	}

	idf := idfWeights(sentences)

	// Unique query tokens in sorted order, so the relevance sum is
	// reproducible run to run.
	uniq := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToLower(query)) {
		uniq[t] = true
	}
	queryTokens := make([]string, 0, len(uniq))
	for t := range uniq {
		queryTokens = append(queryTokens, t)
	}
	sort.Strings(queryTokens)

	n := len(sentences)
	scored := make([]model.Sentence, 0, n)

	for idx, text := range sentences {
		lower := strings.ToLower(text)
		tokens := strings.Fields(lower)
		tokenSet := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			tokenSet[t] = true
		}

		// Relevance: IDF mass of tokens shared with the query, normalized
		// by query length.
		relevance := 0.0
		if len(queryTokens) > 0 {
			for _, t := range queryTokens {
				if tokenSet[t] {
					if w, ok := idf[t]; ok {
						relevance += w
					} else {
						relevance += 1.0
					}
				}
			}
			relevance /= float64(len(queryTokens))
		}

		// Position: front-loads earlier sentences, reaching zero at ~83%
		// of the document.
		positionScore := math.Max(0, 1.0-positionDecay*float64(idx)/float64(n))

		// Length: sweet spot is 15-50 words.
		var lengthScore float64
		switch wc := len(tokens); {
		case wc >= 15 && wc <= 50:
			lengthScore = 1.0
		case (wc >= 10 && wc < 15) || (wc > 50 && wc <= 80):
			lengthScore = 0.6
		default:
			lengthScore = 0.3
		}

		entityScore := 0.0
		for _, ent := range queryEntities {
			if strings.Contains(lower, strings.ToLower(ent)) {
				entityScore += entityMatchBonus
			}
		}

		isDef := reDefinition.MatchString(text)
		isBio := reBiographical.MatchString(text)

		composite := relevance*weightRelevance +
			positionScore*weightPosition +
			lengthScore*weightLength +
			entityScore*weightEntity
		if isDef {
			composite += weightDefinition
		}
		if isBio {
			composite += weightBiographical
		}

		scored = append(scored, model.Sentence{
			Text:           text,
			Index:          idx,
			Score:          composite,
			Relevance:      relevance,
			PositionScore:  positionScore,
			LengthScore:    lengthScore,
			EntityScore:    entityScore,
			IsDefinition:   isDef,
			IsBiographical: isBio,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
