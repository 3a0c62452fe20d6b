package hypothesis

import (
	"context"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/velocityai/velocity/internal/model"
	"golang.org/x/sync/errgroup"
)

// Scoring weights. Empirically tuned; treat as configuration constants.
const (
	baseLengthDivisor    = 200.0
	evidenceSupportScale = 0.1
	contradictionScale   = 0.2
)

const scoringMethod = "cpu"

// Evaluator scores candidate hypotheses against an accumulated evidence
// state. Hypotheses are independent, so scoring is embarrassingly parallel;
// each individual score computation is synchronous and CPU-bound.
type Evaluator struct {
	mu    sync.Mutex
	stats Stats
}

// Stats are running counters maintained across calls on one evaluator
// instance.
type Stats struct {
	HypothesesEvaluated int64
	TotalTime           time.Duration
}

// AvgTime returns the mean scoring time per hypothesis.
func (s Stats) AvgTime() time.Duration {
	if s.HypothesesEvaluated == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.HypothesesEvaluated)
}

// NewEvaluator creates a hypothesis evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// EvaluateParallel scores every hypothesis against the evidence state and
// returns one score per input in the same order. It never fails: an empty
// or nil hypothesis list yields an empty result.
func (e *Evaluator) EvaluateParallel(ctx context.Context, hypotheses []string, state model.EvidenceState) []model.HypothesisScore {
	if len(hypotheses) == 0 {
		return []model.HypothesisScore{}
	}

	start := time.Now()
	results := make([]model.HypothesisScore, len(hypotheses))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, h := range hypotheses {
		i, h := i, h
		g.Go(func() error {
			results[i] = model.HypothesisScore{
				Hypothesis: h,
				Score:      scoreHypothesis(h, state),
				Method:     scoringMethod,
			}
			return nil
		})
	}
	_ = g.Wait() // scoring tasks never return errors

	e.mu.Lock()
	e.stats.HypothesesEvaluated += int64(len(hypotheses))
	e.stats.TotalTime += time.Since(start)
	e.mu.Unlock()

	return results
}

// scoreHypothesis computes the transparent composite score:
// a base term proportional to hypothesis length (capped), plus support from
// every evidence item weighted by word overlap and the item's own
// confidence, minus a penalty for every contradiction whose claims appear
// in the hypothesis. Clamped to [0,1].
func scoreHypothesis(hypothesis string, state model.EvidenceState) float64 {
	score := math.Min(1.0, float64(len(hypothesis))/baseLengthDivisor)

	// Topics in sorted order, so the support sum is reproducible run to run.
	topics := make([]string, 0, len(state.Knowledge))
	for topic := range state.Knowledge {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		for _, item := range state.Knowledge[topic] {
			overlap := textOverlap(hypothesis, item.Content)
			score += overlap * item.Confidence * evidenceSupportScale
		}
	}

	for _, c := range state.Contradictions {
		if strings.Contains(hypothesis, c.ClaimA) || strings.Contains(hypothesis, c.ClaimB) {
			score -= c.Severity * contradictionScale
		}
	}

	return math.Max(0.0, math.Min(1.0, score))
}

// textOverlap is Jaccard similarity over lower-cased whitespace-tokenized
// word sets. Empty sets yield zero.
func textOverlap(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}

// GetStats returns a snapshot of the running statistics.
func (e *Evaluator) GetStats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}
