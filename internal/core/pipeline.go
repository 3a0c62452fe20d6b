package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/velocityai/velocity/internal/cache"
	"github.com/velocityai/velocity/internal/conversation"
	"github.com/velocityai/velocity/internal/hypothesis"
	"github.com/velocityai/velocity/internal/interrogate"
	"github.com/velocityai/velocity/internal/model"
	"github.com/velocityai/velocity/internal/nlp"
	"github.com/velocityai/velocity/internal/synthesis"
)

// Per-source confidence weights. A query answered by an encyclopedic source
// is worth more than an instant answer, which is worth more than the
// deterministic local fallback.
const (
	confidenceWikipedia = 0.9
	confidenceInstant   = 0.7
	confidenceSearch    = 0.6
	confidenceLocal     = 0.35
)

// Pipeline orchestrates the complete question-answering process
type Pipeline struct {
	interrogator  *interrogate.Interrogator
	engine        *nlp.Engine
	evaluator     *hypothesis.Evaluator
	cache         cache.Cache // nil when caching is disabled
	cacheTTL      time.Duration
	conversations *conversation.Buffer
	synthesizer   *synthesis.Synthesizer // optional fluency pass (nil if disabled)
	config        *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	var queryCache cache.Cache
	if cfg.Cache.Enabled {
		queryCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	conversations, err := conversation.NewBuffer(
		cfg.Conversation.MaxSessions,
		cfg.Conversation.MaxTurnsPerSession,
		cfg.Conversation.ContextWindow,
	)
	if err != nil {
		return nil, fmt.Errorf("create conversation buffer: %w", err)
	}

	// Create fluency synthesizer if configured
	var synthesizer *synthesis.Synthesizer
	if cfg.Synthesis.Provider != "" {
		s, err := synthesis.NewSynthesizer(cfg.Synthesis)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize synthesis provider: %v\n", err)
		} else {
			synthesizer = s
		}
	}

	return &Pipeline{
		interrogator:  interrogate.NewInterrogator(cfg),
		engine:        nlp.NewEngine(cfg.NLP.MaxSummarySentences, cfg.NLP.MaxKeyFacts),
		evaluator:     hypothesis.NewEvaluator(),
		cache:         queryCache,
		cacheTTL:      cfg.Cache.TTL,
		conversations: conversations,
		synthesizer:   synthesizer,
		config:        cfg,
	}, nil
}

// Result contains the complete outcome of answering one question
type Result struct {
	Answer model.StructuredAnswer

	// NaturalAnswer is the fluency-passed wording when a synthesis provider
	// is enabled, otherwise the composed summary verbatim
	NaturalAnswer string

	// Rendered is the terminal-ready text form of the answer
	Rendered string

	// Provider names the fluency provider used, "" when none
	Provider string

	FromCache bool
}

// Ask answers a single question. With a non-empty sessionID the question
// joins a multi-turn conversation and recent history enriches the
// interrogation input. Data unavailability is never an error; errors are
// context cancellation and fluency failure with fallback disabled.
func (p *Pipeline) Ask(ctx context.Context, query, sessionID string) (*Result, error) {
	pipelineQuery := query
	if sessionID != "" {
		pipelineQuery = p.conversations.EnrichQuery(sessionID, query)
		p.conversations.AddUserTurn(sessionID, query)
	}

	if p.cache != nil {
		if data, ok := p.cache.Get(pipelineQuery); ok {
			var answer model.StructuredAnswer
			if err := json.Unmarshal(data, &answer); err == nil {
				return p.finish(ctx, query, sessionID, answer, true)
			}
			// Corrupt entry: drop it and re-answer
			_ = p.cache.Delete(pipelineQuery)
		}
	}

	records, err := p.gather(ctx, query, pipelineQuery)
	if err != nil {
		return nil, err
	}

	var rawTexts, sources []string
	for _, rec := range records {
		if !rec.Success || rec.Content == "" {
			continue
		}
		rawTexts = append(rawTexts, rec.Content)
		sources = append(sources, rec.Source)
	}

	answer := p.engine.Synthesize(rawTexts, query, sources, poolConfidence(sources))

	if p.cache != nil {
		if data, err := json.Marshal(answer); err == nil {
			_ = p.cache.Set(pipelineQuery, data, p.cacheTTL)
		}
	}

	return p.finish(ctx, query, sessionID, answer, false)
}

// gather probes the knowledge sources. Alongside the full query a bare
// subject probe is dispatched when the extracted subject differs, giving
// encyclopedic sources a clean title to resolve.
func (p *Pipeline) gather(ctx context.Context, query, pipelineQuery string) ([]model.EvidenceRecord, error) {
	queries := []string{pipelineQuery}
	if subject := nlp.QuerySubject(query); subject != "" && !strings.EqualFold(subject, pipelineQuery) {
		queries = append(queries, subject)
	}

	records := p.interrogator.SearchParallel(ctx, queries)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// finish applies the fluency pass, renders, and records the assistant turn.
// A fluency failure is an error only when fallback to the raw answer is
// disabled in the synthesis configuration.
func (p *Pipeline) finish(ctx context.Context, query, sessionID string, answer model.StructuredAnswer, fromCache bool) (*Result, error) {
	natural := answer.Summary
	provider := ""
	if p.synthesizer.Enabled() {
		synthRes, err := p.synthesizer.Synthesize(ctx, query, &answer)
		if err != nil {
			return nil, fmt.Errorf("fluency pass: %w", err)
		}
		natural = synthRes.NaturalAnswer
		provider = synthRes.Provider
	}

	if sessionID != "" {
		p.conversations.AddAssistantTurn(sessionID, answer.Summary, answer.Confidence)
	}

	return &Result{
		Answer:        answer,
		NaturalAnswer: natural,
		Rendered:      nlp.Render(answer, p.config.Output.Verbose),
		Provider:      provider,
		FromCache:     fromCache,
	}, nil
}

// EvaluateHypotheses scores candidate hypotheses against the evidence pool
// built from the given records. Scores come back in input order.
func (p *Pipeline) EvaluateHypotheses(ctx context.Context, hypotheses []string, records []model.EvidenceRecord) []model.HypothesisScore {
	var state model.EvidenceState
	for _, rec := range records {
		if !rec.Success || rec.Content == "" {
			continue
		}
		state.AddEvidence(rec.Source, model.EvidenceItem{
			Content:    rec.Content,
			Confidence: sourceConfidence(rec.Source),
		})
	}
	return p.evaluator.EvaluateParallel(ctx, hypotheses, state)
}

// Gather exposes raw evidence gathering for callers that score hypotheses
// without composing an answer.
func (p *Pipeline) Gather(ctx context.Context, queries []string) []model.EvidenceRecord {
	return p.interrogator.SearchParallel(ctx, queries)
}

// InterrogatorStats returns the interrogator's running counters.
func (p *Pipeline) InterrogatorStats() interrogate.Stats {
	return p.interrogator.GetStats()
}

// EvaluatorStats returns the hypothesis evaluator's running counters.
func (p *Pipeline) EvaluatorStats() hypothesis.Stats {
	return p.evaluator.GetStats()
}

// ActiveSessions returns the number of live conversation sessions.
func (p *Pipeline) ActiveSessions() int {
	return p.conversations.ActiveSessions()
}

// EndSession drops a conversation session. Returns true if it existed.
func (p *Pipeline) EndSession(sessionID string) bool {
	return p.conversations.DeleteSession(sessionID)
}

// poolConfidence is the mean per-source confidence of the evidence pool.
// Deterministic in the source list, so cached answers carry the same
// confidence as fresh ones.
func poolConfidence(sources []string) float64 {
	if len(sources) == 0 {
		return 0.0
	}
	total := 0.0
	for _, s := range sources {
		total += sourceConfidence(s)
	}
	return total / float64(len(sources))
}

// sourceConfidence maps a source tag to its confidence weight.
func sourceConfidence(source string) float64 {
	switch {
	case strings.HasPrefix(source, "wikipedia:"):
		return confidenceWikipedia
	case strings.HasPrefix(source, "duckduckgo:"):
		return confidenceInstant
	case strings.HasPrefix(source, "search:"):
		return confidenceSearch
	case strings.HasPrefix(source, "knowledge_base:"):
		return confidenceLocal
	default:
		return confidenceSearch
	}
}
