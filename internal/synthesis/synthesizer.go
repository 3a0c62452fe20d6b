package synthesis

import (
	"context"
	"fmt"
	"os"

	"github.com/velocityai/velocity/internal/model"
)

// Result is the outcome of a fluency pass.
type Result struct {
	// NaturalAnswer is the final wording shown to the user
	NaturalAnswer string

	// Provider is the provider that produced it, or "" on fallback
	Provider string

	// Success reports whether the provider produced usable output
	Success bool

	// Fallback reports that the raw composed answer was returned instead
	Fallback bool
}

// Synthesizer wraps an optional fluency provider around algorithmically
// composed answers. Facts come exclusively from the answer pipeline; the
// provider may reword them but contributes no content of its own. When no
// provider is configured or the provider fails, the raw answer passes
// through untouched.
type Synthesizer struct {
	provider      Provider
	fallbackToRaw bool
}

// NewSynthesizer creates a synthesizer from configuration. A nil provider
// (no provider configured) yields a pass-through synthesizer.
func NewSynthesizer(cfg model.SynthesisConfig) (*Synthesizer, error) {
	provider, err := NewProvider(ConfigFromModel(cfg))
	if err != nil {
		return nil, fmt.Errorf("create synthesis provider: %w", err)
	}
	return &Synthesizer{
		provider:      provider,
		fallbackToRaw: cfg.FallbackToRaw,
	}, nil
}

// NewSynthesizerWithProvider creates a synthesizer around an explicit provider.
func NewSynthesizerWithProvider(provider Provider, fallbackToRaw bool) *Synthesizer {
	return &Synthesizer{provider: provider, fallbackToRaw: fallbackToRaw}
}

// Enabled reports whether a fluency provider is configured.
func (s *Synthesizer) Enabled() bool {
	return s != nil && s.provider != nil
}

// Synthesize rewords the composed answer for fluency. The answer's summary
// and key facts are the provider's complete factual budget. A provider
// failure is an error unless fallback to the raw answer is configured.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, answer *model.StructuredAnswer) (Result, error) {
	raw := answer.Summary

	if !s.Enabled() {
		return Result{NaturalAnswer: raw, Fallback: true}, nil
	}

	facts := make([]string, 0, len(answer.KeyFacts)+1)
	facts = append(facts, answer.Summary)
	facts = append(facts, answer.KeyFacts...)

	resp, err := s.provider.Rephrase(ctx, Request{
		Query:   query,
		Facts:   facts,
		Sources: answer.Sources,
	})
	if err != nil {
		if !s.fallbackToRaw {
			return Result{Provider: s.provider.Name()}, fmt.Errorf("synthesis provider %s: %w", s.provider.Name(), err)
		}
		fmt.Fprintf(os.Stderr, "synthesis provider %s failed: %v\n", s.provider.Name(), err)
		return Result{NaturalAnswer: raw, Fallback: true}, nil
	}

	return Result{
		NaturalAnswer: resp.Text,
		Provider:      s.provider.Name(),
		Success:       true,
	}, nil
}
