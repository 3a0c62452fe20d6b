package synthesis

import (
	"context"
	"fmt"
	"strings"

	"github.com/velocityai/velocity/internal/model"
)

// Provider defines the interface for fluency providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Rephrase rewords verified facts into fluent prose
	Rephrase(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request contains the input for fluency rephrasing
type Request struct {
	// Query is the user's original question
	Query string

	// Facts is the STRICT allowlist of verified statements the provider may
	// reword. It must never add information beyond this list.
	Facts []string

	// Sources are the source identifiers the facts came from
	Sources []string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Response contains the provider's rephrased output
type Response struct {
	// Text is the rephrased answer
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds fluency provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.SynthesisConfig to synthesis.Config
func ConfigFromModel(mc model.SynthesisConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

const systemPrompt = "You rewrite verified facts into fluent prose. You never add, remove, or alter factual content. You only improve wording and flow."

// BuildPrompt constructs the rephrasing prompt. The provider is confined to
// the listed facts so it can change wording but never content.
func BuildPrompt(query string, facts []string, sources []string) string {
	var sb strings.Builder

	sb.WriteString("Rewrite the following verified facts as a fluent, natural answer to the question.\n\n")
	sb.WriteString("CRITICAL RULES:\n")
	sb.WriteString("1. Use ONLY the facts listed below. Do not add any information.\n")
	sb.WriteString("2. Do not speculate or fill gaps. If the facts do not answer the question, say so.\n")
	sb.WriteString("3. Answer in the same language as the question.\n\n")
	sb.WriteString(fmt.Sprintf("Question: %s\n\nVerified facts:\n", query))

	for _, fact := range facts {
		sb.WriteString("- ")
		sb.WriteString(fact)
		sb.WriteString("\n")
	}

	if len(sources) > 0 {
		sb.WriteString(fmt.Sprintf("\nSources: %s\n", strings.Join(sources, ", ")))
	}

	sb.WriteString("\nProvide a 2-4 sentence answer using only these facts.")
	return sb.String()
}
