package model

import "time"

// Config is the complete velocity configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Interrogator InterrogatorConfig `yaml:"interrogator"`
	NLP          NLPConfig          `yaml:"nlp"`
	Cache        CacheConfig        `yaml:"cache"`
	Conversation ConversationConfig `yaml:"conversation"`
	Synthesis    SynthesisConfig    `yaml:"synthesis"`
	Output       OutputConfig       `yaml:"output"`
}

// HTTPConfig contains HTTP client settings
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// InterrogatorConfig contains network interrogation settings
type InterrogatorConfig struct {
	MaxParallel       int     `yaml:"max_parallel"`
	WikipediaBaseURL  string  `yaml:"wikipedia_base_url"`
	DuckDuckGoBaseURL string  `yaml:"duckduckgo_base_url"`
	SearchHTMLBaseURL string  `yaml:"search_html_base_url"`
	EnableHTMLSearch  bool    `yaml:"enable_html_search"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // per-host rate limit
	Burst             int     `yaml:"burst"`
	RespectRobots     bool    `yaml:"respect_robots"` // gate HTML search fallback on robots.txt
}

// NLPConfig contains answer synthesis limits
type NLPConfig struct {
	MaxSummarySentences int `yaml:"max_summary_sentences"`
	MaxKeyFacts         int `yaml:"max_key_facts"`
}

// CacheConfig contains query result cache settings
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConversationConfig contains multi-turn session settings
type ConversationConfig struct {
	MaxSessions        int `yaml:"max_sessions"`
	MaxTurnsPerSession int `yaml:"max_turns_per_session"`
	ContextWindow      int `yaml:"context_window"` // turns included in enriched queries
}

// SynthesisConfig configures the optional fluency rephrasing layer.
// The provider rewrites wording only; it is never a source of facts.
type SynthesisConfig struct {
	Provider      string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model         string `yaml:"model"`
	APIKey        string `yaml:"api_key,omitempty"`
	BaseURL       string `yaml:"base_url,omitempty"`
	Timeout       int    `yaml:"timeout"` // seconds
	MaxTokens     int    `yaml:"max_tokens"`
	FallbackToRaw bool   `yaml:"fallback_to_raw"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Velocity/0.2 (+https://github.com/velocityai/velocity)",
			MaxBodyBytes: 2_000_000,
		},
		Interrogator: InterrogatorConfig{
			MaxParallel:       5,
			WikipediaBaseURL:  "https://en.wikipedia.org",
			DuckDuckGoBaseURL: "https://api.duckduckgo.com",
			SearchHTMLBaseURL: "https://html.duckduckgo.com",
			RequestsPerSecond: 2.0,
			Burst:             5,
			RespectRobots:     true,
		},
		NLP: NLPConfig{
			MaxSummarySentences: 5,
			MaxKeyFacts:         5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Conversation: ConversationConfig{
			MaxSessions:        100,
			MaxTurnsPerSession: 50,
			ContextWindow:      6,
		},
		Synthesis: SynthesisConfig{
			Provider:      "", // disabled by default
			Timeout:       30,
			MaxTokens:     500,
			FallbackToRaw: true,
		},
		Output: OutputConfig{},
	}
}
