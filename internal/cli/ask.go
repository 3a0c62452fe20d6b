package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/velocityai/velocity/internal/core"
	"github.com/velocityai/velocity/internal/model"
)

var (
	timeout        time.Duration
	sourceTimeout  time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	maxParallel    int
	htmlSearch     bool
	sessionID      string
	synthProvider  string
	synthModel     string
	httpProxy      string
	httpsProxy     string
	hypothesesFlag []string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question from live evidence",
	Long: `Ask interrogates knowledge endpoints for a single question:
- Query encyclopedic and instant-answer sources with ordered fallback
- Clean, segment, and rank the retrieved text
- Compose a structured answer with key facts and explicit confidence

Example:
  velocity ask "What is Python?"
  velocity ask "Kim Curie kimdir?" --verbose
  velocity ask "Who created Linux?" --session dev-chat
  velocity ask "What is quantum computing?" --synthesis ollama --synthesis-model llama3.1:8b`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	// HTTP flags
	askCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall question timeout")
	askCmd.Flags().DurationVar(&sourceTimeout, "source-timeout", 10*time.Second, "per-request timeout for each knowledge source")
	askCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	askCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	askCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	askCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Pipeline flags
	askCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh interrogation)")
	askCmd.Flags().IntVar(&maxParallel, "max-parallel", 5, "parallel query bound")
	askCmd.Flags().BoolVar(&htmlSearch, "html-search", false, "enable HTML search fallback source")
	askCmd.Flags().StringVar(&sessionID, "session", "", "conversation session ID for multi-turn context")
	askCmd.Flags().StringSliceVar(&hypothesesFlag, "hypothesis", nil, "candidate hypothesis to score against gathered evidence (repeatable)")

	// Synthesis flags
	askCmd.Flags().StringVar(&synthProvider, "synthesis", "", "fluency provider (openai, ollama); disabled when empty")
	askCmd.Flags().StringVar(&synthModel, "synthesis-model", "", "fluency model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Question: %s\n", question)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := core.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	result, err := p.Ask(ctx, question, sessionID)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if verbose {
		stats := p.InterrogatorStats()
		fmt.Fprintf(os.Stderr, "✓ Queries executed: %d (success rate %.0f%%, avg latency %v)\n",
			stats.QueriesExecuted, stats.SuccessRate()*100, stats.AvgLatency())
		if result.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Served from cache\n")
		}
		if result.Provider != "" {
			fmt.Fprintf(os.Stderr, "✓ Fluency pass by %s\n", result.Provider)
		}
		fmt.Fprintln(os.Stderr)
	}

	fmt.Println(result.Rendered)

	if result.Provider != "" && result.NaturalAnswer != result.Answer.Summary {
		fmt.Println()
		fmt.Println(result.NaturalAnswer)
	}

	if len(hypothesesFlag) > 0 {
		records := p.Gather(ctx, []string{question})
		scores := p.EvaluateHypotheses(ctx, hypothesesFlag, records)
		fmt.Println()
		fmt.Println("Hypotheses:")
		for _, s := range scores {
			fmt.Printf("  %.3f  %s\n", s.Score, s.Hypothesis)
		}
	}

	return nil
}

// buildConfig merges defaults with CLI flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.HTTP.Timeout = sourceTimeout
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy

	cfg.Cache.Enabled = !noCache
	cfg.Interrogator.MaxParallel = maxParallel
	cfg.Interrogator.EnableHTMLSearch = htmlSearch
	cfg.Output.Verbose = verbose

	if synthProvider != "" {
		cfg.Synthesis.Provider = synthProvider
		cfg.Synthesis.Model = synthModel

		switch synthProvider {
		case "openai":
			cfg.Synthesis.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Synthesis.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.Synthesis.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
