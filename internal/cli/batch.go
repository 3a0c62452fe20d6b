package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/velocityai/velocity/internal/core"
	"github.com/velocityai/velocity/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer multiple questions from a file in parallel",
	Long: `Batch answers multiple questions concurrently:
- Read questions from input file (one per line, # comments skipped)
- Answer questions in parallel with configurable worker count
- Print answers in input order

Example:
  velocity batch questions.txt
  velocity batch questions.txt --concurrency 10
  velocity batch questions.txt --concurrency 5 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().DurationVar(&timeout, "question-timeout", 30*time.Second, "timeout for individual questions")
	batchCmd.Flags().DurationVar(&sourceTimeout, "source-timeout", 10*time.Second, "per-request timeout for each knowledge source")
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh interrogation)")
	batchCmd.Flags().BoolVar(&htmlSearch, "html-search", false, "enable HTML search fallback source")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Velocity Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := core.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	processor.QuestionTimeout = timeout

	fmt.Fprintf(os.Stderr, "⚙️  Reading questions from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d questions\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Answering with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Question, result.Error)
			continue
		}
		successCount++

		fmt.Printf("Q: %s\n", result.Question)
		fmt.Println(result.Result.Rendered)
		fmt.Println()
	}

	stats := p.InterrogatorStats()
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d questions\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Queries:   %d (success rate %.0f%%, avg latency %v)\n",
		stats.QueriesExecuted, stats.SuccessRate()*100, stats.AvgLatency())
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
