package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/velocityai/velocity/internal/core"
)

// Answerer defines the interface for answering a single question
type Answerer interface {
	Ask(ctx context.Context, query, sessionID string) (*core.Result, error)
}

// QuestionJob represents one question to answer
type QuestionJob struct {
	Question string
	Answerer Answerer

	// Timeout bounds this question alone; zero means no per-question bound
	Timeout time.Duration
}

// Execute executes the question job
func (j *QuestionJob) Execute(ctx context.Context) Result {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}
	result, err := j.Answerer.Ask(ctx, j.Question, "")
	return &QuestionResult{
		Question: j.Question,
		Result:   result,
		Error:    err,
	}
}

// QuestionResult represents the result of a question job
type QuestionResult struct {
	Question string
	Result   *core.Result
	Error    error
}

// GetError returns the error from the question result
func (r *QuestionResult) GetError() error {
	return r.Error
}

// BatchProcessor answers multiple questions concurrently
type BatchProcessor struct {
	answerer    Answerer
	concurrency int

	// QuestionTimeout bounds each question individually; zero disables it
	QuestionTimeout time.Duration
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(answerer Answerer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		answerer:    answerer,
		concurrency: concurrency,
	}
}

// ProcessQuestions answers questions concurrently. Results come back in
// input order.
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, questions []string) []*QuestionResult {
	if len(questions) == 0 {
		return []*QuestionResult{}
	}

	jobs := make([]Job, len(questions))
	for i, q := range questions {
		jobs[i] = &QuestionJob{Question: q, Answerer: b.answerer, Timeout: b.QuestionTimeout}
	}

	pool := NewPool(b.concurrency)
	results := pool.Run(ctx, jobs)

	questionResults := make([]*QuestionResult, 0, len(results))
	for i, result := range results {
		if result == nil {
			// Cancelled before this slot ran
			questionResults = append(questionResults, &QuestionResult{
				Question: questions[i],
				Error:    ctx.Err(),
			})
			continue
		}
		questionResults = append(questionResults, result.(*QuestionResult))
	}

	return questionResults
}

// ProcessFile reads questions from a file and answers them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*QuestionResult, error) {
	questions, err := ReadQuestionsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return b.ProcessQuestions(ctx, questions), nil
}

// ReadQuestionsFromFile reads questions from a file (one per line)
func ReadQuestionsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			questions = append(questions, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}
