package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/velocityai/velocity/internal/core"
)

// fakeAnswerer answers every question with a canned echo
type fakeAnswerer struct {
	failOn string
}

func (f *fakeAnswerer) Ask(ctx context.Context, query, sessionID string) (*core.Result, error) {
	if query == f.failOn {
		return nil, fmt.Errorf("no answer for %q", query)
	}
	return &core.Result{NaturalAnswer: "answer to " + query}, nil
}

func TestProcessQuestionsInputOrder(t *testing.T) {
	questions := []string{"what is python", "what is go", "what is rust"}
	b := NewBatchProcessor(&fakeAnswerer{}, 2)

	results := b.ProcessQuestions(context.Background(), questions)

	if len(results) != len(questions) {
		t.Fatalf("expected %d results, got %d", len(questions), len(results))
	}
	for i, r := range results {
		if r.Question != questions[i] {
			t.Errorf("result %d question = %q, want %q", i, r.Question, questions[i])
		}
		if r.GetError() != nil {
			t.Errorf("result %d unexpected error: %v", i, r.GetError())
		}
		if r.Result.NaturalAnswer != "answer to "+questions[i] {
			t.Errorf("result %d answer = %q", i, r.Result.NaturalAnswer)
		}
	}
}

func TestProcessQuestionsIsolatesFailures(t *testing.T) {
	questions := []string{"good question", "bad question", "another good question"}
	b := NewBatchProcessor(&fakeAnswerer{failOn: "bad question"}, 3)

	results := b.ProcessQuestions(context.Background(), questions)

	if results[0].GetError() != nil || results[2].GetError() != nil {
		t.Error("healthy questions affected by failing sibling")
	}
	if results[1].GetError() == nil {
		t.Error("expected error for failing question")
	}
}

func TestProcessQuestionsEmpty(t *testing.T) {
	b := NewBatchProcessor(&fakeAnswerer{}, 2)
	if results := b.ProcessQuestions(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

// blockingAnswerer never answers; it waits for the context to expire
type blockingAnswerer struct{}

func (blockingAnswerer) Ask(ctx context.Context, query, sessionID string) (*core.Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProcessQuestionsPerQuestionTimeout(t *testing.T) {
	b := NewBatchProcessor(blockingAnswerer{}, 2)
	b.QuestionTimeout = 20 * time.Millisecond

	results := b.ProcessQuestions(context.Background(), []string{"what is python"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if err := results[0].GetError(); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestReadQuestionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	content := `# sample questions
what is python

what is go
what is python
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	questions, err := ReadQuestionsFromFile(path)
	if err != nil {
		t.Fatalf("ReadQuestionsFromFile() error = %v", err)
	}

	want := []string{"what is python", "what is go"}
	if len(questions) != len(want) {
		t.Fatalf("questions = %v, want %v", questions, want)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("question %d = %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestReadQuestionsMissingFile(t *testing.T) {
	if _, err := ReadQuestionsFromFile("/nonexistent/questions.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
