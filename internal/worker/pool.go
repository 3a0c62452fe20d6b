package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool executes jobs on a bounded number of workers. Results come back in
// submission order regardless of completion order, so batch output is
// deterministic for a given input list.
type Pool struct {
	workers int
}

// NewPool creates a worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

type indexedJob struct {
	idx int
	job Job
}

// Run executes all jobs and returns one result per job, index-aligned with
// the input. Jobs report their own failures through Result.GetError; a
// cancelled context leaves the remaining slots nil.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	if len(jobs) == 0 {
		return []Result{}
	}

	results := make([]Result, len(jobs))
	queue := make(chan indexedJob)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ij := range queue {
				if ctx.Err() != nil {
					return
				}
				results[ij.idx] = ij.job.Execute(ctx)
			}
		}()
	}

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return results
		case queue <- indexedJob{idx: i, job: job}:
		}
	}
	close(queue)
	wg.Wait()

	return results
}
