package interrogate

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/velocityai/velocity/internal/model"
	"github.com/velocityai/velocity/internal/util"
)

// Interrogator runs bounded-parallel queries against ordered fallback
// knowledge sources. The network is the knowledge base; local memory only
// holds the running statistics.
type Interrogator struct {
	maxParallel int

	wikipedia  *wikipediaSource
	instant    *instantAnswerSource
	htmlSearch *htmlSearchSource
	local      *localKnowledge

	enableHTMLSearch bool
	limiter          *hostLimiter
	robots           *util.RobotsChecker

	mu    sync.Mutex
	stats Stats
}

// Stats are running counters maintained across calls on one interrogator
// instance. Guarded by the interrogator mutex.
type Stats struct {
	QueriesExecuted int64
	Errors          int64
	TotalLatency    time.Duration
}

// AvgLatency returns the mean latency per executed query.
func (s Stats) AvgLatency() time.Duration {
	if s.QueriesExecuted == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.QueriesExecuted)
}

// SuccessRate returns the fraction of executed queries that produced a
// usable evidence record.
func (s Stats) SuccessRate() float64 {
	if s.QueriesExecuted == 0 {
		return 0
	}
	return float64(s.QueriesExecuted-s.Errors) / float64(s.QueriesExecuted)
}

// NewInterrogator creates an interrogator from configuration.
func NewInterrogator(cfg *model.Config) *Interrogator {
	httpCfg := cfg.HTTP
	intCfg := cfg.Interrogator

	maxParallel := intCfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 5
	}

	client := newSourceClient(httpCfg)

	var robots *util.RobotsChecker
	if intCfg.RespectRobots {
		robots = util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout)
	}

	return &Interrogator{
		maxParallel: maxParallel,
		wikipedia: &wikipediaSource{
			baseURL:   strings.TrimSuffix(intCfg.WikipediaBaseURL, "/"),
			client:    client,
			userAgent: httpCfg.UserAgent,
		},
		instant: &instantAnswerSource{
			baseURL:   strings.TrimSuffix(intCfg.DuckDuckGoBaseURL, "/"),
			client:    client,
			userAgent: httpCfg.UserAgent,
		},
		htmlSearch: &htmlSearchSource{
			baseURL:      strings.TrimSuffix(intCfg.SearchHTMLBaseURL, "/"),
			client:       client,
			userAgent:    httpCfg.UserAgent,
			maxBodyBytes: httpCfg.MaxBodyBytes,
		},
		local:            newLocalKnowledge(),
		enableHTMLSearch: intCfg.EnableHTMLSearch,
		limiter:          newHostLimiter(intCfg.RequestsPerSecond, intCfg.Burst),
		robots:           robots,
	}
}

// SearchParallel executes at most maxParallel queries concurrently; queries
// beyond the bound are dropped, not queued. Each task's failure is captured
// and counted so one failing task never cancels its siblings; failed tasks
// are excluded from the returned list, which preserves dispatch index order.
func (in *Interrogator) SearchParallel(ctx context.Context, queries []string) []model.EvidenceRecord {
	if len(queries) > in.maxParallel {
		queries = queries[:in.maxParallel]
	}
	if len(queries) == 0 {
		return []model.EvidenceRecord{}
	}

	type outcome struct {
		record model.EvidenceRecord
		err    error
	}

	start := time.Now()
	outcomes := make([]outcome, len(queries))
	var wg sync.WaitGroup

	for i, q := range queries {
		wg.Add(1)
		go func(idx int, query string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[idx] = outcome{err: fmt.Errorf("query panicked: %v", r)}
				}
			}()
			record, err := in.ExecuteQuery(ctx, query)
			outcomes[idx] = outcome{record: record, err: err}
		}(i, q)
	}
	wg.Wait()

	in.mu.Lock()
	in.stats.TotalLatency += time.Since(start)
	in.mu.Unlock()

	results := make([]model.EvidenceRecord, 0, len(queries))
	for _, o := range outcomes {
		if o.err != nil {
			fmt.Fprintf(os.Stderr, "query failed: %v\n", o.err)
			in.mu.Lock()
			in.stats.Errors++
			in.mu.Unlock()
			continue
		}
		results = append(results, o.record)
	}
	return results
}

// ExecuteQuery tries knowledge sources strictly in order and returns on the
// first success. A source error or timeout is logged at that source's
// boundary and control falls to the next source; the deterministic local
// fallback never fails, so the chain as a whole cannot fail for
// data-availability reasons. The only returned error is context cancellation.
func (in *Interrogator) ExecuteQuery(ctx context.Context, query string) (model.EvidenceRecord, error) {
	in.mu.Lock()
	in.stats.QueriesExecuted++
	in.mu.Unlock()

	record, err := in.wikipedia.Query(ctx, query)
	if err == nil {
		return record, nil
	}
	in.debugf("wikipedia failed for %q: %v", query, err)

	record, err = in.instant.Query(ctx, query)
	if err == nil {
		return record, nil
	}
	in.debugf("instant answer failed for %q: %v", query, err)

	if in.enableHTMLSearch && in.htmlSearch.baseURL != "" {
		if record, err = in.queryHTMLSearch(ctx, query); err == nil {
			return record, nil
		}
		in.debugf("html search failed for %q: %v", query, err)
	}

	if err := ctx.Err(); err != nil {
		return model.EvidenceRecord{}, err
	}
	return in.local.Query(query), nil
}

// queryHTMLSearch wraps the raw HTML search source with the per-host rate
// limiter and the robots.txt gate.
func (in *Interrogator) queryHTMLSearch(ctx context.Context, query string) (model.EvidenceRecord, error) {
	target := in.htmlSearch.baseURL + "/html/"
	if in.robots != nil {
		allowed, _, err := in.robots.CanFetch(ctx, target)
		if err != nil {
			return model.EvidenceRecord{}, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return model.EvidenceRecord{}, fmt.Errorf("robots.txt disallows %s", target)
		}
	}
	if err := in.limiter.Wait(ctx, target); err != nil {
		return model.EvidenceRecord{}, err
	}
	return in.htmlSearch.Query(ctx, query)
}

// GetStats returns a snapshot of the running statistics.
func (in *Interrogator) GetStats() Stats {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.stats
}

func (in *Interrogator) debugf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "interrogate: "+format+"\n", args...)
}
