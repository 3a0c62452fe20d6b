package interrogate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/velocityai/velocity/internal/model"
	"github.com/velocityai/velocity/internal/util"
)

// newSourceClient builds the shared HTTP client for knowledge sources.
// The per-request timeout makes a slow source a recoverable failure at
// that link of the chain, never a fatal error.
func newSourceClient(cfg model.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}
}

// cleanQuery strips command words the router may have left in the query.
func cleanQuery(query string) string {
	q := strings.ReplaceAll(query, "answer:", "")
	q = strings.ReplaceAll(q, "documentation", "")
	return strings.TrimSpace(q)
}

// wikipediaSource queries the encyclopedic title-based summary endpoint.
type wikipediaSource struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

type wikipediaSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Query fetches the page summary for the query used as a title.
// Success requires a non-empty extract.
func (s *wikipediaSource) Query(ctx context.Context, query string) (model.EvidenceRecord, error) {
	clean := cleanQuery(query)
	title := strings.ReplaceAll(clean, " ", "_")
	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", s.baseURL, url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("fetch summary: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.EvidenceRecord{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var summary wikipediaSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("decode summary: %w", err)
	}
	if summary.Extract == "" {
		return model.EvidenceRecord{}, fmt.Errorf("no extract for %q", clean)
	}

	title = summary.Title
	if title == "" {
		title = clean
	}

	return model.EvidenceRecord{
		Success: true,
		Query:   query,
		Source:  "wikipedia:" + title,
		Content: summary.Extract,
		Metadata: map[string]string{
			"title": title,
			"url":   summary.ContentURLs.Desktop.Page,
		},
	}, nil
}

// instantAnswerSource queries the DuckDuckGo instant-answer endpoint.
type instantAnswerSource struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

type instantAnswer struct {
	AbstractText string `json:"AbstractText"`
	Abstract     string `json:"Abstract"`
	Heading      string `json:"Heading"`
	AbstractURL  string `json:"AbstractURL"`
}

// Abstracts of 50 characters or fewer are treated as no answer.
const minAbstractChars = 50

// Query fetches an instant answer. Success requires an abstract longer
// than minAbstractChars.
func (s *instantAnswerSource) Query(ctx context.Context, query string) (model.EvidenceRecord, error) {
	clean := cleanQuery(query)

	params := url.Values{}
	params.Set("q", clean)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	endpoint := s.baseURL + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("fetch instant answer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.EvidenceRecord{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("decode instant answer: %w", err)
	}

	content := answer.AbstractText
	if content == "" {
		content = answer.Abstract
	}
	if len(content) <= minAbstractChars {
		return model.EvidenceRecord{}, fmt.Errorf("no instant answer available")
	}

	heading := answer.Heading
	if heading == "" {
		heading = clean
	}

	return model.EvidenceRecord{
		Success: true,
		Query:   query,
		Source:  "duckduckgo:" + heading,
		Content: content,
		Metadata: map[string]string{
			"heading": answer.Heading,
			"url":     answer.AbstractURL,
		},
	}, nil
}

// htmlSearchSource posts the query to an HTML search form and extracts
// visible text from the response.
type htmlSearchSource struct {
	baseURL      string
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// Query runs the HTML search. The raw HTML passes through the content
// extractor before being wrapped in an evidence record.
func (s *htmlSearchSource) Query(ctx context.Context, query string) (model.EvidenceRecord, error) {
	form := url.Values{}
	form.Set("q", cleanQuery(query))

	endpoint := s.baseURL + "/html/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("fetch search page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.EvidenceRecord{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	maxBytes := s.maxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("read body: %w", err)
	}

	content := ExtractContent(string(body))
	if content == "" {
		return model.EvidenceRecord{}, fmt.Errorf("no visible content extracted")
	}

	return model.EvidenceRecord{
		Success: true,
		Query:   query,
		Source:  "search:" + s.baseURL,
		Content: content,
		Metadata: map[string]string{
			"url":    endpoint,
			"status": fmt.Sprintf("%d", resp.StatusCode),
		},
	}, nil
}
