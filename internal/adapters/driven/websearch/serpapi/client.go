// Package serpapi provides a web search adapter backed by the SerpAPI
// Google engine.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.WebSearcher = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://serpapi.com"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxResults = 3

	// Conservative throttle; free SerpAPI plans are tightly metered.
	requestsPerSecond = 1.0
	burstSize         = 2
)

// Config holds configuration for the SerpAPI client.
type Config struct {
	// APIKey is the SerpAPI key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://serpapi.com).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client issues Google searches through SerpAPI.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
}

// searchResponse is the subset of the SerpAPI response we consume.
type searchResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
	Error string `json:"error,omitempty"`
}

// NewClient creates a new SerpAPI client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serpapi: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

// Search returns up to maxResults organic results in provider order.
// Entries without both a title and a snippet are dropped. Errors are
// returned to the caller; deciding whether a failed search counts as
// "no results" is answer-routing policy, not transport policy.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.WebResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/search.json?"+params.Encode(),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if searchResp.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", searchResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error (status %d): %s", resp.StatusCode, string(body))
	}

	// Truncate to the provider's top maxResults first, then drop
	// entries that carry neither enough text to quote.
	organic := searchResp.OrganicResults
	if len(organic) > maxResults {
		organic = organic[:maxResults]
	}

	results := make([]domain.WebResult, 0, len(organic))
	for _, item := range organic {
		if item.Title == "" || item.Snippet == "" {
			continue
		}
		results = append(results, domain.WebResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}

	return results, nil
}
