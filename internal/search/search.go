// Package search provides the Google Custom Search collaborator used as
// the fallback for general queries. It is best effort: the resolver
// treats every error here as a signal to apologize instead.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	domerrors "github.com/margdarshak/margdarshak-go/internal/errors"
	"github.com/margdarshak/margdarshak-go/internal/logger"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Suggestion pool appended to search responses; 3 of these 5 are picked
// at random per response.
var suggestions = []string{
	"Top engineering colleges in India",
	"NEET preparation tips",
	"JEE Main important dates",
	"Scholarships for undergraduate students in India",
	"MBA admission process in IIMs",
}

// Client calls the Google Custom Search JSON API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	engineID   string
	log        *logger.Logger
	pick       func(n, k int) []int
}

// NewClient creates a search client. apiKey and engineID must both be
// set; the server skips registering the client otherwise.
func NewClient(apiKey, engineID string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		engineID:   engineID,
		log:        log.WithModule("search"),
		pick:       randomPick,
	}
}

// Search queries the API scoped to Indian education and returns the raw
// result list.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, domerrors.ErrMissingCredentials
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query+" India education college university")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, domerrors.NewCollaboratorError("search", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domerrors.NewCollaboratorError("search", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, domerrors.NewCollaboratorError("search",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload struct {
		Items []Result `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domerrors.NewCollaboratorError("search", err)
	}

	return payload.Items, nil
}

// Respond implements chat.Searcher: it searches and renders the response
// block with up to 3 results and 3 random follow-up suggestions.
func (c *Client) Respond(ctx context.Context, query, greeting string) (string, error) {
	results, err := c.Search(ctx, query)
	if err != nil {
		return "", err
	}

	return c.formatResults(query, results, greeting), nil
}

// formatResults renders the search response. An empty result list is a
// valid response, not an error.
func (c *Client) formatResults(query string, results []Result, greeting string) string {
	if len(results) == 0 {
		return fmt.Sprintf("%sI couldn't find specific information about '%s' in the context of Indian education. Please try asking about specific colleges, exams, or admission processes.", greeting, query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%sHere's what I found about '%s' in the Indian education context:\n\n", greeting, query)

	if len(results) > 3 {
		results = results[:3]
	}
	for i, item := range results {
		title := item.Title
		if title == "" {
			title = "No title"
		}
		snippet := item.Snippet
		if snippet == "" {
			snippet = "No description available"
		}
		link := item.Link
		if link == "" {
			link = "#"
		}

		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		fmt.Fprintf(&sb, "   • %s\n", snippet)
		fmt.Fprintf(&sb, "   • %s\n\n", link)
	}

	sb.WriteString("You might also be interested in:\n")
	for _, i := range c.pick(len(suggestions), 3) {
		fmt.Fprintf(&sb, "• %s\n", suggestions[i])
	}

	return sb.String()
}

// randomPick returns k distinct indices out of n in random order.
func randomPick(n, k int) []int {
	perm := rand.Perm(n)
	if k > n {
		k = n
	}
	return perm[:k]
}
