// package match implements best-effort YouTube track lookup via search-page scraping.
//
// A lookup never fails: network and parse errors degrade to an unmatched
// result carrying a search-results URL the user can check manually.
package match

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mixport/mixport/internal/models"
	"github.com/mixport/mixport/internal/shared"
)

const (
	searchBaseURL = "https://www.youtube.com/results?search_query="
	watchBaseURL  = "https://www.youtube.com/watch?v="

	// a browser user agent; YouTube serves a stripped page to unknown clients
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	DefaultAttempts  = 3
	DefaultTimeout   = 10 * time.Second
	DefaultRetryWait = 2 * time.Second
)

var (
	// video IDs are 11 characters of letters, digits, hyphen, and underscore,
	// embedded as JSON in the results page
	videoIDPattern    = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)
	queryStripPattern = regexp.MustCompile(`[^\w\s-]`)
)

// MatchProvider defines the capability of resolving an artist+title query to a
// video on the secondary platform. Implementations must not return errors;
// failures degrade to an unmatched [models.MatchResult].
type MatchProvider interface {
	Match(ctx context.Context, artists []string, title string) models.MatchResult
}

// SearchURL builds the search-results page URL for the given artist names and
// track title, without issuing any network calls.
func SearchURL(artists []string, title string) string {
	query := strings.Join(append(append([]string{}, artists...), title), " ")
	clean := strings.TrimSpace(queryStripPattern.ReplaceAllString(query, ""))
	return searchBaseURL + url.QueryEscape(clean)
}

// MatcherOpts contains configuration options for creating a YouTubeMatcher.
// Zero values fall back to defaults.
type MatcherOpts struct {
	Client    *http.Client
	Logger    *log.Logger
	Attempts  int
	RetryWait time.Duration
}

// YouTubeMatcher implements [MatchProvider] by scraping the YouTube search
// results page for an embedded video ID.
type YouTubeMatcher struct {
	client    *http.Client
	logger    *log.Logger
	attempts  int
	retryWait time.Duration
}

// NewYouTubeMatcher creates a matcher with the provided options.
func NewYouTubeMatcher(opts MatcherOpts) *YouTubeMatcher {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = DefaultRetryWait
	}

	return &YouTubeMatcher{
		client:    opts.Client,
		logger:    opts.Logger,
		attempts:  opts.Attempts,
		retryWait: opts.RetryWait,
	}
}

// Match searches for the first video matching the artist+title query. It makes
// up to the configured number of attempts, waiting a fixed interval after each
// transport failure, and returns as soon as a video ID is found. When every
// attempt fails or yields no ID, the result is unmatched and carries the
// search-results URL.
func (m *YouTubeMatcher) Match(ctx context.Context, artists []string, title string) models.MatchResult {
	searchURL := SearchURL(artists, title)

	for attempt := 1; attempt <= m.attempts; attempt++ {
		body, err := m.fetch(ctx, searchURL)
		if err != nil {
			m.logger.Debug("search attempt failed", "attempt", attempt, "title", title, "err", err)
			if attempt < m.attempts {
				select {
				case <-ctx.Done():
					return models.MatchResult{URL: searchURL}
				case <-time.After(m.retryWait):
				}
			}
			continue
		}

		if sub := videoIDPattern.FindStringSubmatch(body); sub != nil {
			return models.MatchResult{Matched: true, VideoID: sub[1], URL: watchBaseURL + sub[1]}
		}
	}

	return models.MatchResult{URL: searchURL}
}

func (m *YouTubeMatcher) fetch(ctx context.Context, searchURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}
