package match

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mixport/mixport/internal/shared"
	internaltesting "github.com/mixport/mixport/internal/testing"
)

func newTestMatcher(client *http.Client) *YouTubeMatcher {
	return NewYouTubeMatcher(MatcherOpts{
		Client:    client,
		Logger:    shared.NewLogger(io.Discard),
		Attempts:  3,
		RetryWait: time.Millisecond,
	})
}

func TestSearchURL(t *testing.T) {
	cases := []struct {
		name    string
		artists []string
		title   string
		want    string
	}{
		{
			"plain",
			[]string{"Artist One"}, "Song One",
			"https://www.youtube.com/results?search_query=Artist+One+Song+One",
		},
		{
			"punctuation dropped",
			[]string{"AC/DC"}, "T.N.T.",
			"https://www.youtube.com/results?search_query=ACDC+TNT",
		},
		{
			"multiple artists",
			[]string{"A", "B"}, "Song",
			"https://www.youtube.com/results?search_query=A+B+Song",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SearchURL(tc.artists, tc.title); got != tc.want {
				t.Errorf("SearchURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMatchFindsVideoID(t *testing.T) {
	page := `{"contents": [{"videoId":"dQw4w9WgXcQ"}, {"videoId":"abcdefghijk"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header on search requests")
		}
		io.WriteString(w, page)
	}))
	defer server.Close()

	matcher := newTestMatcher(server.Client())
	matcher = redirectMatcher(matcher, server.URL)

	result := matcher.Match(context.Background(), []string{"Artist"}, "Song")
	if !result.Matched {
		t.Fatal("expected a match")
	}
	if result.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected first video ID, got %q", result.VideoID)
	}
	if result.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("unexpected watch URL %q", result.URL)
	}
}

func TestMatchTransportFailure(t *testing.T) {
	transport := &internaltesting.FailingRoundTripper{}
	matcher := newTestMatcher(&http.Client{Transport: transport})

	result := matcher.Match(context.Background(), []string{"Artist"}, "Song")
	if result.Matched {
		t.Error("expected unmatched result after transport failures")
	}
	if !strings.HasPrefix(result.URL, "https://www.youtube.com/results?search_query=") {
		t.Errorf("expected a search fallback URL, got %q", result.URL)
	}
	if transport.Requests != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", transport.Requests)
	}
}

func TestMatchNoVideoIDInPage(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		io.WriteString(w, "<html>nothing useful</html>")
	}))
	defer server.Close()

	matcher := newTestMatcher(server.Client())
	matcher = redirectMatcher(matcher, server.URL)

	result := matcher.Match(context.Background(), []string{"Artist"}, "Song")
	if result.Matched {
		t.Error("expected unmatched result when page has no video ID")
	}
	if requests != 3 {
		t.Errorf("expected 3 attempts, got %d", requests)
	}
}

func TestMatchErrorStatus(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	matcher := newTestMatcher(server.Client())
	matcher = redirectMatcher(matcher, server.URL)

	result := matcher.Match(context.Background(), []string{"Artist"}, "Song")
	if result.Matched {
		t.Error("expected unmatched result for error status")
	}
	if requests != 3 {
		t.Errorf("expected 3 attempts, got %d", requests)
	}
}

func TestMatchCancelledContext(t *testing.T) {
	transport := &internaltesting.FailingRoundTripper{}
	matcher := NewYouTubeMatcher(MatcherOpts{
		Client:    &http.Client{Transport: transport},
		Logger:    shared.NewLogger(io.Discard),
		Attempts:  3,
		RetryWait: time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := matcher.Match(ctx, []string{"Artist"}, "Song")
	if result.Matched {
		t.Error("expected unmatched result with cancelled context")
	}
	if result.URL == "" {
		t.Error("expected a search fallback URL")
	}
}

// redirectMatcher rewrites the matcher's client to send every request to a
// local test server regardless of the request URL.
func redirectMatcher(m *YouTubeMatcher, target string) *YouTubeMatcher {
	base := m.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	m.client = &http.Client{Transport: rewriteTransport{base: base, target: target}}
	return m
}

type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rewritten, err := http.NewRequestWithContext(req.Context(), req.Method, rt.target+"?"+req.URL.RawQuery, nil)
	if err != nil {
		return nil, err
	}
	rewritten.Header = req.Header
	return rt.base.RoundTrip(rewritten)
}
