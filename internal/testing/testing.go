// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/mixport/mixport/internal/models"
)

// MockMatcher is a scripted test double satisfying match.MatchProvider. When
// Results is exhausted, further calls return the zero (unmatched) result with
// a canned search URL.
type MockMatcher struct {
	Results []models.MatchResult
	Calls   int
}

func (m *MockMatcher) Match(ctx context.Context, artists []string, title string) models.MatchResult {
	i := m.Calls
	m.Calls++
	if i < len(m.Results) {
		return m.Results[i]
	}
	return models.MatchResult{URL: "https://www.youtube.com/results?search_query=none"}
}

// MockSource is a test double satisfying services.PlaylistSource.
type MockSource struct {
	Export *models.PlaylistExport
	Err    error
}

func (m *MockSource) ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	return m.Export, m.Err
}

func (m *MockSource) Name() string { return "mock" }

// FailingRoundTripper counts requests and fails every one of them at the
// transport level.
type FailingRoundTripper struct {
	Requests int
}

func (f *FailingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	f.Requests++
	return nil, errors.New("connection refused")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	Response *http.Response
	Err      error
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.Response, m.Err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
