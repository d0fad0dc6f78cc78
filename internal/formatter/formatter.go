// package formatter renders playlist exports into markdown and M3U documents.
//
// The four output variants share a single iteration pipeline so that
// absent-track handling and matcher pacing live in one place; each variant
// only supplies its header, entry, and footer rendering.
package formatter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mixport/mixport/internal/match"
	"github.com/mixport/mixport/internal/models"
	"github.com/mixport/mixport/internal/shared"
	"golang.org/x/time/rate"
)

// Format identifies an output document variant.
type Format string

const (
	FormatMarkdown      Format = "markdown"       // markdown with YouTube links, Spotify fallback
	FormatSpotifyM3U    Format = "spotify"        // M3U with native Spotify URLs
	FormatYouTubeM3U    Format = "youtube"        // M3U with searched YouTube URLs
	FormatYouTubeSearch Format = "youtube-search" // M3U with search URLs only, no network calls
)

// DefaultPace is the minimum spacing between consecutive matcher calls, a
// courtesy delay to avoid hammering the search endpoint.
const DefaultPace = 500 * time.Millisecond

const dateLayout = "January 2, 2006"

// Formats lists every supported output variant in generation order.
var Formats = []Format{FormatMarkdown, FormatSpotifyM3U, FormatYouTubeM3U, FormatYouTubeSearch}

// ParseFormat validates a format name from user input.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatSpotifyM3U, FormatYouTubeM3U, FormatYouTubeSearch:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Filename returns the output file name for a playlist slug, e.g.
// "road-trip-playlist.md" or "road-trip-youtube.m3u".
func (f Format) Filename(slug string) string {
	switch f {
	case FormatMarkdown:
		return slug + "-playlist.md"
	case FormatSpotifyM3U:
		return slug + "-spotify.m3u"
	case FormatYouTubeM3U:
		return slug + "-youtube.m3u"
	case FormatYouTubeSearch:
		return slug + "-youtube-search.m3u"
	default:
		return slug + ".txt"
	}
}

// NeedsMatcher reports whether generating this format issues matcher lookups.
func (f Format) NeedsMatcher() bool {
	return f == FormatMarkdown || f == FormatYouTubeM3U
}

// Options configures a Render call.
type Options struct {
	// Matcher resolves tracks to YouTube videos; required for formats where
	// NeedsMatcher is true.
	Matcher match.MatchProvider

	// Pace is the minimum spacing between matcher calls. Values <= 0 disable
	// pacing; callers normally pass DefaultPace.
	Pace time.Duration

	// SearchFallback controls the enriched M3U's unmatched entries: a
	// commented search URL when true, a "not found" comment when false.
	SearchFallback bool

	// Now supplies generation timestamps; defaults to time.Now.
	Now func() time.Time

	// Progress, when non-nil, is invoked before each track is processed.
	Progress func(step, total int, message string)

	Logger *log.Logger
}

// Result is a rendered document plus match statistics.
type Result struct {
	Content      []byte
	TrackCount   int // present (non-nil) tracks
	MatchedCount int // tracks resolved to a direct video link
}

// variant supplies the format-specific pieces of the shared pipeline.
type variant interface {
	header(buf *bytes.Buffer, export *models.PlaylistExport, now time.Time) error
	entry(buf *bytes.Buffer, position int, track *models.Track, res *models.MatchResult) error
	unavailable(buf *bytes.Buffer, position int)
	footer(buf *bytes.Buffer, export *models.PlaylistExport)
}

// Render generates a document of the requested format from a playlist export.
// Every present track yields exactly one output record; nil (unavailable)
// entries render a positional marker in markdown and are skipped in M3U
// variants. A playlist with zero tracks renders header and footer only.
func Render(ctx context.Context, format Format, export *models.PlaylistExport, opts Options) (*Result, error) {
	if export == nil {
		return nil, fmt.Errorf("%w: nil playlist export", shared.ErrInvalidInput)
	}
	if format.NeedsMatcher() && opts.Matcher == nil {
		return nil, fmt.Errorf("%w: format %s requires a matcher", shared.ErrInvalidInput, format)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	var v variant
	switch format {
	case FormatMarkdown:
		v = markdownVariant{}
	case FormatSpotifyM3U:
		v = spotifyM3UVariant{}
	case FormatYouTubeM3U:
		v = youtubeM3UVariant{searchFallback: opts.SearchFallback}
	case FormatYouTubeSearch:
		v = youtubeSearchVariant{}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}

	var limiter *rate.Limiter
	if format.NeedsMatcher() && opts.Pace > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Pace), 1)
	}

	buf := &bytes.Buffer{}
	now := opts.Now()
	if err := v.header(buf, export, now); err != nil {
		return nil, err
	}

	result := &Result{}
	total := len(export.Tracks)

	for i, track := range export.Tracks {
		position := i + 1

		if track == nil {
			v.unavailable(buf, position)
			continue
		}
		result.TrackCount++

		if opts.Progress != nil {
			opts.Progress(position, total, fmt.Sprintf("%s - %s", track.ArtistLine(), track.Name))
		}

		var res *models.MatchResult
		if format.NeedsMatcher() {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return nil, fmt.Errorf("generation canceled: %w", err)
				}
			}
			r := opts.Matcher.Match(ctx, track.Artists, track.Name)
			res = &r
			if r.Matched {
				result.MatchedCount++
			}
		}

		if err := v.entry(buf, position, track, res); err != nil {
			return nil, err
		}
	}

	v.footer(buf, export)
	result.Content = buf.Bytes()

	opts.Logger.Debug("rendered document", "format", format, "tracks", result.TrackCount, "matched", result.MatchedCount)
	return result, nil
}

// totalDuration sums the durations of present tracks and formats the result.
func totalDuration(tracks []*models.Track) (string, error) {
	sum := 0
	for _, t := range tracks {
		if t != nil {
			sum += t.DurationMS
		}
	}
	return shared.FormatDuration(sum)
}

// markdownVariant renders the numbered markdown document with YouTube links
// and Spotify fallbacks.
type markdownVariant struct{}

func (markdownVariant) header(buf *bytes.Buffer, export *models.PlaylistExport, now time.Time) error {
	p := export.Playlist
	total, err := totalDuration(export.Tracks)
	if err != nil {
		return err
	}

	fmt.Fprintf(buf, "# %s\n\n", shared.EscapeMarkdown(p.Name))
	fmt.Fprintf(buf, "**Created by:** %s\n", p.Owner)
	fmt.Fprintf(buf, "**Total tracks:** %d\n", p.TrackCount)
	fmt.Fprintf(buf, "**Total duration:** %s\n", total)
	fmt.Fprintf(buf, "**Generated on:** %s\n\n", now.Format(dateLayout))

	if desc := shared.EscapeMarkdown(p.Description); desc != "" {
		fmt.Fprintf(buf, "**Description:** %s\n\n", desc)
	}

	buf.WriteString("---\n\n## Tracks\n\n")
	return nil
}

func (markdownVariant) entry(buf *bytes.Buffer, position int, track *models.Track, res *models.MatchResult) error {
	duration, err := shared.FormatDuration(track.DurationMS)
	if err != nil {
		return err
	}

	escaped := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		escaped = append(escaped, shared.EscapeMarkdown(artist))
	}

	fmt.Fprintf(buf, "%d. **%s** by %s\n", position, shared.EscapeMarkdown(track.Name), strings.Join(escaped, ", "))
	fmt.Fprintf(buf, "   - Album: *%s*\n", shared.EscapeMarkdown(track.Album))
	fmt.Fprintf(buf, "   - Duration: %s\n", duration)

	if res.Matched {
		fmt.Fprintf(buf, "   - [Listen on YouTube](%s)\n", res.URL)
		if track.URL != "" {
			fmt.Fprintf(buf, "   - [Backup: Listen on Spotify](%s)\n", track.URL)
		}
	} else if track.URL != "" {
		fmt.Fprintf(buf, "   - [Listen on Spotify](%s)\n", track.URL)
	}

	buf.WriteString("\n")
	return nil
}

func (markdownVariant) unavailable(buf *bytes.Buffer, position int) {
	fmt.Fprintf(buf, "%d. *[Track unavailable]*\n", position)
}

func (markdownVariant) footer(buf *bytes.Buffer, export *models.PlaylistExport) {
	buf.WriteString("---\n\n")
	buf.WriteString("*Generated using Spotify Web API with YouTube link integration*\n\n")
	if export.Playlist.URL != "" {
		fmt.Fprintf(buf, "**Original Spotify Playlist:** [Listen on Spotify](%s)\n", export.Playlist.URL)
	}
}

// spotifyM3UVariant renders an M3U whose entries point at native Spotify URLs.
type spotifyM3UVariant struct{}

func (spotifyM3UVariant) header(buf *bytes.Buffer, export *models.PlaylistExport, _ time.Time) error {
	buf.WriteString("#EXTM3U\n")
	fmt.Fprintf(buf, "#PLAYLIST:%s\n\n", export.Playlist.Name)
	return nil
}

func (spotifyM3UVariant) entry(buf *bytes.Buffer, _ int, track *models.Track, _ *models.MatchResult) error {
	artists := track.ArtistLine()
	fmt.Fprintf(buf, "#EXTINF:%d,%s - %s\n", track.DurationMS/1000, artists, track.Name)

	if track.URL != "" {
		fmt.Fprintf(buf, "%s\n", track.URL)
	} else {
		// spaces only; players display these comments verbatim
		query := strings.ReplaceAll(artists+" "+track.Name, " ", "%20")
		fmt.Fprintf(buf, "# Search: https://open.spotify.com/search/%s\n", query)
	}

	buf.WriteString("\n")
	return nil
}

func (spotifyM3UVariant) unavailable(*bytes.Buffer, int) {}

func (spotifyM3UVariant) footer(*bytes.Buffer, *models.PlaylistExport) {}

// youtubeM3UVariant renders an M3U with searched YouTube watch URLs so the
// file is directly playable in VLC.
type youtubeM3UVariant struct {
	searchFallback bool
}

func (youtubeM3UVariant) header(buf *bytes.Buffer, export *models.PlaylistExport, now time.Time) error {
	buf.WriteString("#EXTM3U\n")
	fmt.Fprintf(buf, "#PLAYLIST:%s\n", export.Playlist.Name)
	buf.WriteString("# YouTube playlist generated from Spotify - playable in VLC\n")
	fmt.Fprintf(buf, "# Generated on %s\n\n", now.Format(dateLayout))
	return nil
}

func (v youtubeM3UVariant) entry(buf *bytes.Buffer, _ int, track *models.Track, res *models.MatchResult) error {
	fmt.Fprintf(buf, "#EXTINF:%d,%s - %s\n", track.DurationMS/1000, track.ArtistLine(), track.Name)

	switch {
	case res.Matched:
		fmt.Fprintf(buf, "%s\n", res.URL)
	case v.searchFallback:
		fmt.Fprintf(buf, "# Search: %s\n", res.URL)
	default:
		buf.WriteString("# Not found on YouTube\n")
	}

	buf.WriteString("\n")
	return nil
}

func (youtubeM3UVariant) unavailable(*bytes.Buffer, int) {}

func (youtubeM3UVariant) footer(*bytes.Buffer, *models.PlaylistExport) {}

// youtubeSearchVariant renders an M3U of search URLs without any network
// calls, for users who prefer to verify links manually.
type youtubeSearchVariant struct{}

func (youtubeSearchVariant) header(buf *bytes.Buffer, export *models.PlaylistExport, now time.Time) error {
	buf.WriteString("#EXTM3U\n")
	fmt.Fprintf(buf, "#PLAYLIST:%s\n", export.Playlist.Name)
	buf.WriteString("# YouTube search playlist - manually verify URLs for best results\n")
	fmt.Fprintf(buf, "# Generated on %s\n\n", now.Format(dateLayout))
	return nil
}

func (youtubeSearchVariant) entry(buf *bytes.Buffer, _ int, track *models.Track, _ *models.MatchResult) error {
	fmt.Fprintf(buf, "#EXTINF:%d,%s - %s\n", track.DurationMS/1000, track.ArtistLine(), track.Name)
	fmt.Fprintf(buf, "# Manual search needed: %s\n", match.SearchURL(track.Artists, track.Name))
	if track.URL != "" {
		fmt.Fprintf(buf, "# Spotify: %s\n", track.URL)
	}
	buf.WriteString("\n")
	return nil
}

func (youtubeSearchVariant) unavailable(*bytes.Buffer, int) {}

func (youtubeSearchVariant) footer(*bytes.Buffer, *models.PlaylistExport) {}
