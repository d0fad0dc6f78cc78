// package remix converts previously generated markdown playlists back into
// playable M3U files.
//
// Only track blocks carrying a "Listen on YouTube" watch link are recovered;
// entries that only ever had a Spotify link are dropped, since the sole
// purpose of this path is regenerating a playlist file from matched entries.
package remix

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mixport/mixport/internal/formatter"
	"github.com/mixport/mixport/internal/models"
	"github.com/mixport/mixport/internal/shared"
)

var (
	// numbered entry: `1. **Name** by Artist`
	trackPattern = regexp.MustCompile(`(\d+)\.\s*\*\*(.+?)\*\*\s+by\s+(.+)$`)
	// bullet line: `- [Listen on YouTube](https://www.youtube.com/watch?v=...)`
	youtubePattern = regexp.MustCompile(`\[[^\]]*Listen on YouTube[^\]]*\]\((https://www\.youtube\.com/watch\?v=[\w-]+)\)`)
	// bullet line: `- Duration: 3:42`
	durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d+)`)
	// first-level heading
	headingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	// punctuation dropped from recovered playlist names
	namePunctPattern = regexp.MustCompile(`[^\w\s\-()&.,]`)
)

// ExtractTracks scans a markdown document for numbered track entries and
// returns one record per entry that carries a YouTube watch link. A numbered
// line opens a pending record; duration and link lines before the next
// numbered line fill it in, and the record is emitted only once a link is
// seen.
func ExtractTracks(markdown string) []models.ExtractedTrack {
	var tracks []models.ExtractedTrack
	var pending *models.ExtractedTrack

	for _, line := range strings.Split(markdown, "\n") {
		if m := trackPattern.FindStringSubmatch(line); m != nil {
			number, _ := strconv.Atoi(m[1])
			pending = &models.ExtractedTrack{
				Number: number,
				Name:   unescape(m[2]),
				Artist: unescape(m[3]),
			}
			continue
		}

		if pending == nil {
			continue
		}

		if m := durationPattern.FindStringSubmatch(line); m != nil {
			minutes, _ := strconv.Atoi(m[1])
			seconds, _ := strconv.Atoi(m[2])
			pending.DurationSec = minutes*60 + seconds
		}

		if m := youtubePattern.FindStringSubmatch(line); m != nil {
			pending.YouTubeURL = m[1]
			tracks = append(tracks, *pending)
			pending = nil
		}
	}

	return tracks
}

// ExtractPlaylistName returns the first-level heading's text with punctuation
// outside word characters, whitespace, hyphen, parentheses, &, period, and
// comma stripped. Defaults to "Playlist" when no heading is found.
func ExtractPlaylistName(markdown string) string {
	if m := headingPattern.FindStringSubmatch(markdown); m != nil {
		if name := strings.TrimSpace(namePunctPattern.ReplaceAllString(m[1], "")); name != "" {
			return name
		}
	}
	return "Playlist"
}

// unescape strips the backslash escape markers inserted when the markdown was
// generated.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\`, "")
}

// GenerateM3U renders recovered tracks as an extended M3U document.
func GenerateM3U(tracks []models.ExtractedTrack, playlistName string, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	fmt.Fprintf(&b, "#PLAYLIST:%s\n", playlistName)
	b.WriteString("# Generated from markdown file with YouTube links\n")
	fmt.Fprintf(&b, "# Generated on %s\n\n", now.Format("January 2, 2006"))

	for _, track := range tracks {
		fmt.Fprintf(&b, "#EXTINF:%d,%s - %s\n", track.DurationSec, track.Artist, track.Name)
		fmt.Fprintf(&b, "%s\n\n", track.YouTubeURL)
	}

	return []byte(b.String())
}

// Converter re-extracts markdown playlist files into M3U output.
type Converter struct {
	logger *log.Logger
	now    func() time.Time
}

// NewConverter creates a Converter. A nil logger falls back to the default.
func NewConverter(logger *log.Logger) *Converter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Converter{logger: logger, now: time.Now}
}

// ProcessFile converts a single markdown file and returns the written M3U
// path. outputDir defaults to the input file's directory.
func (c *Converter) ProcessFile(path, outputDir string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".md") {
		return "", fmt.Errorf("%w: %s is not a markdown file", shared.ErrInvalidInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	markdown := string(data)

	name := ExtractPlaylistName(markdown)
	tracks := ExtractTracks(markdown)
	c.logger.Debug("extracted tracks", "file", path, "playlist", name, "count", len(tracks))

	if len(tracks) == 0 {
		return "", fmt.Errorf("%w in %s", shared.ErrNoMatchedTracks, path)
	}

	if outputDir == "" {
		outputDir = filepath.Dir(path)
	}

	content := GenerateM3U(tracks, name, c.now())
	filename := shared.Slugify(name) + "-youtube.m3u"
	return formatter.WriteDocument(content, filename, outputDir)
}

// ProcessDirectory converts every markdown file found under dir (recursively).
// Per-file failures are logged and do not abort the batch. Returns the number
// of files converted and the number of markdown files found.
func (c *Converter) ProcessDirectory(dir, outputDir string) (converted, found int, err error) {
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		found++
		out, err := c.ProcessFile(path, outputDir)
		if err != nil {
			c.logger.Error("failed to convert", "file", path, "err", err)
			return nil
		}

		c.logger.Info("converted", "file", path, "output", out)
		converted++
		return nil
	})

	if walkErr != nil {
		return converted, found, fmt.Errorf("failed to scan %s: %w", dir, walkErr)
	}
	return converted, found, nil
}
