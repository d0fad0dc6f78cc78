// package models defines the data model for playlist conversion
package models

import "strings"

// Playlist is an immutable snapshot of playlist metadata fetched once from the source service.
type Playlist struct {
	Name        string
	Description string
	Owner       string // owner display name
	TrackCount  int
	URL         string // canonical link on the source service, empty when unknown
}

// Track represents a single playlist entry from the source service.
//
// A nil *Track inside [PlaylistExport.Tracks] marks a deleted or unavailable
// slot. Such slots are preserved positionally when rendering numbered lists
// and skipped entirely in playlist-file formats.
type Track struct {
	Name       string
	Artists    []string // ordered artist names
	Album      string
	DurationMS int
	URL        string // canonical link on the source service, empty when unknown
}

// ArtistLine joins the track's artist names with ", " for display.
func (t *Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// PlaylistExport represents a playlist with its full ordered track listing.
type PlaylistExport struct {
	Playlist Playlist
	Tracks   []*Track
}

// MatchResult is the outcome of a best-effort YouTube lookup. Matching always
// yields at least a usable URL: a watch link when a video was found, otherwise
// a search-results page the user can check manually.
type MatchResult struct {
	Matched bool
	VideoID string // 11-character video token, empty when unmatched
	URL     string
}

// ExtractedTrack is a track record recovered from a previously generated
// markdown document.
type ExtractedTrack struct {
	Number      int
	Name        string
	Artist      string
	DurationSec int
	YouTubeURL  string
}
