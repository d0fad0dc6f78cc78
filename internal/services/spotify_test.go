package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mixport/mixport/internal/shared"
	"github.com/zmb3/spotify/v2"
)

func TestExtractPlaylistID(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"full url", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"url with query", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc123", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"uri", "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"bare id", "37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M", false},
		{"unrelated url", "https://example.com/nothing", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tc.input)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractPlaylistID(%q) returned error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNewSpotifyServiceMissingCredentials(t *testing.T) {
	_, err := NewSpotifyService(context.Background(), "", "", nil)
	if !errors.Is(err, shared.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestBuildExport(t *testing.T) {
	fp := &spotify.FullPlaylist{}
	fp.Name = "Road Trip"
	fp.Description = "Songs for the road"
	fp.Owner.DisplayName = "maya"
	fp.Tracks.Total = 3
	fp.ExternalURLs = map[string]string{"spotify": "https://open.spotify.com/playlist/abc"}

	present := &spotify.FullTrack{}
	present.Name = "Song One"
	present.ID = "t1"
	present.Duration = 180000
	present.Artists = []spotify.SimpleArtist{{Name: "Artist One"}, {Name: "Artist Two"}}
	present.Album.Name = "Album One"
	present.ExternalURLs = map[string]string{"spotify": "https://open.spotify.com/track/t1"}

	items := []spotify.PlaylistItem{
		{Track: spotify.PlaylistItemTrack{Track: present}},
		{Track: spotify.PlaylistItemTrack{Track: nil}},
	}

	export := buildExport(fp, items)

	if export.Playlist.Name != "Road Trip" {
		t.Errorf("expected playlist name %q, got %q", "Road Trip", export.Playlist.Name)
	}
	if export.Playlist.Owner != "maya" {
		t.Errorf("expected owner %q, got %q", "maya", export.Playlist.Owner)
	}
	if export.Playlist.TrackCount != 3 {
		t.Errorf("expected track count 3, got %d", export.Playlist.TrackCount)
	}
	if export.Playlist.URL != "https://open.spotify.com/playlist/abc" {
		t.Errorf("unexpected playlist URL %q", export.Playlist.URL)
	}

	if len(export.Tracks) != 2 {
		t.Fatalf("expected 2 track entries, got %d", len(export.Tracks))
	}

	track := export.Tracks[0]
	if track == nil {
		t.Fatal("expected first track to be present")
	}
	if track.Name != "Song One" {
		t.Errorf("expected track name %q, got %q", "Song One", track.Name)
	}
	if track.ArtistLine() != "Artist One, Artist Two" {
		t.Errorf("unexpected artist line %q", track.ArtistLine())
	}
	if track.Album != "Album One" {
		t.Errorf("expected album %q, got %q", "Album One", track.Album)
	}
	if track.DurationMS != 180000 {
		t.Errorf("expected duration 180000, got %d", track.DurationMS)
	}
	if track.URL != "https://open.spotify.com/track/t1" {
		t.Errorf("unexpected track URL %q", track.URL)
	}

	if export.Tracks[1] != nil {
		t.Error("expected missing track to map to nil entry")
	}
}
