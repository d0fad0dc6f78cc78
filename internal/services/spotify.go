// Spotify implementation of [PlaylistSource]
//
// Uses the client-credentials flow, which is sufficient for reading public
// playlists and requires no user interaction.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/mixport/mixport/internal/models"
	"github.com/mixport/mixport/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

const playlistPageSize = 100

var (
	playlistPathPattern = regexp.MustCompile(`playlist/([a-zA-Z0-9]+)`)
	playlistURIPattern  = regexp.MustCompile(`spotify:playlist:([a-zA-Z0-9]+)`)
	bareIDPattern       = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// ExtractPlaylistID extracts a playlist ID from a Spotify URL, a
// spotify:playlist: URI, or a bare ID.
func ExtractPlaylistID(input string) (string, error) {
	for _, pattern := range []*regexp.Regexp{playlistPathPattern, playlistURIPattern} {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}

	if bareIDPattern.MatchString(input) {
		return input, nil
	}

	return "", fmt.Errorf("%w: unrecognized playlist URL or ID %q", shared.ErrInvalidInput, input)
}

// SpotifyService implements [PlaylistSource] for the Spotify Web API.
type SpotifyService struct {
	client *spotify.Client
	logger *log.Logger
}

// NewSpotifyService authenticates with Spotify using the client-credentials
// flow and returns a ready-to-use service.
func NewSpotifyService(ctx context.Context, clientID, clientSecret string, logger *log.Logger) (*SpotifyService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	token, err := conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &SpotifyService{client: spotify.New(httpClient), logger: logger}, nil
}

// Name returns the service name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// ExportPlaylist fetches playlist metadata and every page of its items.
func (s *SpotifyService) ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	id := spotify.ID(playlistID)

	fp, err := s.client.GetPlaylist(ctx, id)
	if err != nil {
		return nil, wrapSpotifyError(err)
	}

	var items []spotify.PlaylistItem
	offset := 0
	for {
		page, err := s.client.GetPlaylistItems(ctx, id,
			spotify.Limit(playlistPageSize), spotify.Offset(offset))
		if err != nil {
			return nil, wrapSpotifyError(err)
		}

		items = append(items, page.Items...)
		if len(page.Items) < playlistPageSize {
			break
		}
		offset += playlistPageSize
	}

	s.logger.Debug("fetched playlist", "id", playlistID, "name", fp.Name, "items", len(items))
	return buildExport(fp, items), nil
}

// buildExport converts Spotify API types into the service-neutral export model.
// Items whose track is missing (deleted or region-locked) become nil entries.
func buildExport(fp *spotify.FullPlaylist, items []spotify.PlaylistItem) *models.PlaylistExport {
	playlist := models.Playlist{
		Name:        fp.Name,
		Description: fp.Description,
		Owner:       fp.Owner.DisplayName,
		TrackCount:  int(fp.Tracks.Total),
		URL:         fp.ExternalURLs["spotify"],
	}

	tracks := make([]*models.Track, 0, len(items))
	for i := range items {
		ft := items[i].Track.Track
		if ft == nil || ft.ID == "" {
			tracks = append(tracks, nil)
			continue
		}

		artists := make([]string, 0, len(ft.Artists))
		for _, artist := range ft.Artists {
			artists = append(artists, artist.Name)
		}

		tracks = append(tracks, &models.Track{
			Name:       ft.Name,
			Artists:    artists,
			Album:      ft.Album.Name,
			DurationMS: int(ft.Duration),
			URL:        ft.ExternalURLs["spotify"],
		})
	}

	return &models.PlaylistExport{Playlist: playlist, Tracks: tracks}
}

func wrapSpotifyError(err error) error {
	var se spotify.Error
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return fmt.Errorf("%w: make sure the playlist is public or you have access to it", shared.ErrPlaylistNotFound)
	}
	return fmt.Errorf("%w: %v", shared.ErrSourceFetch, err)
}
