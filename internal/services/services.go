// package services defines interface PlaylistSource for fetching playlist data
// from remote music services
package services

import (
	"context"

	"github.com/mixport/mixport/internal/models"
)

// PlaylistSource defines the interface for services that supply playlist
// snapshots with full track listings. Pagination is handled by the
// implementation; callers receive the complete ordered sequence, with nil
// entries standing in for deleted or unavailable tracks.
type PlaylistSource interface {
	// ExportPlaylist fetches a playlist with all its tracks.
	ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
