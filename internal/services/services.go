// package services implements HTTP clients for the Spotify Web API and the
// internal rootlist endpoint.
package services

import (
	"context"

	"github.com/mkeke/spotify-library-grabber/internal/paging"
)

// Library defines the paginated library endpoints the export pipeline consumes.
//
// Implementations carry their own credentials; nothing is ambient. One fetch
// method per collection type, each returning a single raw page.
type Library interface {
	// SavedTracks returns one page of the user's liked songs.
	SavedTracks(ctx context.Context, limit, offset int) (*paging.Page[SavedTrack], error)

	// SavedAlbums returns one page of the user's saved albums.
	SavedAlbums(ctx context.Context, limit, offset int) (*paging.Page[SavedAlbum], error)

	// AlbumTracks returns one page of an album's full track listing. Needed
	// when the listing embedded on a saved album carries a next page.
	AlbumTracks(ctx context.Context, albumID string, limit, offset int) (*paging.Page[AlbumTrack], error)

	// SavedShows returns one page of the user's saved podcast shows.
	SavedShows(ctx context.Context, limit, offset int) (*paging.Page[SavedShow], error)

	// UserPlaylists returns one page of the user's playlists.
	UserPlaylists(ctx context.Context, limit, offset int) (*paging.Page[Playlist], error)

	// PlaylistTracks returns one page of a playlist's tracks.
	PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*paging.Page[PlaylistTrack], error)

	// FollowedArtists returns one cursor page of the user's followed artists.
	// An empty after string requests the first page.
	FollowedArtists(ctx context.Context, limit int, after string) (*paging.CursorPage[Artist], error)
}

// FolderSource provides the playlist folder hierarchy that the public API
// does not expose. Implementations require a separately obtained credential.
type FolderSource interface {
	// Rootlist fetches the root folder node of the user's playlist tree.
	Rootlist(ctx context.Context) (*FolderNode, error)
}
