package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkeke/spotify-library-grabber/internal/services"
)

// Per-collection subdirectories under the export root.
const (
	albumsDir    = "Albums"
	playlistsDir = "Playlists"
	podcastsDir  = "Podcasts"
	artistsDir   = "Artists"
)

// joinArtists renders the comma-joined credited artist list in API order.
func joinArtists(artists []services.Artist) string {
	if len(artists) == 0 {
		return UnknownArtist
	}

	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// projectTrack maps one saved or playlist track entry to its exported record,
// substituting sentinels when the nested track object is null.
func projectTrack(item services.SavedTrack) Track {
	if item.Track == nil {
		return Track{
			Name:    UnknownTrack,
			Artist:  UnknownArtist,
			Album:   UnknownAlbum,
			AddedAt: item.AddedAt,
			URI:     nil,
		}
	}

	t := item.Track
	album := t.Album.Name
	if album == "" {
		album = UnknownAlbum
	}

	uri := t.URI
	return Track{
		Name:    t.Name,
		Artist:  joinArtists(t.Artists),
		Album:   album,
		AddedAt: item.AddedAt,
		URI:     &uri,
	}
}

// projectAlbumTrack maps one album track listing entry to its exported record.
func projectAlbumTrack(t services.AlbumTrack) Track {
	uri := t.URI
	return Track{
		Name:        t.Name,
		Artist:      joinArtists(t.Artists),
		TrackNumber: t.TrackNumber,
		DurationMS:  t.DurationMS,
		URI:         &uri,
	}
}

// ProjectAlbum maps a saved album and its full track listing to its exported
// record and target path (Albums/<Artists> - <Title>/album_info.json).
// Tracks are ordered by disc then track number.
func ProjectAlbum(item services.SavedAlbum, listing []services.AlbumTrack) (Album, string) {
	al := item.Album

	tracks := make([]Track, 0, len(listing))
	items := append([]services.AlbumTrack(nil), listing...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DiscNumber != items[j].DiscNumber {
			return items[i].DiscNumber < items[j].DiscNumber
		}
		return items[i].TrackNumber < items[j].TrackNumber
	})
	for _, t := range items {
		tracks = append(tracks, projectAlbumTrack(t))
	}

	record := Album{
		Name:        al.Name,
		Artist:      joinArtists(al.Artists),
		ID:          al.ID,
		URI:         al.URI,
		ReleaseDate: al.ReleaseDate,
		TotalTracks: al.TotalTracks,
		Tracks:      tracks,
	}

	dir := Sanitize(fmt.Sprintf("%s - %s", record.Artist, record.Name))
	return record, filepath.Join(albumsDir, dir, "album_info.json")
}

// ProjectShow maps a saved show to its exported record and target path
// (Podcasts/<Show Name>/show_info.json).
func ProjectShow(item services.SavedShow) (Show, string) {
	sh := item.Show
	record := Show{
		Name:          sh.Name,
		Publisher:     sh.Publisher,
		Description:   sh.Description,
		ID:            sh.ID,
		URI:           sh.URI,
		TotalEpisodes: sh.TotalEpisodes,
		AddedAt:       item.AddedAt,
	}

	return record, filepath.Join(podcastsDir, Sanitize(sh.Name), "show_info.json")
}

// ProjectArtist maps a followed artist to its exported record and target path
// (Artists/<Name>.json).
func ProjectArtist(a services.Artist) (FollowedArtist, string) {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}

	record := FollowedArtist{
		Name:   a.Name,
		Genres: genres,
		ID:     a.ID,
		URI:    a.URI,
	}

	return record, filepath.Join(artistsDir, Sanitize(a.Name)+".json")
}

// ProjectPlaylist maps a playlist and its drained tracks to the exported
// record and target path. The folder path (possibly empty) comes from the
// rootlist folder map and is already sanitized.
func ProjectPlaylist(pl services.Playlist, items []services.PlaylistTrack, folder []string) (Playlist, string) {
	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, projectTrack(item))
	}

	record := Playlist{
		Name:        pl.Name,
		Description: pl.Description,
		Owner:       pl.Owner.DisplayName,
		ID:          pl.ID,
		URI:         pl.URI,
		Tracks:      tracks,
	}
	if record.Owner == "" {
		record.Owner = pl.Owner.ID
	}

	segments := append(append([]string{playlistsDir}, folder...), Sanitize(pl.Name)+".json")
	return record, filepath.Join(segments...)
}

// ProjectLikedSongs synthesizes the Liked Songs playlist from the user's
// saved tracks. It has no ID or URI and always lands at the root of
// Playlists/, regardless of the folder map.
func ProjectLikedSongs(items []services.SavedTrack) (Playlist, string) {
	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, projectTrack(item))
	}

	record := Playlist{
		Name:        "Liked Songs",
		Description: "All liked songs",
		Owner:       LikedSongsOwner,
		Tracks:      tracks,
	}

	return record, filepath.Join(playlistsDir, "Liked Songs.json")
}
