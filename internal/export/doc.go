// Package export turns a user's Spotify library into a deterministic on-disk JSON tree.
//
// # Layout
//
// Every file lands under one output root:
//
//	<root>/Playlists/Liked Songs.json
//	<root>/Playlists/<folder.../><Playlist Name>.json
//	<root>/Podcasts/<Show Name>/show_info.json
//	<root>/Artists/<Artist Name>.json
//	<root>/Albums/<Artists> - <Album Title>/album_info.json
//
// # Components
//
// [Sanitize] maps display names to filesystem-safe path segments.
//
// Projection functions ([ProjectAlbum], [ProjectShow], [ProjectArtist],
// [ProjectPlaylist], [ProjectLikedSongs]) map raw API items to canonical
// records plus their relative target paths. Missing nested track data is
// replaced by sentinel values rather than failing the run.
//
// [BuildFolderMap] reconstructs the playlist folder hierarchy from the
// rootlist tree, producing a playlist-URI to folder-path lookup.
//
// [Exporter] sequences the five collection stages (liked songs, podcasts,
// followed artists, albums, playlists), strictly one network call at a time,
// and writes each entity as two-space-indented JSON.
//
// # Failure model
//
// A fetch or write error inside a stage aborts the whole run; already-written
// files remain. Rootlist failures never abort: playlists degrade to the root
// of Playlists/.
package export
