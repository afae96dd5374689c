package export

// Sentinel values substituted when a saved or playlist entry references a
// track object the API returned as null (removed or unavailable content).
const (
	UnknownTrack  = "Unknown Track"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// LikedSongsOwner is the owner recorded on the synthesized Liked Songs playlist.
const LikedSongsOwner = "you"

// Track is the canonical exported track record.
//
// Album and AddedAt are present on the playlist variant; TrackNumber and
// DurationMS on the album variant. URI is null when the track is unavailable.
type Track struct {
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album,omitempty"`
	AddedAt     string  `json:"added_at,omitempty"`
	TrackNumber int     `json:"track_number,omitempty"`
	DurationMS  int     `json:"duration_ms,omitempty"`
	URI         *string `json:"uri"`
}

// Album is the canonical exported album record written to album_info.json.
type Album struct {
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	ID          string  `json:"id"`
	URI         string  `json:"uri"`
	ReleaseDate string  `json:"release_date"`
	TotalTracks int     `json:"total_tracks"`
	Tracks      []Track `json:"tracks"`
}

// Playlist is the canonical exported playlist record. Liked Songs is a
// synthesized instance with no ID or URI.
type Playlist struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Owner       string  `json:"owner"`
	ID          string  `json:"id,omitempty"`
	URI         string  `json:"uri,omitempty"`
	Tracks      []Track `json:"tracks"`
}

// Show is the canonical exported podcast show record written to show_info.json.
type Show struct {
	Name          string `json:"name"`
	Publisher     string `json:"publisher"`
	Description   string `json:"description"`
	ID            string `json:"id"`
	URI           string `json:"uri"`
	TotalEpisodes int    `json:"total_episodes"`
	AddedAt       string `json:"added_at,omitempty"`
}

// FollowedArtist is the canonical exported artist record.
type FollowedArtist struct {
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	ID     string   `json:"id"`
	URI    string   `json:"uri"`
}
