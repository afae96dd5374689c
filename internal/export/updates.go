package export

import "fmt"

// ProgressUpdate represents a progress event during an export run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Export phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Export phase enumeration
type Phase int

const (
	ResolveFolders Phase = iota
	FetchLiked
	FetchPodcasts
	FetchArtists
	FetchAlbums
	FetchPlaylists
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case ResolveFolders:
		return "resolve_folders"
	case FetchLiked:
		return "fetch_liked"
	case FetchPodcasts:
		return "fetch_podcasts"
	case FetchArtists:
		return "fetch_artists"
	case FetchAlbums:
		return "fetch_albums"
	case FetchPlaylists:
		return "fetch_playlists"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func stageStartUpdate(phase Phase, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d %s...", total, name),
	}
}

func itemUpdate(phase Phase, step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, name),
	}
}

func stageDoneUpdate(phase Phase, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("✓ %s complete (%d items)", name, total),
	}
}

func foldersUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveFolders,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolved folder placement for %d playlists", count),
	}
}
