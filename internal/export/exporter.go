package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkeke/spotify-library-grabber/internal/paging"
	"github.com/mkeke/spotify-library-grabber/internal/services"
	"github.com/mkeke/spotify-library-grabber/internal/shared"
)

// Exporter sequences the collection export stages against one output root.
//
// Stages run strictly in [StageOrder], one network call in flight at a time.
// Each stage drains its collection fully before writing (fetch-then-write);
// a fetch or write error aborts the run and propagates to the caller, who
// decides process lifetime and exit code.
type Exporter struct {
	library     services.Library
	folders     services.FolderSource
	outputDir   string
	collections CollectionSet
	logger      *log.Logger
}

// Opts contains configuration for creating an Exporter.
type Opts struct {
	Library     services.Library
	Folders     services.FolderSource // optional; nil skips folder resolution
	OutputDir   string
	Collections CollectionSet // nil enables every collection
	Logger      *log.Logger
}

// NewExporter creates an Exporter with the provided collaborators.
func NewExporter(opts Opts) (*Exporter, error) {
	if opts.Library == nil {
		return nil, fmt.Errorf("%w: library client is required", shared.ErrInvalidArgument)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("spotify_export_%d", time.Now().Unix())
	}
	if opts.Collections == nil {
		opts.Collections = AllCollections()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Exporter{
		library:     opts.Library,
		folders:     opts.Folders,
		outputDir:   opts.OutputDir,
		collections: opts.Collections,
		logger:      opts.Logger,
	}, nil
}

// StageResult records one completed stage.
type StageResult struct {
	Collection Collection `json:"collection"`
	Items      int        `json:"items"`
	Files      int        `json:"files"`
}

// Result summarizes one export run.
type Result struct {
	OutputDir    string        `json:"output_dir"`
	Stages       []StageResult `json:"stages"`
	Started      time.Time     `json:"started"`
	Finished     time.Time     `json:"finished"`
	ManifestPath string        `json:"-"`
}

// Count returns the item count for a collection, zero when the stage did not run.
func (r *Result) Count(c Collection) int {
	for _, s := range r.Stages {
		if s.Collection == c {
			return s.Items
		}
	}
	return 0
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run executes the enabled export stages and writes the run manifest.
func (e *Exporter) Run(ctx context.Context, progress chan<- ProgressUpdate) (*Result, error) {
	result := &Result{
		OutputDir: e.outputDir,
		Started:   time.Now().UTC(),
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// The folder map must be complete before the first playlist is written.
	var folderMap FolderMap
	if e.collections[Playlists] {
		folderMap = e.resolveFolders(ctx, progress)
	}

	for _, collection := range StageOrder {
		if !e.collections[collection] {
			continue
		}

		var (
			stage StageResult
			err   error
		)

		switch collection {
		case LikedSongs:
			stage, err = e.exportLikedSongs(ctx, progress)
		case Podcasts:
			stage, err = e.exportPodcasts(ctx, progress)
		case FollowedArtists:
			stage, err = e.exportArtists(ctx, progress)
		case Albums:
			stage, err = e.exportAlbums(ctx, progress)
		case Playlists:
			stage, err = e.exportPlaylists(ctx, folderMap, progress)
		}

		if err != nil {
			return nil, fmt.Errorf("%s stage failed: %w", collection, err)
		}
		result.Stages = append(result.Stages, stage)
	}

	result.Finished = time.Now().UTC()

	e.sendProgress(progress, ProgressUpdate{Phase: WriteManifest, Step: 1, Total: 1, Message: "Writing export manifest..."})
	manifestPath := filepath.Join(e.outputDir, "export_manifest.json")
	if err := shared.WriteJSONFile(manifestPath, result); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// resolveFolders fetches the rootlist and builds the folder map.
//
// Failure is degraded, never fatal: without a usable rootlist every playlist
// lands at the root of Playlists/.
func (e *Exporter) resolveFolders(ctx context.Context, progress chan<- ProgressUpdate) FolderMap {
	if e.folders == nil {
		e.logger.Info("no rootlist client configured, playlists land at the top level")
		return nil
	}

	root, err := e.folders.Rootlist(ctx)
	if err != nil {
		e.logger.Warn("rootlist fetch failed, playlists land at the top level", "error", err)
		return nil
	}

	m := BuildFolderMap(root)
	e.logger.Info("resolved playlist folders", "playlists", len(m))
	e.sendProgress(progress, foldersUpdate(len(m)))
	return m
}

func (e *Exporter) exportLikedSongs(ctx context.Context, progress chan<- ProgressUpdate) (StageResult, error) {
	stage := StageResult{Collection: LikedSongs}

	items, err := paging.DrainPages(ctx, paging.MaxPageSize, e.library.SavedTracks)
	if err != nil {
		return stage, err
	}

	e.logger.Info("exporting liked songs", "tracks", len(items))
	e.sendProgress(progress, stageStartUpdate(FetchLiked, len(items), "liked songs"))

	record, relPath := ProjectLikedSongs(items)
	if err := e.write(relPath, record); err != nil {
		return stage, err
	}

	stage.Items = len(items)
	stage.Files = 1
	e.logger.Info("liked songs exported", "tracks", len(items))
	e.sendProgress(progress, stageDoneUpdate(FetchLiked, len(items), "liked songs"))
	return stage, nil
}

func (e *Exporter) exportPodcasts(ctx context.Context, progress chan<- ProgressUpdate) (StageResult, error) {
	stage := StageResult{Collection: Podcasts}

	items, err := paging.DrainPages(ctx, paging.MaxPageSize, e.library.SavedShows)
	if err != nil {
		return stage, err
	}

	e.logger.Info("exporting podcasts", "shows", len(items))
	e.sendProgress(progress, stageStartUpdate(FetchPodcasts, len(items), "podcasts"))

	for i, item := range items {
		record, relPath := ProjectShow(item)
		if err := e.write(relPath, record); err != nil {
			return stage, err
		}
		stage.Files++
		e.sendProgress(progress, itemUpdate(FetchPodcasts, i+1, len(items), record.Name))
	}

	stage.Items = len(items)
	e.logger.Info("podcasts exported", "shows", len(items))
	e.sendProgress(progress, stageDoneUpdate(FetchPodcasts, len(items), "podcasts"))
	return stage, nil
}

func (e *Exporter) exportArtists(ctx context.Context, progress chan<- ProgressUpdate) (StageResult, error) {
	stage := StageResult{Collection: FollowedArtists}

	items, err := paging.DrainCursor(ctx, paging.MaxPageSize, e.library.FollowedArtists)
	if err != nil {
		return stage, err
	}

	e.logger.Info("exporting followed artists", "artists", len(items))
	e.sendProgress(progress, stageStartUpdate(FetchArtists, len(items), "followed artists"))

	for i, item := range items {
		record, relPath := ProjectArtist(item)
		if err := e.write(relPath, record); err != nil {
			return stage, err
		}
		stage.Files++
		e.sendProgress(progress, itemUpdate(FetchArtists, i+1, len(items), record.Name))
	}

	stage.Items = len(items)
	e.logger.Info("followed artists exported", "artists", len(items))
	e.sendProgress(progress, stageDoneUpdate(FetchArtists, len(items), "followed artists"))
	return stage, nil
}

func (e *Exporter) exportAlbums(ctx context.Context, progress chan<- ProgressUpdate) (StageResult, error) {
	stage := StageResult{Collection: Albums}

	items, err := paging.DrainPages(ctx, paging.MaxPageSize, e.library.SavedAlbums)
	if err != nil {
		return stage, err
	}

	e.logger.Info("exporting albums", "albums", len(items))
	e.sendProgress(progress, stageStartUpdate(FetchAlbums, len(items), "albums"))

	for i, item := range items {
		// Saved albums embed only the first tracks page; longer albums
		// need the album-tracks endpoint drained in full.
		listing := item.Album.Tracks.Items
		if next := item.Album.Tracks.Next; next != nil && *next != "" {
			albumID := item.Album.ID
			full, err := paging.DrainPages(ctx, paging.MaxPageSize,
				func(ctx context.Context, limit, offset int) (*paging.Page[services.AlbumTrack], error) {
					return e.library.AlbumTracks(ctx, albumID, limit, offset)
				})
			if err != nil {
				return stage, fmt.Errorf("album %q: %w", item.Album.Name, err)
			}
			listing = full
		}

		record, relPath := ProjectAlbum(item, listing)
		if err := e.write(relPath, record); err != nil {
			return stage, err
		}
		stage.Files++
		e.sendProgress(progress, itemUpdate(FetchAlbums, i+1, len(items), record.Name))
	}

	stage.Items = len(items)
	e.logger.Info("albums exported", "albums", len(items))
	e.sendProgress(progress, stageDoneUpdate(FetchAlbums, len(items), "albums"))
	return stage, nil
}

func (e *Exporter) exportPlaylists(ctx context.Context, folderMap FolderMap, progress chan<- ProgressUpdate) (StageResult, error) {
	stage := StageResult{Collection: Playlists}

	playlists, err := paging.DrainPages(ctx, paging.MaxPageSize, e.library.UserPlaylists)
	if err != nil {
		return stage, err
	}

	e.logger.Info("exporting playlists", "playlists", len(playlists))
	e.sendProgress(progress, stageStartUpdate(FetchPlaylists, len(playlists), "playlists"))

	for i, pl := range playlists {
		playlistID := pl.ID
		tracks, err := paging.DrainPages(ctx, paging.MaxPageSize,
			func(ctx context.Context, limit, offset int) (*paging.Page[services.PlaylistTrack], error) {
				return e.library.PlaylistTracks(ctx, playlistID, limit, offset)
			})
		if err != nil {
			return stage, fmt.Errorf("playlist %q: %w", pl.Name, err)
		}

		record, relPath := ProjectPlaylist(pl, tracks, folderMap.Path(pl.URI))
		if err := e.write(relPath, record); err != nil {
			return stage, err
		}
		stage.Files++
		e.sendProgress(progress, itemUpdate(FetchPlaylists, i+1, len(playlists), record.Name))
	}

	stage.Items = len(playlists)
	e.logger.Info("playlists exported", "playlists", len(playlists))
	e.sendProgress(progress, stageDoneUpdate(FetchPlaylists, len(playlists), "playlists"))
	return stage, nil
}

// write persists one record at its relative path under the output root.
func (e *Exporter) write(relPath string, record any) error {
	return shared.WriteJSONFile(filepath.Join(e.outputDir, relPath), record)
}
