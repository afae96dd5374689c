package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkeke/spotify-library-grabber/internal/export"
	"github.com/mkeke/spotify-library-grabber/internal/repositories"
	"github.com/mkeke/spotify-library-grabber/internal/services"
	"github.com/mkeke/spotify-library-grabber/internal/shared"
	"github.com/urfave/cli/v3"
)

var (
	summaryTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954")).Bold(true)
	summaryLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	summaryValue = lipgloss.NewStyle().Bold(true)
)

// Export runs the library export pipeline.
//
// Stages run strictly in sequence; the first fetch or write error aborts the
// run and surfaces as a non-zero exit. Rootlist failures only degrade folder
// placement.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	outputDir := cmd.String("out")
	if outputDir == "" {
		outputDir = config.Export.OutputDir
	}

	collectionNames := cmd.StringSlice("collections")
	if len(collectionNames) == 0 {
		collectionNames = config.Export.Collections
	}
	collections, err := export.ParseCollections(collectionNames)
	if err != nil {
		return err
	}

	spotify, err := r.buildSpotifyClient(ctx, cmd, config)
	if err != nil {
		return err
	}

	var folders services.FolderSource
	if cmd.Bool("skip-folders") {
		r.logger.Info("folder resolution disabled by flag")
	} else if config.Credentials.Rootlist.Token == "" {
		r.logger.Info("no rootlist token configured, playlists land at the top level")
	} else {
		folders = services.NewRootlistClient(
			config.Credentials.Rootlist.Endpoint,
			config.Credentials.Rootlist.Token,
			r.httpClient,
		)
	}

	exporter, err := export.NewExporter(export.Opts{
		Library:     spotify,
		Folders:     folders,
		OutputDir:   outputDir,
		Collections: collections,
		Logger:      r.logger,
	})
	if err != nil {
		return err
	}

	run := r.recordRunStart(config, outputDir, collections)

	r.writePlain("Exporting library to %s\n\n", outputDir)

	progressCh := make(chan export.ProgressUpdate, 50)
	progressDone := r.drainProgress(progressCh, cmd.Bool("verbose"))

	result, err := exporter.Run(ctx, progressCh)
	close(progressCh)
	<-progressDone

	r.recordRunFinish(run, result, err)

	if err != nil {
		if errors.Is(err, shared.ErrRateLimited) {
			r.logger.Error("aborted by upstream rate limit; rerun after the hinted delay", "error", err)
		}
		return err
	}

	r.printSummary(result)
	return nil
}

// drainProgress prints updates until the channel closes. The returned channel
// closes once every update has been written; nothing else may write to the
// Runner's output until then.
func (r *Runner) drainProgress(progressCh <-chan export.ProgressUpdate, verbose bool) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if update.Step == 0 || update.Step == update.Total {
				r.writePlain("%s\n", update.Message)
			} else if verbose {
				r.writePlain("  %s\n", update.Message)
			}
		}
	}()
	return done
}

// buildSpotifyClient constructs and authenticates the Spotify client from
// persisted credentials.
func (r *Runner) buildSpotifyClient(ctx context.Context, cmd *cli.Command, config *shared.Config) (*services.SpotifyClient, error) {
	spotify, err := services.NewSpotifyClient(config.Credentials.Spotify.Map())
	if err != nil {
		return nil, err
	}

	token := config.Credentials.Spotify.Token()
	if token == nil {
		return nil, fmt.Errorf("%w: no Spotify tokens in config, run 'slg auth' first", shared.ErrNotAuthenticated)
	}
	if err := spotify.AuthenticateToken(ctx, token); err != nil {
		return nil, err
	}

	if rps := cmd.Float("rate-limit"); rps > 0 {
		spotify.SetRateLimit(rps)
	} else if config.Export.RateLimit > 0 {
		spotify.SetRateLimit(config.Export.RateLimit)
	}

	return spotify, nil
}

// recordRunStart opens a run-history row. History is best effort: a missing
// or uninitialized database only logs a warning.
func (r *Runner) recordRunStart(config *shared.Config, outputDir string, collections export.CollectionSet) *runRecord {
	if config.Database.Path == "" {
		return nil
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		r.logger.Warn("run history unavailable", "error", err)
		return nil
	}

	var names []string
	for _, c := range export.StageOrder {
		if collections[c] {
			names = append(names, string(c))
		}
	}

	run := &repositories.ExportRun{OutputDir: outputDir, Collections: names}
	repo := repositories.NewExportRunRepository(db)
	if err := repo.Create(run); err != nil {
		r.logger.Warn("failed to record export run", "error", err)
		db.Close()
		return nil
	}

	return &runRecord{db: db, repo: repo, run: run}
}

// recordRunFinish closes the run-history row opened by recordRunStart.
func (r *Runner) recordRunFinish(record *runRecord, result *export.Result, runErr error) {
	if record == nil {
		return
	}
	defer record.db.Close()

	record.run.Status = "completed"
	if runErr != nil {
		record.run.Status = "failed"
		record.run.ErrorMessage = runErr.Error()
	}
	if result != nil {
		record.run.LikedCount = result.Count(export.LikedSongs)
		record.run.PodcastCount = result.Count(export.Podcasts)
		record.run.ArtistCount = result.Count(export.FollowedArtists)
		record.run.AlbumCount = result.Count(export.Albums)
		record.run.PlaylistCount = result.Count(export.Playlists)
	}

	if err := record.repo.Finish(record.run); err != nil {
		r.logger.Warn("failed to finalize export run record", "error", err)
	}
}

type runRecord struct {
	db   *sql.DB
	repo *repositories.ExportRunRepository
	run  *repositories.ExportRun
}

// printSummary renders the post-run summary.
func (r *Runner) printSummary(result *export.Result) {
	r.writePlainln("%s", summaryTitle.Render("✓ Export complete"))

	for _, stage := range result.Stages {
		label := summaryLabel.Render(fmt.Sprintf("%-10s", stage.Collection))
		value := summaryValue.Render(fmt.Sprintf("%d items, %d files", stage.Items, stage.Files))
		r.writePlain("  %s %s\n", label, value)
	}

	elapsed := result.Finished.Sub(result.Started).Round(10 * time.Millisecond)
	r.writePlain("\n%s %s\n", summaryLabel.Render("elapsed"), summaryValue.Render(elapsed.String()))
	r.writePlain("%s %s\n", summaryLabel.Render("output"), summaryValue.Render(result.OutputDir))
	if result.ManifestPath != "" {
		r.writePlain("%s %s\n", summaryLabel.Render("manifest"), summaryValue.Render(result.ManifestPath))
	}
}
