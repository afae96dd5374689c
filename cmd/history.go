package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkeke/spotify-library-grabber/internal/repositories"
	"github.com/mkeke/spotify-library-grabber/internal/shared"
	"github.com/urfave/cli/v3"
)

// History lists past export runs from the run-history database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	if config.Database.Path == "" {
		return fmt.Errorf("%w: no database path configured", shared.ErrInvalidConfig)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewExportRunRepository(db)
	runs, err := repo.List(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		r.writePlain("No export runs recorded. Run 'slg export' first.\n")
		return nil
	}

	for _, run := range runs {
		total := run.LikedCount + run.PodcastCount + run.ArtistCount + run.AlbumCount + run.PlaylistCount
		finished := "-"
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Format("2006-01-02 15:04:05")
		}

		r.writePlain("#%-4d %-10s %s\n", run.Sequence, run.Status, run.StartedAt.Format("2006-01-02 15:04:05"))
		r.writePlain("      collections: %s\n", strings.Join(run.Collections, ", "))
		r.writePlain("      items: %d  output: %s  finished: %s\n", total, run.OutputDir, finished)
		if run.ErrorMessage != "" {
			r.writePlain("      error: %s\n", run.ErrorMessage)
		}
	}

	return nil
}
