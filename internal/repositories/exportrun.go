// package repositories implements SQLite persistence for export run history.
//
// One row per pipeline run: when it started, what collections it covered,
// per-collection item counts, and how it ended. `slg history` reads it back.
package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mkeke/spotify-library-grabber/internal/shared"
)

// ExportRun is one recorded pipeline run.
type ExportRun struct {
	ID            string
	Sequence      int
	OutputDir     string
	Collections   []string
	Status        string // running, completed, failed
	LikedCount    int
	PodcastCount  int
	ArtistCount   int
	AlbumCount    int
	PlaylistCount int
	ErrorMessage  string
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// ExportRunRepository persists [ExportRun] rows.
type ExportRunRepository struct {
	db *sql.DB
}

// NewExportRunRepository creates a repository over the given database connection.
func NewExportRunRepository(db *sql.DB) *ExportRunRepository {
	return &ExportRunRepository{db: db}
}

// nextSequence atomically increments and returns the next run sequence number.
//
// Sequence numbers provide human-readable ordering (run #42) independent of UUIDs.
func (r *ExportRunRepository) nextSequence() (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE export_runs_sequence SET value = value + 1 WHERE id = 1"); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := tx.QueryRow("SELECT value FROM export_runs_sequence WHERE id = 1").Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// Create inserts a new run in the running state and fills in its ID and sequence.
func (r *ExportRunRepository) Create(run *ExportRun) error {
	sequence, err := r.nextSequence()
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.ID = shared.GenerateID()
	run.Sequence = sequence
	run.Status = "running"
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO export_runs (id, sequence, output_dir, collections, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID,
		run.Sequence,
		run.OutputDir,
		strings.Join(run.Collections, ","),
		run.Status,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert export run: %w", err)
	}

	return nil
}

// Finish records the terminal state and per-collection counts of a run.
func (r *ExportRunRepository) Finish(run *ExportRun) error {
	now := time.Now().UTC()
	run.FinishedAt = &now

	var errorMessage any = run.ErrorMessage
	if run.ErrorMessage == "" {
		errorMessage = nil
	}

	query := `
		UPDATE export_runs
		SET status = ?, liked_count = ?, podcast_count = ?, artist_count = ?,
		    album_count = ?, playlist_count = ?, error_message = ?, finished_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		run.Status,
		run.LikedCount,
		run.PodcastCount,
		run.ArtistCount,
		run.AlbumCount,
		run.PlaylistCount,
		errorMessage,
		run.FinishedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update export run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("export run %s not found", run.ID)
	}

	return nil
}

// List returns up to limit runs, most recent first.
func (r *ExportRunRepository) List(limit int) ([]ExportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, sequence, output_dir, collections, status,
		       liked_count, podcast_count, artist_count, album_count, playlist_count,
		       COALESCE(error_message, ''), started_at, finished_at
		FROM export_runs
		ORDER BY sequence DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export runs: %w", err)
	}
	defer rows.Close()

	var runs []ExportRun
	for rows.Next() {
		var run ExportRun
		var collections string
		var finishedAt sql.NullTime

		err := rows.Scan(
			&run.ID,
			&run.Sequence,
			&run.OutputDir,
			&collections,
			&run.Status,
			&run.LikedCount,
			&run.PodcastCount,
			&run.ArtistCount,
			&run.AlbumCount,
			&run.PlaylistCount,
			&run.ErrorMessage,
			&run.StartedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export run: %w", err)
		}

		if collections != "" {
			run.Collections = strings.Split(collections, ",")
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			run.FinishedAt = &t
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate export runs: %w", err)
	}

	return runs, nil
}
