package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/spotcheck/internal/repositories"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/urfave/cli/v3"
)

// SnapshotList lists saved snapshots for a kind and time range.
func (r *Runner) SnapshotList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	kind := cmd.String("kind")
	if kind != repositories.KindArtists && kind != repositories.KindTracks {
		return fmt.Errorf("%w: kind must be artists or tracks", shared.ErrInvalidFlag)
	}

	repo, closeDB, err := r.openSnapshots(config)
	if err != nil {
		return err
	}
	defer closeDB()

	timeRange := cmd.String("time-range")

	snapshots, err := repo.History(kind, timeRange, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		return r.writePlain("No %s snapshots saved for %s.\n", kind, timeRange)
	}

	r.writePlain("Found %d snapshots:\n\n", len(snapshots))
	for i, snap := range snapshots {
		r.writePlain("%d. %s\n", i+1, snap.ID)
		r.writePlain("   Created: %s\n", snap.CreatedAt.Format(time.RFC3339))
		r.writePlain("   Size: %d bytes\n", len(snap.Payload))
	}

	return nil
}

// SnapshotPrune deletes snapshots older than the given number of days.
func (r *Runner) SnapshotPrune(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	days := cmd.Int("days")
	if days < 0 {
		return fmt.Errorf("%w: days must not be negative", shared.ErrInvalidFlag)
	}

	repo, closeDB, err := r.openSnapshots(config)
	if err != nil {
		return err
	}
	defer closeDB()

	cutoff := time.Now().AddDate(0, 0, -days)

	removed, err := repo.Prune(cutoff)
	if err != nil {
		return err
	}

	r.logger.Info("snapshots pruned", "removed", removed, "cutoff", cutoff)
	return r.writePlain("✓ Removed %d snapshots older than %d days\n", removed, days)
}
