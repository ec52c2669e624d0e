package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/shared"
)

// Snapshot kinds stored in the snapshots table.
const (
	KindArtists = "artists"
	KindTracks  = "tracks"
)

// ErrNoSnapshot is returned when no snapshot exists for a kind and time range.
var ErrNoSnapshot = errors.New("no snapshot found")

// Snapshot is one stored fetch of top artists or top tracks.
type Snapshot struct {
	ID        string
	Kind      string
	TimeRange string
	Payload   []byte
	CreatedAt time.Time
}

// Artists decodes the payload of an artists snapshot.
func (s *Snapshot) Artists() ([]models.Artist, error) {
	if s.Kind != KindArtists {
		return nil, fmt.Errorf("%w: snapshot holds %s", shared.ErrInvalidArgument, s.Kind)
	}

	var artists []models.Artist
	if err := json.Unmarshal(s.Payload, &artists); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDecodeFailed, err)
	}

	return artists, nil
}

// Tracks decodes the payload of a tracks snapshot.
func (s *Snapshot) Tracks() ([]models.Track, error) {
	if s.Kind != KindTracks {
		return nil, fmt.Errorf("%w: snapshot holds %s", shared.ErrInvalidArgument, s.Kind)
	}

	var tracks []models.Track
	if err := json.Unmarshal(s.Payload, &tracks); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDecodeFailed, err)
	}

	return tracks, nil
}

// SnapshotRepository stores and retrieves listening data snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a repository over the given database.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveArtists stores a top-artists fetch and returns the snapshot ID.
func (r *SnapshotRepository) SaveArtists(timeRange string, artists []models.Artist) (string, error) {
	return r.save(KindArtists, timeRange, artists)
}

// SaveTracks stores a top-tracks fetch and returns the snapshot ID.
func (r *SnapshotRepository) SaveTracks(timeRange string, tracks []models.Track) (string, error) {
	return r.save(KindTracks, timeRange, tracks)
}

func (r *SnapshotRepository) save(kind, timeRange string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot payload: %w", err)
	}

	id := shared.GenerateID()

	_, err = r.db.Exec(
		"INSERT INTO snapshots (id, kind, time_range, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		id, kind, timeRange, string(data), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}

	return id, nil
}

// Latest returns the most recent snapshot for a kind and time range.
//
// Returns [ErrNoSnapshot] when nothing has been stored yet.
func (r *SnapshotRepository) Latest(kind, timeRange string) (*Snapshot, error) {
	row := r.db.QueryRow(
		"SELECT id, kind, time_range, payload, created_at FROM snapshots WHERE kind = ? AND time_range = ? ORDER BY created_at DESC LIMIT 1",
		kind, timeRange,
	)

	return scanSnapshot(row)
}

// History returns up to limit snapshots for a kind and time range, newest first.
func (r *SnapshotRepository) History(kind, timeRange string, limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(
		"SELECT id, kind, time_range, payload, created_at FROM snapshots WHERE kind = ? AND time_range = ? ORDER BY created_at DESC LIMIT ?",
		kind, timeRange, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// Prune deletes snapshots created before the cutoff and reports how many rows
// were removed.
func (r *SnapshotRepository) Prune(before time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM snapshots WHERE created_at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	return result.RowsAffected()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var (
		s       Snapshot
		payload string
	)

	err := row.Scan(&s.ID, &s.Kind, &s.TimeRange, &payload, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	s.Payload = []byte(payload)

	return &s, nil
}
