// Package repositories provides the persistence layer for fetched listening data.
//
// The only repository is [SnapshotRepository]: every successful top-artists or
// top-tracks fetch can be stored as an immutable snapshot row, and the most
// recent snapshot serves as an offline fallback when Spotify is unreachable.
//
// Snapshots keep the full JSON payload rather than normalized rows. The
// service proxies a single user's listening history, so there is nothing to
// join against and replaying the exact payload is the point.
package repositories
