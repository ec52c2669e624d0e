// package formatter renders artist and track listings to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/shared"
)

// Output formats accepted by [FormatArtists] and [FormatTracks].
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// FormatArtists renders artists in the requested format, defaulting to plain text.
func FormatArtists(artists []models.Artist, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return shared.MarshalJSON(artists, true)
	case FormatCSV:
		return ArtistsToCSV(artists)
	case FormatMarkdown:
		return ArtistsToMarkdown(artists), nil
	case FormatText, "":
		return ArtistsToText(artists), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// FormatTracks renders tracks in the requested format, defaulting to plain text.
func FormatTracks(tracks []models.Track, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return shared.MarshalJSON(tracks, true)
	case FormatCSV:
		return TracksToCSV(tracks)
	case FormatMarkdown:
		return TracksToMarkdown(tracks), nil
	case FormatText, "":
		return TracksToText(tracks), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ArtistsToCSV converts artists to CSV with columns: Rank, ID, Name, Genres, Popularity
func ArtistsToCSV(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "ID", "Name", "Genres", "Popularity"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, artist := range artists {
		record := []string{
			strconv.Itoa(i + 1),
			artist.ID,
			artist.Name,
			strings.Join(artist.Genres, "; "),
			strconv.Itoa(artist.Popularity),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToCSV converts tracks to CSV with columns: Rank, ID, Name, Artists, Album, Duration, Popularity
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "ID", "Name", "Artists", "Album", "Duration", "Popularity"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range tracks {
		record := []string{
			strconv.Itoa(i + 1),
			track.ID,
			track.Name,
			strings.Join(track.Artists, "; "),
			track.Album,
			FormatDuration(track.DurationMS),
			strconv.Itoa(track.Popularity),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ArtistsToMarkdown renders a numbered Markdown listing with genres.
func ArtistsToMarkdown(artists []models.Artist) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Top Artists\n\n")
	for i, artist := range artists {
		genrePart := ""
		if len(artist.Genres) > 0 {
			genrePart = fmt.Sprintf(" (%s)", strings.Join(artist.Genres, ", "))
		}
		buf.WriteString(fmt.Sprintf("%d. **%s**%s\n", i+1, artist.Name, genrePart))
	}

	return buf.Bytes()
}

// TracksToMarkdown renders a numbered Markdown listing with artists and duration.
func TracksToMarkdown(tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Top Tracks\n\n")
	for i, track := range tracks {
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. **%s** - %s%s [%s]\n",
			i+1, track.Name, strings.Join(track.Artists, ", "), albumPart, FormatDuration(track.DurationMS)))
	}

	return buf.Bytes()
}

// ArtistsToText renders a plain text listing.
func ArtistsToText(artists []models.Artist) []byte {
	var buf bytes.Buffer

	for i, artist := range artists {
		genrePart := ""
		if len(artist.Genres) > 0 {
			genrePart = fmt.Sprintf(" (%s)", strings.Join(artist.Genres, ", "))
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, artist.Name, genrePart))
	}

	return buf.Bytes()
}

// TracksToText renders a plain text listing.
func TracksToText(tracks []models.Track) []byte {
	var buf bytes.Buffer

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, strings.Join(track.Artists, ", "), track.Name))
	}

	return buf.Bytes()
}

// GenresToText renders genre counts sorted by the profile's ranking.
func GenresToText(profile *models.TasteProfile) []byte {
	var buf bytes.Buffer

	for _, genre := range profile.TopGenres(len(profile.GenreCounts)) {
		buf.WriteString(fmt.Sprintf("%s: %d\n", genre, profile.GenreCounts[genre]))
	}

	return buf.Bytes()
}

// FormatDuration renders track length in milliseconds as m:ss.
func FormatDuration(ms int) string {
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
