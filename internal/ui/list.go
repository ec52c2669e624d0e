package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spotcheck/internal/formatter"
	"github.com/desertthunder/spotcheck/internal/models"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = trackItem{}
)

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	if len(i.artist.Genres) == 0 {
		return fmt.Sprintf("popularity %d", i.artist.Popularity)
	}
	return strings.Join(i.artist.Genres, " • ")
}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return i.track.Name }
func (i trackItem) Description() string {
	desc := strings.Join(i.track.Artists, ", ")
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	if i.track.DurationMS > 0 {
		desc = fmt.Sprintf("%s [%s]", desc, formatter.FormatDuration(i.track.DurationMS))
	}
	return desc
}
