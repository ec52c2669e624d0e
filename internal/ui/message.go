package ui

import (
	"github.com/desertthunder/spotcheck/internal/models"
)

// artistsFetchedMsg delivers the top-artists fetch result.
type artistsFetchedMsg struct {
	artists []models.Artist
	err     error
}

// tracksFetchedMsg delivers an artist's top tracks.
type tracksFetchedMsg struct {
	artist models.Artist
	tracks []models.Track
	err    error
}

// commentaryMsg delivers generated roast text.
type commentaryMsg struct {
	text string
	err  error
}
