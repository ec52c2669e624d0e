// package models defines the data model for the taste check service
package models

import (
	"sort"
	"strings"
)

// Artist is a flat record for a Spotify artist.
//
// Created by deserializing a single API response, read-only afterwards.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
}

// Track is a flat record for a Spotify track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	Popularity int      `json:"popularity"`
	DurationMS int      `json:"duration_ms"`
}

// TasteProfile joins a user's top artists and tracks with aggregated genre counts.
type TasteProfile struct {
	Artists     []Artist       `json:"artists"`
	Tracks      []Track        `json:"tracks"`
	GenreCounts map[string]int `json:"genre_counts"`
}

// HasGenre reports whether the artist's genre list contains the given genre.
//
// Matching ignores case. Callers that accept URL segments should still
// normalize separators first, see tasks.NormalizeGenre.
func (a Artist) HasGenre(genre string) bool {
	for _, g := range a.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// TopGenres returns up to n genres from the profile ordered by count, ties broken alphabetically.
func (p TasteProfile) TopGenres(n int) []string {
	type genreCount struct {
		genre string
		count int
	}

	counts := make([]genreCount, 0, len(p.GenreCounts))
	for g, c := range p.GenreCounts {
		counts = append(counts, genreCount{g, c})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].genre < counts[j].genre
	})

	if n > len(counts) {
		n = len(counts)
	}
	genres := make([]string, n)
	for i := 0; i < n; i++ {
		genres[i] = counts[i].genre
	}
	return genres
}
