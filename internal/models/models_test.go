package models

import (
	"testing"
)

func TestArtistHasGenre(t *testing.T) {
	artist := Artist{Name: "Mitski", Genres: []string{"indie rock", "Pop"}}

	t.Run("Case Insensitive Match", func(t *testing.T) {
		if !artist.HasGenre("INDIE ROCK") {
			t.Error("expected case-insensitive match")
		}
		if !artist.HasGenre("pop") {
			t.Error("expected match on differently cased stored genre")
		}
	})

	t.Run("No Match", func(t *testing.T) {
		if artist.HasGenre("zydeco") {
			t.Error("expected no match for absent genre")
		}
	})

	t.Run("No Genres", func(t *testing.T) {
		if (Artist{}).HasGenre("pop") {
			t.Error("expected no match on empty genre list")
		}
	})
}

func TestTasteProfileTopGenres(t *testing.T) {
	profile := TasteProfile{
		GenreCounts: map[string]int{
			"indie rock": 3,
			"pop":        3,
			"art rock":   1,
		},
	}

	t.Run("Sorted By Count Then Name", func(t *testing.T) {
		got := profile.TopGenres(3)

		want := []string{"indie rock", "pop", "art rock"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("Limited", func(t *testing.T) {
		if got := profile.TopGenres(1); len(got) != 1 || got[0] != "indie rock" {
			t.Errorf("expected single top genre, got %v", got)
		}
	})

	t.Run("Empty Profile", func(t *testing.T) {
		if got := (TasteProfile{}).TopGenres(5); len(got) != 0 {
			t.Errorf("expected no genres, got %v", got)
		}
	})
}
