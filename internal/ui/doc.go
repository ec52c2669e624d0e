// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for exploring listening history:
//  1. [ArtistListView] : Browse the user's top artists with genres
//  2. [TrackListView] : View a selected artist's most popular tracks
//  3. [RoastView] : Read AI commentary on the listening profile
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Fetches run as [tea.Cmd] functions so the interface stays responsive while
// Spotify and Gemini requests are in flight.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
