package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ArtistListView ViewState = iota
	TrackListView
	RoastView
)

// Model represents the TUI application state.
type Model struct {
	ctx            context.Context
	view           ViewState
	spotify        services.Service
	commentator    services.Commentator
	timeRange      string
	limit          int
	width          int
	height         int
	artistList     list.Model
	artists        []models.Artist
	trackList      list.Model
	selectedArtist models.Artist
	commentary     string
	roasting       bool
	err            error
	help           help.Model
	keys           keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The commentator may be nil; the roast view then explains how to enable it.
func NewModel(ctx context.Context, spotify services.Service, commentator services.Commentator, timeRange string, limit int) *Model {
	return &Model{
		ctx:         ctx,
		view:        ArtistListView,
		spotify:     spotify,
		commentator: commentator,
		timeRange:   timeRange,
		limit:       limit,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching the user's top artists.
func (m *Model) Init() tea.Cmd {
	return m.fetchArtists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.artistList.Width() == 0 {
			m.artistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ArtistListView:
			return m.handleArtistListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case RoastView:
			return m.handleRoastKeys(msg)
		}

	case artistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.artists = msg.artists
		items := make([]list.Item, len(msg.artists))
		for i, artist := range msg.artists {
			items[i] = artistItem{artist: artist}
		}
		m.artistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.artistList.Title = "Your Top Artists"
		m.artistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case tracksFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ArtistListView
			return m, nil
		}
		m.selectedArtist = msg.artist
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{track: track}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Top tracks by %s", msg.artist.Name)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil

	case commentaryMsg:
		m.roasting = false
		if msg.err != nil {
			m.err = msg.err
			m.view = ArtistListView
			return m, nil
		}
		m.commentary = msg.text
		m.view = RoastView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	if m.roasting {
		return styles.title.Render("Consulting the critic...")
	}

	switch m.view {
	case ArtistListView:
		return m.renderArtistList()
	case TrackListView:
		return m.renderTrackList()
	case RoastView:
		return m.renderRoast()
	default:
		return ""
	}
}

func (m *Model) handleArtistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.artistList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(artistItem); ok {
				return m, m.fetchTracks(item.artist)
			}
		}
	case "r":
		return m, m.fetchCommentary()
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ArtistListView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleRoastKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ArtistListView
		m.commentary = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ArtistListView:
		m.artistList, cmd = m.artistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchArtists() tea.Cmd {
	return func() tea.Msg {
		artists, err := m.spotify.TopArtists(m.ctx, m.timeRange, m.limit)
		return artistsFetchedMsg{artists: artists, err: err}
	}
}

func (m *Model) fetchTracks(artist models.Artist) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.spotify.ArtistTopTracks(m.ctx, artist.ID, "")
		return tracksFetchedMsg{artist: artist, tracks: tracks, err: err}
	}
}

func (m *Model) fetchCommentary() tea.Cmd {
	if m.commentator == nil {
		m.commentary = "No commentary service configured. Set a Gemini API key to get roasted."
		m.view = RoastView
		return nil
	}

	m.roasting = true

	return func() tea.Msg {
		text, err := m.commentator.Comment(m.ctx, services.CommentaryRequest{
			Roast:   true,
			Artists: m.artists,
		})
		return commentaryMsg{text: text, err: err}
	}
}

func (m *Model) renderArtistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.roast, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.artistList.View(), helpView)
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}

func (m *Model) renderRoast() string {
	title := styles.title.Render("The Verdict")

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, m.commentary, helpView)
}
