package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/desertthunder/spotcheck/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing top artists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'spotcheck auth' first", shared.ErrServiceUnavailable)
	}
	if !r.spotify.Authenticated() {
		return fmt.Errorf("%w: run 'spotcheck auth' first", shared.ErrNotAuthenticated)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotcheck-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.spotify, r.commentator, cmd.String("time-range"), cmd.Int("limit"))
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
