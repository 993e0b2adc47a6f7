package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gp/internal/models"
	"github.com/desertthunder/gp/internal/shared"
	"github.com/desertthunder/gp/internal/ui"
)

// runTUI launches the interactive player, loading req with autoplay when it is non-nil.
func (r *Runner) runTUI(ctx context.Context, req *models.Request) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	s, err := r.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(r.logger)

	var loadErr error
	if req != nil {
		if loadErr = s.player.PlayTrack(*req); loadErr != nil {
			r.logger.Warn("load failed", "src", req.Source, "error", loadErr)
		}
	}

	model := ui.NewModel(ui.Options{
		Player:   s.player,
		Media:    s.engine,
		Controls: s.controls,
		Loop:     s.loop,
		SeekStep: r.config.Player.SeekStep,
		Logger:   r.logger,
		Err:      loadErr,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
