package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/desertthunder/gp/internal/models"
	"github.com/desertthunder/gp/internal/player"
	"github.com/desertthunder/gp/internal/shared"
	"github.com/desertthunder/gp/internal/tags"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// Play loads the source argument with autoplay, then hands over to the TUI or plays headless.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	src := strings.TrimSpace(cmd.StringArg("source"))
	if src == "" {
		return fmt.Errorf("%w: source", shared.ErrMissingArgument)
	}

	req := models.Request{
		Source: src,
		Title:  cmd.String("title"),
		Artist: cmd.String("artist"),
	}
	if cmd.Bool("tags") {
		req = r.withTags(req)
	}

	if cmd.Bool("headless") {
		return r.playHeadless(ctx, req)
	}
	return r.runTUI(ctx, &req)
}

// Resume opens the TUI on the persisted track without starting playback.
func (r *Runner) Resume(ctx context.Context, cmd *cli.Command) error {
	return r.runTUI(ctx, nil)
}

// withTags fills blank request fields from local file metadata.
func (r *Runner) withTags(req models.Request) models.Request {
	if strings.Contains(req.Source, "://") {
		r.logger.Debug("skipping tags for remote source", "src", req.Source)
		return req
	}

	track, err := tags.ReadTrack(req.Source)
	if err != nil {
		r.logger.Warn("failed to read tags", "src", req.Source, "error", err)
		return req
	}
	return tags.Merge(req, track)
}

// playHeadless drains player callbacks on this goroutine until playback pauses or ctx ends.
func (r *Runner) playHeadless(ctx context.Context, req models.Request) error {
	s, err := r.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(r.logger)

	if err := s.player.PlayTrack(req); err != nil {
		return err
	}
	if s.engine.Paused() {
		return fmt.Errorf("%w: playback did not start for %s", shared.ErrNoSource, req.Source)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.engine.On(player.EventPause, cancel)

	current := s.player.Current()
	title := current.DisplayTitle(r.config.Player.PlaceholderTitle)
	r.logger.Info("playing", "title", title, "artist", current.DisplayArtist(), "duration", s.engine.Duration())

	bar := newPlaybackBar(r.progress, s.engine.Duration(), title)
	s.engine.On(player.EventTimeUpdate, func() {
		// remote sources learn their duration after the fetch completes
		if d := s.engine.Duration(); d > 0 && bar.GetMax() < 0 {
			bar.ChangeMax(int(math.Ceil(d)))
		}
		bar.Set(int(s.engine.CurrentTime()))
	})

	if err := s.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err := s.engine.LoadErr(); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrSourceFailed, req.Source, err)
	}

	bar.Finish()
	r.logger.Info("stopped", "position", s.engine.CurrentTime())
	return nil
}

// newPlaybackBar counts seconds of playback. An unknown duration renders a spinner.
func newPlaybackBar(w io.Writer, duration float64, title string) *progressbar.ProgressBar {
	total := -1
	if duration > 0 && !math.IsInf(duration, 0) {
		total = int(math.Ceil(duration))
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(title),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("s"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}
