package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/gp/internal/formatter"
	"github.com/desertthunder/gp/internal/models"
	"github.com/desertthunder/gp/internal/shared"
	"github.com/urfave/cli/v3"
)

// StateShow prints the persisted track. An empty slot prints the zero track.
func (r *Runner) StateShow(ctx context.Context, cmd *cli.Command) error {
	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	raw, err := store.Get(r.config.Player.StateKey)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
	}

	track, err := models.DecodeTrackState(raw)
	if err != nil {
		return fmt.Errorf("%w: persisted state under %q: %v", shared.ErrInvalidInput, r.config.Player.StateKey, err)
	}

	format := strings.ToLower(cmd.String("format"))
	if format == formatter.JSON {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	data, err := formatter.Format(track, format, r.config.Player.PlaceholderTitle)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}
