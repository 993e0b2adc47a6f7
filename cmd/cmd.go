// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// app is the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "gp",
		Usage:   "A persistent terminal mini-player",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   r.loadConfig,
		Commands: r.register(),
	}
}

// playCommand loads a source and starts playback.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Load a track, start playback and remember it",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "source"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Track title",
			},
			&cli.StringFlag{
				Name:    "artist",
				Aliases: []string{"a"},
				Usage:   "Track artist",
			},
			&cli.BoolFlag{
				Name:  "tags",
				Usage: "Fill a missing title or artist from the file's metadata",
			},
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "Play without the TUI until playback stops",
			},
		},
		Action: r.Play,
	}
}

// resumeCommand opens the player on the last track.
func resumeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "resume",
		Aliases: []string{"ui", "tui"},
		Usage:   "Open the player with the last loaded track, paused",
		Action:  r.Resume,
	}
}

// stateCommand inspects the persisted track.
func stateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Persisted player state",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the last loaded track as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: json, csv, markdown or text",
						Value:   "json",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
					},
				},
				Action: r.StateShow,
			},
		},
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Write the default configuration file",
				Action: r.SetupConfig,
			},
		},
	}
}
