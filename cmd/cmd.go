// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func topQueryFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "time-range",
			Aliases: []string{"t"},
			Usage:   "Time range: short_term, medium_term, or long_term",
			Value:   "medium_term",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Maximum number of items to return (max 50)",
			Value:   20,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, csv, or markdown",
			Value:   "text",
		},
		&cli.BoolFlag{
			Name:  "save",
			Usage: "Save the fetch as a snapshot in the local database",
		},
		&cli.BoolFlag{
			Name:  "offline",
			Usage: "Serve the most recent saved snapshot instead of calling Spotify",
		},
	}
}

// authCommand handles the OAuth2 login flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Spotify using OAuth2",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Auth,
	}
}

// topCommand handles top-artists and top-tracks listings
func topCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "Show your most listened-to artists and tracks",
		Commands: []*cli.Command{
			{
				Name:  "artists",
				Usage: "List your top artists",
				Flags: append(topQueryFlags(),
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Only show artists matching this genre",
					},
				),
				Action: r.TopArtists,
			},
			{
				Name:   "tracks",
				Usage:  "List your top tracks",
				Flags:  topQueryFlags(),
				Action: r.TopTracks,
			},
			{
				Name:  "artist",
				Usage: "List an artist's most popular tracks",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Spotify artist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "market",
						Usage: "Two-letter market code",
						Value: "US",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, csv, or markdown",
						Value:   "text",
					},
				},
				Action: r.ArtistTopTracks,
			},
			{
				Name:   "genres",
				Usage:  "Aggregate genre counts across your top artists",
				Flags:  topQueryFlags(),
				Action: r.TopGenres,
			},
		},
	}
}

// roastCommand handles AI commentary generation
func roastCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "roast",
		Usage: "Have an AI critic roast (or toast) your listening habits",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "toast",
				Usage: "Celebrate instead of roasting",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Celebrity whose voice the critic imitates",
			},
			&cli.StringFlag{
				Name:    "time-range",
				Aliases: []string{"t"},
				Usage:   "Time range: short_term, medium_term, or long_term",
				Value:   "medium_term",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Number of artists and tracks to judge",
				Value:   10,
			},
		},
		Action: r.Roast,
	}
}

// serveCommand runs the HTTP proxy server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server proxying your listening data",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// snapshotCommand manages locally saved listening snapshots
func snapshotCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "snapshots",
		Aliases: []string{"snap"},
		Usage:   "Manage saved listening snapshots",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved snapshots for a kind and time range",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Snapshot kind: artists or tracks",
						Value: "artists",
					},
					&cli.StringFlag{
						Name:    "time-range",
						Aliases: []string{"t"},
						Usage:   "Time range: short_term, medium_term, or long_term",
						Value:   "medium_term",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"l"},
						Usage:   "Maximum snapshots to list",
						Value:   10,
					},
				},
				Action: r.SnapshotList,
			},
			{
				Name:  "prune",
				Usage: "Delete snapshots older than a number of days",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "Delete snapshots older than this many days",
						Value: 30,
					},
				},
				Action: r.SnapshotPrune,
			},
		},
	}
}

// tuiCommand launches the interactive terminal interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse your top artists interactively",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "time-range",
				Aliases: []string{"t"},
				Usage:   "Time range: short_term, medium_term, or long_term",
				Value:   "medium_term",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Number of artists to load",
				Value:   20,
			},
		},
		Action: r.TUI,
	}
}
