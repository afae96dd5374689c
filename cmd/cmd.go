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

// setupCommand handles configuration and database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize the run-history database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// authCommand runs the Spotify OAuth2 flow and persists tokens.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Spotify using OAuth2",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Auth,
	}
}

// rootlistCommand manages the unofficial rootlist credential.
func rootlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rootlist",
		Usage: "Manage the rootlist (playlist folders) credential",
		Commands: []*cli.Command{
			{
				Name:  "token",
				Usage: "Extract the bearer token from a browser \"Copy as cURL\" command and save it",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to a file containing the cURL command",
					},
				},
				Action: r.RootlistToken,
			},
		},
	}
}

// exportCommand runs the library export pipeline.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the library (liked songs, podcasts, artists, albums, playlists) to disk",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory (default from config)",
			},
			&cli.StringSliceFlag{
				Name:  "collections",
				Usage: "Collections to export: liked, podcasts, artists, albums, playlists (default: all)",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Client-side requests per second",
			},
			&cli.BoolFlag{
				Name:  "skip-folders",
				Usage: "Skip rootlist folder resolution; playlists land at the top level",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print per-item progress",
			},
		},
		Action: r.Export,
	}
}

// historyCommand lists past export runs.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past export runs",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}
