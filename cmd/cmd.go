// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that reads config.toml.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the config file and history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration and run database migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// syncCommand launches the interactive sync screen.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Interactively align a lyric file to an audio track",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "audio",
				Aliases:  []string{"a"},
				Usage:    "Audio file to align against (.mp3 or .wav)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "lyrics",
				Aliases:  []string{"l"},
				Usage:    "Plain-text lyric file, one line per lyric line",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory the exported .lrc is written to",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Skip recording this session in the history database",
			},
		},
		Action: r.Sync,
	}
}

// historyCommand lists past exported sessions.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List previously exported sync sessions",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of sessions to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "audio",
				Usage: "Only show sessions for this audio file path",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// inspectCommand summarizes an existing .lrc file.
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Parse a timed-lyrics file and print its records",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Inspect,
	}
}
