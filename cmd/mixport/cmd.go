// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// convertCommand fetches a playlist and generates the requested output files.
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "convert",
		Aliases: []string{"conv"},
		Usage:   "Fetch a Spotify playlist and generate markdown/M3U files",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "playlist",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "formats",
				Aliases: []string{"f"},
				Usage:   "Comma-separated formats: markdown, spotify, youtube, youtube-search, or all",
				Value:   "all",
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Base output directory",
			},
			&cli.BoolFlag{
				Name:  "no-search-fallback",
				Usage: "In the YouTube M3U, mark unmatched tracks as not found instead of commenting a search URL",
			},
		},
		Action: r.Convert,
	}
}

// remixCommand converts previously generated markdown back into M3U files.
func remixCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "remix",
		Aliases: []string{"md2m3u"},
		Usage:   "Convert markdown playlist files to M3U using their YouTube links",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "input",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Output directory for M3U files (default: same as input)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Verbose output",
			},
		},
		Action: r.Remix,
	}
}

// setupCommand writes an example configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config.toml with example settings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
