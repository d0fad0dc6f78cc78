package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mixport/mixport/internal/remix"
	"github.com/mixport/mixport/internal/shared"
	"github.com/urfave/cli/v3"
)

// Remix converts markdown playlist files back into M3U. The input may be a
// single .md file or a directory; directory mode continues past per-file
// failures and reports a summary count.
func (r *Runner) Remix(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("input")
	if input == "" {
		return cli.Exit("missing input path: expected a markdown file or directory", 1)
	}

	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}

	info, err := os.Stat(input)
	if err != nil {
		return cli.Exit(input+" does not exist", 1)
	}

	outputDir := cmd.String("output-dir")
	converter := remix.NewConverter(r.logger)

	r.writeHeader("Markdown to M3U Converter")

	successCount := 0
	if info.IsDir() {
		converted, found, err := converter.ProcessDirectory(input, outputDir)
		if err != nil {
			return err
		}
		if found == 0 {
			r.writePlain("No markdown files found in %s\n", input)
			return nil
		}
		r.writePlain("Found %d markdown files\n", found)
		successCount = converted
	} else {
		if !strings.EqualFold(filepath.Ext(input), ".md") {
			return cli.Exit(input+" is not a markdown file", 1)
		}

		out, err := converter.ProcessFile(input, outputDir)
		if err != nil {
			r.logger.Error("failed to convert", "file", input, "err", err)
		} else {
			r.writePlain("Generated: %s\n", out)
			successCount = 1
		}
	}

	if successCount > 0 {
		r.writePlain("%s\n", okStyle.Render("Successfully converted "+pluralFiles(successCount)+" to M3U format"))
	} else {
		r.writePlain("No files were successfully converted.\n")
		r.writePlain("Markdown files must contain links in this format:\n")
		r.writePlain("   [Listen on YouTube](https://www.youtube.com/watch?v=VIDEO_ID)\n")
	}

	return nil
}

// Setup writes the embedded example configuration file.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("Created %s - add your Spotify credentials before running 'mixport convert'.\n", path)
	return nil
}
