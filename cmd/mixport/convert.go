package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mixport/mixport/internal/formatter"
	"github.com/mixport/mixport/internal/services"
	"github.com/mixport/mixport/internal/shared"
	"github.com/urfave/cli/v3"
)

// Convert fetches a playlist and renders every requested format, writing each
// under <output-dir>/<slug>/. A source fetch failure aborts the run with no
// output; a failed file write is reported and the remaining formats continue.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("playlist")
	if input == "" {
		return cli.Exit("missing playlist URL or ID", 1)
	}

	playlistID, err := services.ExtractPlaylistID(input)
	if err != nil {
		return cli.Exit("invalid Spotify playlist URL or ID", 1)
	}

	formats, err := parseFormats(cmd.String("formats"))
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())
	logger.Info("starting conversion", "playlist", playlistID, "formats", len(formats))

	source, err := r.resolveSource(ctx)
	if err != nil {
		return err
	}

	r.writePlain("Fetching playlist data for ID: %s\n", playlistID)
	export, err := source.ExportPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, shared.ErrPlaylistNotFound) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}
	r.writePlain("Found playlist: '%s' with %d tracks\n\n", export.Playlist.Name, len(export.Tracks))

	outputDir := cmd.String("output-dir")
	if outputDir == "" {
		outputDir = r.config.Output.Directory
	}
	slug := shared.Slugify(export.Playlist.Name)
	dir := filepath.Join(outputDir, slug)
	r.writePlain("Files will be saved to: %s/\n\n", dir)

	pace := time.Duration(r.config.Matcher.PaceMS) * time.Millisecond
	if pace <= 0 {
		pace = formatter.DefaultPace
	}

	opts := formatter.Options{
		Matcher:        r.resolveMatcher(),
		Pace:           pace,
		SearchFallback: !cmd.Bool("no-search-fallback"),
		Logger:         logger,
		Progress: func(step, total int, message string) {
			r.writePlain("   Processing %d/%d: %s\n", step, total, message)
		},
	}

	successCount := 0
	for _, format := range formats {
		r.writePlain("Generating %s...\n", format)
		if format.NeedsMatcher() {
			r.writePlain("Searching YouTube for each track (this may take a while)...\n")
		}

		result, err := formatter.Render(ctx, format, export, opts)
		if err != nil {
			return err
		}

		path, err := formatter.WriteDocument(result.Content, format.Filename(slug), dir)
		if err != nil {
			logger.Error("write failed", "format", format, "err", err)
			r.writePlain("%s\n", warnStyle.Render("Failed to save "+format.Filename(slug)))
			continue
		}

		successCount++
		r.writePlain("File saved: %s\n", path)
		if format.NeedsMatcher() {
			r.writePlain("Found direct YouTube links for %d/%d tracks\n", result.MatchedCount, result.TrackCount)
		}
		r.writePlain("\n")
	}

	if successCount == 0 {
		r.writePlain("No files were generated.\n")
		return nil
	}

	r.writeHeader("Conversion Complete")
	r.writePlain("%s\n", okStyle.Render("Successfully generated "+pluralFiles(successCount)))
	return nil
}

// parseFormats expands a comma-separated formats flag, with "all" selecting
// every variant.
func parseFormats(flag string) ([]formatter.Format, error) {
	if strings.EqualFold(strings.TrimSpace(flag), "all") {
		return formatter.Formats, nil
	}

	var formats []formatter.Format
	for _, part := range strings.Split(flag, ",") {
		format, err := formatter.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}

	if len(formats) == 0 {
		return nil, shared.ErrInvalidFlag
	}
	return formats, nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
