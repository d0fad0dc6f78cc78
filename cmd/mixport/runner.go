package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mixport/mixport/internal/match"
	"github.com/mixport/mixport/internal/services"
	"github.com/mixport/mixport/internal/shared"
	"github.com/urfave/cli/v3"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	output  io.Writer
	source  services.PlaylistSource
	matcher match.MatchProvider
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Source and Matcher are optional injection points for tests; when nil, the
// Runner builds the real Spotify source and YouTube matcher on demand.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Source  services.PlaylistSource
	Matcher match.MatchProvider
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		source:  opts.Source,
		matcher: opts.Matcher,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		convertCommand, remixCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveSource returns the injected playlist source or builds the Spotify
// client from configured credentials.
func (r *Runner) resolveSource(ctx context.Context) (services.PlaylistSource, error) {
	if r.source != nil {
		return r.source, nil
	}

	if !r.config.HasSpotifyCredentials() {
		return nil, fmt.Errorf("%w: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET or edit config.toml (see 'mixport setup')", shared.ErrMissingCredentials)
	}

	creds := r.config.Credentials.Spotify
	return services.NewSpotifyService(ctx, creds.ClientID, creds.ClientSecret, r.logger)
}

// resolveMatcher returns the injected matcher or builds the YouTube scraper
// from config.
func (r *Runner) resolveMatcher() match.MatchProvider {
	if r.matcher != nil {
		return r.matcher
	}

	timeout := time.Duration(r.config.Matcher.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = match.DefaultTimeout
	}

	return match.NewYouTubeMatcher(match.MatcherOpts{
		Client:    &http.Client{Timeout: timeout},
		Logger:    r.logger,
		Attempts:  r.config.Matcher.Attempts,
		RetryWait: time.Duration(r.config.Matcher.RetryWaitSeconds) * time.Second,
	})
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", titleStyle.Render(title))
	r.writePlain("═══════════════════════════════════════\n")
}
