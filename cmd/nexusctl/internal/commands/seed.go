package commands

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranav-2399/nexus-website/internal/seeder"
)

// Default seed sizes.
const (
	defaultSeedEvents     = 12
	defaultSeedTeam       = 20
	defaultSeedHighlights = 8
	defaultSeedFeedback   = 30
	defaultSeedTimeout    = 30 * time.Second
	defaultRunTimeout     = 10 * time.Minute
)

// InitSeedCommands registers "seed".
func InitSeedCommands(root *cobra.Command) {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a running site with generated sample content",
		Long: `seed posts generated events, team members, highlights and feedback to a
running site through its API, concurrently, then reads the lists back to
confirm the content landed.`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
	f := seedCmd.Flags()
	f.String("url", "http://localhost:8080", "Base URL of the site")
	f.String("token", "", "Admin token (default $NEXUS_ADMIN_TOKEN)")
	f.Int("events", defaultSeedEvents, "Events to create")
	f.Int("team", defaultSeedTeam, "Team members to create")
	f.Int("highlights", defaultSeedHighlights, "Highlights to create")
	f.Int("feedback", defaultSeedFeedback, "Feedback entries to submit")
	f.Int("workers", runtime.NumCPU(), "Concurrent requests")
	f.Duration("timeout", defaultSeedTimeout, "Per-request timeout")
	f.String("output", "", "Write the generated payloads to this JSON file")
	f.Bool("verbose", false, "Log each failed request")
	root.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	cfg := &seeder.Config{}
	var err error
	if cfg.BaseURL, err = f.GetString("url"); err != nil {
		return err
	}
	if cfg.AdminToken, err = f.GetString("token"); err != nil {
		return err
	}
	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("NEXUS_ADMIN_TOKEN")
	}
	if cfg.Events, err = f.GetInt("events"); err != nil {
		return err
	}
	if cfg.Team, err = f.GetInt("team"); err != nil {
		return err
	}
	if cfg.Highlights, err = f.GetInt("highlights"); err != nil {
		return err
	}
	if cfg.Feedback, err = f.GetInt("feedback"); err != nil {
		return err
	}
	if cfg.Workers, err = f.GetInt("workers"); err != nil {
		return err
	}
	if cfg.Timeout, err = f.GetDuration("timeout"); err != nil {
		return err
	}
	if cfg.OutputFile, err = f.GetString("output"); err != nil {
		return err
	}
	if cfg.Verbose, err = f.GetBool("verbose"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), defaultRunTimeout)
	defer cancel()

	stats, err := seeder.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d items (%d failed) in %s\n", stats.Successful+stats.Duplicate, stats.Failed, stats.Duration.Round(time.Millisecond))
	return nil
}
