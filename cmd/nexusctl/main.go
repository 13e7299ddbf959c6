// Package main is the entry point for nexusctl, the operator CLI for the
// club site: schema migrations, sample content and admin tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pranav-2399/nexus-website/cmd/nexusctl/internal/commands"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nexusctl",
		Short: "Operator tool for the Nexus club site",
		Long: `nexusctl manages a Nexus site deployment.

Configuration is read the same way the server reads it: an optional .env
file, the YAML file named by NEXUS_CONFIG, then NEXUS_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.InitMigrateCommands(rootCmd)
	commands.InitSeedCommands(rootCmd)
	commands.InitTokenCommands(rootCmd)
	return rootCmd
}
