// Package cli implements the castello command line client. Commands talk to
// the game server over its JSON API; the watch command additionally runs the
// polling synchronizer for a live view of one game.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/castello/castello-go/internal/client"
	"github.com/castello/castello-go/internal/session"
)

var (
	cfg       *Config
	apiClient *client.Client
	store     *session.Store
	identity  session.Identity
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "castello",
		Short: "CLI client for the Red Dawn Raid game server",
		Long: `castello is a client for the Red Dawn Raid multiplayer game.

Sign up once, join or create a game, then use "castello watch" for a live
view that follows the raid as it unfolds. Individual game commands are also
available for scripting.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store = session.NewStore(cfg.SessionFile)

			var err error
			identity, err = store.Load()
			if err != nil {
				return err
			}

			apiClient = client.New(cfg.ServerURL, identity.AuthToken)
			// A 401 means the stored credential is dead; drop it so the
			// next command starts clean.
			apiClient.OnUnauthorized(func() {
				_ = store.Clear()
			})
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CASTELLO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: CASTELLO_SESSION)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newDevCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
