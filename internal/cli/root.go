// Package cli defines the gmrank command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gmrank",
		Short: "Rhythm-game score submission ranking pipeline",
		Long: `gmrank turns raw per-submission score reports into deduplicated
leaderboards: per-song best-record rankings, chronological submission
histories, and the cross-song GrandMaster composite ranking.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newRunCmd())

	return cmd
}
