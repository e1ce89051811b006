package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Lumina is a multi-tenant session-state store",
	Long: `Lumina persists named sessions (JSON state plus uploaded files) per user and
application, evicting the least recently used sessions over a per-pair cap.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
