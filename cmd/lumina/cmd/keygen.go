package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an API key for LUMINA_API_KEY",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), key.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
