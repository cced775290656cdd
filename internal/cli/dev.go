package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development server commands",
	}

	cmd.AddCommand(newDevWipeCmd())
	return cmd
}

func newDevWipeCmd() *cobra.Command {
	var confirm string

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe the entire server database (dev servers only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirm != "YES" {
				return fmt.Errorf("refusing to wipe: pass --confirm YES")
			}

			result, err := apiClient.Wipe(confirm)
			if err != nil {
				return err
			}

			// The wipe killed our session too
			_ = store.Clear()

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", "Must be YES to proceed")
	return cmd
}
