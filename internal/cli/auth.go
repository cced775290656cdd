package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castello/castello-go/internal/client"
	"github.com/castello/castello-go/internal/session"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account commands",
	}

	cmd.AddCommand(newAuthSignupCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthMeCmd())

	return cmd
}

// storeCredential persists a fresh credential, replacing whatever identity
// was held before
func storeCredential(result client.AuthResult) error {
	return store.Save(session.Identity{
		UserID:    result.UserID,
		Username:  result.Username,
		AuthToken: result.AuthToken,
	})
}

func newAuthSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Signup(args[0], args[1])
			if err != nil {
				return err
			}

			if err := storeCredential(result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Login(args[0], args[1])
			if err != nil {
				return err
			}

			if err := storeCredential(result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Clear(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newAuthMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the stored identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if !identity.Authenticated() {
				out.PrintMessage("Not logged in")
				return nil
			}

			if cfg.Output == "json" {
				out.Print(identity)
				return nil
			}

			fmt.Printf("User: %s (%s)\n", identity.Username, identity.UserID)
			if identity.CurrentGameID != "" {
				fmt.Printf("Current game: %s\n", identity.CurrentGameID)
			}
			return nil
		},
	}
}
