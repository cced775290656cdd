package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castello/castello-go/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameSkipCmd())
	cmd.AddCommand(newGameRollCmd())
	cmd.AddCommand(newGameRollWeatherCmd())
	cmd.AddCommand(newGameUsePotionCmd())

	return cmd
}

// resolveGameID takes the optional positional game id, falling back to the
// last-joined game from the session
func resolveGameID(args []string) (model.GameID, error) {
	if len(args) > 0 {
		return model.GameID(args[0]), nil
	}
	if identity.CurrentGameID != "" {
		return identity.CurrentGameID, nil
	}
	return "", fmt.Errorf("no game id given and no current game in session; join a game first")
}

// refreshAndPrint fetches a fresh snapshot and renders it. Mutation responses
// are never rendered directly; the follow-up read is current relative to other
// participants' concurrent actions and applies any due phase advance.
func refreshAndPrint(id model.GameID) error {
	g, err := apiClient.GetGame(id)
	if err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.PrintGame(g, identity)
	return nil
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := apiClient.ListGames()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintGameList(games)
			return nil
		},
	}
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := apiClient.CreateGame()
			if err != nil {
				return err
			}
			return refreshAndPrint(g.ID)
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id>",
		Short: "Join a game that has not started yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.JoinGame(model.GameID(args[0]))
			if err != nil {
				return err
			}

			// Remember the game so later commands can omit the id
			if err := store.SetGame(result.Game.ID); err != nil {
				return err
			}
			identity.CurrentGameID = result.Game.ID

			return refreshAndPrint(result.Game.ID)
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [game-id]",
		Short: "Start a game once enough players have joined",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(args)
			if err != nil {
				return err
			}

			if _, err := apiClient.StartGame(id); err != nil {
				return err
			}
			return refreshAndPrint(id)
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [game-id]",
		Short: "Show the current game snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(args)
			if err != nil {
				return err
			}

			g, err := apiClient.GetGame(id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintGame(g, identity)
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "play <card>",
		Short: "Play a location card (forest, quarry, lake, manor)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(flagArgs(gameID))
			if err != nil {
				return err
			}

			if _, err := apiClient.SelectLocation(id, args[0]); err != nil {
				return err
			}
			return refreshAndPrint(id)
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game id (defaults to the current game)")
	return cmd
}

func newGameSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip [game-id]",
		Short: "Declare readiness to end the preparation window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(args)
			if err != nil {
				return err
			}

			if _, err := apiClient.Skip(id); err != nil {
				return err
			}
			return refreshAndPrint(id)
		},
	}
}

func newGameRollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll [game-id]",
		Short: "Throw your die in the current duel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(args)
			if err != nil {
				return err
			}

			if _, err := apiClient.RollDice(id); err != nil {
				return err
			}
			return refreshAndPrint(id)
		},
	}
}

func newGameRollWeatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll-weather [game-id]",
		Short: "Roll the weather for the current raid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(args)
			if err != nil {
				return err
			}

			if _, err := apiClient.RollWeather(id); err != nil {
				return err
			}
			return refreshAndPrint(id)
		},
	}
}

func newGameUsePotionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-potion [game-id]",
		Short: "Drink a potion before your duel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(args)
			if err != nil {
				return err
			}

			if _, err := apiClient.UsePotion(id); err != nil {
				return err
			}
			return refreshAndPrint(id)
		},
	}
}

func flagArgs(gameID string) []string {
	if gameID == "" {
		return nil
	}
	return []string{gameID}
}
