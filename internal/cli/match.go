package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go2/internal/api/response"
	"github.com/mcoot/battleship-go2/internal/model"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchPlaceCmd())
	cmd.AddCommand(newMatchAutoCmd())
	cmd.AddCommand(newMatchResetCmd())
	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchFireCmd())
	cmd.AddCommand(newMatchAbandonCmd())

	return cmd
}

func matchPath(id, suffix string) string {
	return "/api/v1/matches/" + url.PathEscape(id) + suffix
}

// parseCoords parses "<row> <col>" arguments
func parseCoords(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid col %q", colArg)
	}
	return row, col, nil
}

// postMatch posts to a match endpoint and prints the returned match
func postMatch(cmd *cobra.Command, path string, body any) error {
	var result response.Match
	if err := client.Post(path, body, &result); err != nil {
		return err
	}
	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
	return nil
}

func newMatchCreateCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new match against the machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postMatch(cmd, "/api/v1/matches", map[string]string{"strategy": strategy})
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", fmt.Sprintf("Machine strategy %v (default: server setting)", model.ValidBotStrategies()))

	return cmd
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.MatchSummary
			if err := client.Get("/api/v1/matches", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a match with both grids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match
			if err := client.Get(matchPath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchPlaceCmd() *cobra.Command {
	var vertical bool

	cmd := &cobra.Command{
		Use:   "place <id> <ship> <row> <col>",
		Short: "Place one ship on your grid",
		Long: `Place a named ship with its origin at (row, col). Ships extend to the
right unless --vertical is given, in which case they extend downwards.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseCoords(args[2], args[3])
			if err != nil {
				return err
			}

			orientation := model.OrientationHorizontal
			if vertical {
				orientation = model.OrientationVertical
			}

			return postMatch(cmd, matchPath(args[0], "/ships"), map[string]any{
				"name":        args[1],
				"row":         row,
				"col":         col,
				"orientation": orientation,
			})
		},
	}

	cmd.Flags().BoolVar(&vertical, "vertical", false, "Extend the ship downwards")

	return cmd
}

func newMatchAutoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto <id>",
		Short: "Randomly place every remaining ship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postMatch(cmd, matchPath(args[0], "/ships/auto"), nil)
		},
	}
}

func newMatchResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Remove every placed ship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Match
			if err := client.Delete(matchPath(args[0], "/ships"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Finish placement and take the first shot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postMatch(cmd, matchPath(args[0], "/start"), nil)
		},
	}
}

func newMatchFireCmd() *cobra.Command {
	var showBoards bool

	cmd := &cobra.Command{
		Use:   "fire <id> <row> <col>",
		Short: "Fire at the machine's grid",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseCoords(args[1], args[2])
			if err != nil {
				return err
			}

			var result response.FireResponse
			if err := client.Post(matchPath(args[0], "/fire"), map[string]int{"row": row, "col": col}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			if showBoards && cfg.Output != "json" {
				out.Print(result.Match)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showBoards, "boards", false, "Also print both grids")

	return cmd
}

func newMatchAbandonCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			if purge {
				if err := client.Delete(matchPath(args[0], "?purge=true"), nil); err != nil {
					return err
				}
				out.PrintMessage("Match deleted")
				return nil
			}

			var result response.Match
			if err := client.Delete(matchPath(args[0], ""), &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Delete the match record instead of marking it abandoned")

	return cmd
}
