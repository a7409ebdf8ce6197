package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/riskibarqy/mlb-stats/internal/app"
	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
	"github.com/riskibarqy/mlb-stats/internal/usecase"
	"github.com/spf13/cobra"
)

type profileRunner func(ctx context.Context, stats *usecase.PlayerStatsService, personID baseball.PersonID, season string) (any, error)

func runHitting(ctx context.Context, stats *usecase.PlayerStatsService, personID baseball.PersonID, season string) (any, error) {
	return stats.Hitting(ctx, personID, season)
}

func runPitching(ctx context.Context, stats *usecase.PlayerStatsService, personID baseball.PersonID, season string) (any, error) {
	return stats.Pitching(ctx, personID, season)
}

func runFielding(ctx context.Context, stats *usecase.PlayerStatsService, personID baseball.PersonID, season string) (any, error) {
	return stats.Fielding(ctx, personID, season)
}

func profileCmd(use, short string, run profileRunner) *cobra.Command {
	var personID int64
	var season string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, application *app.App) error {
				out, err := run(ctx, application.Stats, baseball.PersonID(personID), season)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().Int64Var(&personID, "person", 0, "MLB person id, e.g. 660271")
	cmd.Flags().StringVar(&season, "season", "", "Season year (empty for the current season)")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Load profiles for many players at once",
	}

	var people, season string
	hitting := &cobra.Command{
		Use:   "hitting",
		Short: "Hitting profiles for a comma-separated list of players",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := parsePersonIDs(people)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, application *app.App) error {
				rows, err := application.Stats.BatchHitting(ctx, ids, season)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), rows)
			})
		},
	}
	hitting.Flags().StringVar(&people, "person", "", "Comma-separated MLB person ids")
	hitting.Flags().StringVar(&season, "season", "", "Season year (empty for the current season)")
	_ = hitting.MarkFlagRequired("person")

	cmd.AddCommand(hitting)
	return cmd
}

func parsePersonIDs(raw string) ([]baseball.PersonID, error) {
	parts := strings.Split(raw, ",")
	out := make([]baseball.PersonID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: invalid person id %q", usecase.ErrInvalidInput, part)
		}
		out = append(out, baseball.PersonID(id))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: --person needs at least one id", usecase.ErrInvalidInput)
	}
	return out, nil
}

func decodeCmd() *cobra.Command {
	var file, group, season string
	var archived bool
	var personID int64
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Run the split engine over a saved stats response",
		Long: "Decode a stats response from a file or stdin, or with --archived the\n" +
			"latest archived response for --person and --season.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if archived {
				if personID <= 0 {
					return fmt.Errorf("%w: --archived needs --person", usecase.ErrInvalidInput)
				}
				return withApp(cmd.Context(), func(ctx context.Context, application *app.App) error {
					out, err := application.Stats.Archived(ctx, baseball.PersonID(personID), statsGroup(group), season)
					if err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), out)
				})
			}

			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			out, err := usecase.DecodeProfile(statsGroup(group), raw)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "Response file, - for stdin")
	cmd.Flags().StringVar(&group, "group", "hitting", "Stat group (hitting, pitching, fielding)")
	cmd.Flags().BoolVar(&archived, "archived", false, "Decode the latest archived response instead of a file")
	cmd.Flags().Int64Var(&personID, "person", 0, "MLB person id, used with --archived")
	cmd.Flags().StringVar(&season, "season", "", "Season year, used with --archived (empty for the current season)")
	cmd.MarkFlagsMutuallyExclusive("archived", "file")
	return cmd
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return raw, nil
}
