package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/platformer/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the highest scoring finished runs, game overs and victories alike.

Examples:
  platformer scores
  platformer scores --limit 20
  platformer scores clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded run",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.AddCommand(scoresClearCmd)
}

func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening scores database: %w", err)
	}
	return store, nil
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(storage.GameID, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores")
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'platformer play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-9s  %s\n", "Rank", "Score", "Level", "Outcome", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-9s  %s\n", "----", "-----", "-----", "-------", "----")

	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-10d  %-5d  %-9s  %s\n", i+1, r.Score, r.Level, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runScoresClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ClearRuns(storage.GameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs.\n", n)
	return nil
}
