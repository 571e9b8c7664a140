package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomb-arena/internal/config"
	"github.com/vovakirdan/bomb-arena/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the highscore board",
	Long: `Display the top scores across all games, best score per player.

Examples:
  bombarena scores
  bombarena scores --limit 20`,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	dbPath := flagDBPath
	if dbPath == "" {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		dbPath = cfg.Server.DBPath
	}
	if dbPath == "" {
		return fmt.Errorf("no database configured, set --db or server.db_path")
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("cannot open results database: %w", err)
	}
	defer store.Close()

	top, err := store.TopScores(flagScoresLimit)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Println("Highscores")
	fmt.Println("----------")
	for i, row := range top {
		fmt.Printf("%2d. %-20s %6d\n", i+1, row.Pseudo, row.Score)
	}
	return nil
}
