// bombarena is the authoritative server for a room-based multiplayer
// bomber arena game.
//
// Usage:
//
//	bombarena serve            - Start the websocket game server
//	bombarena genmap           - Generate and print an arena map
//	bombarena scores           - Show the highscore board
//
// Global flags:
//
//	--config <path>  - Path to a YAML config file
//	--db <path>      - Path to the results database (overrides config)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bombarena",
	Short: "Bomb Arena - authoritative multiplayer bomber game server",
	Long: `Bomb Arena is the server side of a room-based multiplayer bomber
arena game. Players connect over websockets, gather in rooms of up to
four, and the server runs the entire simulation.

Available commands:
  serve    - Start the websocket game server
  genmap   - Generate and print an arena map for a given seed
  scores   - Show the highscore board

Examples:
  bombarena serve
  bombarena serve --addr :9000 --preset chaos
  bombarena genmap --seed demo-42
  bombarena scores --limit 20`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(genmapCmd)
	rootCmd.AddCommand(scoresCmd)
}
