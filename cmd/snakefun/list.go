package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-fun/internal/config"
	"github.com/vovakirdan/snake-fun/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all variants",
	Long:  `Shows every registered Snake Fun variant with its default setup.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "ID", "Title", "Setup")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, g := range games {
		cfg := config.DefaultFor(g.ID)
		setup := fmt.Sprintf("%d apples, %d obstacles, %d moves/s",
			cfg.Gameplay.Apples, cfg.Gameplay.Obstacles, cfg.Speed.TicksPerSecond)
		fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, g.ID, g.Title, setup)
	}

	fmt.Println()
	fmt.Println("Run 'snakefun play <id>' to play a variant.")
}
