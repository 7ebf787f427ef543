package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows the registered game modes and the difficulty presets.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print games
	controls := ""
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
		if game, err := registry.Create(g.ID); err == nil {
			if c, ok := game.(registry.Controller); ok && controls == "" {
				controls = c.Controls()
			}
		}
	}

	if controls != "" {
		fmt.Println()
		fmt.Println("Controls:")
		fmt.Printf("  %s\n", controls)
	}

	fmt.Println()
	fmt.Println("Difficulty presets:")
	fmt.Println()
	for _, p := range config.Presets {
		fmt.Printf("  %-8s %s\n", p, p.Describe())
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id> --difficulty <preset>' to play.")
}
