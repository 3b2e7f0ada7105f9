package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snek/internal/core"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the color names usable in the config",
	Long: `Lists every color name accepted by the palette section of the config,
with a swatch and its RGB value. Names ignore case, spaces and underscores.`,
	Args: cobra.NoArgs,
	Run:  runColors,
}

func runColors(_ *cobra.Command, _ []string) {
	names := core.ColorNames()

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	for _, name := range names {
		c, err := core.LookupColor(name)
		if err != nil {
			continue
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
		fmt.Printf("  %s  %-*s  %s\n", swatch, width, name, c.Hex())
	}
}
