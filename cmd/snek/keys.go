package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snek/internal/platform/term"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the key bindings",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(term.DefaultKeyMap().HelpView())
	},
}
