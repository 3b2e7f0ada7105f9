package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snek/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded rounds",
	Long: `Display the most recent rounds recorded with --db, plus totals.
Pass the same --db path that was used when playing.

Examples:
  snek history --db ~/.snek/rounds.db
  snek history --db ~/.snek/rounds.db --limit 50
  snek history --db ./rounds.db --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded rounds")
}

func runHistory(_ *cobra.Command, _ []string) {
	if flagDBPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --db is required (the database passed to 'snek --db <path>')")
		os.Exit(1)
	}

	// Don't create an empty database just to report that it is empty
	if _, err := os.Stat(expandHome(flagDBPath)); errors.Is(err, fs.ErrNotExist) {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play with 'snek --db %s' to record rounds.\n", flagDBPath)
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rounds database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Round history cleared.")
		return
	}

	rounds, err := store.RecentRounds(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	title := lipgloss.NewStyle().Bold(true)
	fmt.Println(title.Render("Round History"))
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play with 'snek --db <path>' to record rounds.")
		return
	}

	fmt.Println(historyTable(rounds).View())

	totals, err := store.Totals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("Rounds: %d   P1 wins: %d   P2 wins: %d   Ties: %d   Longest snake: %d\n",
		totals.Rounds, totals.Wins1, totals.Wins2, totals.Ties, totals.BestLength)
}

// historyTable lays out rounds as a static table.
func historyTable(rounds []storage.Round) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Field", Width: 8},
		{Title: "P1", Width: 4},
		{Title: "P2", Width: 4},
		{Title: "Winner", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "End", Width: 8},
		{Title: "Date", Width: 14},
	}

	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		winner := "tie"
		if w := r.Winner(); w != 0 {
			winner = "P" + strconv.Itoa(w)
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			strconv.Itoa(r.Length1),
			strconv.Itoa(r.Length2),
			winner,
			strconv.FormatInt(r.Ticks, 10),
			r.EndReason,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	return t
}

// expandHome resolves a leading ~ the same way storage.Open does.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
