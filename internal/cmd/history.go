package cmd

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xwill007/cursor/selectlog"
)

var historyCmd = &cobra.Command{
	Use:   "history <db>",
	Short: "Show recorded selections",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryCmd,
}

var (
	historyLimit  int
	historyCounts bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of selections to show")
	historyCmd.Flags().BoolVar(&historyCounts, "counts", false, "show selections per target instead")
	rootCmd.AddCommand(historyCmd)
}

var (
	styleTime   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleTarget = lipgloss.NewStyle().Bold(true).Width(16)
	styleMode   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Width(8)
)

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	store, err := selectlog.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if historyCounts {
		counts, err := store.Counts(ctx)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			if counts[ids[i]] != counts[ids[j]] {
				return counts[ids[i]] > counts[ids[j]]
			}
			return ids[i] < ids[j]
		})
		for _, id := range ids {
			fmt.Fprintf(out, "%s %d\n", styleTarget.Render(id), counts[id])
		}
		return nil
	}

	entries, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No selections recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s %s %s %s\n",
			styleTime.Render(e.SelectedAt.Local().Format("2006-01-02 15:04:05")),
			styleTarget.Render(e.TargetID),
			styleMode.Render(e.Mode.String()),
			e.CursorID,
		)
	}
	return nil
}
