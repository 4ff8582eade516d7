package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TimelordUK/mread/internal/progress"
	"github.com/TimelordUK/mread/internal/source"
)

var progressHistory bool

var progressCmd = &cobra.Command{
	Use:   "progress FILE",
	Short: "Show the saved reading position for a file",
	Long: `Prints the most recent position recorded for the document in FILE,
laid out with the same column and --raw settings used to read it.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&progressHistory, "history", false, "list every recorded position")
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	cfg, err := settings()
	if err != nil {
		return err
	}

	lines, err := loadLines(args[0], cfg)
	if err != nil {
		return err
	}
	doc, err := source.NewBuffer(lines)
	if err != nil {
		return err
	}
	log := progress.NewLog(cfg.ProgressPath())

	if progressHistory {
		events, err := log.History(doc.Hash())
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No progress recorded.")
			return nil
		}
		for _, ev := range events {
			fmt.Fprintln(cmd.OutOrStdout(), formatEvent(ev))
		}
		return nil
	}

	ev, ok, err := log.Latest(doc.Hash())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No progress recorded.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatEvent(ev))
	return nil
}

func formatEvent(ev progress.Event) string {
	return fmt.Sprintf("%s  line %d of %d  %.1f%%",
		ev.Timestamp.Local().Format(time.DateTime), ev.Offset+1, ev.TotalLines, ev.Percentage)
}
