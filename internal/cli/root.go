// Package cli wires the mread command line to the pager.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TimelordUK/mread/internal/config"
	"github.com/TimelordUK/mread/internal/console"
	"github.com/TimelordUK/mread/internal/logger"
	"github.com/TimelordUK/mread/internal/pager"
	"github.com/TimelordUK/mread/internal/progress"
	"github.com/TimelordUK/mread/internal/source"
)

var (
	flagCol          int
	flagRaw          bool
	flagVerbose      bool
	flagNoTutorial   bool
	flagLogFile      string
	flagProgressFile string
)

// swapped in tests
var (
	loadConfig     = config.Load
	termIsTerminal = term.IsTerminal
)

var rootCmd = &cobra.Command{
	Use:   "mread [file]",
	Short: "Read text in the terminal and pick up where you left off",
	Long: `mread shows a text file (or text piped on stdin) justified to a fixed
column and remembers how far you got. Positions are keyed by the content of
the document, so a renamed or copied file resumes at the same place.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRead,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&flagCol, "col", "c", 0, "column width to justify to (default from config, 110)")
	flags.BoolVar(&flagRaw, "raw", false, "show file lines as they are, without justifying")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "write debug output to the log file")
	flags.StringVar(&flagLogFile, "log-file", "", "log file used while the pager is open")
	flags.StringVar(&flagProgressFile, "progress-file", "", "progress log location")
	rootCmd.Flags().BoolVar(&flagNoTutorial, "no-tutorial", false, "do not show the tutorial on first open")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// settings loads the config and applies command line overrides
func settings() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flagCol > 0 {
		cfg.Reader.Column = flagCol
	}
	if flagRaw {
		cfg.Reader.Justify = false
	}
	if flagNoTutorial {
		cfg.Reader.EnableTutorial = false
	}
	if flagVerbose {
		cfg.Log.Verbose = true
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagProgressFile != "" {
		cfg.Progress.Path = flagProgressFile
	}
	if cfg.Reader.Column < 1 {
		return nil, fmt.Errorf("invalid column width %d", cfg.Reader.Column)
	}
	return cfg, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && termIsTerminal(int(f.Fd()))
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, err := settings()
	if err != nil {
		return err
	}
	logger.SetVerbose(cfg.Log.Verbose)

	out := cmd.OutOrStdout()
	interactive := isTerminal(out)

	// Keep stray diagnostics off the screen the pager draws on
	if interactive {
		redirect, err := console.Acquire(cfg.LogPath())
		if err != nil {
			return err
		}
		logger.Debug("logging to %s", redirect.Path())
		defer func() {
			if err := redirect.Release(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "closing log: %v\n", err)
			}
		}()
	}

	doc, fromStdin, err := readDocument(cmd, args, cfg)
	if err != nil {
		return err
	}
	logger.Info("document %x: %d lines", doc.Hash(), doc.LineCount())

	store := progress.NewLog(cfg.ProgressPath(), progress.WithSession(uuid.NewString()))
	return pager.Run(cmd.Context(), doc, pager.Options{
		Config:   cfg,
		Store:    store,
		Column:   cfg.Reader.Column,
		Output:   out,
		InputTTY: fromStdin && interactive,
	})
}

// readDocument loads the file named in args, or stdin when there is none.
// It reports whether stdin carried the document.
func readDocument(cmd *cobra.Command, args []string, cfg *config.Config) (*source.Buffer, bool, error) {
	if len(args) == 1 && args[0] != "-" {
		lines, err := loadLines(args[0], cfg)
		if err != nil {
			return nil, false, err
		}
		buf, err := source.NewBuffer(lines)
		return buf, false, err
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return nil, false, fmt.Errorf("no input: pass a file or pipe text on stdin")
	}
	lines, err := readStdin(cmd, in, cfg)
	if err != nil {
		return nil, true, err
	}
	buf, err := source.NewBuffer(lines)
	return buf, true, err
}

func readStdin(cmd *cobra.Command, in io.Reader, cfg *config.Config) ([]string, error) {
	stream := source.NewStream(cmd.Context(), in)
	wait := cfg.Reader.StdinWait()
	raw, err := stream.Snapshot(wait)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	select {
	case <-stream.Done():
	default:
		logger.Info("stdin still open after %s, reading the %d lines received", wait, len(raw))
	}
	return layout(raw, cfg), nil
}
