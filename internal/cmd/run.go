package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/scrolldash/internal/sheet"
	"github.com/Iron-Ham/scrolldash/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Open the dashboard for a spreadsheet",
	Long: `Open the auto-scrolling dashboard for a CSV or XLSX policy spreadsheet.

Keys:
  1 2 3   cycle the scroll speed of a panel (0.5x, 1x, 1.5x, 2x)
  s       stop or resume auto-scrolling
  r       reload the spreadsheet
  ?       toggle full help
  q       quit

The spreadsheet is reloaded automatically when it changes on disk unless
watch.enabled is false.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var runForce bool

// errNotTerminal is returned when stdout is not a terminal and --force is unset.
var errNotTerminal = errors.New("stdout is not a terminal (use --force to run anyway)")

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runForce, "force", false, "Run even when stdout is not a terminal")
}

func runRun(cmd *cobra.Command, args []string) error {
	path, err := spreadsheetPath(args[0])
	if err != nil {
		return err
	}

	if !runForce && !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("starting dashboard", "path", path)

	app := tui.New(tui.Options{
		Path:   path,
		Config: cfg,
		Logger: logger,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// spreadsheetPath resolves arg to an absolute path of a supported file.
func spreadsheetPath(arg string) (string, error) {
	if !sheet.Supported(arg) {
		return "", fmt.Errorf("%s: %w (want .csv, .xlsx or .xlsm)", arg, sheet.ErrUnsupportedFormat)
	}
	path, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	return path, nil
}
