package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Malinga14/board-app/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive board",
	Long:  "Opens a full-screen board with drag-and-drop between columns, task editing, assignment and search.",
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	// Stderr logging would draw over the alt screen.
	if w.cfg.Log.File == "" {
		w.log.SetOutput(io.Discard)
	}
	if err := tui.Run(w.state, w.log); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
