package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all boards and restore the sample project",
	Long:  "Clears stored boards and the active board, then seeds the default board again. Development use only.",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	w.state.Reset()
	w.log.Warn("storage reset from cli")

	b, _ := w.state.CurrentBoard()
	fmt.Printf("%sReset.%s Active board: %s%s%s\n", colorYellow, colorReset, colorBold, b.Title, colorReset)
	return nil
}
