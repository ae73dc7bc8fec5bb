package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var columnBoard string

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Column-wide operations",
}

var columnAssignCmd = &cobra.Command{
	Use:   "assign [column] [user-id...]",
	Short: "Assign users to every task in a column",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runColumnAssign,
}

func init() {
	columnCmd.PersistentFlags().StringVar(&columnBoard, "board", "", "Board ID (default: active board)")
	columnCmd.AddCommand(columnAssignCmd)
}

func runColumnAssign(cmd *cobra.Command, args []string) error {
	users, err := resolveUsers(args[1:])
	if err != nil {
		return err
	}

	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(columnBoard)
	if err != nil {
		return err
	}
	n, err := w.store.AssignColumnUsers(b.ID, args[0], users)
	if err != nil {
		return w.skipMissing("assign", err)
	}
	fmt.Printf("Assigned %s%s%s to %d tasks in %s\n", colorCyan, userNames(users), colorReset, n, args[0])
	return nil
}
