package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Malinga14/board-app/internal/model"
)

// ANSI color codes.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

var (
	showBoard  string
	showSearch string

	createDesc  string
	createUsers []string

	updateTitle  string
	updateDesc   string
	updateStatus string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active kanban board",
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	RunE:  runList,
}

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a board and make it active",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCreate,
}

var useCmd = &cobra.Command{
	Use:   "use [board-id]",
	Short: "Switch the active board",
	Args:  cobra.ExactArgs(1),
	RunE:  runUse,
}

var updateCmd = &cobra.Command{
	Use:   "update [board-id]",
	Short: "Change a board's title, description or status",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [board-id]",
	Short: "Delete a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	showCmd.Flags().StringVar(&showBoard, "board", "", "Board ID (default: active board)")
	showCmd.Flags().StringVarP(&showSearch, "search", "s", "", "Only show tasks matching title, type or assignee")

	createCmd.Flags().StringVarP(&createDesc, "desc", "d", "", "Board description")
	createCmd.Flags().StringSliceVar(&createUsers, "user", nil, "Member user ID (repeatable)")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVarP(&updateDesc, "desc", "d", "", "New description")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "To Do, In Progress, Approved or Rejected")
}

func runShow(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(showBoard)
	if err != nil {
		return err
	}
	printBoard(b, model.FilterColumns(b.Columns, showSearch), showSearch)
	return nil
}

func printBoard(b model.Board, cols []model.Column, search string) {
	fmt.Printf("%s%s%s  %s%s%s\n", colorBold, b.Title, colorReset, statusColor(b.Status), b.Status, colorReset)
	if b.Description != "" {
		fmt.Printf("%s%s%s\n", colorDim, b.Description, colorReset)
	}
	meta := fmt.Sprintf("%s · updated %s", b.ID, b.LastUpdated.Local().Format("Jan 2 15:04"))
	if search != "" {
		meta += fmt.Sprintf(" · filter %q", search)
	}
	fmt.Printf("%s%s%s\n\n", colorDim, meta, colorReset)

	colWidth := 30
	headerLine := ""
	sepLine := ""
	maxRows := 0
	for _, c := range cols {
		label := strings.ToUpper(c.Title)
		header := fmt.Sprintf(" %s%s%s (%d)", columnColor(c.ID)+colorBold, label, colorReset, len(c.Tasks))
		// padding needs the visible length, not the byte length.
		visibleLen := len(fmt.Sprintf(" %s (%d)", label, len(c.Tasks)))
		headerLine += header + strings.Repeat(" ", max(colWidth-visibleLen, 0))
		sepLine += strings.Repeat("─", colWidth)
		maxRows = max(maxRows, len(c.Tasks))
	}
	fmt.Println(headerLine)
	fmt.Println(colorDim + sepLine + colorReset)

	for i := 0; i < maxRows; i++ {
		titleLine := ""
		detailLine := ""
		for _, c := range cols {
			if i >= len(c.Tasks) {
				titleLine += strings.Repeat(" ", colWidth)
				detailLine += strings.Repeat(" ", colWidth)
				continue
			}
			t := c.Tasks[i]

			title := truncate(t.Title, colWidth-3)
			titleLine += fmt.Sprintf(" %s%s%s", priorityColor(t.Priority), title, colorReset) +
				strings.Repeat(" ", max(colWidth-1-len(title), 0))

			detail := fmt.Sprintf("   %s · %d users", t.Type, t.Assignees)
			if t.DueDate != "" {
				detail += " · " + t.DueDate
			}
			detail = truncate(detail, colWidth-1)
			detailLine += colorDim + detail + colorReset + strings.Repeat(" ", max(colWidth-len(detail), 0))
		}
		fmt.Println(titleLine)
		fmt.Println(detailLine)
		fmt.Println()
	}

	total := 0
	for _, c := range cols {
		total += len(c.Tasks)
	}
	fmt.Printf("%s%d tasks%s  %s%d members%s\n", colorBold, total, colorReset, colorCyan, len(b.AssignedUsers), colorReset)
}

func runList(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	boards := w.state.Boards()
	if len(boards) == 0 {
		fmt.Printf("%sNo boards.%s Create one: %sboard create \"title\"%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	active := w.state.ActiveBoardID()
	for _, b := range boards {
		marker := "  "
		if b.ID == active {
			marker = colorGreen + "● " + colorReset
		}
		fmt.Printf("%s%s%s%s  %s  %s%s%s  %s%d tasks%s\n",
			marker, colorBold, b.Title, colorReset,
			b.ID,
			statusColor(b.Status), b.Status, colorReset,
			colorDim, b.TaskCount(), colorReset)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	users, err := resolveUsers(createUsers)
	if err != nil {
		return err
	}
	b, err := w.state.CreateBoard(title, createDesc, users)
	if err != nil {
		return err
	}

	fmt.Printf("Created board %s%s%s (%s) and made it active\n", colorBold, b.Title, colorReset, b.ID)
	return nil
}

func runUse(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(args[0])
	if err != nil {
		return err
	}
	w.state.SetActiveBoardID(b.ID)
	fmt.Printf("Active board: %s%s%s\n", colorBold, b.Title, colorReset)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	var patch model.BoardPatch
	if cmd.Flags().Changed("title") {
		title := strings.TrimSpace(updateTitle)
		if title == "" {
			return fmt.Errorf("title cannot be empty")
		}
		patch.Title = &title
	}
	if cmd.Flags().Changed("desc") {
		patch.Description = &updateDesc
	}
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(updateStatus)
		if err != nil {
			return err
		}
		patch.Status = &status
	}
	if patch.Empty() {
		return fmt.Errorf("nothing to update: pass --title, --desc or --status")
	}

	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.store.UpdateBoard(args[0], patch); err != nil {
		return w.skipMissing("update", err)
	}
	fmt.Printf("Updated board %s\n", args[0])
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	id := args[0]
	if err := w.store.DeleteBoard(id); err != nil {
		return w.skipMissing("delete", err)
	}

	boards := w.state.Refresh()
	if w.state.ActiveBoardID() == id {
		next := ""
		if len(boards) > 0 {
			next = boards[0].ID
		}
		w.state.SetActiveBoardID(next)
	}
	fmt.Printf("Deleted board %s\n", id)
	return nil
}

func parseStatus(s string) (model.BoardStatus, error) {
	for _, st := range []model.BoardStatus{model.BoardToDo, model.BoardInProgress, model.BoardApproved, model.BoardRejected} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: use To Do, In Progress, Approved or Rejected", s)
}

func statusColor(s model.BoardStatus) string {
	switch s {
	case model.BoardInProgress:
		return colorYellow
	case model.BoardApproved:
		return colorGreen
	case model.BoardRejected:
		return colorRed
	default:
		return colorWhite
	}
}

func columnColor(id string) string {
	switch id {
	case "in-progress":
		return colorBlue
	case "approved":
		return colorGreen
	case "rejected":
		return colorRed
	default:
		return colorWhite
	}
}

func priorityColor(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return colorRed + colorBold
	case model.PriorityMedium:
		return colorYellow
	case model.PriorityLow:
		return colorDim
	default:
		return ""
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
