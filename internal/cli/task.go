package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Malinga14/board-app/internal/model"
)

var (
	taskBoard       string
	taskType        string
	taskPriority    string
	taskDue         string
	editTitle       string
	editType        string
	editPriority    string
	editDue         string
	editComments    int
	editAttachments int
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Add, edit, assign and move tasks",
	Long:  "Manage tasks on the active board, or on the board given with --board.",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [column] [title]",
	Short: "Add a task to a column",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit task fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var taskAssignCmd = &cobra.Command{
	Use:   "assign [task-id] [user-id...]",
	Short: "Replace a task's assignees (no users clears them)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAssign,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move [task-id] [column]",
	Short: "Move a task to the end of another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

func init() {
	taskCmd.PersistentFlags().StringVar(&taskBoard, "board", "", "Board ID (default: active board)")

	taskAddCmd.Flags().StringVarP(&taskType, "type", "t", string(model.TypeOther), "Task type, e.g. Research, Design, Development")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", string(model.PriorityMedium), "Priority: high, medium, low")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date, e.g. \"Dec 12\"")

	taskEditCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	taskEditCmd.Flags().StringVarP(&editType, "type", "t", "", "New type")
	taskEditCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority")
	taskEditCmd.Flags().StringVar(&editDue, "due", "", "New due date")
	taskEditCmd.Flags().IntVar(&editComments, "comments", 0, "Comment count")
	taskEditCmd.Flags().IntVar(&editAttachments, "attachments", 0, "Attachment count")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskAssignCmd)
	taskCmd.AddCommand(taskMoveCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	typ, err := parseType(taskType)
	if err != nil {
		return err
	}
	prio, err := parsePriority(taskPriority)
	if err != nil {
		return err
	}

	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(taskBoard)
	if err != nil {
		return err
	}
	task, err := w.store.AddTask(b.ID, args[0], model.NewTask{
		Title:    title,
		Type:     typ,
		Priority: prio,
		DueDate:  taskDue,
	})
	if err != nil {
		return fmt.Errorf("add task to %s: %w", args[0], err)
	}

	fmt.Printf("Added %s%s%s to %s [%s%s%s]\n",
		colorBold, task.Title, colorReset, args[0], priorityColor(task.Priority), task.Priority, colorReset)
	fmt.Printf("%s%s%s\n", colorDim, task.ID, colorReset)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	var patch model.TaskPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		title := strings.TrimSpace(editTitle)
		if title == "" {
			return fmt.Errorf("title cannot be empty")
		}
		patch.Title = &title
	}
	if flags.Changed("type") {
		typ, err := parseType(editType)
		if err != nil {
			return err
		}
		patch.Type = &typ
	}
	if flags.Changed("priority") {
		prio, err := parsePriority(editPriority)
		if err != nil {
			return err
		}
		patch.Priority = &prio
	}
	if flags.Changed("due") {
		patch.DueDate = &editDue
	}
	if flags.Changed("comments") {
		patch.Comments = &editComments
	}
	if flags.Changed("attachments") {
		patch.Attachments = &editAttachments
	}
	if patch.Empty() {
		return fmt.Errorf("nothing to update: pass --title, --type, --priority, --due, --comments or --attachments")
	}

	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(taskBoard)
	if err != nil {
		return err
	}
	if err := w.store.UpdateTask(b.ID, args[0], patch); err != nil {
		return w.skipMissing("update", err)
	}
	fmt.Printf("Updated task %s\n", args[0])
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(taskBoard)
	if err != nil {
		return err
	}
	if err := w.store.DeleteTask(b.ID, args[0]); err != nil {
		return w.skipMissing("delete", err)
	}
	fmt.Printf("Deleted task %s\n", args[0])
	return nil
}

func runTaskAssign(cmd *cobra.Command, args []string) error {
	users, err := resolveUsers(args[1:])
	if err != nil {
		return err
	}

	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(taskBoard)
	if err != nil {
		return err
	}
	if err := w.store.AssignUsers(b.ID, args[0], users); err != nil {
		return w.skipMissing("assign", err)
	}
	fmt.Printf("Assigned %s%s%s to %s\n", colorCyan, userNames(users), colorReset, args[0])
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	w, err := mustWorkspace()
	if err != nil {
		return err
	}
	defer w.Close()

	b, err := w.targetBoard(taskBoard)
	if err != nil {
		return err
	}
	if err := w.store.MoveTask(b.ID, args[0], args[1]); err != nil {
		return w.skipMissing("move", err)
	}
	fmt.Printf("Moved %s to %s\n", args[0], args[1])
	return nil
}

func parseType(s string) (model.TaskType, error) {
	t, ok := model.ParseTaskType(s)
	if !ok {
		names := make([]string, len(model.TaskTypes))
		for i, known := range model.TaskTypes {
			names[i] = string(known)
		}
		return "", fmt.Errorf("invalid type %q: use one of %s", s, strings.Join(names, ", "))
	}
	return t, nil
}

func parsePriority(s string) (model.Priority, error) {
	p := model.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q: use high, medium or low", s)
	}
	return p, nil
}

func userNames(users []model.User) string {
	if len(users) == 0 {
		return "nobody"
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return strings.Join(names, ", ")
}
