package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/model"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrBlue      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	clrCyan      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	clrMagenta   = lipgloss.AdaptiveColor{Light: "#A21CAF", Dark: "#E879F9"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

var typeColors = map[model.TaskType]lipgloss.TerminalColor{
	model.TypeResearch:     clrBlue,
	model.TypeDesign:       clrMagenta,
	model.TypeDevelopment:  clrGreen,
	model.TypeFeedback:     clrYellow,
	model.TypeOther:        clrSubtle,
	model.TypeUXResearch:   clrCyan,
	model.TypeInterface:    clrHighlight,
	model.TypePresentation: clrRed,
}

var priorityColors = map[model.Priority]lipgloss.TerminalColor{
	model.PriorityHigh:   clrRed,
	model.PriorityMedium: clrYellow,
	model.PriorityLow:    clrSubtle,
}

var statusColors = map[model.BoardStatus]lipgloss.TerminalColor{
	model.BoardToDo:       clrSubtle,
	model.BoardInProgress: clrYellow,
	model.BoardApproved:   clrGreen,
	model.BoardRejected:   clrRed,
}

var contentLabels = map[app.ContentType]string{
	app.ContentDashboard:   "Dashboard",
	app.ContentBoards:      "Boards",
	app.ContentMessages:    "Messages",
	app.ContentCalendar:    "Calendar",
	app.ContentTeamMembers: "Team members",
	app.ContentSupport:     "Support",
}

// --- Styles ---
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle   = lipgloss.NewStyle().Foreground(clrDim)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(clrSubtle).
			Padding(0, 1).
			Width(sidebarWidth)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrSubtle).
			Padding(0, 1)

	columnTargetStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(clrHighlight).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(clrDim).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(clrHighlight).
				Padding(0, 1).
				Bold(true)

	cardDraggedStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(clrYellow).
				Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(1, 2).
			Width(60)

	statusStyle = lipgloss.NewStyle().Foreground(clrGreen).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(clrRed).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

const (
	sidebarWidth   = 22
	minColumnWidth = 24
	maxColumnWidth = 40
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var main string
	if m.state.ActiveContent() == app.ContentBoards {
		main = m.viewBoard()
	} else {
		main = m.viewPlaceholder()
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), " ", main)

	var b strings.Builder
	b.WriteString(content + "\n")
	if m.statusMsg != "" {
		lower := strings.ToLower(m.statusMsg)
		if strings.HasPrefix(lower, "failed") || strings.Contains(lower, "cannot") {
			b.WriteString(errorStyle.Render("  "+m.statusMsg) + "\n")
		} else {
			b.WriteString(statusStyle.Render("  "+m.statusMsg) + "\n")
		}
	}
	b.WriteString(m.footer())

	if m.popup != popupNone {
		return m.overlayPopup(b.String())
	}
	return b.String()
}

// ════════════════════════════════════════════════
// SIDEBAR
// ════════════════════════════════════════════════

func (m Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("board") + "\n\n")

	active := m.state.ActiveContent()
	for _, c := range app.Contents {
		label := contentLabels[c]
		if c == active {
			b.WriteString(footerKeyStyle.Render("▸ "+label) + "\n")
		} else {
			b.WriteString(dimStyle.Render("  "+label) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("BOARDS") + "\n")
	activeID := m.state.ActiveBoardID()
	for _, board := range m.state.Boards() {
		name := truncate(board.Title, sidebarWidth-4)
		if board.ID == activeID {
			b.WriteString(lipgloss.NewStyle().Bold(true).Render("● "+name) + "\n")
		} else {
			b.WriteString(dimStyle.Render("○ "+name) + "\n")
		}
	}
	return sidebarStyle.Render(b.String())
}

func (m Model) viewPlaceholder() string {
	label := contentLabels[m.state.ActiveContent()]
	return titleStyle.Render(label) + "\n\n" +
		dimStyle.Render("Nothing to show here yet. Press ") +
		footerKeyStyle.Render("tab") +
		dimStyle.Render(" to switch sections.")
}

// ════════════════════════════════════════════════
// BOARD VIEW
// ════════════════════════════════════════════════

func (m Model) viewBoard() string {
	board, ok := m.state.CurrentBoard()
	if !ok {
		return dimStyle.Render("No boards yet. Press ") +
			footerKeyStyle.Render("n") +
			dimStyle.Render(" to create one.")
	}

	var b strings.Builder

	status := lipgloss.NewStyle().Bold(true).Foreground(statusColors[board.Status]).Render(string(board.Status))
	b.WriteString(titleStyle.Render(board.Title) + "  " + status + "\n")
	if board.Description != "" {
		b.WriteString(dimStyle.Render(board.Description) + "\n")
	}
	meta := fmt.Sprintf("%d tasks · %d members · updated %s",
		board.TaskCount(), len(board.AssignedUsers), board.LastUpdated.Local().Format("Jan 2 15:04"))
	if q := m.state.SearchQuery(); q != "" {
		meta += " · filter: " + q
	}
	b.WriteString(dimStyle.Render(meta) + "\n\n")

	cols := m.columns()
	width := m.columnWidth(len(cols))
	drag, dragging := m.drag.Dragged()

	rendered := make([]string, 0, len(cols))
	for i, col := range cols {
		rendered = append(rendered, m.renderColumn(col, i, width, drag.TaskID, dragging))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return b.String()
}

func (m Model) columnWidth(n int) int {
	if n == 0 || m.width == 0 {
		return minColumnWidth + 4
	}
	w := (m.width-sidebarWidth-4)/n - 2
	if w < minColumnWidth {
		w = minColumnWidth
	}
	if w > maxColumnWidth {
		w = maxColumnWidth
	}
	return w
}

func (m Model) renderColumn(col model.Column, idx, width int, dragID string, dragging bool) string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(col.Color)).Render(strings.ToUpper(col.Title))
	b.WriteString(header + dimStyle.Render(fmt.Sprintf(" %d", len(col.Tasks))) + "\n")

	if len(col.Tasks) == 0 {
		b.WriteString(dimStyle.Render("empty"))
	}
	for row, task := range col.Tasks {
		selected := !dragging && idx == m.cursorCol && row == m.cursorRow
		b.WriteString(m.renderCard(task, width-4, selected, dragging && task.ID == dragID) + "\n")
	}

	style := columnStyle
	if dragging && idx == m.cursorCol {
		style = columnTargetStyle
	}
	return style.Width(width).Render(b.String())
}

func (m Model) renderCard(t model.Task, width int, selected, dragged bool) string {
	var b strings.Builder

	tag := lipgloss.NewStyle().Foreground(typeColors[t.Type]).Render(string(t.Type))
	prio := lipgloss.NewStyle().Foreground(priorityColors[t.Priority]).Render(string(t.Priority))
	b.WriteString(tag + "  " + prio + "\n")
	b.WriteString(truncate(t.Title, width-2) + "\n")

	meta := fmt.Sprintf("👤%d 💬%d 📎%d", t.Assignees, t.Comments, t.Attachments)
	if t.DueDate != "" {
		meta += " 📅" + t.DueDate
	}
	if t.GroupCall {
		meta += " 📞"
	}
	b.WriteString(dimStyle.Render(meta))

	style := cardStyle
	switch {
	case dragged:
		style = cardDraggedStyle
	case selected:
		style = cardSelectedStyle
	}
	return style.Width(width).Render(b.String())
}

func (m Model) footer() string {
	if _, dragging := m.drag.Dragged(); dragging {
		return renderFooter([]struct{ key, desc string }{
			{"←/→", "target"}, {"space", "drop"}, {"esc", "cancel"},
		})
	}
	if m.state.ActiveContent() != app.ContentBoards {
		return renderFooter([]struct{ key, desc string }{
			{"tab", "section"}, {"q", "quit"},
		})
	}
	return renderFooter([]struct{ key, desc string }{
		{"space", "move"}, {"a", "add"}, {"e", "edit"}, {"x", "delete"},
		{"u/U", "assign"}, {"/", "search"}, {"b/B", "board"}, {"n", "new board"},
		{"tab", "section"}, {"q", "quit"},
	})
}

// ════════════════════════════════════════════════
// POPUPS
// ════════════════════════════════════════════════

func (m Model) overlayPopup(bg string) string {
	var popup string

	switch m.popup {
	case popupAddTask:
		popup = m.viewAddTaskPopup()
	case popupEditTask:
		popup = m.viewEditTaskPopup()
	case popupConfirmDelete:
		popup = m.viewConfirmDeletePopup()
	case popupAssign:
		popup = m.viewAssignPopup()
	case popupNewBoard:
		popup = m.viewNewBoardPopup()
	case popupSearch:
		popup = m.viewInputPopup("Search", "Title, type or assignee:", "enter keep • esc clear")
	default:
		return bg
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			popup,
			lipgloss.WithWhitespaceChars(" "),
		)
	}
	return popup
}

func (m Model) viewInputPopup(title, label, help string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Render(title) + "\n\n")
	b.WriteString(label + "\n")
	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString(footerDescStyle.Render(help))
	return m.popupBoxStyle().Render(b.String())
}

func (m Model) viewAddTaskPopup() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Render("Add Task") + "\n\n")

	b.WriteString("Title:\n")
	b.WriteString(m.textInput.View() + "\n\n")

	b.WriteString(m.formTags() + "\n\n")

	b.WriteString(footerDescStyle.Render("enter add • ctrl+t type • ctrl+p priority • esc cancel"))
	return m.popupBoxStyle().Render(b.String())
}

func (m Model) viewEditTaskPopup() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Render("Edit Task") + "\n\n")

	b.WriteString("Title:\n")
	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString("Due:\n")
	b.WriteString(m.textInput2.View() + "\n\n")

	b.WriteString(m.formTags() + "\n\n")
	b.WriteString(footerDescStyle.Render("enter save • tab switch • ctrl+t type • ctrl+p priority • esc cancel"))
	return m.popupBoxStyle().Render(b.String())
}

func (m Model) formTags() string {
	tag := lipgloss.NewStyle().Bold(true).Foreground(typeColors[m.formType]).Render(string(m.formType))
	prio := lipgloss.NewStyle().Bold(true).Foreground(priorityColors[m.formPriority]).Render(string(m.formPriority))
	return fmt.Sprintf("Type: %s   Priority: %s", tag, prio)
}

func (m Model) viewConfirmDeletePopup() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrRed).Render("Delete Task") + "\n\n")
	if task, _, ok := m.selected(); ok && task.ID == m.popupTaskID {
		b.WriteString(truncate(task.Title, 50) + "\n\n")
	}
	b.WriteString(footerKeyStyle.Render("y") + footerDescStyle.Render(" confirm  ") +
		footerKeyStyle.Render("n") + footerDescStyle.Render(" cancel"))
	return m.popupBoxStyle().Render(b.String())
}

func (m Model) viewAssignPopup() string {
	var b strings.Builder
	title := "Assign Users"
	if m.pickColumnID != "" {
		title = "Assign Users to Column"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Render(title) + "\n\n")
	b.WriteString(m.textInput.View() + "\n\n")

	users := m.pickerUsers()
	if len(users) == 0 {
		b.WriteString(dimStyle.Render("No matching users") + "\n")
	}
	for i, u := range users {
		box := "[ ]"
		if m.picked[u.ID] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s", box, u.Name, dimStyle.Render(u.Email))
		if i == m.pickCursor {
			line = footerKeyStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + footerDescStyle.Render("↑/↓ move • space toggle • enter save • esc cancel"))
	return m.popupBoxStyle().Render(b.String())
}

func (m Model) viewNewBoardPopup() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Render("New Board") + "\n\n")
	b.WriteString("Title:\n")
	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString("Description:\n")
	b.WriteString(m.textInput2.View() + "\n\n")
	b.WriteString(footerDescStyle.Render("enter create • tab switch • esc cancel"))
	return m.popupBoxStyle().Render(b.String())
}

func (m Model) popupBoxStyle() lipgloss.Style {
	w := 60
	if m.width > 0 {
		w = m.width - 12
		if w < 42 {
			w = 42
		}
		if w > 84 {
			w = 84
		}
	}
	return popupStyle.Width(w)
}

// ════════════════════════════════════════════════
// SHARED HELPERS
// ════════════════════════════════════════════════

func renderFooter(keys []struct{ key, desc string }) string {
	var parts []string
	for _, k := range keys {
		key := footerKeyStyle.Render(k.key)
		desc := footerDescStyle.Render(k.desc)
		parts = append(parts, key+" "+desc)
	}
	return "  " + strings.Join(parts, "  ")
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
