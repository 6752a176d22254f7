package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/ui/theme"
)

var boardColumns = []model.Status{
	model.StatusPending,
	model.StatusRunning,
	model.StatusCompleted,
}

// TasksView shows the tracked tasks as a board or a flat list, with live
// timers.
type TasksView struct {
	tasks *task.Manager

	width  int
	height int

	boardMode bool
	column    int // board mode: selected column
	cursor    int

	input     textinput.Model
	inputMode bool

	statusMsg string
}

// NewTasksView creates the tasks view
func NewTasksView(manager *task.Manager) TasksView {
	ti := textinput.New()
	ti.Placeholder = "task title (!high, !low, dur:30)"
	ti.CharLimit = 200
	ti.Width = 50

	return TasksView{
		tasks:     manager,
		boardMode: manager.Settings().ViewMode == "board",
		input:     ti,
	}
}

type taskTickMsg struct{}

func taskTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return taskTickMsg{}
	})
}

// Init starts the per-second timer sweep
func (v TasksView) Init() tea.Cmd {
	return taskTickCmd()
}

// SetSize sets the view dimensions
func (v TasksView) SetSize(width, height int) TasksView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v TasksView) IsInputMode() bool {
	return v.inputMode
}

// columnTasks returns the tasks of the selected board column, in board order.
func (v TasksView) columnTasks(status model.Status) []model.Task {
	var out []model.Task
	for _, t := range v.tasks.Tasks() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (v TasksView) visibleTasks() []model.Task {
	if v.boardMode {
		return v.columnTasks(boardColumns[v.column])
	}
	return v.tasks.Tasks()
}

func (v TasksView) selected() (model.Task, bool) {
	ts := v.visibleTasks()
	if v.cursor < 0 || v.cursor >= len(ts) {
		return model.Task{}, false
	}
	return ts[v.cursor], true
}

// Update handles messages
func (v TasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskTickMsg:
		completed := v.tasks.Tick()
		if len(completed) == 1 {
			v.statusMsg = fmt.Sprintf("Completed: %s", completed[0].Title)
		} else if len(completed) > 1 {
			v.statusMsg = fmt.Sprintf("Completed %d tasks", len(completed))
		}
		return v, taskTickCmd()

	case tea.KeyMsg:
		if v.inputMode {
			return v.updateInput(msg)
		}
		v.statusMsg = ""
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v TasksView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		draft, ok := ParseQuickAdd(v.input.Value())
		if ok {
			v.tasks.Add(draft)
			v.statusMsg = "Task added"
		}
		v.input.SetValue("")
		v.input.Blur()
		v.inputMode = false
		return v, nil
	case "escape":
		v.input.SetValue("")
		v.input.Blur()
		v.inputMode = false
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v TasksView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ts := v.visibleTasks()

	switch msg.String() {
	case "a":
		v.inputMode = true
		v.input.Focus()
		return v, textinput.Blink
	case "j", "down":
		if v.cursor < len(ts)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = len(ts) - 1
	case "h", "left":
		if v.boardMode && v.column > 0 {
			v.column--
			v.cursor = 0
		}
	case "l", "right":
		if v.boardMode && v.column < len(boardColumns)-1 {
			v.column++
			v.cursor = 0
		}
	case "v":
		v.boardMode = !v.boardMode
		v.column, v.cursor = 0, 0
		s := v.tasks.Settings()
		if v.boardMode {
			s.ViewMode = "board"
		} else {
			s.ViewMode = "list"
		}
		v.tasks.UpdateSettings(s)
	case " ":
		if t, ok := v.selected(); ok {
			v.toggleTimer(t)
		}
	case "c":
		if t, ok := v.selected(); ok && t.Status != model.StatusCompleted {
			status := model.StatusCompleted
			v.tasks.Update(t.ID, task.Patch{Status: &status})
			v.statusMsg = "Completed"
		}
	case "d":
		if t, ok := v.selected(); ok {
			v.tasks.Delete(t.ID)
			if v.cursor > 0 {
				v.cursor--
			}
			v.statusMsg = "Deleted"
		}
	case "p":
		if t, ok := v.selected(); ok {
			next := cyclePriority(t.Priority)
			v.tasks.Update(t.ID, task.Patch{Priority: &next})
		}
	case "n":
		if t, ok := v.selected(); ok {
			enabled := !t.Notifications
			v.tasks.Update(t.ID, task.Patch{Notifications: &enabled})
			if enabled {
				v.statusMsg = "Notifications on"
			} else {
				v.statusMsg = "Notifications off"
			}
		}
	case "J":
		if t, ok := v.selected(); ok {
			v.reorder(t, 1)
		}
	case "K":
		if t, ok := v.selected(); ok {
			v.reorder(t, -1)
		}
	}
	return v, nil
}

// toggleTimer advances the selected task's timer one step: pending starts,
// running pauses, paused resumes. Completed tasks are left alone.
func (v *TasksView) toggleTimer(t model.Task) {
	switch {
	case t.Status == model.StatusCompleted:
		return
	case t.Status == model.StatusPending:
		status := model.StatusRunning
		v.tasks.Update(t.ID, task.Patch{Status: &status})
		v.statusMsg = "Started"
	case t.IsPaused:
		paused := false
		v.tasks.Update(t.ID, task.Patch{IsPaused: &paused})
		v.statusMsg = "Resumed"
	default:
		paused := true
		v.tasks.Update(t.ID, task.Patch{IsPaused: &paused})
		v.statusMsg = "Paused"
	}
}

// reorder moves the selected task within its status group.
func (v *TasksView) reorder(t model.Task, delta int) {
	group := v.columnTasks(t.Status)
	from := -1
	for i, g := range group {
		if g.ID == t.ID {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}
	to := from + delta
	if to < 0 || to >= len(group) {
		return
	}
	v.tasks.Reorder(t.Status, from, to)
	if v.boardMode {
		v.cursor += delta
	}
}

func cyclePriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return model.PriorityLow
	}
}

// ParseQuickAdd parses a quick-add line: plain words form the title,
// "!high"/"!medium"/"!low" sets priority, "dur:30" sets the expected
// duration in minutes.
func ParseQuickAdd(line string) (task.Draft, bool) {
	draft := task.Draft{
		Priority: model.PriorityMedium,
		Source:   model.SourceCustom,
	}

	var titleWords []string
	for _, word := range strings.Fields(line) {
		switch {
		case word == "!high" || word == "!h":
			draft.Priority = model.PriorityHigh
		case word == "!medium" || word == "!m":
			draft.Priority = model.PriorityMedium
		case word == "!low" || word == "!l":
			draft.Priority = model.PriorityLow
		case strings.HasPrefix(word, "dur:"):
			if mins, err := strconv.Atoi(strings.TrimPrefix(word, "dur:")); err == nil && mins > 0 {
				draft.ExpectedDuration = mins
			}
		default:
			titleWords = append(titleWords, word)
		}
	}

	draft.Title = strings.Join(titleWords, " ")
	return draft, draft.Title != ""
}

// formatElapsed renders milliseconds as h:mm:ss or m:ss.
func formatElapsed(ms int64) string {
	total := ms / 1000
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// View renders the board or list
func (v TasksView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	if v.inputMode {
		b.WriteString(styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n")
	}

	if v.boardMode {
		b.WriteString(v.renderBoard())
	} else {
		b.WriteString(v.renderList())
	}

	if v.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}
	return b.String()
}

func (v TasksView) renderList() string {
	styles := theme.Current.Styles

	ts := v.tasks.Tasks()
	if len(ts) == 0 {
		return styles.Label.Render("No tasks. Press a to add one.")
	}

	var b strings.Builder
	for i, t := range ts {
		b.WriteString(v.renderTaskRow(t, i == v.cursor, v.width-4))
		b.WriteString("\n")
	}
	return b.String()
}

func (v TasksView) renderBoard() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	colWidth := v.width/len(boardColumns) - 2
	if colWidth < 20 {
		colWidth = 20
	}

	var cols []string
	for ci, status := range boardColumns {
		var b strings.Builder

		title := strings.ToUpper(string(status))
		group := v.columnTasks(status)
		header := fmt.Sprintf("%s (%d)", title, len(group))
		if ci == v.column {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(header))
		} else {
			b.WriteString(styles.Label.Render(header))
		}
		b.WriteString("\n")

		for i, tk := range group {
			selected := ci == v.column && i == v.cursor
			b.WriteString(v.renderTaskRow(tk, selected, colWidth))
			b.WriteString("\n")
		}

		col := lipgloss.NewStyle().Width(colWidth).Render(b.String())
		cols = append(cols, col)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (v TasksView) renderTaskRow(t model.Task, selected bool, width int) string {
	styles := theme.Current.Styles
	th := theme.Current.Theme

	priority := lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render("●")

	title := t.Title
	if width > 10 && len(title) > width-8 {
		title = title[:width-9] + "…"
	}

	row := priority + " " + title

	now := time.Now()
	switch {
	case t.Status == model.StatusCompleted:
		row = styles.TaskDone.Render(row + " " + formatElapsed(t.AccumulatedTime))
	case t.IsRunningActive():
		timer := formatElapsed(t.Elapsed(now))
		style := styles.TimerLive
		if t.Overdue(now) {
			style = lipgloss.NewStyle().Foreground(th.Error).Bold(true)
		}
		row = styles.TaskNormal.Render(row) + " " + style.Render("▶ "+timer)
	case t.IsPaused:
		row = styles.TaskNormal.Render(row) + " " + styles.TimerPaused.Render("⏸ "+formatElapsed(t.AccumulatedTime))
	default:
		row = styles.TaskNormal.Render(row)
		if t.ExpectedDuration > 0 {
			row += styles.StoryMeta.Render(fmt.Sprintf(" (%dm)", t.ExpectedDuration))
		}
	}

	if selected {
		return "> " + row
	}
	return "  " + row
}

func priorityColor(p model.Priority) lipgloss.Color {
	t := theme.Current.Theme
	switch p {
	case model.PriorityHigh:
		return t.PriorityHigh
	case model.PriorityLow:
		return t.PriorityLow
	default:
		return t.PriorityMedium
	}
}
