package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/ui/theme"
)

// savedRow is one selectable line: a list header or an item.
type savedRow struct {
	list *model.List
	item *model.SavedItem
}

// SavedView shows bookmarked items grouped into colored lists, with the
// unsorted items first.
type SavedView struct {
	tasks *task.Manager

	width  int
	height int

	cursor int
	offset int

	input     textinput.Model
	inputMode bool

	statusMsg string
}

// NewSavedView creates the saved items view
func NewSavedView(manager *task.Manager) SavedView {
	ti := textinput.New()
	ti.Placeholder = "new list name..."
	ti.CharLimit = 60
	ti.Width = 30

	return SavedView{tasks: manager, input: ti}
}

// Init is a no-op; state lives in the manager
func (v SavedView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v SavedView) SetSize(width, height int) SavedView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v SavedView) IsInputMode() bool {
	return v.inputMode
}

// rows builds the flattened display: unsorted items, then each list with
// its items.
func (v SavedView) rows() []savedRow {
	var rows []savedRow
	for _, item := range v.tasks.ItemsInList(nil) {
		it := item
		rows = append(rows, savedRow{item: &it})
	}
	for _, list := range v.tasks.Lists() {
		l := list
		rows = append(rows, savedRow{list: &l})
		for _, item := range v.tasks.ItemsInList(&l.ID) {
			it := item
			rows = append(rows, savedRow{item: &it})
		}
	}
	return rows
}

func (v SavedView) selectedItem() *model.SavedItem {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return nil
	}
	return rows[v.cursor].item
}

func (v SavedView) selectedList() *model.List {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return nil
	}
	return rows[v.cursor].list
}

// Update handles messages
func (v SavedView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.inputMode {
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	if v.inputMode {
		switch keyMsg.String() {
		case "enter":
			name := strings.TrimSpace(v.input.Value())
			if name != "" {
				v.tasks.AddList(name)
				v.statusMsg = fmt.Sprintf("List %q created", name)
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
		v.input, cmd = v.input.Update(keyMsg)
		return v, cmd
	}

	v.statusMsg = ""
	rows := v.rows()

	switch keyMsg.String() {
	case "j", "down":
		if v.cursor < len(rows)-1 {
			v.cursor++
			v.clampScroll(len(rows))
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
			v.clampScroll(len(rows))
		}
	case "g":
		v.cursor, v.offset = 0, 0
	case "G":
		v.cursor = len(rows) - 1
		v.clampScroll(len(rows))
	case "n":
		v.inputMode = true
		v.input.Focus()
		return v, textinput.Blink
	case "d":
		if item := v.selectedItem(); item != nil {
			v.tasks.RemoveSavedItem(item.ID)
			if v.cursor > 0 {
				v.cursor--
			}
			v.statusMsg = "Removed"
		} else if list := v.selectedList(); list != nil {
			v.tasks.RemoveList(list.ID)
			if v.cursor > 0 {
				v.cursor--
			}
			v.statusMsg = fmt.Sprintf("List %q removed, items unsorted", list.Name)
		}
	case "m":
		if item := v.selectedItem(); item != nil {
			v.tasks.MoveToList(item.ID, v.nextList(item.ListID))
			v.statusMsg = "Moved"
		}
	case "r":
		if item := v.selectedItem(); item != nil && item.URL != "" {
			req := OpenReaderRequest{URL: item.URL, Title: item.Title}
			return v, func() tea.Msg { return req }
		}
	case "t":
		if item := v.selectedItem(); item != nil {
			if v.tasks.IsTask(item.URL) {
				v.tasks.RemoveByURL(item.URL)
				v.statusMsg = "Untracked"
			} else {
				v.tasks.Add(task.Draft{
					Title:    item.Title,
					Priority: model.PriorityMedium,
					Source:   model.SourceSaved,
					URL:      item.URL,
				})
				v.statusMsg = "Tracking as task"
			}
		}
	}
	return v, nil
}

// nextList cycles an item's assignment: unsorted, first list, second
// list, ..., back to unsorted.
func (v SavedView) nextList(current *string) *string {
	lists := v.tasks.Lists()
	if len(lists) == 0 {
		return nil
	}
	if current == nil {
		return &lists[0].ID
	}
	for i, l := range lists {
		if l.ID == *current {
			if i+1 < len(lists) {
				return &lists[i+1].ID
			}
			return nil
		}
	}
	return nil
}

func (v *SavedView) clampScroll(total int) {
	visible := v.height - 3
	if visible < 1 {
		visible = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// View renders the grouped saved items
func (v SavedView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	if v.inputMode {
		b.WriteString(styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n")
	}

	rows := v.rows()
	if len(rows) == 0 {
		b.WriteString(styles.Label.Render("Nothing saved yet. Press s on a story to save it."))
		return b.String()
	}

	unsorted := v.tasks.ItemsInList(nil)
	if len(unsorted) > 0 {
		b.WriteString(styles.Subtitle.Render("Unsorted"))
		b.WriteString("\n")
	}

	visible := v.height - 3
	if visible < 1 {
		visible = 1
	}
	end := v.offset + visible
	if end > len(rows) {
		end = len(rows)
	}

	for i := v.offset; i < end; i++ {
		row := rows[i]
		selected := i == v.cursor

		if row.list != nil {
			header := lipgloss.NewStyle().
				Foreground(lipgloss.Color(row.list.Color)).
				Bold(true).
				Render("■ " + row.list.Name)
			if selected {
				header = "> " + header
			} else {
				header = "  " + header
			}
			b.WriteString(header)
			b.WriteString("\n")
			continue
		}

		item := row.item
		title := item.Title
		if v.width > 14 && len(title) > v.width-12 {
			title = title[:v.width-13] + "…"
		}
		line := title
		if item.Points > 0 {
			line += styles.StoryMeta.Render(fmt.Sprintf("  %d pts", item.Points))
		}
		if selected {
			b.WriteString(styles.StorySelected.Render("  " + line))
		} else {
			b.WriteString(styles.StoryNormal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}
	return b.String()
}
