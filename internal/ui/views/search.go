package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/search"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/ui/theme"
)

// SearchView queries the Algolia HN index.
type SearchView struct {
	search *search.Client
	tasks  *task.Manager

	width  int
	height int

	input     textinput.Model
	inputMode bool

	query   string
	result  search.Result
	cursor  int
	offset  int
	loading bool

	statusMsg string
	errMsg    string
}

// NewSearchView creates the search view
func NewSearchView(client *search.Client, tasks *task.Manager) SearchView {
	ti := textinput.New()
	ti.Placeholder = "search stories..."
	ti.CharLimit = 120
	ti.Width = 50

	return SearchView{
		search:    client,
		tasks:     tasks,
		input:     ti,
		inputMode: true,
	}
}

// Init focuses the query input
func (v SearchView) Init() tea.Cmd {
	v.input.Focus()
	return textinput.Blink
}

// SetSize sets the view dimensions
func (v SearchView) SetSize(width, height int) SearchView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v SearchView) IsInputMode() bool {
	return v.inputMode
}

type searchResultMsg struct {
	query  string
	result search.Result
	err    error
}

func (v SearchView) runSearch(query string, page int) tea.Cmd {
	client := v.search
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := client.Search(ctx, query, page)
		return searchResultMsg{query: query, result: result, err: err}
	}
}

// Update handles messages
func (v SearchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.query = msg.query
		v.result = msg.result
		v.cursor, v.offset = 0, 0
		return v, nil

	case tea.KeyMsg:
		v.statusMsg = ""
		if v.inputMode {
			return v.updateInput(msg)
		}
		return v.updateResults(msg)
	}

	if v.inputMode {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v SearchView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.inputMode = false
		v.input.Blur()
		v.loading = true
		return v, v.runSearch(query, 0)
	case "escape":
		if len(v.result.Stories) > 0 {
			v.inputMode = false
			v.input.Blur()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v SearchView) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/", "i":
		v.inputMode = true
		v.input.Focus()
		return v, textinput.Blink
	case "j", "down":
		if v.cursor < len(v.result.Stories)-1 {
			v.cursor++
			v.clampScroll()
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
			v.clampScroll()
		}
	case "g":
		v.cursor, v.offset = 0, 0
	case "G":
		v.cursor = len(v.result.Stories) - 1
		v.clampScroll()
	case "n":
		if v.result.Page+1 < v.result.Pages {
			v.loading = true
			return v, v.runSearch(v.query, v.result.Page+1)
		}
	case "p":
		if v.result.Page > 0 {
			v.loading = true
			return v, v.runSearch(v.query, v.result.Page-1)
		}
	case "s":
		if s, ok := v.selected(); ok {
			if v.tasks.IsSaved(s.ID) {
				v.tasks.RemoveSavedItem(s.ID)
				v.statusMsg = "Removed from saved"
			} else {
				v.tasks.SaveStory(s)
				v.statusMsg = "Saved"
			}
		}
	case "r":
		if s, ok := v.selected(); ok && s.URL != "" {
			req := OpenReaderRequest{URL: s.URL, Title: s.Title}
			return v, func() tea.Msg { return req }
		}
	case "t":
		if s, ok := v.selected(); ok {
			url := s.URL
			if url == "" {
				url = s.ItemURL()
			}
			if v.tasks.IsTask(url) {
				v.tasks.RemoveByURL(url)
				v.statusMsg = "Untracked"
			} else {
				v.tasks.Add(task.Draft{
					Title:    s.Title,
					Priority: model.PriorityMedium,
					Source:   model.SourceHackerNews,
					URL:      url,
				})
				v.statusMsg = "Tracking as task"
			}
		}
	}
	return v, nil
}

func (v SearchView) selected() (model.Story, bool) {
	if v.cursor < 0 || v.cursor >= len(v.result.Stories) {
		return model.Story{}, false
	}
	return v.result.Stories[v.cursor], true
}

func (v SearchView) visibleResults() int {
	rows := (v.height - 4) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v *SearchView) clampScroll() {
	visible := v.visibleResults()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// View renders the query input and results
func (v SearchView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	if v.inputMode {
		b.WriteString(styles.InputFocused.Render(v.input.View()))
	} else {
		b.WriteString(styles.Input.Render(v.input.View()))
	}
	b.WriteString("\n")

	if v.loading {
		b.WriteString(styles.Label.Render("Searching..."))
		return b.String()
	}
	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		return b.String()
	}
	if v.query == "" {
		b.WriteString(styles.Label.Render("Type a query and press enter"))
		return b.String()
	}
	if len(v.result.Stories) == 0 {
		b.WriteString(styles.Label.Render(fmt.Sprintf("No results for %q", v.query)))
		return b.String()
	}

	b.WriteString(styles.StoryMeta.Render(fmt.Sprintf(
		"%d results for %q, page %d/%d (n/p to page)",
		v.result.Total, v.query, v.result.Page+1, v.result.Pages)))
	b.WriteString("\n")

	visible := v.visibleResults()
	end := v.offset + visible
	if end > len(v.result.Stories) {
		end = len(v.result.Stories)
	}

	for i := v.offset; i < end; i++ {
		s := v.result.Stories[i]

		title := s.Title
		if i == v.cursor {
			b.WriteString(styles.StorySelected.Render(title))
		} else {
			b.WriteString(styles.StoryNormal.Render(title))
		}
		b.WriteString("\n")

		meta := fmt.Sprintf("    %d points by %s | %d comments", s.Score, s.Author, s.Comments)
		if d := s.Domain(); d != "" {
			meta += " | " + d
		}
		b.WriteString(styles.StoryMeta.Render(meta))
		b.WriteString("\n")
	}

	if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}
	return b.String()
}
