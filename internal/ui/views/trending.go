package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/feed"
	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/ui/theme"
)

// TrendingView lists the repositories created in the last week, most
// starred first.
type TrendingView struct {
	feeds *feed.Service
	tasks *task.Manager

	width  int
	height int

	repos   []model.Repo
	cursor  int
	offset  int
	loading bool

	statusMsg string
	errMsg    string
}

// NewTrendingView creates the trending view
func NewTrendingView(feeds *feed.Service, tasks *task.Manager) TrendingView {
	return TrendingView{feeds: feeds, tasks: tasks}
}

// Init loads the trending listing
func (v TrendingView) Init() tea.Cmd {
	return v.load(false)
}

// SetSize sets the view dimensions
func (v TrendingView) SetSize(width, height int) TrendingView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v TrendingView) IsInputMode() bool {
	return false
}

type trendingLoadedMsg struct {
	repos []model.Repo
	err   error
}

func (v TrendingView) load(force bool) tea.Cmd {
	svc := v.feeds
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var repos []model.Repo
		var err error
		if force {
			repos, err = svc.RefreshTrending(ctx)
		} else {
			repos, err = svc.Trending(ctx)
		}
		return trendingLoadedMsg{repos: repos, err: err}
	}
}

// Update handles messages
func (v TrendingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trendingLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.repos = msg.repos
		v.errMsg = ""
		return v, nil

	case tea.KeyMsg:
		v.statusMsg = ""
		switch msg.String() {
		case "j", "down":
			if v.cursor < len(v.repos)-1 {
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
			v.cursor = len(v.repos) - 1
			v.clampScroll()
		case "R":
			v.loading = true
			return v, v.load(true)
		case "s":
			if r, ok := v.selected(); ok {
				story := r.Story()
				if v.tasks.IsSaved(story.ID) {
					v.tasks.RemoveSavedItem(story.ID)
					v.statusMsg = "Removed from saved"
				} else {
					v.tasks.SaveStory(story)
					v.statusMsg = "Saved"
				}
			}
		case "t":
			if r, ok := v.selected(); ok {
				if v.tasks.IsTask(r.HTMLURL) {
					v.tasks.RemoveByURL(r.HTMLURL)
					v.statusMsg = "Untracked"
				} else {
					v.tasks.Add(task.Draft{
						Title:    r.FullName,
						Priority: model.PriorityMedium,
						Source:   model.SourceGitHub,
						URL:      r.HTMLURL,
					})
					v.statusMsg = "Tracking as task"
				}
			}
		}
	}
	return v, nil
}

func (v TrendingView) selected() (model.Repo, bool) {
	if v.cursor < 0 || v.cursor >= len(v.repos) {
		return model.Repo{}, false
	}
	return v.repos[v.cursor], true
}

func (v TrendingView) visibleRepos() int {
	rows := (v.height - 2) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v *TrendingView) clampScroll() {
	visible := v.visibleRepos()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// View renders the trending listing
func (v TrendingView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render("Repositories created in the last 7 days"))
	b.WriteString("\n")

	if v.loading {
		b.WriteString(styles.Label.Render("Loading..."))
		return b.String()
	}
	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		return b.String()
	}
	if len(v.repos) == 0 {
		b.WriteString(styles.Label.Render("No repositories"))
		return b.String()
	}

	visible := v.visibleRepos()
	end := v.offset + visible
	if end > len(v.repos) {
		end = len(v.repos)
	}

	for i := v.offset; i < end; i++ {
		r := v.repos[i]

		name := r.FullName
		if i == v.cursor {
			b.WriteString(styles.StorySelected.Render(fmt.Sprintf("%2d. %s", i+1, name)))
		} else {
			b.WriteString(styles.StoryNormal.Render(fmt.Sprintf("%2d. %s", i+1, name)))
		}
		b.WriteString("\n")

		meta := fmt.Sprintf("    %s stars | %d forks",
			lipgloss.NewStyle().Foreground(t.Score).Render(fmt.Sprintf("%d", r.Stars)),
			r.Forks)
		if r.Language != "" {
			meta += " | " + r.Language
		}
		if desc := r.Description; desc != "" {
			maxDesc := v.width - len(meta) - 8
			if maxDesc > 10 && len(desc) > maxDesc {
				desc = desc[:maxDesc-1] + "…"
			}
			meta += " | " + desc
		}
		b.WriteString(styles.StoryMeta.Render(meta))
		b.WriteString("\n")
	}

	if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}
	return b.String()
}
