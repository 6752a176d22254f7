package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/hn"
	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/ui/theme"
	"github.com/lpolish/hackeroso/internal/userdata"
)

const submissionPreview = 5

// ProfileView shows the viewer's settings and followed HN users, and can
// look up any followed user's public profile.
type ProfileView struct {
	tasks *task.Manager
	hn    *hn.Client

	width  int
	height int

	cursor int // index into follows

	input     textinput.Model
	inputMode bool

	confirmClear bool

	// Loaded profile card
	card        *model.User
	submissions []model.Story
	loading     bool

	statusMsg string
	errMsg    string
}

// NewProfileView creates the profile view
func NewProfileView(manager *task.Manager, hnClient *hn.Client) ProfileView {
	ti := textinput.New()
	ti.Placeholder = "HN username to follow..."
	ti.CharLimit = 40
	ti.Width = 30

	return ProfileView{tasks: manager, hn: hnClient, input: ti}
}

// Init is a no-op
func (v ProfileView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v ProfileView) SetSize(width, height int) ProfileView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v ProfileView) IsInputMode() bool {
	return v.inputMode
}

type userLoadedMsg struct {
	user        model.User
	submissions []model.Story
	err         error
}

func (v ProfileView) loadUser(handle string) tea.Cmd {
	client := v.hn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := client.User(ctx, handle)
		if err != nil {
			return userLoadedMsg{err: err}
		}
		subs, err := client.Submissions(ctx, user, submissionPreview)
		if err != nil {
			return userLoadedMsg{user: user, err: err}
		}
		return userLoadedMsg{user: user, submissions: subs}
	}
}

// Update handles messages
func (v ProfileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.card = &msg.user
		v.submissions = msg.submissions
		return v, nil

	case tea.KeyMsg:
		if v.inputMode {
			return v.updateInput(msg)
		}
		v.statusMsg = ""
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v ProfileView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		handle := strings.TrimSpace(v.input.Value())
		v.input.SetValue("")
		v.input.Blur()
		v.inputMode = false
		if handle != "" {
			v.tasks.Follow(handle)
			v.statusMsg = fmt.Sprintf("Following %s", handle)
		}
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

func (v ProfileView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	follows := v.tasks.Follows()

	if v.confirmClear {
		v.confirmClear = false
		if msg.String() == "y" {
			v.tasks.Clear()
			v.statusMsg = "All tasks cleared"
		} else {
			v.statusMsg = "Clear cancelled"
		}
		return v, nil
	}

	switch msg.String() {
	case "escape":
		v.card = nil
		v.submissions = nil
	case "f", "a":
		v.inputMode = true
		v.input.Focus()
		return v, textinput.Blink
	case "j", "down":
		if v.cursor < len(follows)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "d", "u":
		if v.cursor < len(follows) {
			handle := follows[v.cursor]
			v.tasks.Unfollow(handle)
			if v.cursor > 0 {
				v.cursor--
			}
			v.statusMsg = fmt.Sprintf("Unfollowed %s", handle)
		}
	case "enter":
		if v.cursor < len(follows) {
			v.loading = true
			return v, v.loadUser(follows[v.cursor])
		}
	case "N":
		s := v.tasks.Settings()
		s.Notifications = !s.Notifications
		v.tasks.UpdateSettings(s)
	case "S":
		s := v.tasks.Settings()
		s.Sound = !s.Sound
		v.tasks.UpdateSettings(s)
	case "C":
		v.confirmClear = true
		v.statusMsg = "Clear all tasks? Press y to confirm"
	case "e":
		path := userdata.DefaultExportName(time.Now())
		if err := userdata.WriteFile(path, v.tasks.Snapshot()); err != nil {
			v.errMsg = err.Error()
		} else {
			v.statusMsg = fmt.Sprintf("Exported to %s", path)
		}
	}
	return v, nil
}

// View renders settings, follows, and the loaded profile card
func (v ProfileView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	s := v.tasks.Settings()
	b.WriteString(styles.Title.Render(s.UserName))
	b.WriteString("\n")

	onOff := func(enabled bool) string {
		if enabled {
			return lipgloss.NewStyle().Foreground(t.Success).Render("on")
		}
		return styles.Label.Render("off")
	}
	b.WriteString(styles.Label.Render("notifications ") + onOff(s.Notifications) +
		styles.Label.Render("  sound ") + onOff(s.Sound) +
		styles.Label.Render("  theme ") + s.Theme)
	b.WriteString("\n")
	b.WriteString(styles.StoryMeta.Render(fmt.Sprintf("%d pending tasks | e export | C clear tasks | N/S toggles", v.tasks.PendingCount())))
	b.WriteString("\n\n")

	if v.inputMode {
		b.WriteString(styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n")
	}

	follows := v.tasks.Follows()
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Following (%d)", len(follows))))
	b.WriteString("\n")
	if len(follows) == 0 {
		b.WriteString(styles.Label.Render("Nobody yet. Press f to follow an HN user."))
		b.WriteString("\n")
	}
	for i, handle := range follows {
		if i == v.cursor {
			b.WriteString(styles.StorySelected.Render("@" + handle))
		} else {
			b.WriteString(styles.StoryNormal.Render("@" + handle))
		}
		b.WriteString("\n")
	}

	if v.loading {
		b.WriteString(styles.Label.Render("Loading profile..."))
	}
	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}

	if v.card != nil {
		b.WriteString("\n")
		b.WriteString(styles.PanelTitle.Render(v.card.ID))
		b.WriteString("\n")
		b.WriteString(styles.StoryMeta.Render(fmt.Sprintf(
			"%d karma | joined %s", v.card.Karma, v.card.CreatedAt.Format("Jan 2006"))))
		b.WriteString("\n")
		if about := flattenText(v.card.About); about != "" {
			for _, line := range wrapText(about, v.width-4) {
				b.WriteString(styles.Label.Render(line))
				b.WriteString("\n")
			}
		}
		if len(v.submissions) > 0 {
			b.WriteString(styles.Subtitle.Render("Recent submissions"))
			b.WriteString("\n")
			for _, sub := range v.submissions {
				b.WriteString(styles.StoryNormal.Render(fmt.Sprintf("%s (%d pts)", sub.Title, sub.Score)))
				b.WriteString("\n")
			}
		}
	}

	if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}
	return b.String()
}
