package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/app"
	"github.com/lpolish/hackeroso/internal/ui/theme"
	"github.com/lpolish/hackeroso/internal/ui/views"
)

// Debug logging (enable by setting HACKEROSO_DEBUG=1)
var rootDebugLog *os.File

func init() {
	if os.Getenv("HACKEROSO_DEBUG") == "1" {
		rootDebugLog, _ = os.OpenFile("/tmp/hackeroso-root-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func rootDebugf(format string, args ...interface{}) {
	if rootDebugLog != nil {
		fmt.Fprintf(rootDebugLog, format+"\n", args...)
		rootDebugLog.Sync()
	}
}

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	width  int
	height int

	currentView  View
	storiesView  views.StoriesView
	trendingView views.TrendingView
	searchView   views.SearchView
	tasksView    views.TasksView
	savedView    views.SavedView
	profileView  views.ProfileView
	readerView   views.ReaderView
	helpVisible  bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App, initial View) RootModel {
	settings := application.Tasks.Settings()
	if t, ok := theme.ByName(settings.Theme); ok {
		theme.SetTheme(t)
	}

	return RootModel{
		app:          application,
		keys:         DefaultKeyMap(),
		currentView:  initial,
		storiesView:  views.NewStoriesView(application.Feeds, application.HN, application.Tasks),
		trendingView: views.NewTrendingView(application.Feeds, application.Tasks),
		searchView:   views.NewSearchView(application.Search, application.Tasks),
		tasksView:    views.NewTasksView(application.Tasks),
		savedView:    views.NewSavedView(application.Tasks),
		profileView:  views.NewProfileView(application.Tasks, application.HN),
		readerView:   views.NewReaderView(application.Reader),
	}
}

// InitialView resolves the view to open at startup: the explicit name if
// given, otherwise the tab the viewer last had open.
func InitialView(flagName string, lastTab string) View {
	if v, ok := ViewByName(flagName); ok && flagName != "" {
		return v
	}
	if v, ok := ViewByName(lastTab); ok {
		return v
	}
	return ViewStories
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	cmd := m.initCurrent()
	rootDebugf("RootModel.Init() view=%s", m.currentView)
	return cmd
}

func (m RootModel) initCurrent() tea.Cmd {
	switch m.currentView {
	case ViewStories:
		return m.storiesView.Init()
	case ViewTrending:
		return m.trendingView.Init()
	case ViewSearch:
		return m.searchView.Init()
	case ViewTasks:
		return m.tasksView.Init()
	case ViewSaved:
		return m.savedView.Init()
	case ViewProfile:
		return m.profileView.Init()
	case ViewReader:
		return m.readerView.Init()
	}
	return nil
}

func (m *RootModel) switchTo(v View) tea.Cmd {
	m.currentView = v

	// Remember the open tab across restarts.
	if name := v.tabName(); name != "" && v != ViewReader {
		s := m.app.Tasks.Settings()
		if s.LastTab != name {
			s.LastTab = name
			m.app.Tasks.UpdateSettings(s)
		}
	}
	return m.initCurrent()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	rootDebugf("RootModel.Update received msg type: %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.storiesView = m.storiesView.SetSize(m.width, contentHeight)
		m.trendingView = m.trendingView.SetSize(m.width, contentHeight)
		m.searchView = m.searchView.SetSize(m.width, contentHeight)
		m.tasksView = m.tasksView.SetSize(m.width, contentHeight)
		m.savedView = m.savedView.SetSize(m.width, contentHeight)
		m.profileView = m.profileView.SetSize(m.width, contentHeight)
		m.readerView = m.readerView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, q only outside input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if isInputMode {
			break // fall through to view delegation
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewReader {
				return m, m.switchTo(ViewStories)
			}

		case key.Matches(msg, m.keys.StoriesView):
			return m, m.switchTo(ViewStories)
		case key.Matches(msg, m.keys.TrendingView):
			return m, m.switchTo(ViewTrending)
		case key.Matches(msg, m.keys.SearchView):
			return m, m.switchTo(ViewSearch)
		case key.Matches(msg, m.keys.TasksView):
			return m, m.switchTo(ViewTasks)
		case key.Matches(msg, m.keys.SavedView):
			return m, m.switchTo(ViewSaved)
		case key.Matches(msg, m.keys.ProfileView):
			return m, m.switchTo(ViewProfile)
		}

	case views.OpenReaderRequest:
		var cmd tea.Cmd
		m.readerView, cmd = m.readerView.Open(msg.URL, msg.Title)
		m.currentView = ViewReader
		return m, cmd

	case FeedRefreshedMsg:
		m.statusMsg = "Feeds refreshed"
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to current view
	rootDebugf("Delegating to view: %v", m.currentView)
	switch m.currentView {
	case ViewStories:
		newView, cmd := m.storiesView.Update(msg)
		m.storiesView = newView.(views.StoriesView)
		cmds = append(cmds, cmd)
	case ViewTrending:
		newView, cmd := m.trendingView.Update(msg)
		m.trendingView = newView.(views.TrendingView)
		cmds = append(cmds, cmd)
	case ViewSearch:
		newView, cmd := m.searchView.Update(msg)
		m.searchView = newView.(views.SearchView)
		cmds = append(cmds, cmd)
	case ViewTasks:
		newView, cmd := m.tasksView.Update(msg)
		m.tasksView = newView.(views.TasksView)
		cmds = append(cmds, cmd)
	case ViewSaved:
		newView, cmd := m.savedView.Update(msg)
		m.savedView = newView.(views.SavedView)
		cmds = append(cmds, cmd)
	case ViewProfile:
		newView, cmd := m.profileView.Update(msg)
		m.profileView = newView.(views.ProfileView)
		cmds = append(cmds, cmd)
	case ViewReader:
		newView, cmd := m.readerView.Update(msg)
		m.readerView = newView.(views.ReaderView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewStories:
		return m.storiesView.IsInputMode()
	case ViewTrending:
		return m.trendingView.IsInputMode()
	case ViewSearch:
		return m.searchView.IsInputMode()
	case ViewTasks:
		return m.tasksView.IsInputMode()
	case ViewSaved:
		return m.savedView.IsInputMode()
	case ViewProfile:
		return m.profileView.IsInputMode()
	case ViewReader:
		return m.readerView.IsInputMode()
	}
	return false
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewStories:
			content = m.storiesView.View()
		case ViewTrending:
			content = m.trendingView.View()
		case ViewSearch:
			content = m.searchView.View()
		case ViewTasks:
			content = m.tasksView.View()
		case ViewSaved:
			content = m.savedView.View()
		case ViewProfile:
			content = m.profileView.View()
		case ViewReader:
			content = m.readerView.View()
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("hackeroso")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	// Tab strip
	var tabs []string
	for v := ViewStories; v <= ViewProfile; v++ {
		label := fmt.Sprintf("%d:%s", int(v)+1, v.tabName())
		if v == m.currentView {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, viewStyle.Render(label))
		}
	}
	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Join(tabs, " "))

	rightSide := viewStyle.Render(fmt.Sprintf("%d pending", m.app.Tasks.PendingCount()))

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}
	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	keyHint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch m.currentView {
	case ViewStories:
		line1 = keyHint("h/l", "feeds") + sep +
			keyHint("enter", "comments") + sep +
			keyHint("r", "reader") + sep +
			keyHint("s", "save") + sep +
			keyHint("t", "track")
		line2 = keyHint("R", "refresh") + sep +
			keyHint("1-6", "views") + sep +
			keyHint("?", "help")

	case ViewTrending:
		line1 = keyHint("j/k", "navigate") + sep +
			keyHint("s", "save") + sep +
			keyHint("t", "track") + sep +
			keyHint("R", "refresh")
		line2 = keyHint("1-6", "views") + sep +
			keyHint("?", "help")

	case ViewSearch:
		if m.searchView.IsInputMode() {
			line1 = keyHint("enter", "search") + sep + keyHint("esc", "results")
		} else {
			line1 = keyHint("/", "edit query") + sep +
				keyHint("n/p", "pages") + sep +
				keyHint("s", "save") + sep +
				keyHint("t", "track")
		}
		line2 = keyHint("1-6", "views") + sep + keyHint("?", "help")

	case ViewTasks:
		if m.tasksView.IsInputMode() {
			line1 = keyHint("enter", "add") + sep + keyHint("esc", "cancel")
			line2 = keyHint("!high dur:30", "priority and duration")
		} else {
			line1 = keyHint("a", "add") + sep +
				keyHint("space", "start/pause") + sep +
				keyHint("c", "complete") + sep +
				keyHint("d", "delete") + sep +
				keyHint("v", "board/list")
			line2 = keyHint("J/K", "reorder") + sep +
				keyHint("p", "priority") + sep +
				keyHint("n", "notify") + sep +
				keyHint("1-6", "views")
		}

	case ViewSaved:
		line1 = keyHint("m", "move to list") + sep +
			keyHint("n", "new list") + sep +
			keyHint("d", "remove") + sep +
			keyHint("t", "track") + sep +
			keyHint("r", "reader")
		line2 = keyHint("1-6", "views") + sep + keyHint("?", "help")

	case ViewProfile:
		line1 = keyHint("f", "follow") + sep +
			keyHint("d", "unfollow") + sep +
			keyHint("enter", "profile") + sep +
			keyHint("e", "export")
		line2 = keyHint("N/S", "notify/sound") + sep +
			keyHint("C", "clear tasks") + sep +
			keyHint("1-6", "views") + sep +
			keyHint("?", "help")

	case ViewReader:
		line1 = keyHint("j/k", "scroll") + sep +
			keyHint("esc", "back")
		line2 = keyHint("1-6", "views") + sep + keyHint("?", "help")

	default:
		line1 = keyHint("1-6", "views") + sep + keyHint("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Hackeroso Help"))
	b.WriteString("\n\n")

	section := func(name string, rows [][]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kv := range rows {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Navigation", [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"g / G", "Go to top/bottom"},
		{"h/l or [/]", "Previous/next feed"},
		{"1-6", "Switch views"},
	})

	section("Stories", [][]string{
		{"enter", "Open comment thread"},
		{"r", "Read article in reader"},
		{"s", "Save / unsave"},
		{"t", "Track as task"},
		{"R", "Refresh listing"},
	})

	section("Tasks", [][]string{
		{"a", "Add task (!high, dur:30)"},
		{"space", "Start / pause / resume timer"},
		{"c", "Complete"},
		{"d", "Delete"},
		{"J/K", "Reorder within status"},
		{"v", "Toggle board/list"},
	})

	section("Saved", [][]string{
		{"n", "New list"},
		{"m", "Move item to next list"},
		{"d", "Remove item or list"},
	})

	section("Profile", [][]string{
		{"f", "Follow an HN user"},
		{"d / u", "Unfollow"},
		{"enter", "View profile and submissions"},
		{"e", "Export profile to JSON"},
		{"C", "Clear all tasks (confirm with y)"},
		{"N / S", "Toggle notifications / sound"},
	})

	section("System", [][]string{
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? to close"))

	return b.String()
}

// cycleTheme cycles through available themes and persists the choice
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)

			s := m.app.Tasks.Settings()
			s.Theme = next.Name
			m.app.Tasks.UpdateSettings(s)
			return
		}
	}
}
