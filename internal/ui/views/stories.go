package views

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/feed"
	"github.com/lpolish/hackeroso/internal/hn"
	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/ui/theme"
)

const commentDepthLimit = 6

// StoriesView shows the HN feed listings and the comment thread of a
// selected story.
type StoriesView struct {
	feeds *feed.Service
	hn    *hn.Client
	tasks *task.Manager

	width  int
	height int

	feedIdx int
	stories []model.Story
	cursor  int
	offset  int
	loading bool

	// Comment thread mode
	thread       *model.Story
	comments     []model.Comment
	threadOffset int

	statusMsg string
	errMsg    string
}

// NewStoriesView creates the stories view
func NewStoriesView(feeds *feed.Service, hnClient *hn.Client, tasks *task.Manager) StoriesView {
	return StoriesView{
		feeds: feeds,
		hn:    hnClient,
		tasks: tasks,
	}
}

// Init loads the current feed
func (v StoriesView) Init() tea.Cmd {
	return v.loadFeed(false)
}

// SetSize sets the view dimensions
func (v StoriesView) SetSize(width, height int) StoriesView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v StoriesView) IsInputMode() bool {
	return false
}

type storiesLoadedMsg struct {
	feed    model.Feed
	stories []model.Story
	err     error
}

type threadLoadedMsg struct {
	story    model.Story
	comments []model.Comment
	err      error
}

func (v StoriesView) currentFeed() model.Feed {
	return model.Feeds[v.feedIdx]
}

func (v StoriesView) loadFeed(force bool) tea.Cmd {
	f := v.currentFeed()
	svc := v.feeds
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var stories []model.Story
		var err error
		if force {
			stories, err = svc.Refresh(ctx, f)
		} else {
			stories, err = svc.Stories(ctx, f)
		}
		return storiesLoadedMsg{feed: f, stories: stories, err: err}
	}
}

func (v StoriesView) loadThread(s model.Story) tea.Cmd {
	client := v.hn
	return func() tea.Msg {
		id, err := strconv.Atoi(s.ID)
		if err != nil {
			return threadLoadedMsg{story: s, err: fmt.Errorf("no discussion for this item")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		comments, err := client.Comments(ctx, id, commentDepthLimit)
		return threadLoadedMsg{story: s, comments: comments, err: err}
	}
}

// Update handles messages
func (v StoriesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storiesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		if msg.feed != v.currentFeed() {
			return v, nil
		}
		v.stories = msg.stories
		v.errMsg = ""
		if v.cursor >= len(v.stories) {
			v.cursor = 0
			v.offset = 0
		}
		return v, nil

	case threadLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.thread = &msg.story
		v.comments = msg.comments
		v.threadOffset = 0
		return v, nil

	case tea.KeyMsg:
		v.statusMsg = ""
		if v.thread != nil {
			return v.updateThread(msg)
		}
		return v.updateListing(msg)
	}

	return v, nil
}

func (v StoriesView) updateListing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.stories)-1 {
			v.cursor++
			v.clampScroll()
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
			v.clampScroll()
		}
	case "g":
		v.cursor = 0
		v.offset = 0
	case "G":
		v.cursor = len(v.stories) - 1
		v.clampScroll()
	case "h", "[":
		v.feedIdx = (v.feedIdx + len(model.Feeds) - 1) % len(model.Feeds)
		v.cursor, v.offset = 0, 0
		v.loading = true
		return v, v.loadFeed(false)
	case "l", "]":
		v.feedIdx = (v.feedIdx + 1) % len(model.Feeds)
		v.cursor, v.offset = 0, 0
		v.loading = true
		return v, v.loadFeed(false)
	case "R":
		v.loading = true
		return v, v.loadFeed(true)
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
	case "t":
		if s, ok := v.selected(); ok {
			v.statusMsg = v.trackStory(s)
		}
	case "r":
		if s, ok := v.selected(); ok && s.URL != "" {
			req := OpenReaderRequest{URL: s.URL, Title: s.Title}
			return v, func() tea.Msg { return req }
		}
	case "enter":
		if s, ok := v.selected(); ok {
			v.loading = true
			return v, v.loadThread(s)
		}
	}
	return v, nil
}

func (v StoriesView) updateThread(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "escape", "backspace":
		v.thread = nil
		v.comments = nil
	case "j", "down":
		v.threadOffset++
	case "k", "up":
		if v.threadOffset > 0 {
			v.threadOffset--
		}
	case "g":
		v.threadOffset = 0
	case "s":
		v.tasks.SaveStory(*v.thread)
		v.statusMsg = "Saved"
	case "t":
		v.statusMsg = v.trackStory(*v.thread)
	case "r":
		if v.thread.URL != "" {
			req := OpenReaderRequest{URL: v.thread.URL, Title: v.thread.Title}
			return v, func() tea.Msg { return req }
		}
	}
	return v, nil
}

// trackStory toggles task tracking for a story. The returned status line
// tells the user which way the toggle went.
func (v *StoriesView) trackStory(s model.Story) string {
	url := s.URL
	if url == "" {
		url = s.ItemURL()
	}
	if v.tasks.IsTask(url) {
		v.tasks.RemoveByURL(url)
		return "Untracked"
	}
	v.tasks.Add(task.Draft{
		Title:    s.Title,
		Priority: model.PriorityMedium,
		Source:   model.SourceHackerNews,
		URL:      url,
	})
	return "Tracking as task"
}

func (v StoriesView) selected() (model.Story, bool) {
	if v.cursor < 0 || v.cursor >= len(v.stories) {
		return model.Story{}, false
	}
	return v.stories[v.cursor], true
}

// Each story renders as two lines.
func (v StoriesView) visibleStories() int {
	rows := (v.height - 2) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v *StoriesView) clampScroll() {
	visible := v.visibleStories()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// View renders the stories listing or the open comment thread
func (v StoriesView) View() string {
	if v.thread != nil {
		return v.renderThread()
	}
	return v.renderListing()
}

func (v StoriesView) renderListing() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	// Feed tabs
	var tabs []string
	for i, f := range model.Feeds {
		label := string(f)
		if i == v.feedIdx {
			tabs = append(tabs, lipgloss.NewStyle().
				Foreground(t.Primary).Bold(true).Render("["+label+"]"))
		} else {
			tabs = append(tabs, styles.Label.Render(" "+label+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	if v.loading {
		b.WriteString(styles.Label.Render("Loading..."))
		return b.String()
	}
	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		return b.String()
	}
	if len(v.stories) == 0 {
		b.WriteString(styles.Label.Render("No stories"))
		return b.String()
	}

	visible := v.visibleStories()
	end := v.offset + visible
	if end > len(v.stories) {
		end = len(v.stories)
	}

	for i := v.offset; i < end; i++ {
		s := v.stories[i]
		b.WriteString(v.renderStoryRow(i, s, i == v.cursor))
	}

	if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}
	return b.String()
}

func (v StoriesView) renderStoryRow(rank int, s model.Story, selected bool) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := s.Title
	maxTitle := v.width - 10
	if maxTitle > 0 && len(title) > maxTitle {
		title = title[:maxTitle-1] + "…"
	}

	line1 := fmt.Sprintf("%s %s", styles.StoryRank.Render(fmt.Sprintf("%2d.", rank+1)), title)
	if selected {
		line1 = styles.StorySelected.Render(line1)
	} else {
		line1 = styles.StoryNormal.Render(line1)
	}

	var markers []string
	if v.tasks.IsSaved(s.ID) {
		markers = append(markers, "★")
	}
	if v.tasks.IsFollowing(s.Author) {
		markers = append(markers, "@")
	}
	marker := ""
	if len(markers) > 0 {
		marker = " " + strings.Join(markers, " ")
	}

	meta := fmt.Sprintf("    %s points by %s | %d comments",
		lipgloss.NewStyle().Foreground(t.Score).Render(strconv.Itoa(s.Score)),
		lipgloss.NewStyle().Foreground(t.Author).Render(s.Author),
		s.Comments)
	if d := s.Domain(); d != "" {
		meta += " | " + styles.StoryDomain.Render(d)
	}
	meta += marker

	return line1 + "\n" + styles.StoryMeta.Render(meta) + "\n"
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// flattenText strips the HTML markup HN serves in comment bodies.
func flattenText(s string) string {
	s = strings.ReplaceAll(s, "<p>", "\n")
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

func (v StoriesView) renderThread() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var lines []string
	s := v.thread

	lines = append(lines, styles.Title.Render(s.Title))
	lines = append(lines, styles.StoryMeta.Render(fmt.Sprintf(
		"%d points by %s | %d comments | esc to go back",
		s.Score, s.Author, s.Comments)))
	lines = append(lines, "")

	var walk func(cs []model.Comment)
	walk = func(cs []model.Comment) {
		for _, c := range cs {
			indent := strings.Repeat("  ", c.Depth)
			author := lipgloss.NewStyle().Foreground(t.Author).Render(c.Author)
			if v.tasks.IsFollowing(c.Author) {
				author += lipgloss.NewStyle().Foreground(t.Primary).Render(" @")
			}
			lines = append(lines, indent+author)
			for _, textLine := range wrapText(flattenText(c.Text), v.width-len(indent)-2) {
				lines = append(lines, indent+textLine)
			}
			lines = append(lines, "")
			walk(c.Children)
		}
	}
	walk(v.comments)

	if len(v.comments) == 0 {
		lines = append(lines, styles.Label.Render("No comments yet"))
	}

	// Scroll window
	start := v.threadOffset
	if start >= len(lines) {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + v.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// wrapText breaks text into lines no wider than width.
func wrapText(s string, width int) []string {
	if width < 20 {
		width = 20
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
