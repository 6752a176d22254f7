package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lpolish/hackeroso/internal/reader"
	"github.com/lpolish/hackeroso/internal/ui/theme"
)

// OpenReaderRequest asks the root model to switch to the reader view and
// load the given page.
type OpenReaderRequest struct {
	URL   string
	Title string
}

// ReaderView shows a story's linked page as extracted article text.
type ReaderView struct {
	reader *reader.Reader

	width  int
	height int

	viewport viewport.Model
	ready    bool

	url     string
	title   string
	article *reader.Article
	loading bool
	errMsg  string
}

// NewReaderView creates the reader view
func NewReaderView(r *reader.Reader) ReaderView {
	return ReaderView{reader: r}
}

// Init is a no-op; loading starts with Open
func (v ReaderView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v ReaderView) SetSize(width, height int) ReaderView {
	v.width = width
	v.height = height
	if !v.ready {
		v.viewport = viewport.New(width, height-3)
		v.ready = true
	} else {
		v.viewport.Width = width
		v.viewport.Height = height - 3
	}
	if v.article != nil {
		v.viewport.SetContent(v.renderArticle())
	}
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v ReaderView) IsInputMode() bool {
	return false
}

type articleLoadedMsg struct {
	article reader.Article
	err     error
}

// Open starts fetching a page for reading.
func (v ReaderView) Open(url, title string) (ReaderView, tea.Cmd) {
	v.url = url
	v.title = title
	v.article = nil
	v.errMsg = ""
	v.loading = true

	r := v.reader
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		article, err := r.Fetch(ctx, url)
		return articleLoadedMsg{article: article, err: err}
	}
}

// Update handles messages
func (v ReaderView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case articleLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.article = &msg.article
		if v.ready {
			v.viewport.SetContent(v.renderArticle())
			v.viewport.GotoTop()
		}
		return v, nil

	case tea.KeyMsg:
		if !v.ready {
			return v, nil
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	if v.ready {
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v ReaderView) renderArticle() string {
	styles := theme.Current.Styles

	var b strings.Builder
	for _, line := range wrapText(v.article.Text, v.width-4) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		b.WriteString(styles.Label.Render("No readable text found on this page."))
	}
	return b.String()
}

// View renders the article
func (v ReaderView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	title := v.title
	if v.article != nil && v.article.Title != "" {
		title = v.article.Title
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	var meta []string
	if v.article != nil && v.article.Byline != "" {
		meta = append(meta, v.article.Byline)
	}
	if v.url != "" {
		meta = append(meta, v.url)
	}
	if len(meta) > 0 {
		b.WriteString(styles.StoryMeta.Render(strings.Join(meta, " | ")))
		b.WriteString("\n")
	}

	switch {
	case v.loading:
		b.WriteString(styles.Label.Render("Fetching article..."))
	case v.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	case v.ready:
		b.WriteString(v.viewport.View())
		b.WriteString("\n")
		b.WriteString(styles.StoryMeta.Render(fmt.Sprintf("%3.0f%%", v.viewport.ScrollPercent()*100)))
	}

	return b.String()
}
