package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lpolish/hackeroso/internal/app"
	"github.com/lpolish/hackeroso/internal/config"
	"github.com/lpolish/hackeroso/internal/db"
	"github.com/lpolish/hackeroso/internal/support"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/ui"
	"github.com/lpolish/hackeroso/internal/ui/theme"
	"github.com/lpolish/hackeroso/internal/ui/views"
	"github.com/lpolish/hackeroso/internal/userdata"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "export":
			handleExport(os.Args[2:])
			return
		case "import":
			handleImport(os.Args[2:])
			return
		case "support":
			handleSupport(os.Args[2:])
			return
		case "version":
			fmt.Printf("hackeroso v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	viewFlag := flag.String("view", "", "Starting view (stories, trending, search, tasks, saved, profile)")
	themeFlag := flag.String("theme", "", "Theme name (terminal, orange)")
	flag.Parse()

	if err := runTUI(*viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `hackeroso - Hacker News reader with a task timer

Usage:
  hackeroso                        Start the TUI
  hackeroso add <task>             Quick add a task
  hackeroso export [file]          Export your profile to JSON
  hackeroso import <file>          Import a profile export
  hackeroso support                Send a support request
  hackeroso version                Show version
  hackeroso help                   Show this help

Quick Add Syntax:
  hackeroso add "Read the Zig thread"
  hackeroso add "Write blog post !high dur:45"

  Priority:  !low !medium !high
  Duration:  dur:<minutes>         Expected duration, timer alerts when passed

TUI Options:
  --view <name>     Starting view (stories, trending, search, tasks, saved, profile)
  --theme <name>    Theme (terminal, orange)

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                h/l           Switch feed
                1-6           Switch views

  Stories:      enter         Open comments
                r             Reader mode
                s             Save
                t             Track as task

  Tasks:        a             Add task
                space         Start/pause/resume timer
                c             Complete
                v             Board/list

  System:       ctrl+t        Cycle theme
                ?             Help
                q             Quit

Environment:
  HACKEROSO_CONFIG     Config file path
  HACKEROSO_DB         Database file path
  RESEND_API_KEY       Support email API key
  HCAPTCHA_SECRET_KEY  Support captcha secret`

	fmt.Println(help)
}

// openManager opens the database and loads the profile. Quick commands
// skip the instance lock: each worst case is a full-mirror rewrite racing
// a running TUI, which SQLite serializes.
func openManager() (*task.Manager, *db.DB, error) {
	cfg, err := config.Load(config.DefaultPath(db.DefaultDataDir()))
	if err != nil {
		return nil, nil, err
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = db.DefaultDBPath()
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	manager, err := task.NewManager(database)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return manager, database, nil
}

func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: hackeroso add <task>")
		fmt.Fprintln(os.Stderr, "Example: hackeroso add \"Write blog post !high dur:45\"")
		os.Exit(1)
	}

	draft, ok := views.ParseQuickAdd(strings.Join(args, " "))
	if !ok {
		fmt.Fprintln(os.Stderr, "Task title is empty")
		os.Exit(1)
	}

	manager, database, err := openManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	created := manager.Add(draft)

	fmt.Printf("Created: %s\n", created.Title)
	if created.Priority != "medium" {
		fmt.Printf("Priority: %s\n", created.Priority)
	}
	if created.ExpectedDuration > 0 {
		fmt.Printf("Expected: %dm\n", created.ExpectedDuration)
	}
}

func handleExport(args []string) {
	path := userdata.DefaultExportName(time.Now())
	if len(args) > 0 {
		path = args[0]
	}

	manager, database, err := openManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := userdata.WriteFile(path, manager.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported to %s\n", path)
}

func handleImport(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: hackeroso import <file>")
		os.Exit(1)
	}

	data, err := userdata.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	manager, database, err := openManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	manager.Restore(data)
	fmt.Printf("Imported %d tasks, %d saved items, %d lists, %d follows\n",
		len(data.Tasks), len(data.SavedItems), len(data.Lists), len(data.Follows))
}

func handleSupport(args []string) {
	fs := flag.NewFlagSet("support", flag.ExitOnError)
	name := fs.String("name", "", "Your name")
	email := fs.String("email", "", "Your email address")
	message := fs.String("message", "", "The message to send")
	token := fs.String("captcha-token", "", "hCaptcha response token")
	fs.Parse(args)

	cfg, err := config.Load(config.DefaultPath(db.DefaultDataDir()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := support.New(&http.Client{Timeout: cfg.FetchTimeout()}, support.Config{
		HCaptchaSecret: cfg.HCaptchaSecret,
		ResendAPIKey:   cfg.ResendAPIKey,
		FromAddress:    cfg.SupportFrom,
		SupportInbox:   cfg.SupportTo,
	})

	err = svc.Submit(context.Background(), support.Request{
		Name:         *name,
		Email:        *email,
		Message:      *message,
		CaptchaToken: *token,
	})
	if errors.Is(err, support.ErrInvalidCaptcha) {
		fmt.Fprintln(os.Stderr, "Captcha verification failed")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Message sent. Check your inbox for a confirmation.")
}

func runTUI(startView, themeName string) error {
	cfg, err := config.Load(config.DefaultPath(db.DefaultDataDir()))
	if err != nil {
		return err
	}

	// Logging would corrupt the TUI; keep it in a file when debugging,
	// otherwise drop it.
	logOut := io.Discard
	if os.Getenv("HACKEROSO_DEBUG") == "1" {
		if f, err := os.OpenFile("/tmp/hackeroso-debug.log",
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			logOut = f
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if themeName != "" {
		if t, ok := theme.ByName(themeName); ok {
			theme.SetTheme(t)
			s := application.Tasks.Settings()
			s.Theme = t.Name
			application.Tasks.UpdateSettings(s)
		}
	}

	initial := ui.InitialView(startView, application.Tasks.Settings().LastTab)
	model := ui.NewRootModel(application, initial)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	application.Feeds.OnRefresh = func() {
		p.Send(ui.FeedRefreshedMsg{})
	}
	application.StartBackground()

	_, err = p.Run()
	return err
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
