package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lpolish/hackeroso/internal/task"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProfileClearTasksNeedsConfirmation(t *testing.T) {
	manager := newViewManager(t)
	manager.Add(task.Draft{Title: "write tests"})
	manager.Add(task.Draft{Title: "ship it"})

	v := ProfileView{tasks: manager}

	// Any key other than y cancels the armed clear.
	next, _ := v.Update(keyMsg("C"))
	next, _ = next.Update(keyMsg("n"))
	v = next.(ProfileView)
	if len(manager.Tasks()) != 2 {
		t.Fatal("cancelled clear must not touch tasks")
	}

	next, _ = v.Update(keyMsg("C"))
	next, _ = next.Update(keyMsg("y"))
	v = next.(ProfileView)
	if len(manager.Tasks()) != 0 {
		t.Fatal("confirmed clear must empty the task collection")
	}
	if v.statusMsg != "All tasks cleared" {
		t.Fatalf("statusMsg = %q", v.statusMsg)
	}
}
