package views

import (
	"testing"

	"github.com/lpolish/hackeroso/internal/model"
)

func TestParseQuickAdd(t *testing.T) {
	draft, ok := ParseQuickAdd("Write blog post !high dur:45")
	if !ok {
		t.Fatal("expected ok")
	}
	if draft.Title != "Write blog post" {
		t.Errorf("Title = %q", draft.Title)
	}
	if draft.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q", draft.Priority)
	}
	if draft.ExpectedDuration != 45 {
		t.Errorf("ExpectedDuration = %d", draft.ExpectedDuration)
	}
	if draft.Source != model.SourceCustom {
		t.Errorf("Source = %q", draft.Source)
	}
}

func TestParseQuickAddDefaults(t *testing.T) {
	draft, ok := ParseQuickAdd("just a title")
	if !ok {
		t.Fatal("expected ok")
	}
	if draft.Priority != model.PriorityMedium || draft.ExpectedDuration != 0 {
		t.Errorf("defaults wrong: %+v", draft)
	}
}

func TestParseQuickAddKeepsBadTokensInTitle(t *testing.T) {
	draft, ok := ParseQuickAdd("check dur:soon thing")
	if !ok {
		t.Fatal("expected ok")
	}
	// An unparsable duration is dropped, the rest of the words stay.
	if draft.Title != "check thing" {
		t.Errorf("Title = %q", draft.Title)
	}
	if draft.ExpectedDuration != 0 {
		t.Errorf("ExpectedDuration = %d", draft.ExpectedDuration)
	}
}

func TestParseQuickAddEmptyTitle(t *testing.T) {
	if _, ok := ParseQuickAdd("!high dur:30"); ok {
		t.Fatal("expected not ok for title-less input")
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{59 * 1000, "0:59"},
		{90 * 1000, "1:30"},
		{3600 * 1000, "1:00:00"},
		{(3*3600 + 62) * 1000, "3:01:02"},
	}
	for _, c := range cases {
		if got := formatElapsed(c.ms); got != c.want {
			t.Errorf("formatElapsed(%d) = %q, want %q", c.ms, got, c.want)
		}
	}
}

func TestFlattenText(t *testing.T) {
	in := `First line<p>Second &amp; <a href="x">link</a></p>`
	got := flattenText(in)
	if got != "First line\nSecond & link" {
		t.Errorf("flattenText = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("aaa bbb ccc ddd", 20)
	if len(lines) != 1 || lines[0] != "aaa bbb ccc ddd" {
		t.Errorf("short input should not wrap: %v", lines)
	}

	lines = wrapText("one two three four five six seven eight nine ten", 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q exceeds width", l)
		}
	}
}
