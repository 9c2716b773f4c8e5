package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable_EmptyRendersNothing(t *testing.T) {
	t.Parallel()
	table := NewSimpleTable("Active Campaigns", []string{"Name", "Status"})

	if out := table.View(NewStyles(DarkTheme())); out != "" {
		t.Errorf("empty table should render nothing, got %q", out)
	}
}

func TestSimpleTable_RendersTitleHeadersRows(t *testing.T) {
	t.Parallel()
	table := NewSimpleTable("Active Campaigns", []string{"Name", "Frequency", "Status"})
	table.AddRow("January Growth", "daily", "active")
	table.AddRow("Spring Push", "twice daily", "active")

	out := table.View(NewStyles(DarkTheme()))
	for _, want := range []string{"Active Campaigns", "Name", "Frequency", "January Growth", "twice daily"} {
		if !containsPlain(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
	if got := strings.Count(out, "\n"); got < 4 {
		t.Errorf("expected title, header, divider and two rows, got %d lines", got)
	}
}

func TestSimpleTable_ShortRowsDoNotPanic(t *testing.T) {
	t.Parallel()
	table := NewSimpleTable("", []string{"A", "B", "C"})
	table.AddRow("only-one")

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic on short row: %v", r)
		}
	}()
	_ = table.View(NewStyles(LightTheme()))
}
