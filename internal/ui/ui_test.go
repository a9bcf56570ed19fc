package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStyleColors(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(old)

	errText := Error("boom")
	if !strings.Contains(errText, "196") {
		t.Errorf("Expected error text to contain color 196, got %q", errText)
	}

	title := Title("Caddie")
	if !strings.Contains(title, "125;86;244") { // #7D56F4 background
		t.Errorf("Expected title to carry the brand background, got %q", title)
	}
	if !strings.Contains(title, "Caddie") {
		t.Error("Title text missing")
	}
}

func TestTableAlignsColumns(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(old)

	out := Table(
		[]string{"Club", "n"},
		[][]string{{"7", "3"}, {"Putter", "12"}},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Club") {
		t.Errorf("header missing: %q", lines[0])
	}
	if !strings.Contains(lines[2], "Putter") || !strings.Contains(lines[2], "12") {
		t.Errorf("row content missing: %q", lines[2])
	}
	// tabwriter pads every cell in a column to the same width
	if strings.Index(lines[1], "3") != strings.Index(lines[2], "12") {
		t.Errorf("columns misaligned:\n%q\n%q", lines[1], lines[2])
	}
}

func TestOptionGrid(t *testing.T) {
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(old)

	out := OptionGrid([][]string{{"tee", "fairway"}, {"rough"}}, []string{"back", "cancel"})

	if !strings.Contains(out, "[tee] [fairway]") {
		t.Errorf("first row not rendered as a grid: %q", out)
	}
	if !strings.Contains(out, "[rough]") {
		t.Errorf("second row missing: %q", out)
	}
	if !strings.Contains(out, "back · cancel") {
		t.Errorf("controls not joined: %q", out)
	}

	if got := OptionGrid(nil, nil); got != "" {
		t.Errorf("empty grid should render nothing, got %q", got)
	}
}
