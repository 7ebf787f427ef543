package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "abc")

	got := RenderScreen(s)
	if got != "abc  \n     " {
		t.Errorf("RenderScreen() = %q", got)
	}
}

func TestRenderScreenStyledRuns(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawStyledText(0, 0, "ab", core.ColorRed, core.AttrBold)
	s.DrawText(2, 0, "cd")

	got := RenderScreen(s)
	if !strings.Contains(got, "cd") {
		t.Errorf("plain run missing: %q", got)
	}
	if !strings.Contains(got, "ab") {
		t.Errorf("styled run missing: %q", got)
	}
	if lipgloss.Width(got) != 6 {
		t.Errorf("visible width = %d, want 6", lipgloss.Width(got))
	}
}

func TestRenderScreenWideRunes(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.DrawText(0, 0, "世x")

	got := RenderScreen(s)
	if got != "世x " {
		t.Errorf("RenderScreen() = %q, want wide rune without placeholder", got)
	}
}

func TestStyleForCaches(t *testing.T) {
	a := styleFor(core.ColorCyan, core.AttrReverse|core.AttrUnderline)
	b := styleFor(core.ColorCyan, core.AttrReverse|core.AttrUnderline)

	if !a.GetReverse() || !a.GetUnderline() {
		t.Error("attributes not applied")
	}
	if a.GetForeground() != b.GetForeground() {
		t.Error("cached styles differ")
	}
}
