package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

type cellStyle struct {
	fg   core.Color
	attr core.Attr
}

// cellStyles caches one lipgloss style per color and attribute set. SSH
// sessions render concurrently.
var (
	cellStylesMu sync.Mutex
	cellStyles   = map[cellStyle]lipgloss.Style{}
)

func styleFor(fg core.Color, attr core.Attr) lipgloss.Style {
	cellStylesMu.Lock()
	defer cellStylesMu.Unlock()

	k := cellStyle{fg, attr}
	if st, ok := cellStyles[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if code, ok := colorCodes[fg]; ok {
		st = st.Foreground(lipgloss.Color(code))
	}
	if attr.Has(core.AttrBold) {
		st = st.Bold(true)
	}
	if attr.Has(core.AttrReverse) {
		st = st.Reverse(true)
	}
	if attr.Has(core.AttrUnderline) {
		st = st.Underline(true)
	}
	if attr.Has(core.AttrFaint) {
		st = st.Faint(true)
	}
	cellStyles[k] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			// Collect consecutive cells with the same style
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Attr != start.Attr {
					break
				}
				if cell.Rune != 0 { // placeholder behind a wide rune
					run.WriteRune(cell.Rune)
				}
				x++
			}

			if start.Fg == core.ColorDefault && start.Attr == 0 {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start.Fg, start.Attr).Render(run.String()))
		}
	}
	return sb.String()
}
