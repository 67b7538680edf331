package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jaimp/internal/core"
)

type cellStyleKey struct {
	fg, bg core.Color
}

// cellStyles caches one lipgloss style per colour pair.
type cellStyles map[cellStyleKey]lipgloss.Style

func (cs cellStyles) get(fg, bg core.Color) lipgloss.Style {
	k := cellStyleKey{fg, bg}
	if s, ok := cs[k]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	cs[k] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := make(cellStyles)

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != first.FG || cell.BG != first.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styles.get(first.FG, first.BG).Render(run.String()))
		}
	}
	return sb.String()
}
