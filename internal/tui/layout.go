package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, which keeps overlay composition stable.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		w := xansi.StringWidth(ln)
		if w > width {
			if width <= 0 {
				ln = ""
			} else if width == 1 {
				ln = xansi.Cut(ln, 0, 1)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a titled surface box sized for the current terminal.
func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Width(bodyW).
		Padding(1, 1).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// overlayCenter places the overlay box in the middle of a dimmed base pane.
// Lipgloss has no real z-ordering, so the base is faded and the box replaces
// the covered cells line by line.
func overlayCenter(base, box string, width, height int) string {
	baseLines := strings.Split(normalizePane(styleMuted().Render(stripANSI(base)), width, height), "\n")
	boxLines := strings.Split(box, "\n")

	boxH := len(boxLines)
	top := (height - boxH) / 2
	if top < 0 {
		top = 0
	}
	boxW := 0
	for _, ln := range boxLines {
		if w := xansi.StringWidth(ln); w > boxW {
			boxW = w
		}
	}
	left := (width - boxW) / 2
	if left < 0 {
		left = 0
	}

	for i, bl := range boxLines {
		y := top + i
		if y >= len(baseLines) {
			break
		}
		row := baseLines[y]
		prefix := xansi.Cut(row, 0, left)
		suffixStart := left + xansi.StringWidth(bl)
		suffix := ""
		if suffixStart < width {
			suffix = xansi.Cut(row, suffixStart, width)
		}
		baseLines[y] = prefix + bl + suffix
	}
	return strings.Join(baseLines, "\n")
}

func stripANSI(s string) string {
	return xansi.Strip(s)
}
