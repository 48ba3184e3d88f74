package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/intake"
)

// SlotBox renders one upload slot: title, hint, admitted files and the last
// validation error
type SlotBox struct {
	Slot    *intake.Slot
	Focused bool
	Cursor  int
	Width   int
	Palette Palette
}

// Render renders the slot box
func (b SlotBox) Render() string {
	border := color(b.Palette.Border)
	if b.Focused {
		border = color(b.Palette.Focus)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if b.Width > 4 {
		box = box.Width(b.Width - 2)
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(color(b.Palette.Primary))
	muted := lipgloss.NewStyle().Foreground(color(b.Palette.Muted))
	errStyle := lipgloss.NewStyle().Foreground(color(b.Palette.Error)).Bold(true)
	selected := lipgloss.NewStyle().Background(color(b.Palette.Selected)).Bold(true)

	var lines []string
	lines = append(lines, title.Render(emoji.GetEmoji("upload")+" "+b.Slot.Title()))
	if desc := b.Slot.Description(); desc != "" {
		lines = append(lines, muted.Render(desc))
	}

	files := b.Slot.Files()
	if len(files) == 0 {
		lines = append(lines, muted.Render("No file selected"))
	}
	for i, f := range files {
		line := fmt.Sprintf("%s %s %s", emoji.GetEmoji("document"), f.Name, muted.Render(formatSize(f.Size)))
		if b.Focused && i == b.Cursor {
			line = selected.Render("> "+f.Name) + " " + muted.Render(formatSize(f.Size)+"  ctrl+x to remove")
		}
		lines = append(lines, line)
	}

	if msg := b.Slot.Error(); msg != "" {
		lines = append(lines, errStyle.Render(emoji.GetEmoji("error")+" "+msg))
	}

	return box.Render(strings.Join(lines, "\n"))
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
