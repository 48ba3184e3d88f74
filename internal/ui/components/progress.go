package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar shows elapsed waiting time against the minimum display time
type ProgressBar struct {
	Width   int
	Elapsed time.Duration
	Total   time.Duration
	Label   string
	Palette Palette
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int, palette Palette) *ProgressBar {
	return &ProgressBar{
		Width:   width,
		Palette: palette,
	}
}

// SetProgress updates the progress
func (p *ProgressBar) SetProgress(elapsed, total time.Duration) {
	p.Elapsed = elapsed
	p.Total = total
}

// SetLabel sets the progress label
func (p *ProgressBar) SetLabel(label string) {
	p.Label = label
}

// Fraction returns the completed share in [0, 1]
func (p *ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 1
	}
	f := float64(p.Elapsed) / float64(p.Total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// Render renders the progress bar
func (p *ProgressBar) Render() string {
	progressStyle := lipgloss.NewStyle().Foreground(color(p.Palette.Progress)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(color(p.Palette.Muted))

	width := p.Width
	if width <= 0 {
		width = 30
	}

	filledWidth := int(float64(width) * p.Fraction())
	filled := strings.Repeat("█", filledWidth)
	empty := strings.Repeat("░", width-filledWidth)
	bar := progressStyle.Render(filled) + mutedStyle.Render(empty)

	status := fmt.Sprintf("%s / %s", formatDuration(p.Elapsed), formatDuration(p.Total))
	result := fmt.Sprintf("[%s] %s", bar, mutedStyle.Render(status))

	if p.Label != "" {
		result = p.Label + "\n" + result
	}
	return result
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	} else if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}
