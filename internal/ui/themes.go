package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/RFPCheck/internal/ui/components"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Brand colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Verdict colors
	Affirmative lipgloss.AdaptiveColor
	Negative    lipgloss.AdaptiveColor

	// Semantic colors
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
	Progress   lipgloss.AdaptiveColor
}

// buildTheme creates a theme from [light, dark] pairs
func buildTheme(name string, primary, secondary, affirmative, negative, warning, errorColor, border, foreground, muted, selected, progress [2]string) Theme {
	return Theme{
		Name:        name,
		Primary:     lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:   lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Affirmative: lipgloss.AdaptiveColor{Light: affirmative[0], Dark: affirmative[1]},
		Negative:    lipgloss.AdaptiveColor{Light: negative[0], Dark: negative[1]},
		Warning:     lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:       lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:      lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Foreground:  lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:       lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:    lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
		Progress:    lipgloss.AdaptiveColor{Light: progress[0], Dark: progress[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#EB8C00", "#F5A623"}, [2]string{"#602320", "#C0706B"},
		[2]string{"#16A34A", "#22C55E"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#111827", "#F9FAFB"},
		[2]string{"#6B7280", "#9CA3AF"}, [2]string{"#FEF3C7", "#4A2A0A"},
		[2]string{"#EB8C00", "#F5A623"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#666666", "#BBBBBB"}, [2]string{"#FFFF00", "#444444"},
		[2]string{"#006600", "#00FF00"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#2D3748", "#F7FAFC"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"},
		[2]string{"#2F855A", "#68D391"})

	// PlainTheme carries no colors and is used when color output is off
	PlainTheme = Theme{Name: "plain"}
)

var (
	themeMu       sync.RWMutex
	currentTheme  = DefaultTheme
	colorDisabled bool
)

// GetTheme returns the current active theme
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if colorDisabled || os.Getenv("NO_COLOR") != "" {
		return PlainTheme
	}
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "", "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// SetColorDisabled turns colored rendering off or on
func SetColorDisabled(disabled bool) {
	themeMu.Lock()
	defer themeMu.Unlock()
	colorDisabled = disabled
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return colorDisabled || os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Palette converts the theme for the components package
func (t Theme) Palette() components.Palette {
	return components.Palette{
		Primary:     t.Primary,
		Affirmative: t.Affirmative,
		Negative:    t.Negative,
		Error:       t.Error,
		Border:      t.Border,
		Focus:       t.Primary,
		Muted:       t.Muted,
		Selected:    t.Selected,
		Progress:    t.Progress,
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	Notice   lipgloss.Style
	NotFound lipgloss.Style
	Panel    lipgloss.Style
}

// GetStyles builds the styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	button := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Button: button.Foreground(theme.Primary),

		ButtonFocused: button.
			Foreground(theme.Primary).
			BorderForeground(theme.Primary).
			Background(theme.Selected),

		ButtonDisabled: button.Foreground(theme.Muted),

		Notice: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Error).
			Padding(1, 3),

		NotFound: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
	}
}
