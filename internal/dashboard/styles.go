package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	// Severity colors
	ColorNormal   = lipgloss.Color("#39FF14") // green
	ColorWarning  = lipgloss.Color("#FFAA00") // amber
	ColorCritical = lipgloss.Color("#FF0055") // red
	ColorUnknown  = lipgloss.Color("#6B6B8D") // neutral gray

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	// Chrome
	ColorBorder = lipgloss.Color("#2A2A4A")
	ColorAccent = lipgloss.Color("#FF2E97")
)

// TierColor is the single place where severity tiers map to display colors.
func TierColor(t Tier) lipgloss.Color {
	switch t {
	case TierCritical:
		return ColorCritical
	case TierWarning:
		return ColorWarning
	case TierNormal:
		return ColorNormal
	default:
		return ColorUnknown
	}
}

// TierStyle returns a foreground style for the given severity tier.
func TierStyle(t Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TierColor(t))
}

// Base styles for the dashboard chrome
var (
	HeaderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Foreground(ColorTextMuted)

	DeviceNameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// GaugeBar renders a fill bar of the given width for a ratio in [0,1],
// colored by the tier. Out-of-range ratios are clamped.
func GaugeBar(width int, ratio float64, tier Tier) string {
	if width < 1 {
		width = 1
	}
	ratio = clampRatio(ratio)

	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("▰")
		} else {
			b.WriteString("▱")
		}
	}

	return TierStyle(tier).Render(b.String())
}
