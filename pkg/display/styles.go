package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/dotlink/dotlink/pkg/types"
)

// Color definitions using AdaptiveColor for automatic light/dark mode
// switching.
var (
	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#28A745",
		Dark:  "#4CDD76",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545",
		Dark:  "#FF6B7D",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107",
		Dark:  "#FFD54F",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#ADB5BD",
	}

	PathColor = lipgloss.AdaptiveColor{
		Light: "#007ACC",
		Dark:  "#3D9EFF",
	}
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor)
)

// Result indicator glyphs.
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	RefusedIndicator = WarningStyle.Render("!")
	SkippedIndicator = MutedStyle.Render("○")
)

// StatusStyle returns the pterm style used for a mapping status badge.
func StatusStyle(status types.LinkStatus) *pterm.Style {
	switch status {
	case types.StatusLinked:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.StatusUnlinked:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case types.StatusMissing:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case types.StatusConflict:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// resultIndicator maps an execution outcome to its glyph.
func resultIndicator(status types.ResultStatus) string {
	switch status {
	case types.ResultSuccess:
		return SuccessIndicator
	case types.ResultSkipped:
		return SkippedIndicator
	case types.ResultRefused:
		return RefusedIndicator
	case types.ResultFailed:
		return ErrorIndicator
	default:
		return SkippedIndicator
	}
}
