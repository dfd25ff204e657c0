package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#FF6B9D")
	Secondary  = lipgloss.Color("#C792EA")
	Success    = lipgloss.Color("#C3E88D")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Background = lipgloss.Color("#263238")
	Foreground = lipgloss.Color("#EEFFFF")

	// Border styles
	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Base styles
var (
	// Title style for headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	// Card title, no margin so cards stay compact
	CardTitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	// Normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	// Muted/dimmed text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Label in the detail overlay
	LabelStyle = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	// Card style
	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Card under the cursor
	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 1)

	// Detail overlay box
	OverlayStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Background(Background).
			Padding(1, 3)

	// Frame drawn where a cover could not be loaded
	NoCoverStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Muted).
			Align(lipgloss.Center, lipgloss.Center)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	// Input field
	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Focused input
	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

// CardFrame returns the card style for the cursor state.
func CardFrame(active bool) lipgloss.Style {
	if active {
		return ActiveCardStyle
	}
	return CardStyle
}
