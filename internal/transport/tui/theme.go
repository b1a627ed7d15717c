package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette of the search widget. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	MarkForeground   lipgloss.Color
	PrefixForeground lipgloss.Color
	TypeForeground   lipgloss.Color
	CodeForeground   lipgloss.Color
	ErrorForeground  lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),
	MarkForeground:     lipgloss.Color("214"),
	PrefixForeground:   lipgloss.Color("111"),
	TypeForeground:     lipgloss.Color("109"),
	CodeForeground:     lipgloss.Color("150"),
	ErrorForeground:    lipgloss.Color("203"),
}

type styles struct {
	normal   lipgloss.Style
	faint    lipgloss.Style
	selected lipgloss.Style
	mark     lipgloss.Style
	prefix   lipgloss.Style
	typeLine lipgloss.Style
	code     lipgloss.Style
	err      lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		normal: lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:  lipgloss.NewStyle().Foreground(theme.FaintText),
		selected: lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground),
		mark:     lipgloss.NewStyle().Foreground(theme.MarkForeground).Bold(true),
		prefix:   lipgloss.NewStyle().Foreground(theme.PrefixForeground).Bold(true),
		typeLine: lipgloss.NewStyle().Foreground(theme.TypeForeground),
		code:     lipgloss.NewStyle().Foreground(theme.CodeForeground),
		err:      lipgloss.NewStyle().Foreground(theme.ErrorForeground),
	}
}
