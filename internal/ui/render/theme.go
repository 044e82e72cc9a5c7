package render

import "github.com/gdamore/tcell/v2"

// Theme holds the styles the renderer draws with. Entry colors come from
// the entry decorations, not from here.
type Theme struct {
	Header    tcell.Style
	Selection tcell.Style
	Marker    tcell.Style
	Name      tcell.Style
	Error     tcell.Style
	Prompt    tcell.Style
}

// DefaultTheme returns the default styles.
func DefaultTheme() Theme {
	return Theme{
		Header:    tcell.StyleDefault.Bold(true).Reverse(true),
		Selection: tcell.StyleDefault.Reverse(true),
		Marker:    tcell.StyleDefault.Bold(true),
		Name:      tcell.StyleDefault.Bold(true),
		Error:     tcell.StyleDefault.Foreground(tcell.ColorMaroon),
		Prompt:    tcell.StyleDefault,
	}
}

// MonochromeTheme drops every color but keeps attributes.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	t.Error = tcell.StyleDefault.Bold(true)
	return t
}
