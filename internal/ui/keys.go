package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Click   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var Keys = KeyMap{
	Click:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "sign in / open mail")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Refresh, k.Quit}
}
