package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Fresh    key.Binding
	Digital  key.Binding
	Clothing key.Binding
	Pull     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next category")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev category")),
	Fresh:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "fresh")),
	Digital:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "digital")),
	Clothing: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "clothing")),
	Pull:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r/drag", "refresh")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Pull, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Fresh, k.Digital, k.Clothing},
		{k.Pull, k.Help, k.Quit},
	}
}
