package screens

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Submit    key.Binding
	Browse    key.Binding
	Edit      key.Binding
	Open      key.Binding
	Close     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Browse: key.NewBinding(
			key.WithKeys("esc", "tab", "down"),
			key.WithHelp("tab", "browse results"),
		),
		Edit: key.NewBinding(
			key.WithKeys("esc", "tab", "/"),
			key.WithHelp("/", "edit search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "enter", "backspace"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
	}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Browse, k.ForceQuit}
}

func (k keyMap) gridHelp() []key.Binding {
	return []key.Binding{k.Open, k.Up, k.Down, k.Left, k.Right, k.Edit, k.Quit}
}

func (k keyMap) overlayHelp() []key.Binding {
	return []key.Binding{k.Close, k.ForceQuit}
}
