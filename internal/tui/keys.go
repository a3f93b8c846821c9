package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Back      key.Binding
	Clear     key.Binding
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Enter     key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "add meal")),
		Edit:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "delete")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear all")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab")),
		// Enter never submits; the form only goes through Submit.
		Enter: key.NewBinding(key.WithKeys("enter")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// setEditing toggles the add/update/delete/back affordances.
func (k *keyMap) setEditing(editing bool) {
	if editing {
		k.Submit.SetHelp("ctrl+s", "update meal")
	} else {
		k.Submit.SetHelp("ctrl+s", "add meal")
	}
	k.Delete.SetEnabled(editing)
	k.Back.SetEnabled(editing)
	k.Edit.SetEnabled(!editing)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Edit, k.Delete, k.Back, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Edit, k.Delete, k.Back},
		{k.Up, k.Down, k.NextField},
		{k.Clear, k.Quit},
	}
}
