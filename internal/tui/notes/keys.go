package notes

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	openEditor    key.Binding
	togglePreview key.Binding
	closePreview  key.Binding
	rebuild       key.Binding
	previewUp     key.Binding
	previewDown   key.Binding
	cursorUp      key.Binding
	cursorDown    key.Binding
	quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		openEditor: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open in editor"),
		),
		togglePreview: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "preview"),
		),
		closePreview: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close preview"),
		),
		rebuild: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "rebuild index"),
		),
		previewUp: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "preview up"),
		),
		previewDown: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("ctrl+j", "preview down"),
		),
		cursorUp: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous"),
		),
		cursorDown: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
