package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	back      key.Binding
	nextTab   key.Binding
	prevTab   key.Binding
	chat      key.Binding
	stop      key.Binding
	yes       key.Binding
	no        key.Binding
	help      key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "haut")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bas")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "précédent")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "suivant")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("entrée", "valider")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("échap", "retour")),
		nextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "onglet suivant")),
		prevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("maj+tab", "onglet précédent")),
		chat:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "assistant")),
		stop:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "arrêter la lecture")),
		yes:       key.NewBinding(key.WithKeys("y", "o"), key.WithHelp("o", "oui")),
		no:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "non")),
		help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "aide")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quitter")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quitter")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.chat, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.enter, k.back, k.yes, k.no},
		{k.nextTab, k.prevTab, k.chat, k.stop},
		{k.help, k.quit},
	}
}

// binding builds a one-off help entry for a view.
func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}
