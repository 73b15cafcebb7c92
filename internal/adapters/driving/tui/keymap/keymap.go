// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back leaves help or the filter input.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// SwitchView alternates between nearby courts and favourites.
	SwitchView key.Binding

	// Toggle adds or removes the selected court from favourites.
	Toggle key.Binding

	// Refresh refetches courts around the last location.
	Refresh key.Binding

	// ClearCache drops cached courts.
	ClearCache key.Binding

	// Filter focuses the name/address filter.
	Filter key.Binding

	// Apply confirms the filter input.
	Apply key.Binding

	// Cleanup removes duplicate favourites.
	Cleanup key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "nearby/favourites"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space/f", "favourite"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ClearCache: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear cache"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cleanup: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove duplicates"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchView, k.Quit, k.Help}
}

// NearbyHelp returns keybindings for the nearby view.
func (k *KeyMap) NearbyHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Filter, k.Refresh, k.SwitchView, k.Quit}
}

// FavoritesHelp returns keybindings for the favourites view.
func (k *KeyMap) FavoritesHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Cleanup, k.SwitchView, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchView},
		{k.Toggle, k.Filter, k.Apply},
		{k.Refresh, k.ClearCache, k.Cleanup},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
