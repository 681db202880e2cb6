package types

import (
	"maps"
	"slices"
)

// CategoryData is a user-defined category
type CategoryData struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// HotkeyData binds a key combination to a UI action
type HotkeyData struct {
	ID        string   `json:"id" yaml:"id"`
	Key       string   `json:"key" yaml:"key"`
	Modifiers []string `json:"modifiers" yaml:"modifiers"`
	Action    string   `json:"action" yaml:"action"`
}

// ConfigDocument is the single persisted application configuration.
// It is always saved whole; partial documents are never written.
type ConfigDocument struct {
	Categories []CategoryData `json:"categories" yaml:"categories"`
	Hotkeys    []HotkeyData   `json:"hotkeys" yaml:"hotkeys"`

	// DirectoryPaths maps an absolute working directory to a custom sidecar
	// file location. nil when never populated.
	DirectoryPaths map[string]string `json:"directory_paths,omitempty" yaml:"directory_paths,omitempty"`
}

// NewConfigDocument returns the default document used when no file exists
func NewConfigDocument() ConfigDocument {
	return ConfigDocument{
		Categories: []CategoryData{},
		Hotkeys:    []HotkeyData{},
	}
}

// Normalize replaces nil slices with empty ones so the document always
// serializes its lists as [] rather than null
func (d *ConfigDocument) Normalize() {
	if d.Categories == nil {
		d.Categories = []CategoryData{}
	}
	if d.Hotkeys == nil {
		d.Hotkeys = []HotkeyData{}
	}
	for i := range d.Hotkeys {
		if d.Hotkeys[i].Modifiers == nil {
			d.Hotkeys[i].Modifiers = []string{}
		}
	}
}

// Clone returns a deep copy of the document
func (d ConfigDocument) Clone() ConfigDocument {
	out := ConfigDocument{
		Categories: slices.Clone(d.Categories),
		Hotkeys:    slices.Clone(d.Hotkeys),
	}
	for i := range out.Hotkeys {
		out.Hotkeys[i].Modifiers = slices.Clone(out.Hotkeys[i].Modifiers)
	}
	if d.DirectoryPaths != nil {
		out.DirectoryPaths = maps.Clone(d.DirectoryPaths)
	}
	return out
}

// CategoryIndex returns the position of a category id, or -1
func (d ConfigDocument) CategoryIndex(id string) int {
	for i, c := range d.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// HotkeyIndex returns the position of a hotkey id, or -1
func (d ConfigDocument) HotkeyIndex(id string) int {
	for i, h := range d.Hotkeys {
		if h.ID == id {
			return i
		}
	}
	return -1
}
