package store

import (
	"fmt"
	"slices"

	"github.com/iomz/hito/types"
)

// Hotkeys returns the stored hotkey list
func (s *ConfigStore) Hotkeys() ([]types.HotkeyData, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.Hotkeys, nil
}

// SetHotkeys replaces the whole hotkey list
func (s *ConfigStore) SetHotkeys(hotkeys []types.HotkeyData) error {
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		doc.Hotkeys = slices.Clone(hotkeys)
		return doc, nil
	})
}

// AddHotkey appends a hotkey, generating an id when none is given
func (s *ConfigStore) AddHotkey(hotkey types.HotkeyData) (types.HotkeyData, error) {
	if hotkey.ID == "" {
		hotkey.ID = s.newID()
	}
	if hotkey.Modifiers == nil {
		hotkey.Modifiers = []string{}
	}

	err := s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		doc.Hotkeys = append(doc.Hotkeys, hotkey)
		return doc, nil
	})
	if err != nil {
		return types.HotkeyData{}, err
	}
	return hotkey, nil
}

// UpdateHotkey replaces the hotkey with the same id
func (s *ConfigStore) UpdateHotkey(hotkey types.HotkeyData) error {
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		idx := doc.HotkeyIndex(hotkey.ID)
		if idx < 0 {
			return doc, fmt.Errorf("hotkey %q: %w", hotkey.ID, ErrNotFound)
		}
		doc.Hotkeys[idx] = hotkey
		return doc, nil
	})
}

// RemoveHotkey deletes the hotkey with the given id
func (s *ConfigStore) RemoveHotkey(id string) error {
	return s.Mutate(func(doc types.ConfigDocument) (types.ConfigDocument, error) {
		idx := doc.HotkeyIndex(id)
		if idx < 0 {
			return doc, fmt.Errorf("hotkey %q: %w", id, ErrNotFound)
		}
		doc.Hotkeys = slices.Delete(doc.Hotkeys, idx, idx+1)
		return doc, nil
	})
}
