package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iomz/hito/types"
)

// Limits for user-entered labels
const (
	maxCategoryName = 64
	maxHotkeyKey    = 32
)

// ValidateCategory checks a single category before it is stored
func ValidateCategory(c types.CategoryData) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if len([]rune(name)) > maxCategoryName {
		return fmt.Errorf("category name too long: %d characters (maximum %d)", len([]rune(name)), maxCategoryName)
	}

	// Color is optional; when given it must be #RGB or #RRGGBB
	if c.Color != "" && !IsValidColor(c.Color) {
		return fmt.Errorf("category %s: invalid color '%s' (expected #RRGGBB)", name, c.Color)
	}

	return nil
}

// ValidateHotkey checks a single hotkey binding before it is stored
func ValidateHotkey(h types.HotkeyData) error {
	if strings.TrimSpace(h.Key) == "" {
		return fmt.Errorf("hotkey key cannot be empty")
	}
	if len(h.Key) > maxHotkeyKey {
		return fmt.Errorf("hotkey key too long: '%s'", h.Key)
	}
	if strings.TrimSpace(h.Action) == "" {
		return fmt.Errorf("hotkey %s: action cannot be empty", h.Key)
	}

	// Check for unknown and duplicate modifiers
	seen := make(map[string]bool)
	for _, mod := range h.Modifiers {
		norm := NormalizeModifier(mod)
		if !IsValidModifier(norm) {
			return fmt.Errorf("hotkey %s: unknown modifier '%s'", h.Key, mod)
		}
		if seen[norm] {
			return fmt.Errorf("hotkey %s: duplicate modifier '%s'", h.Key, mod)
		}
		seen[norm] = true
	}

	return nil
}

// ValidateDocument checks a whole config document for consistency
func ValidateDocument(doc types.ConfigDocument) error {
	// Check for duplicate category ids and names
	ids := make(map[string]bool)
	names := make(map[string]bool)
	for _, c := range doc.Categories {
		if err := ValidateCategory(c); err != nil {
			return err
		}
		if c.ID != "" && ids[c.ID] {
			return fmt.Errorf("duplicate category id: %s", c.ID)
		}
		ids[c.ID] = true

		lower := strings.ToLower(strings.TrimSpace(c.Name))
		if names[lower] {
			return fmt.Errorf("duplicate category name: %s", c.Name)
		}
		names[lower] = true
	}

	// Track key combinations to check for conflicts
	combos := make(map[string]string)
	for _, h := range doc.Hotkeys {
		if err := ValidateHotkey(h); err != nil {
			return err
		}
		combo := Combination(h)
		if existing, exists := combos[combo]; exists {
			return fmt.Errorf("hotkey %s conflicts with action %s", combo, existing)
		}
		combos[combo] = h.Action
	}

	return nil
}

// ValidateChange checks a document edit. Only categories and hotkeys that
// differ from prev are validated, and the edit may not add to the duplicate
// ids, names or key combinations already present in prev. Stored data the
// edit does not touch is accepted as is.
func ValidateChange(prev, next types.ConfigDocument) error {
	for _, c := range next.Categories {
		if slices.Contains(prev.Categories, c) {
			continue
		}
		if err := ValidateCategory(c); err != nil {
			return err
		}
	}
	if err := noNewDuplicates("category id", categoryIDs(prev), categoryIDs(next)); err != nil {
		return err
	}
	if err := noNewDuplicates("category name", categoryNames(prev), categoryNames(next)); err != nil {
		return err
	}

	for _, h := range next.Hotkeys {
		if slices.ContainsFunc(prev.Hotkeys, func(p types.HotkeyData) bool { return sameHotkey(p, h) }) {
			continue
		}
		if err := ValidateHotkey(h); err != nil {
			return err
		}
	}
	return noNewDuplicates("hotkey combination", combinations(prev), combinations(next))
}

// noNewDuplicates fails when a key occurs more often in after than in before
// and more than once. Empty keys are ignored.
func noNewDuplicates(kind string, before, after []string) error {
	counts := make(map[string]int, len(before))
	for _, k := range before {
		counts[k]++
	}
	seen := make(map[string]int, len(after))
	for _, k := range after {
		if k == "" {
			continue
		}
		seen[k]++
		if seen[k] > 1 && seen[k] > counts[k] {
			return fmt.Errorf("duplicate %s: %s", kind, k)
		}
	}
	return nil
}

func categoryIDs(doc types.ConfigDocument) []string {
	ids := make([]string, len(doc.Categories))
	for i, c := range doc.Categories {
		ids[i] = c.ID
	}
	return ids
}

func categoryNames(doc types.ConfigDocument) []string {
	names := make([]string, len(doc.Categories))
	for i, c := range doc.Categories {
		names[i] = strings.ToLower(strings.TrimSpace(c.Name))
	}
	return names
}

func combinations(doc types.ConfigDocument) []string {
	combos := make([]string, len(doc.Hotkeys))
	for i, h := range doc.Hotkeys {
		combos[i] = Combination(h)
	}
	return combos
}

func sameHotkey(a, b types.HotkeyData) bool {
	return a.ID == b.ID && a.Key == b.Key && a.Action == b.Action && slices.Equal(a.Modifiers, b.Modifiers)
}

// IsValidColor checks for a CSS hex color: #RGB or #RRGGBB
func IsValidColor(color string) bool {
	if !strings.HasPrefix(color, "#") {
		return false
	}
	hex := color[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	for _, r := range hex {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

// modifiers accepted on hotkeys, after normalization
var modifiers = []string{"ctrl", "alt", "shift", "meta"}

// NormalizeModifier lowercases a modifier and folds platform aliases
func NormalizeModifier(mod string) string {
	mod = strings.ToLower(strings.TrimSpace(mod))
	switch mod {
	case "control":
		return "ctrl"
	case "cmd", "command", "super", "win":
		return "meta"
	case "option", "opt":
		return "alt"
	}
	return mod
}

// IsValidModifier checks if a normalized modifier is recognized
func IsValidModifier(mod string) bool {
	return slices.Contains(modifiers, mod)
}

// Combination renders a hotkey as a canonical "ctrl+shift+k" string so that
// bindings differing only in modifier order or case compare equal
func Combination(h types.HotkeyData) string {
	mods := make([]string, 0, len(h.Modifiers))
	for _, m := range h.Modifiers {
		mods = append(mods, NormalizeModifier(m))
	}
	slices.Sort(mods)
	return strings.Join(append(mods, strings.ToLower(h.Key)), "+")
}
