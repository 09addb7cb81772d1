package main

import (
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeybindingManager resolves action names to key combinations
type KeybindingManager struct {
	keybindings map[string][]string
	keyMapping  map[string]ebiten.Key
}

// NewKeybindingManager creates a new KeybindingManager
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	return &KeybindingManager{
		keybindings: keybindings,
		keyMapping:  buildKeyMapping(),
	}
}

// buildKeyMapping returns a mapping from string names to Ebiten keys. The
// letter, digit, and numpad ranges are contiguous in Ebiten, so those rows
// are generated.
func buildKeyMapping() map[string]ebiten.Key {
	m := map[string]ebiten.Key{
		"Space":          ebiten.KeySpace,
		"Backspace":      ebiten.KeyBackspace,
		"Enter":          ebiten.KeyEnter,
		"NumpadEnter":    ebiten.KeyNumpadEnter,
		"Escape":         ebiten.KeyEscape,
		"Tab":            ebiten.KeyTab,
		"Home":           ebiten.KeyHome,
		"End":            ebiten.KeyEnd,
		"PageUp":         ebiten.KeyPageUp,
		"PageDown":       ebiten.KeyPageDown,
		"Delete":         ebiten.KeyDelete,
		"Insert":         ebiten.KeyInsert,
		"ArrowUp":        ebiten.KeyArrowUp,
		"ArrowDown":      ebiten.KeyArrowDown,
		"ArrowLeft":      ebiten.KeyArrowLeft,
		"ArrowRight":     ebiten.KeyArrowRight,
		"Comma":          ebiten.KeyComma,
		"Period":         ebiten.KeyPeriod,
		"Slash":          ebiten.KeySlash,
		"Semicolon":      ebiten.KeySemicolon,
		"Quote":          ebiten.KeyQuote,
		"Minus":          ebiten.KeyMinus,
		"Equal":          ebiten.KeyEqual,
		"NumpadAdd":      ebiten.KeyNumpadAdd,
		"NumpadSubtract": ebiten.KeyNumpadSubtract,
		"F1":             ebiten.KeyF1,
		"F2":             ebiten.KeyF2,
		"F3":             ebiten.KeyF3,
		"F4":             ebiten.KeyF4,
		"F5":             ebiten.KeyF5,
		"F6":             ebiten.KeyF6,
		"F7":             ebiten.KeyF7,
		"F8":             ebiten.KeyF8,
		"F9":             ebiten.KeyF9,
		"F10":            ebiten.KeyF10,
		"F11":            ebiten.KeyF11,
		"F12":            ebiten.KeyF12,
	}
	for i := 0; i < 26; i++ {
		m["Key"+string(rune('A'+i))] = ebiten.KeyA + ebiten.Key(i)
	}
	for i := 0; i < 10; i++ {
		m["Key"+strconv.Itoa(i)] = ebiten.Key0 + ebiten.Key(i)
		m["Numpad"+strconv.Itoa(i)] = ebiten.KeyNumpad0 + ebiten.Key(i)
	}
	return m
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseKeyString parses a key string like "Ctrl+ArrowLeft" into a
// KeyCombination. The last part must be a known key name; leading parts are
// the modifiers.
func parseKeyString(keyStr string, keyMapping map[string]ebiten.Key) (*KeyCombination, bool) {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return nil, false
	}

	combination := &KeyCombination{}

	keyName := parts[len(parts)-1]
	key, exists := keyMapping[keyName]
	if !exists {
		return nil, false
	}
	combination.Key = key

	for i := 0; i < len(parts)-1; i++ {
		switch strings.ToLower(parts[i]) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		}
	}

	return combination, true
}

// isKeyPressed checks if a key combination was just pressed, requiring the
// modifier state to match exactly.
func (km *KeybindingManager) isKeyPressed(combination *KeyCombination) bool {
	if !inpututil.IsKeyJustPressed(combination.Key) {
		return false
	}

	if combination.Shift != ebiten.IsKeyPressed(ebiten.KeyShift) {
		return false
	}
	if combination.Ctrl != ebiten.IsKeyPressed(ebiten.KeyControl) {
		return false
	}
	if combination.Alt != ebiten.IsKeyPressed(ebiten.KeyAlt) {
		return false
	}

	return true
}

// CheckAction checks if any keybinding for the given action is pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	keyStrings, exists := km.keybindings[action]
	if !exists {
		return false
	}

	for _, keyStr := range keyStrings {
		combination, valid := parseKeyString(keyStr, km.keyMapping)
		if valid && km.isKeyPressed(combination) {
			return true
		}
	}

	return false
}

// ExecuteAction executes the given action if one of its keybindings fired
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !km.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}
