package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Window size constants
const (
	defaultWidth  = 1280
	defaultHeight = 800
	minWidth      = 400
	minHeight     = 300
)

// ExtensionSet is a case-insensitive set of file extensions
type ExtensionSet map[string]bool

// NewExtensionSet builds a set from extension strings. Each entry is
// normalized to lowercase with a leading dot, so "JPG", ".jpg" and "jpg"
// all produce the same member.
func NewExtensionSet(extensions []string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// Contains reports whether the extension is in the set
func (s ExtensionSet) Contains(ext string) bool {
	return s[strings.ToLower(ext)]
}

// ContainsPath reports whether the path's extension is in the set
func (s ExtensionSet) ContainsPath(path string) bool {
	return s.Contains(filepath.Ext(path))
}

type Config struct {
	WindowWidth       int
	WindowHeight      int
	ZoomStep          float64 // Keyboard zoom multiplier per step
	WheelZoomStep     float64 // Wheel zoom multiplier per notch
	PanStep           float64 // Keyboard pan distance in pixels
	FontSize          float64
	SortMethod        int
	Fullscreen        bool
	WatchDebounce     time.Duration
	ImageExtensions   []string
	ArchiveExtensions []string
	Keybindings       map[string][]string
	Mousebindings     map[string][]string
	MouseSettings     MouseSettings
}

// DefaultConfig returns the built-in configuration. There is no config
// file; callers run the result through validateConfig after applying any
// programmatic overrides.
func DefaultConfig() Config {
	return Config{
		WindowWidth:   defaultWidth,
		WindowHeight:  defaultHeight,
		ZoomStep:      1.25,
		WheelZoomStep: 1.1,
		PanStep:       64.0,
		FontSize:      16.0,
		SortMethod:    SortLexicographic,
		Fullscreen:    false,
		WatchDebounce: 250 * time.Millisecond,
		ImageExtensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".bmp",
			".webp", ".tiff", ".tif", ".ico",
		},
		ArchiveExtensions: []string{
			".zip", ".cbz", ".rar", ".cbr", ".7z", ".cb7",
		},
		Keybindings:   GetDefaultKeybindings(),
		Mousebindings: GetDefaultMousebindings(),
		MouseSettings: GetDefaultMouseSettings(),
	}
}

// validateConfig sanitizes a configuration, replacing out-of-range values
// with defaults. It returns the sanitized config and a warning for every
// field that was corrected.
func validateConfig(config Config) (Config, []string) {
	warnings := []string{}

	// Validate minimum window size
	if config.WindowWidth < minWidth {
		warnings = append(warnings, fmt.Sprintf("window width %d below minimum, using %d", config.WindowWidth, defaultWidth))
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		warnings = append(warnings, fmt.Sprintf("window height %d below minimum, using %d", config.WindowHeight, defaultHeight))
		config.WindowHeight = defaultHeight
	}

	// Validate zoom steps (must exceed 1.0 or zooming makes no progress)
	if config.ZoomStep <= 1.0 {
		warnings = append(warnings, fmt.Sprintf("zoom step %.2f out of range, using 1.25", config.ZoomStep))
		config.ZoomStep = 1.25
	}
	if config.WheelZoomStep <= 1.0 {
		warnings = append(warnings, fmt.Sprintf("wheel zoom step %.2f out of range, using 1.10", config.WheelZoomStep))
		config.WheelZoomStep = 1.1
	}

	// Validate pan step
	if config.PanStep <= 0 {
		warnings = append(warnings, fmt.Sprintf("pan step %.1f out of range, using 64", config.PanStep))
		config.PanStep = 64.0
	}

	// Validate font size (minimum 10px for readability)
	if config.FontSize < 10.0 {
		warnings = append(warnings, fmt.Sprintf("font size %.1f below minimum, using 16", config.FontSize))
		config.FontSize = 16.0
	}

	// Validate sort method
	if config.SortMethod < SortLexicographic || config.SortMethod > SortEntryOrder {
		warnings = append(warnings, fmt.Sprintf("unknown sort method %d, using lexicographic", config.SortMethod))
		config.SortMethod = SortLexicographic
	}

	// Validate watch debounce (minimum 50ms, maximum 5s)
	if config.WatchDebounce < 50*time.Millisecond || config.WatchDebounce > 5*time.Second {
		warnings = append(warnings, fmt.Sprintf("watch debounce %v out of range, using 250ms", config.WatchDebounce))
		config.WatchDebounce = 250 * time.Millisecond
	}

	// Validate extension lists - an empty list would make every load fail
	if len(config.ImageExtensions) == 0 {
		warnings = append(warnings, "empty image extension list, using defaults")
		config.ImageExtensions = DefaultConfig().ImageExtensions
	}
	if len(config.ArchiveExtensions) == 0 {
		warnings = append(warnings, "empty archive extension list, using defaults")
		config.ArchiveExtensions = DefaultConfig().ArchiveExtensions
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}
		if err := validateKeybindings(config.Keybindings); err != nil {
			warnings = append(warnings, fmt.Sprintf("keybinding errors, using defaults: %v", err))
			config.Keybindings = GetDefaultKeybindings()
		}
	}

	// Validate mousebindings the same way
	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		defaults := GetDefaultMousebindings()
		for action, defaultButtons := range defaults {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultButtons
			}
		}
		if err := validateMousebindings(config.Mousebindings); err != nil {
			warnings = append(warnings, fmt.Sprintf("mousebinding errors, using defaults: %v", err))
			config.Mousebindings = GetDefaultMousebindings()
		}
	}

	// Validate mouse settings
	if config.MouseSettings.WheelSensitivity < 0.1 || config.MouseSettings.WheelSensitivity > 10.0 {
		config.MouseSettings.WheelSensitivity = 1.0
	}
	if config.MouseSettings.DoubleClickTime < 100 || config.MouseSettings.DoubleClickTime > 1000 {
		config.MouseSettings.DoubleClickTime = 300
	}
	if config.MouseSettings.DragThreshold < 0 || config.MouseSettings.DragThreshold > 64 {
		config.MouseSettings.DragThreshold = 4
	}
	if config.MouseSettings.DragSensitivity < 0.1 || config.MouseSettings.DragSensitivity > 10.0 {
		config.MouseSettings.DragSensitivity = 1.0
	}

	return config, warnings
}

// validateKeybindings checks every key string and detects conflicts where
// one combination is bound to two actions
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	keyMapping := buildKeyMapping()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if _, ok := parseKeyString(keyStr, keyMapping); !ok {
				return fmt.Errorf("invalid key '%s' for action '%s'", keyStr, action)
			}
			if existingAction, exists := keyToAction[keyStr]; exists && existingAction != action {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateMousebindings checks every mouse binding string and detects
// conflicts where one combination is bound to two actions
func validateMousebindings(mousebindings map[string][]string) error {
	buttonToAction := make(map[string]string)
	mouseMapping := buildMouseMapping()

	for action, buttons := range mousebindings {
		for _, mouseStr := range buttons {
			if _, ok := parseMouseString(mouseStr, mouseMapping); !ok {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s'", mouseStr, action)
			}
			if existingAction, exists := buttonToAction[mouseStr]; exists && existingAction != action {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existingAction, action)
			}
			buttonToAction[mouseStr] = action
		}
	}

	return nil
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	strategy := GetSortStrategy(sortMethod)
	return strategy.Name()
}
