package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit"},
	{"help", []string{"KeyH", "F1"}, []string{}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide image details"},
	{"fullscreen", []string{"F11"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},

	{"next", []string{"ArrowRight", "Space", "KeyN"}, []string{"Shift+WheelDown", "Forward"}, "Next image"},
	{"previous", []string{"ArrowLeft", "Backspace", "KeyP"}, []string{"Shift+WheelUp", "Back"}, "Previous image"},
	{"jump_first", []string{"Home"}, []string{}, "Jump to first image"},
	{"jump_last", []string{"End"}, []string{}, "Jump to last image"},
	{"page_input", []string{"KeyG"}, []string{}, "Go to image number"},
	{"search", []string{"Slash"}, []string{}, "Search file names"},

	{"delete", []string{"Delete"}, []string{}, "Move image to trash"},
	{"rename", []string{"F2"}, []string{}, "Rename image file"},
	{"open_path", []string{"KeyO"}, []string{}, "Open a file by path"},
	{"reload", []string{"KeyR"}, []string{}, "Reload directory"},
	{"cycle_sort", []string{"KeyS"}, []string{}, "Cycle sort order"},

	{"zoom_in", []string{"Equal", "NumpadAdd"}, []string{"Ctrl+WheelUp"}, "Zoom in"},
	{"zoom_out", []string{"Minus", "NumpadSubtract"}, []string{"Ctrl+WheelDown"}, "Zoom out"},
	{"zoom_reset", []string{"Key1"}, []string{"MiddleClick"}, "Zoom to 100%"},
	{"zoom_fit", []string{"Key0", "KeyF"}, []string{}, "Fit to window"},

	{"pan_up", []string{"ArrowUp"}, []string{}, "Pan up"},
	{"pan_down", []string{"ArrowDown"}, []string{}, "Pan down"},
	{"pan_left", []string{"Ctrl+ArrowLeft"}, []string{}, "Pan left"},
	{"pan_right", []string{"Ctrl+ArrowRight"}, []string{}, "Pan right"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
