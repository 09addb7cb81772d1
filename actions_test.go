package main

import "testing"

// recordingActions implements InputActions and InputState, recording each
// dispatched method name
type recordingActions struct {
	calls      []string
	promptMode bool
}

func (r *recordingActions) record(name string) { r.calls = append(r.calls, name) }

func (r *recordingActions) Exit()              { r.record("Exit") }
func (r *recordingActions) ToggleHelp()        { r.record("ToggleHelp") }
func (r *recordingActions) ToggleInfo()        { r.record("ToggleInfo") }
func (r *recordingActions) ToggleFullscreen()  { r.record("ToggleFullscreen") }
func (r *recordingActions) NavigateNext()      { r.record("NavigateNext") }
func (r *recordingActions) NavigatePrevious()  { r.record("NavigatePrevious") }
func (r *recordingActions) JumpFirst()         { r.record("JumpFirst") }
func (r *recordingActions) JumpLast()          { r.record("JumpLast") }
func (r *recordingActions) JumpToPage(int)     { r.record("JumpToPage") }
func (r *recordingActions) DeleteImage()       { r.record("DeleteImage") }
func (r *recordingActions) ReloadDirectory()   { r.record("ReloadDirectory") }
func (r *recordingActions) CycleSortMethod()   { r.record("CycleSortMethod") }
func (r *recordingActions) StartRename()       { r.record("StartRename") }
func (r *recordingActions) StartOpenPath()     { r.record("StartOpenPath") }
func (r *recordingActions) StartPageInput()    { r.record("StartPageInput") }
func (r *recordingActions) StartSearch()       { r.record("StartSearch") }
func (r *recordingActions) CommitPrompt()      { r.record("CommitPrompt") }
func (r *recordingActions) CancelPrompt()      { r.record("CancelPrompt") }
func (r *recordingActions) ZoomIn()            { r.record("ZoomIn") }
func (r *recordingActions) ZoomOut()           { r.record("ZoomOut") }
func (r *recordingActions) ZoomReset()         { r.record("ZoomReset") }
func (r *recordingActions) ZoomFit()           { r.record("ZoomFit") }
func (r *recordingActions) PanUp()             { r.record("PanUp") }
func (r *recordingActions) PanDown()           { r.record("PanDown") }
func (r *recordingActions) PanLeft()           { r.record("PanLeft") }
func (r *recordingActions) PanRight()          { r.record("PanRight") }

func (r *recordingActions) UpdatePromptBuffer(string)       { r.record("UpdatePromptBuffer") }
func (r *recordingActions) ZoomInAt(float64, float64)       { r.record("ZoomInAt") }
func (r *recordingActions) ZoomOutAt(float64, float64)      { r.record("ZoomOutAt") }
func (r *recordingActions) PanByDelta(float64, float64)     { r.record("PanByDelta") }
func (r *recordingActions) ShowOverlayMessage(string)       { r.record("ShowOverlayMessage") }

func (r *recordingActions) GetCurrentIndex() int     { return 0 }
func (r *recordingActions) GetTotalPagesCount() int  { return 0 }
func (r *recordingActions) IsInPromptMode() bool     { return r.promptMode }
func (r *recordingActions) GetPromptBuffer() string  { return "" }
func (r *recordingActions) GetPromptKind() PromptKind {
	if r.promptMode {
		return PromptRename
	}
	return PromptNone
}

func TestExecuteActionDispatch(t *testing.T) {
	tests := []struct {
		action   string
		expected string
	}{
		{"exit", "Exit"},
		{"help", "ToggleHelp"},
		{"info", "ToggleInfo"},
		{"fullscreen", "ToggleFullscreen"},
		{"next", "NavigateNext"},
		{"previous", "NavigatePrevious"},
		{"jump_first", "JumpFirst"},
		{"jump_last", "JumpLast"},
		{"page_input", "StartPageInput"},
		{"search", "StartSearch"},
		{"delete", "DeleteImage"},
		{"rename", "StartRename"},
		{"open_path", "StartOpenPath"},
		{"reload", "ReloadDirectory"},
		{"cycle_sort", "CycleSortMethod"},
		{"zoom_in", "ZoomIn"},
		{"zoom_out", "ZoomOut"},
		{"zoom_reset", "ZoomReset"},
		{"zoom_fit", "ZoomFit"},
		{"pan_up", "PanUp"},
		{"pan_down", "PanDown"},
		{"pan_left", "PanLeft"},
		{"pan_right", "PanRight"},
	}

	executor := NewActionExecutor()
	for _, test := range tests {
		recorder := &recordingActions{}
		if !executor.ExecuteAction(test.action, recorder, recorder) {
			t.Errorf("ExecuteAction(%q): expected true", test.action)
			continue
		}
		if len(recorder.calls) != 1 || recorder.calls[0] != test.expected {
			t.Errorf("ExecuteAction(%q): expected call %s, got %v", test.action, test.expected, recorder.calls)
		}
	}
}

func TestExecuteActionUnknown(t *testing.T) {
	executor := NewActionExecutor()
	recorder := &recordingActions{}

	if executor.ExecuteAction("no_such_action", recorder, recorder) {
		t.Error("Expected false for unknown action")
	}
	if len(recorder.calls) != 0 {
		t.Errorf("Expected no calls, got %v", recorder.calls)
	}
}

func TestExecuteActionPromptGating(t *testing.T) {
	executor := NewActionExecutor()

	// Prompt-opening actions are swallowed while a prompt is active
	for _, action := range []string{"rename", "open_path", "page_input", "search"} {
		recorder := &recordingActions{promptMode: true}
		if !executor.ExecuteAction(action, recorder, recorder) {
			t.Errorf("ExecuteAction(%q): expected true", action)
		}
		if len(recorder.calls) != 0 {
			t.Errorf("ExecuteAction(%q) in prompt mode: expected no calls, got %v", action, recorder.calls)
		}
	}
}

func TestActionDefinitionsParseable(t *testing.T) {
	keyMapping := buildKeyMapping()
	mouseMapping := buildMouseMapping()

	for _, def := range actionDefinitions {
		if len(def.Keys) == 0 && len(def.MouseActions) == 0 {
			t.Errorf("Action %s has no default binding", def.Name)
		}
		for _, keyStr := range def.Keys {
			if _, ok := parseKeyString(keyStr, keyMapping); !ok {
				t.Errorf("Action %s: unparseable key %q", def.Name, keyStr)
			}
		}
		for _, mouseStr := range def.MouseActions {
			if _, ok := parseMouseString(mouseStr, mouseMapping); !ok {
				t.Errorf("Action %s: unparseable mouse binding %q", def.Name, mouseStr)
			}
		}
	}
}

func TestDefaultBindingsHaveNoConflicts(t *testing.T) {
	if err := validateKeybindings(GetDefaultKeybindings()); err != nil {
		t.Errorf("Default keybindings invalid: %v", err)
	}
	if err := validateMousebindings(GetDefaultMousebindings()); err != nil {
		t.Errorf("Default mousebindings invalid: %v", err)
	}
}
