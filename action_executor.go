package main

// ActionExecutor provides centralized action execution logic shared by the
// keyboard and mouse binding managers.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// Prompt-opening actions are ignored while a prompt is already active.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpFirst()
	case "jump_last":
		inputActions.JumpLast()
	case "page_input":
		if !inputState.IsInPromptMode() {
			inputActions.StartPageInput()
		}
	case "search":
		if !inputState.IsInPromptMode() {
			inputActions.StartSearch()
		}
	case "delete":
		inputActions.DeleteImage()
	case "rename":
		if !inputState.IsInPromptMode() {
			inputActions.StartRename()
		}
	case "open_path":
		if !inputState.IsInPromptMode() {
			inputActions.StartOpenPath()
		}
	case "reload":
		inputActions.ReloadDirectory()
	case "cycle_sort":
		inputActions.CycleSortMethod()
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "zoom_reset":
		inputActions.ZoomReset()
	case "zoom_fit":
		inputActions.ZoomFit()
	case "pan_up":
		inputActions.PanUp()
	case "pan_down":
		inputActions.PanDown()
	case "pan_left":
		inputActions.PanLeft()
	case "pan_right":
		inputActions.PanRight()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the shared instance used by the binding managers
var globalActionExecutor = NewActionExecutor()
