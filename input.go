package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler handles all keyboard and mouse input processing
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager

	inputChars []rune

	// Drag pan state
	pressed      bool
	dragActive   bool
	pressX       int
	pressY       int
	lastX, lastY int
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
	}
}

// HandleInput processes all input for the current frame.
// Returns true if any input was processed, false otherwise.
func (h *InputHandler) HandleInput() bool {
	if h.inputState.IsInPromptMode() {
		return h.handlePromptInput()
	}

	inputProcessed := false

	inputProcessed = h.handleGlobalKeys() || inputProcessed
	inputProcessed = h.handleNavigationKeys() || inputProcessed
	inputProcessed = h.handleFileKeys() || inputProcessed
	inputProcessed = h.handleZoomPanKeys() || inputProcessed
	inputProcessed = h.handleMouseBindings() || inputProcessed
	inputProcessed = h.handleWheelZoom() || inputProcessed
	inputProcessed = h.handleDragPan() || inputProcessed

	return inputProcessed
}

// handlePromptInput consumes all input while a text prompt overlay is open
func (h *InputHandler) handlePromptInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.inputActions.CancelPrompt()
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		h.inputActions.CommitPrompt()
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		buffer := []rune(h.inputState.GetPromptBuffer())
		if len(buffer) > 0 {
			h.inputActions.UpdatePromptBuffer(string(buffer[:len(buffer)-1]))
		}
		return true
	}

	h.inputChars = ebiten.AppendInputChars(h.inputChars[:0])
	if len(h.inputChars) == 0 {
		return false
	}

	buffer := h.inputState.GetPromptBuffer()
	digitsOnly := h.inputState.GetPromptKind() == PromptPage
	changed := false
	for _, r := range h.inputChars {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if digitsOnly && (r < '0' || r > '9') {
			continue
		}
		buffer += string(r)
		changed = true
	}
	if changed {
		h.inputActions.UpdatePromptBuffer(buffer)
	}
	return changed
}

func (h *InputHandler) handleGlobalKeys() bool {
	inputProcessed := false

	if h.keybindingManager.ExecuteAction("exit", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("help", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("info", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("fullscreen", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	return inputProcessed
}

func (h *InputHandler) handleNavigationKeys() bool {
	inputProcessed := false

	if h.keybindingManager.ExecuteAction("next", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("previous", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("jump_first", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("jump_last", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("page_input", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("search", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	return inputProcessed
}

func (h *InputHandler) handleFileKeys() bool {
	inputProcessed := false

	if h.keybindingManager.ExecuteAction("delete", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("rename", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("open_path", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("reload", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("cycle_sort", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	return inputProcessed
}

func (h *InputHandler) handleZoomPanKeys() bool {
	inputProcessed := false

	if h.keybindingManager.ExecuteAction("zoom_in", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("zoom_out", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("zoom_reset", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("zoom_fit", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("pan_up", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("pan_down", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("pan_left", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("pan_right", h.inputActions, h.inputState) {
		inputProcessed = true
	}

	return inputProcessed
}

// handleMouseBindings runs every configured mouse binding, covering the
// actions with button, wheel or double-click triggers
func (h *InputHandler) handleMouseBindings() bool {
	if !h.mousebindingManager.GetSettings().EnableMouse {
		return false
	}

	inputProcessed := false
	for action := range h.mousebindingManager.GetMousebindings() {
		if h.mousebindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
			inputProcessed = true
		}
	}
	return inputProcessed
}

// handleWheelZoom zooms at the cursor on unmodified wheel movement.
// Modified wheel movement belongs to the mouse bindings.
func (h *InputHandler) handleWheelZoom() bool {
	settings := h.mousebindingManager.GetSettings()
	if !settings.EnableMouse {
		return false
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyAlt) {
		return false
	}

	_, wheelY := ebiten.Wheel()
	wheelY *= settings.WheelSensitivity
	if settings.WheelInverted {
		wheelY = -wheelY
	}
	if wheelY == 0 {
		return false
	}

	x, y := ebiten.CursorPosition()
	if wheelY > 0 {
		h.inputActions.ZoomInAt(float64(x), float64(y))
	} else {
		h.inputActions.ZoomOutAt(float64(x), float64(y))
	}
	return true
}

// handleDragPan pans the image while the left button is held. The press
// only becomes a drag after the cursor moves past the threshold, keeping
// plain clicks distinct.
func (h *InputHandler) handleDragPan() bool {
	settings := h.mousebindingManager.GetSettings()
	if !settings.EnableMouse || !settings.EnableDragPan {
		return false
	}

	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.pressed = true
		h.dragActive = false
		h.pressX, h.pressY = x, y
		h.lastX, h.lastY = x, y
		return false
	}

	if !h.pressed {
		return false
	}

	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		h.pressed = false
		wasDragging := h.dragActive
		h.dragActive = false
		return wasDragging
	}

	if !h.dragActive {
		dx := x - h.pressX
		dy := y - h.pressY
		if dx*dx+dy*dy < settings.DragThreshold*settings.DragThreshold {
			return false
		}
		h.dragActive = true
	}

	dx := float64(x-h.lastX) * settings.DragSensitivity
	dy := float64(y-h.lastY) * settings.DragSensitivity
	h.lastX, h.lastY = x, y
	if dx == 0 && dy == 0 {
		return false
	}

	h.inputActions.PanByDelta(dx, dy)
	return true
}
