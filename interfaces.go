package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2500 * time.Millisecond
)

// PromptKind identifies which text prompt overlay is active
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptRename
	PromptOpenPath
	PromptPage
	PromptSearch
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Rendering data
	GetCurrentImage() *ebiten.Image
	GetViewState() *ViewState
	IsFullscreen() bool
	IsLoading() bool

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetPromptKind() PromptKind
	GetPromptBuffer() string
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetCurrentPath() string
	GetPageNumber() int
	GetTotalPagesCount() int
	GetSortMethodName() string
	GetImageInfo() *ImageInfo
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
	GetFontSize() float64
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpFirst()
	JumpLast()
	JumpToPage(page int)

	// File operations
	DeleteImage()
	ReloadDirectory()
	CycleSortMethod()

	// Prompt overlays
	StartRename()
	StartOpenPath()
	StartPageInput()
	StartSearch()
	UpdatePromptBuffer(buffer string)
	CommitPrompt()
	CancelPrompt()

	// Zoom and pan actions
	ZoomIn()
	ZoomOut()
	ZoomInAt(anchorX, anchorY float64)
	ZoomOutAt(anchorX, anchorY float64)
	ZoomReset()
	ZoomFit()
	PanUp()
	PanDown()
	PanLeft()
	PanRight()
	PanByDelta(deltaX, deltaY float64) // Mouse drag pan

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetCurrentIndex() int
	GetTotalPagesCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsInPromptMode() bool
	GetPromptKind() PromptKind
	GetPromptBuffer() string
}
