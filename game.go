package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"
)

// Game owns all runtime state and implements ebiten.Game together with the
// RenderState, InputActions and InputState interfaces
type Game struct {
	config Config
	fs     afero.Fs

	browser *DirectoryBrowser
	view    *ViewState
	loader  *ImageLoader
	watcher *DirectoryWatcher

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	inputHandler        *InputHandler
	renderer            *Renderer

	current    *ebiten.Image
	loadSeq    int
	loading    bool
	pendingFit bool

	sortMethod int

	fullscreen bool
	savedWinW  int
	savedWinH  int

	showHelp bool
	showInfo bool

	promptKind   PromptKind
	promptBuffer string

	overlayMessage     string
	overlayMessageTime time.Time

	info *ImageInfo

	lastViewportW int
	lastViewportH int

	shouldExit bool
}

// NewGame wires up the browser, loader, watcher, input and rendering for a
// validated config
func NewGame(config Config, fsys afero.Fs) *Game {
	g := &Game{
		config:     config,
		fs:         fsys,
		browser:    NewDirectoryBrowser(fsys, config, NewFileTrash(fsys)),
		view:       NewViewState(),
		loader:     NewImageLoader(fsys),
		sortMethod: config.SortMethod,
		fullscreen: config.Fullscreen,
	}
	g.view.SetViewport(config.WindowWidth, config.WindowHeight)
	g.lastViewportW = config.WindowWidth
	g.lastViewportH = config.WindowHeight

	watcher, err := NewDirectoryWatcher(config.WatchDebounce)
	if err != nil {
		log.Printf("Warning: directory watching disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.MouseSettings)
	g.inputHandler = NewInputHandler(g, g, g.keybindingManager, g.mousebindingManager)
	g.renderer = NewRenderer(g)

	return g
}

// Close releases the loader worker and the directory watcher
func (g *Game) Close() {
	g.loader.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			debugLog("Watcher close: %v", err)
		}
	}
}

// Update runs one frame: apply finished loads and watcher events, retry a
// deferred fit, then process input
func (g *Game) Update() error {
	if g.shouldExit {
		return ebiten.Termination
	}

	g.drainLoaderResults()
	g.drainWatcherEvents()

	if g.pendingFit && g.view.FitToWindow() {
		g.pendingFit = false
	}

	g.inputHandler.HandleInput()

	return nil
}

// Draw delegates to the renderer
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout adopts the window size as the render size and keeps the view state
// in step with it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.lastViewportW || outsideHeight != g.lastViewportH {
		g.lastViewportW = outsideWidth
		g.lastViewportH = outsideHeight
		g.view.SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// OpenPath loads a file, directory or archive and starts displaying its
// first selected image. Failures surface as overlay messages.
func (g *Game) OpenPath(path string) {
	hadImages := g.browser.Count() > 0

	result, err := g.browser.Load(path)
	if err != nil {
		g.ShowOverlayMessage(errorMessage(err))
		if hadImages && g.browser.Count() == 0 {
			// The failed load dropped the previous list
			g.clearCurrent()
			g.syncWatcher()
			g.updateWindowTitle()
		}
		return
	}

	debugLog("Loaded %s: image %d of %d", result.Path, result.Index+1, result.Count)
	g.syncWatcher()
	g.loadCurrent()
	g.updateWindowTitle()
}

// loadCurrent submits the selected image for decoding, or clears the display
// when nothing is selected
func (g *Game) loadCurrent() {
	src, ok := g.browser.CurrentSource()
	if !ok {
		g.clearCurrent()
		return
	}
	g.loadSeq++
	g.loading = true
	g.loader.Submit(g.loadSeq, src)
}

func (g *Game) clearCurrent() {
	g.current = nil
	g.info = nil
	g.loading = false
	g.view.Clear()
}

// syncWatcher points the watcher at the browser's directory. Archive mode
// reports an empty directory, which drops all watches.
func (g *Game) syncWatcher() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Watch(g.browser.Dir()); err != nil {
		debugLog("Watch %s: %v", g.browser.Dir(), err)
	}
}

func (g *Game) drainLoaderResults() {
drain:
	for {
		select {
		case result, ok := <-g.loader.Results():
			if !ok {
				break drain
			}
			g.applyLoadResult(result)
		default:
			break drain
		}
	}
}

// applyLoadResult uploads a decoded bitmap to the GPU and refits the view.
// Results from superseded requests are dropped.
func (g *Game) applyLoadResult(result LoadedImage) {
	if result.Seq != g.loadSeq {
		return
	}
	g.loading = false

	if result.Err != nil {
		g.current = CreateErrorImage(640, 480, result.Src.Path, errorMessage(result.Err))
		g.ShowOverlayMessage(errorMessage(result.Err))
	} else {
		g.current = ebiten.NewImageFromImage(result.Img)
	}

	bounds := g.current.Bounds()
	g.view.SetImage(bounds.Dx(), bounds.Dy())
	if !g.view.FitToWindow() {
		g.pendingFit = true
	}

	g.info = nil
	if g.showInfo {
		g.refreshImageInfo()
	}
	g.updateWindowTitle()
}

func (g *Game) drainWatcherEvents() {
	if g.watcher == nil {
		return
	}
	changed := false
drain:
	for {
		select {
		case <-g.watcher.Events():
			changed = true
		default:
			break drain
		}
	}
	if !changed {
		return
	}

	if err := g.browser.Reload(); err != nil {
		g.ShowOverlayMessage(errorMessage(err))
		return
	}
	// Redecode even when the selection kept its path, the file content may
	// have changed on disk
	g.loadCurrent()
	g.updateWindowTitle()
}

func (g *Game) refreshImageInfo() {
	src, ok := g.browser.CurrentSource()
	if !ok {
		g.info = nil
		return
	}
	info, err := probeImageInfo(g.fs, src)
	if err != nil {
		debugLog("Image info for %s: %v", src.Path, err)
		g.info = nil
		return
	}
	g.info = info
}

func (g *Game) updateWindowTitle() {
	path, ok := g.browser.Current()
	if !ok {
		ebiten.SetWindowTitle("picview")
		return
	}
	ebiten.SetWindowTitle(fmt.Sprintf("picview: %s (%d/%d)",
		filepath.Base(path), g.browser.CurrentIndex()+1, g.browser.Count()))
}

// afterSelectionMove reloads the image when a navigation call actually moved
// the selection
func (g *Game) afterSelectionMove(before int) {
	if g.browser.CurrentIndex() == before {
		return
	}
	g.loadCurrent()
	g.updateWindowTitle()
}

// Exit requests application shutdown on the next update
func (g *Game) Exit() {
	g.shouldExit = true
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
	if g.showInfo && g.info == nil {
		g.refreshImageInfo()
	}
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
}

func (g *Game) NavigateNext() {
	before := g.browser.CurrentIndex()
	g.browser.Next()
	g.afterSelectionMove(before)
}

func (g *Game) NavigatePrevious() {
	before := g.browser.CurrentIndex()
	g.browser.Previous()
	g.afterSelectionMove(before)
}

func (g *Game) JumpFirst() {
	before := g.browser.CurrentIndex()
	g.browser.JumpFirst()
	g.afterSelectionMove(before)
}

func (g *Game) JumpLast() {
	before := g.browser.CurrentIndex()
	g.browser.JumpLast()
	g.afterSelectionMove(before)
}

// JumpToPage selects a 1-based page number
func (g *Game) JumpToPage(page int) {
	if g.browser.JumpTo(page - 1) {
		g.loadCurrent()
		g.updateWindowTitle()
		return
	}
	if page < 1 || page > g.browser.Count() {
		g.ShowOverlayMessage(fmt.Sprintf("No image %d (1-%d)", page, g.browser.Count()))
	}
}

func (g *Game) DeleteImage() {
	result, err := g.browser.DeleteCurrent()
	if err != nil {
		g.ShowOverlayMessage(errorMessage(err))
		return
	}
	g.ShowOverlayMessage("Deleted " + filepath.Base(result.Removed))
	g.loadCurrent()
	g.updateWindowTitle()
}

func (g *Game) ReloadDirectory() {
	if err := g.browser.Reload(); err != nil {
		g.ShowOverlayMessage(errorMessage(err))
		return
	}
	g.loadCurrent()
	g.updateWindowTitle()
	g.ShowOverlayMessage(fmt.Sprintf("Reloaded: %d images", g.browser.Count()))
}

func (g *Game) CycleSortMethod() {
	g.sortMethod = (g.sortMethod + 1) % len(GetAllSortStrategies())
	strategy := GetSortStrategy(g.sortMethod)
	g.browser.SetSortStrategy(strategy)
	g.updateWindowTitle()
	g.ShowOverlayMessage("Sort: " + strategy.Name())
}

func (g *Game) StartRename() {
	path, ok := g.browser.Current()
	if !ok {
		g.ShowOverlayMessage("No image to rename")
		return
	}
	if g.browser.Archive() != "" {
		g.ShowOverlayMessage("Archive entries are read-only")
		return
	}
	base := filepath.Base(path)
	g.promptKind = PromptRename
	g.promptBuffer = strings.TrimSuffix(base, filepath.Ext(base))
}

func (g *Game) StartOpenPath() {
	g.promptKind = PromptOpenPath
	g.promptBuffer = ""
}

func (g *Game) StartPageInput() {
	if g.browser.Count() == 0 {
		return
	}
	g.promptKind = PromptPage
	g.promptBuffer = ""
}

func (g *Game) StartSearch() {
	if g.browser.Count() == 0 {
		return
	}
	g.promptKind = PromptSearch
	g.promptBuffer = ""
}

func (g *Game) UpdatePromptBuffer(buffer string) {
	g.promptBuffer = buffer
}

func (g *Game) CancelPrompt() {
	g.promptKind = PromptNone
	g.promptBuffer = ""
}

// CommitPrompt closes the active prompt and applies its buffer
func (g *Game) CommitPrompt() {
	kind := g.promptKind
	buffer := g.promptBuffer
	g.promptKind = PromptNone
	g.promptBuffer = ""

	switch kind {
	case PromptRename:
		g.commitRename(buffer)
	case PromptOpenPath:
		g.commitOpenPath(buffer)
	case PromptPage:
		g.commitPageJump(buffer)
	case PromptSearch:
		g.commitSearch(buffer)
	}
}

func (g *Game) commitRename(newBaseName string) {
	result, err := g.browser.RenameCurrent(newBaseName)
	if err != nil {
		g.ShowOverlayMessage(errorMessage(err))
		return
	}
	g.updateWindowTitle()
	g.ShowOverlayMessage("Renamed to " + filepath.Base(result.Path))
}

func (g *Game) commitOpenPath(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	g.OpenPath(path)
}

func (g *Game) commitPageJump(buffer string) {
	buffer = strings.TrimSpace(buffer)
	if buffer == "" {
		return
	}
	page, err := strconv.Atoi(buffer)
	if err != nil {
		g.ShowOverlayMessage("Not a page number: " + buffer)
		return
	}
	g.JumpToPage(page)
}

func (g *Game) commitSearch(query string) {
	index := searchImages(g.browser.Files(), query)
	if index < 0 {
		g.ShowOverlayMessage("No match for \"" + strings.TrimSpace(query) + "\"")
		return
	}
	if g.browser.JumpTo(index) {
		g.loadCurrent()
		g.updateWindowTitle()
	}
}

func (g *Game) ZoomIn() {
	g.view.SetZoom(g.view.Zoom() * g.config.ZoomStep)
}

func (g *Game) ZoomOut() {
	g.view.SetZoom(g.view.Zoom() / g.config.ZoomStep)
}

func (g *Game) ZoomInAt(anchorX, anchorY float64) {
	g.view.SetZoomAt(g.view.Zoom()*g.config.WheelZoomStep, anchorX, anchorY)
}

func (g *Game) ZoomOutAt(anchorX, anchorY float64) {
	g.view.SetZoomAt(g.view.Zoom()/g.config.WheelZoomStep, anchorX, anchorY)
}

func (g *Game) ZoomReset() {
	g.view.SetZoom(1.0)
}

func (g *Game) ZoomFit() {
	if !g.view.FitToWindow() {
		g.pendingFit = true
	}
}

func (g *Game) PanUp() {
	g.view.Pan(0, g.config.PanStep)
}

func (g *Game) PanDown() {
	g.view.Pan(0, -g.config.PanStep)
}

func (g *Game) PanLeft() {
	g.view.Pan(g.config.PanStep, 0)
}

func (g *Game) PanRight() {
	g.view.Pan(-g.config.PanStep, 0)
}

func (g *Game) PanByDelta(deltaX, deltaY float64) {
	g.view.Pan(deltaX, deltaY)
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

// RenderState implementation

func (g *Game) GetCurrentImage() *ebiten.Image { return g.current }

func (g *Game) GetViewState() *ViewState { return g.view }

func (g *Game) IsFullscreen() bool { return g.fullscreen }

func (g *Game) IsLoading() bool { return g.loading }

func (g *Game) IsShowingHelp() bool { return g.showHelp }

func (g *Game) IsShowingInfo() bool { return g.showInfo }

func (g *Game) GetPromptKind() PromptKind { return g.promptKind }

func (g *Game) GetPromptBuffer() string { return g.promptBuffer }

func (g *Game) GetOverlayMessage() string { return g.overlayMessage }

func (g *Game) GetOverlayMessageTime() time.Time { return g.overlayMessageTime }

// GetCurrentPath reports the selected image, using archive:entry form for
// archive entries
func (g *Game) GetCurrentPath() string {
	path, ok := g.browser.Current()
	if !ok {
		return ""
	}
	if archive := g.browser.Archive(); archive != "" {
		return archive + ":" + path
	}
	return path
}

func (g *Game) GetPageNumber() int { return g.browser.CurrentIndex() + 1 }

func (g *Game) GetTotalPagesCount() int { return g.browser.Count() }

func (g *Game) GetSortMethodName() string { return GetSortStrategy(g.sortMethod).Name() }

func (g *Game) GetImageInfo() *ImageInfo { return g.info }

func (g *Game) GetKeybindings() map[string][]string { return g.keybindingManager.GetKeybindings() }

func (g *Game) GetMousebindings() map[string][]string { return g.mousebindingManager.GetMousebindings() }

func (g *Game) GetFontSize() float64 { return g.config.FontSize }

func (g *Game) GetCurrentIndex() int { return g.browser.CurrentIndex() }

// InputState implementation

func (g *Game) IsInPromptMode() bool { return g.promptKind != PromptNone }
