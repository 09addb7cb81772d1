package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorLightGray = color.RGBA{192, 192, 192, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}

	colorBackground = color.RGBA{24, 24, 24, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
)

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
	fontSource  *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatal(err)
	}

	return &Renderer{
		renderState: renderState,
		fontSource:  s,
	}
}

func (r *Renderer) font(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: r.fontSource, Size: size}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if img := r.renderState.GetCurrentImage(); img != nil {
		r.drawImage(screen, img)
		r.drawPageStatus(screen)
	} else if !r.renderState.IsLoading() {
		r.drawEmptyHint(screen)
	}

	if r.renderState.IsLoading() {
		r.drawLoadingIndicator(screen)
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoPanel(screen)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if r.renderState.GetPromptKind() != PromptNone {
		r.drawPromptOverlay(screen)
	}

	if r.renderState.GetOverlayMessage() != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}
}

// drawImage places the image with the zoom and pan the view state already
// computed and clamped
func (r *Renderer) drawImage(screen *ebiten.Image, img *ebiten.Image) {
	view := r.renderState.GetViewState()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(view.Zoom(), view.Zoom())
	op.GeoM.Translate(view.PanX(), view.PanY())

	screen.DrawImage(img, op)
}

func (r *Renderer) drawEmptyHint(screen *ebiten.Image) {
	hintFont := r.font(r.renderState.GetFontSize())
	message := "No image loaded. Press O to open a path, H for help."

	textWidth, textHeight := text.Measure(message, hintFont, 0)
	x := (float64(screen.Bounds().Dx()) - textWidth) / 2
	y := (float64(screen.Bounds().Dy()) - textHeight) / 2
	DrawText(screen, message, hintFont, x, y, colorGray)
}

func (r *Renderer) drawLoadingIndicator(screen *ebiten.Image) {
	loadingFont := r.font(r.renderState.GetFontSize() * 0.8)
	message := "Loading..."

	textWidth, textHeight := text.Measure(message, loadingFont, 0)
	padding := 10.0
	x := padding
	y := float64(screen.Bounds().Dy()) - textHeight - padding

	DrawFilledRect(screen, x-5, y-5, textWidth+10, textHeight+10, bgColorLight)
	DrawText(screen, message, loadingFont, x, y, colorLightGray)
}

func (r *Renderer) drawPageStatus(screen *ebiten.Image) {
	total := r.renderState.GetTotalPagesCount()
	if total == 0 {
		return
	}

	statusFont := r.font(r.renderState.GetFontSize())
	statusText := fmt.Sprintf("%d / %d", r.renderState.GetPageNumber(), total)

	textWidth, textHeight := text.Measure(statusText, statusFont, 0)
	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, statusText, statusFont, textX, textY, colorWhite)
}

func (r *Renderer) buildInfoLines() []string {
	path := r.renderState.GetCurrentPath()
	if path == "" {
		return []string{"No image loaded"}
	}

	lines := []string{
		filepath.Base(path),
		fmt.Sprintf("Image %d of %d", r.renderState.GetPageNumber(), r.renderState.GetTotalPagesCount()),
	}

	if info := r.renderState.GetImageInfo(); info != nil {
		detail := fmt.Sprintf("%dx%d", info.Width, info.Height)
		if info.Format != "" {
			detail += "  " + info.Format
		}
		if info.FileSize > 0 {
			detail += "  " + formatBytes(info.FileSize)
		}
		lines = append(lines, detail)

		if !info.ModTime.IsZero() {
			lines = append(lines, "Modified "+info.ModTime.Format("2006-01-02 15:04"))
		}
		if info.CameraModel != "" {
			lines = append(lines, "Camera: "+info.CameraModel)
		}
		if info.TakenAt != "" {
			lines = append(lines, "Taken: "+info.TakenAt)
		}
		if info.FNumber != "" || info.Exposure != "" {
			lines = append(lines, "Exposure: "+strings.TrimSpace(info.FNumber+"  "+info.Exposure))
		}
	}

	zoom := r.renderState.GetViewState().Zoom()
	lines = append(lines, fmt.Sprintf("Zoom %d%%", int(math.Round(zoom*100))))
	lines = append(lines, "Sort: "+r.renderState.GetSortMethodName())
	return lines
}

func (r *Renderer) drawInfoPanel(screen *ebiten.Image) {
	infoFont := r.font(r.renderState.GetFontSize())
	lines := r.buildInfoLines()
	lineHeight := r.renderState.GetFontSize() * 1.5

	maxWidth := 0.0
	for _, line := range lines {
		lineWidth, _ := text.Measure(line, infoFont, 0)
		maxWidth = math.Max(maxWidth, lineWidth)
	}

	padding := 15.0
	boxX := 10.0
	boxY := 10.0
	DrawFilledRect(screen, boxX, boxY, maxWidth+padding*2, float64(len(lines))*lineHeight+padding*2, bgColorMedium)

	currentY := boxY + padding
	for i, line := range lines {
		lineColor := colorWhite
		if i > 0 {
			lineColor = colorLightGray
		}
		DrawText(screen, line, infoFont, boxX+padding, currentY, lineColor)
		currentY += lineHeight
	}
}

// bindingLabel joins keyboard and mouse bindings into one display string
func bindingLabel(keys, mouse []string) string {
	var parts []string
	if len(keys) > 0 {
		parts = append(parts, strings.Join(keys, ", "))
	}
	if len(mouse) > 0 {
		parts = append(parts, strings.Join(mouse, ", "))
	}
	return strings.Join(parts, " | ")
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	padding := 40.0
	fontSize := r.fitHelpFontSize(w-padding*2, h-padding*2)
	helpFont := r.font(fontSize)
	lineHeight := fontSize * 1.5

	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	titleY := padding + 30
	DrawText(screen, "Controls (Keyboard | Mouse):", helpFont, padding+20, titleY, colorWhite)
	currentY := titleY + lineHeight*1.5

	// First pass: measure columns
	maxDescWidth := 0.0
	for _, def := range actionDefinitions {
		if len(keybindings[def.Name]) == 0 && len(mousebindings[def.Name]) == 0 {
			continue
		}
		descWidth, _ := text.Measure(def.Description, helpFont, 0)
		maxDescWidth = math.Max(maxDescWidth, descWidth)
	}
	descX := padding + 20
	bindingX := descX + maxDescWidth + 40

	for _, def := range actionDefinitions {
		keys := keybindings[def.Name]
		mouse := mousebindings[def.Name]
		if len(keys) == 0 && len(mouse) == 0 {
			continue
		}

		DrawText(screen, def.Description, helpFont, descX, currentY, colorLightBlue)

		currentX := bindingX
		if len(keys) > 0 {
			keysList := strings.Join(keys, ", ")
			DrawText(screen, keysList, helpFont, currentX, currentY, colorYellow)
			keysWidth, _ := text.Measure(keysList, helpFont, 0)
			currentX += keysWidth
		}
		if len(keys) > 0 && len(mouse) > 0 {
			DrawText(screen, " | ", helpFont, currentX, currentY, colorWhite)
			sepWidth, _ := text.Measure(" | ", helpFont, 0)
			currentX += sepWidth
		}
		if len(mouse) > 0 {
			DrawText(screen, strings.Join(mouse, ", "), helpFont, currentX, currentY, colorCyan)
		}

		currentY += lineHeight
	}
}

// fitHelpFontSize shrinks the configured font size until the help table
// fits the available area, bottoming out at 10px
func (r *Renderer) fitHelpFontSize(availableWidth, availableHeight float64) float64 {
	fontSize := r.renderState.GetFontSize()
	minSize := 10.0

	for fontSize > minSize {
		width, height := r.helpDimensions(fontSize)
		if width <= availableWidth && height <= availableHeight {
			break
		}
		fontSize -= 1.0
	}
	return math.Max(fontSize, minSize)
}

// helpDimensions reports the space the help table needs at a font size
func (r *Renderer) helpDimensions(fontSize float64) (float64, float64) {
	helpFont := r.font(fontSize)
	lineHeight := fontSize * 1.5

	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()

	maxDescWidth := 0.0
	maxBindingWidth := 0.0
	rows := 0
	for _, def := range actionDefinitions {
		keys := keybindings[def.Name]
		mouse := mousebindings[def.Name]
		if len(keys) == 0 && len(mouse) == 0 {
			continue
		}
		rows++

		descWidth, _ := text.Measure(def.Description, helpFont, 0)
		maxDescWidth = math.Max(maxDescWidth, descWidth)
		bindingWidth, _ := text.Measure(bindingLabel(keys, mouse), helpFont, 0)
		maxBindingWidth = math.Max(maxBindingWidth, bindingWidth)
	}

	width := 20 + maxDescWidth + 40 + maxBindingWidth + 20
	height := 30 + lineHeight*1.5 + float64(rows)*lineHeight + 20
	return width, height
}

func (r *Renderer) drawPromptOverlay(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	buffer := r.renderState.GetPromptBuffer()

	var inputText, hintText string
	switch r.renderState.GetPromptKind() {
	case PromptRename:
		inputText = fmt.Sprintf("Rename to: %s_", buffer)
		hintText = "Enter to rename, Escape to cancel"
	case PromptOpenPath:
		inputText = fmt.Sprintf("Open path: %s_", buffer)
		hintText = "Enter to open, Escape to cancel"
	case PromptPage:
		inputText = fmt.Sprintf("Go to image: %s_", buffer)
		hintText = fmt.Sprintf("(1-%d)", r.renderState.GetTotalPagesCount())
	case PromptSearch:
		inputText = fmt.Sprintf("Search: %s_", buffer)
		hintText = "Enter to jump to the best match"
	default:
		return
	}

	inputFont := r.font(r.renderState.GetFontSize())
	hintFont := r.font(r.renderState.GetFontSize() * 0.8)

	inputWidth, inputHeight := text.Measure(inputText, inputFont, 0)
	hintWidth, hintHeight := text.Measure(hintText, hintFont, 0)

	maxWidth := math.Max(inputWidth, hintWidth)
	totalHeight := inputHeight + hintHeight + 10

	padding := 20.0
	boxWidth := maxWidth + padding*2
	boxHeight := totalHeight + padding*2
	boxX := (float64(w) - boxWidth) / 2
	boxY := (float64(h) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)

	inputTextX := boxX + (boxWidth-inputWidth)/2
	DrawText(screen, inputText, inputFont, inputTextX, boxY+padding, colorWhite)

	hintTextX := boxX + (boxWidth-hintWidth)/2
	DrawText(screen, hintText, hintFont, hintTextX, boxY+padding+inputHeight+10, colorLightGray)
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	messageFont := r.font(r.renderState.GetFontSize())
	message := r.renderState.GetOverlayMessage()

	textWidth, textHeight := text.Measure(message, messageFont, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}
