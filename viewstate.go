package main

import "math"

// Zoom limits and the threshold below which a zoom change is ignored
const (
	minZoomLevel  = 0.01
	maxZoomLevel  = 50.0
	zoomThreshold = 0.001
)

// ViewState owns the zoom factor, the pan offset of the scaled image inside
// the viewport, and the image/viewport dimensions. All mutation goes through
// its methods; the renderer only reads. Pan is the top-left offset of the
// scaled image in viewport coordinates.
type ViewState struct {
	zoom       float64
	panX, panY float64

	imageW, imageH       int
	viewportW, viewportH int

	fitMode  bool
	hasImage bool
}

// NewViewState returns a ViewState with no image loaded.
func NewViewState() *ViewState {
	return &ViewState{
		zoom:    1.0,
		fitMode: true,
	}
}

// SetImage resets the state for a newly displayed bitmap. The caller should
// request FitToWindow afterwards and keep a pending-fit flag when it is
// deferred.
func (v *ViewState) SetImage(width, height int) {
	if width <= 0 || height <= 0 {
		v.Clear()
		return
	}
	v.imageW = width
	v.imageH = height
	v.hasImage = true
	v.fitMode = true
	v.zoom = 1.0
	v.panX = 0
	v.panY = 0
}

// Clear drops the loaded image; subsequent zoom/pan calls are no-ops.
func (v *ViewState) Clear() {
	v.hasImage = false
	v.imageW = 0
	v.imageH = 0
	v.zoom = 1.0
	v.panX = 0
	v.panY = 0
	v.fitMode = true
}

// SetViewport records new display-surface dimensions. In fit mode the image
// is refitted; otherwise the pan is re-clamped against the new bounds.
func (v *ViewState) SetViewport(width, height int) {
	v.viewportW = width
	v.viewportH = height
	if !v.hasImage {
		return
	}
	if v.fitMode {
		v.FitToWindow()
		return
	}
	v.clampPan()
}

// FitToWindow computes the zoom that fits the image inside the viewport,
// capped at 1.0, and recenters. Returns false when the viewport has zero
// area and the fit must be retried on the next layout pass.
func (v *ViewState) FitToWindow() bool {
	if !v.hasImage {
		return true
	}
	if v.viewportW <= 0 || v.viewportH <= 0 {
		return false
	}
	vw, vh := float64(v.viewportW), float64(v.viewportH)
	iw, ih := float64(v.imageW), float64(v.imageH)

	zoom := math.Min(vw/iw, vh/ih)
	if zoom > 1.0 {
		zoom = 1.0
	}
	v.zoom = zoom
	v.panX = (vw - iw*zoom) / 2
	v.panY = (vh - ih*zoom) / 2
	v.fitMode = true
	return true
}

// SetZoom changes the zoom level anchored at the viewport center.
func (v *ViewState) SetZoom(target float64) {
	v.SetZoomAt(target, float64(v.viewportW)/2, float64(v.viewportH)/2)
}

// SetZoomAt changes the zoom level so that the image-space point under the
// anchor (in viewport coordinates) stays under the anchor.
func (v *ViewState) SetZoomAt(target, anchorX, anchorY float64) {
	if !v.hasImage {
		return
	}
	target = clampFloat(target, minZoomLevel, maxZoomLevel)
	if math.Abs(target-v.zoom) < zoomThreshold {
		return
	}

	// Image-space point currently under the anchor
	imageX := (anchorX - v.panX) / v.zoom
	imageY := (anchorY - v.panY) / v.zoom

	v.zoom = target
	v.panX = anchorX - imageX*v.zoom
	v.panY = anchorY - imageY*v.zoom
	v.fitMode = false
	v.clampPan()
}

// Pan shifts the image by the given delta in viewport coordinates.
func (v *ViewState) Pan(deltaX, deltaY float64) {
	if !v.hasImage {
		return
	}
	v.panX += deltaX
	v.panY += deltaY
	v.clampPan()
}

// clampPan applies the pan policy per axis: center when the scaled image is
// not larger than the viewport, otherwise keep the image edges at or outside
// the viewport edges.
func (v *ViewState) clampPan() {
	vw, vh := float64(v.viewportW), float64(v.viewportH)
	sw, sh := v.ScaledWidth(), v.ScaledHeight()

	if sw <= vw {
		v.panX = (vw - sw) / 2
	} else {
		v.panX = clampFloat(v.panX, vw-sw, 0)
	}
	if sh <= vh {
		v.panY = (vh - sh) / 2
	} else {
		v.panY = clampFloat(v.panY, vh-sh, 0)
	}
}

// ImagePointAt converts a viewport coordinate to image-space coordinates.
func (v *ViewState) ImagePointAt(viewportX, viewportY float64) (float64, float64) {
	return (viewportX - v.panX) / v.zoom, (viewportY - v.panY) / v.zoom
}

func (v *ViewState) Zoom() float64 { return v.zoom }

func (v *ViewState) PanX() float64 { return v.panX }

func (v *ViewState) PanY() float64 { return v.panY }

func (v *ViewState) HasImage() bool { return v.hasImage }

func (v *ViewState) FitMode() bool { return v.fitMode }

func (v *ViewState) ImageWidth() int { return v.imageW }

func (v *ViewState) ImageHeight() int { return v.imageH }

func (v *ViewState) ViewportWidth() int { return v.viewportW }

func (v *ViewState) ViewportHeight() int { return v.viewportH }

// ScaledWidth returns the image width at the current zoom.
func (v *ViewState) ScaledWidth() float64 { return float64(v.imageW) * v.zoom }

// ScaledHeight returns the image height at the current zoom.
func (v *ViewState) ScaledHeight() float64 { return float64(v.imageH) * v.zoom }

func clampFloat(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}
