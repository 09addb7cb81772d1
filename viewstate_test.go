package main

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func newLoadedViewState(imageW, imageH, viewportW, viewportH int) *ViewState {
	v := NewViewState()
	v.SetViewport(viewportW, viewportH)
	v.SetImage(imageW, imageH)
	v.FitToWindow()
	return v
}

func TestFitToWindow(t *testing.T) {
	tests := []struct {
		name                 string
		imageW, imageH       int
		viewportW, viewportH int
		wantZoom             float64
		wantPanX, wantPanY   float64
	}{
		{"downscale to fit", 1600, 1200, 800, 600, 0.5, 0, 0},
		{"small image never upscaled", 400, 300, 800, 600, 1.0, 200, 150},
		{"wide image limited by width", 2000, 500, 1000, 800, 0.5, 0, 275},
		{"tall image limited by height", 500, 2000, 800, 1000, 0.5, 275, 0},
		{"exact fit", 800, 600, 800, 600, 1.0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewState()
			v.SetViewport(tt.viewportW, tt.viewportH)
			v.SetImage(tt.imageW, tt.imageH)
			if !v.FitToWindow() {
				t.Fatal("FitToWindow unexpectedly deferred")
			}
			if !almostEqual(v.Zoom(), tt.wantZoom) {
				t.Errorf("zoom = %v, want %v", v.Zoom(), tt.wantZoom)
			}
			if !almostEqual(v.PanX(), tt.wantPanX) || !almostEqual(v.PanY(), tt.wantPanY) {
				t.Errorf("pan = (%v, %v), want (%v, %v)", v.PanX(), v.PanY(), tt.wantPanX, tt.wantPanY)
			}
		})
	}
}

func TestFitToWindowNeverUpscales(t *testing.T) {
	for _, size := range []struct{ w, h int }{{100, 100}, {799, 599}, {10, 600}} {
		v := newLoadedViewState(size.w, size.h, 800, 600)
		if v.Zoom() > 1.0 {
			t.Errorf("image %dx%d: fit zoom %v exceeds 1.0", size.w, size.h, v.Zoom())
		}
	}
}

func TestFitToWindowDeferredOnZeroViewport(t *testing.T) {
	v := NewViewState()
	v.SetImage(1600, 1200)
	if v.FitToWindow() {
		t.Fatal("expected fit to be deferred with a zero viewport")
	}

	// The retry succeeds once the layout pass supplies real dimensions.
	v.SetViewport(800, 600)
	if !v.FitToWindow() {
		t.Fatal("expected fit to apply after viewport became available")
	}
	if !almostEqual(v.Zoom(), 0.5) {
		t.Errorf("zoom after retry = %v, want 0.5", v.Zoom())
	}
}

func TestSetZoomAnchorInvariance(t *testing.T) {
	// Large image so the clamp never binds while zooming around the anchor.
	v := newLoadedViewState(4000, 3000, 800, 600)
	anchorX, anchorY := 250.0, 140.0

	zoomLevels := []float64{0.5, 0.8, 1.5, 2.0, 5.0}
	v.SetZoomAt(zoomLevels[0], anchorX, anchorY)
	wantX, wantY := v.ImagePointAt(anchorX, anchorY)

	for _, z := range zoomLevels[1:] {
		v.SetZoomAt(z, anchorX, anchorY)
		gotX, gotY := v.ImagePointAt(anchorX, anchorY)
		if !almostEqual(gotX, wantX) || !almostEqual(gotY, wantY) {
			t.Fatalf("zoom %v: anchor image point moved from (%v, %v) to (%v, %v)",
				z, wantX, wantY, gotX, gotY)
		}
	}
}

func TestSetZoomClampsTarget(t *testing.T) {
	v := newLoadedViewState(4000, 3000, 800, 600)

	v.SetZoom(1000)
	if !almostEqual(v.Zoom(), maxZoomLevel) {
		t.Errorf("zoom = %v, want clamp to %v", v.Zoom(), maxZoomLevel)
	}

	v.SetZoom(0.000001)
	if !almostEqual(v.Zoom(), minZoomLevel) {
		t.Errorf("zoom = %v, want clamp to %v", v.Zoom(), minZoomLevel)
	}
}

func TestSetZoomIgnoresTinyChanges(t *testing.T) {
	v := newLoadedViewState(4000, 3000, 800, 600)
	v.SetZoomAt(2.0, 100, 100)
	panX, panY := v.PanX(), v.PanY()

	v.SetZoomAt(2.0+zoomThreshold/2, 400, 300)
	if v.Zoom() != 2.0 || v.PanX() != panX || v.PanY() != panY {
		t.Errorf("sub-threshold zoom change mutated state: zoom %v pan (%v, %v)",
			v.Zoom(), v.PanX(), v.PanY())
	}
}

func TestPanClampCentersSmallImage(t *testing.T) {
	// Zoom 1.0 on a 400x300 image in an 800x600 viewport: the clamp centers.
	v := newLoadedViewState(400, 300, 800, 600)
	v.SetZoom(1.0)
	v.Pan(500, -500)

	wantX := (800.0 - v.ScaledWidth()) / 2
	wantY := (600.0 - v.ScaledHeight()) / 2
	if v.PanX() != wantX || v.PanY() != wantY {
		t.Errorf("pan = (%v, %v), want exactly (%v, %v)", v.PanX(), v.PanY(), wantX, wantY)
	}
	if wantX != 200 || wantY != 150 {
		t.Errorf("centered pan = (%v, %v), want (200, 150)", wantX, wantY)
	}
}

func TestPanClampLargeImage(t *testing.T) {
	v := newLoadedViewState(1600, 1200, 800, 600)
	v.SetZoom(1.0)

	// Dragging far right/down pins the top-left edge at the origin.
	v.Pan(10000, 10000)
	if v.PanX() != 0 || v.PanY() != 0 {
		t.Errorf("pan = (%v, %v), want (0, 0)", v.PanX(), v.PanY())
	}

	// Dragging far left/up pins the bottom-right edge at the viewport edge.
	v.Pan(-10000, -10000)
	wantX := 800.0 - v.ScaledWidth()
	wantY := 600.0 - v.ScaledHeight()
	if v.PanX() != wantX || v.PanY() != wantY {
		t.Errorf("pan = (%v, %v), want (%v, %v)", v.PanX(), v.PanY(), wantX, wantY)
	}
}

func TestPanKeepsCenteredAxisExact(t *testing.T) {
	// Wider than the viewport but shorter: X pans, Y stays centered exactly.
	v := newLoadedViewState(1600, 300, 800, 600)
	v.SetZoom(1.0)
	panX := v.PanX()
	v.Pan(-50, 37)

	if v.PanX() != panX-50 {
		t.Errorf("panX = %v, want %v", v.PanX(), panX-50)
	}
	wantY := (600.0 - v.ScaledHeight()) / 2
	if v.PanY() != wantY {
		t.Errorf("panY = %v, want exactly %v", v.PanY(), wantY)
	}
}

func TestViewStateNoImageNoOps(t *testing.T) {
	v := NewViewState()
	v.SetViewport(800, 600)

	v.SetZoom(3.0)
	v.SetZoomAt(5.0, 10, 10)
	v.Pan(100, 100)
	if v.Zoom() != 1.0 || v.PanX() != 0 || v.PanY() != 0 {
		t.Errorf("no-image operations mutated state: zoom %v pan (%v, %v)",
			v.Zoom(), v.PanX(), v.PanY())
	}
	if !v.FitToWindow() {
		t.Error("FitToWindow with no image should not report pending")
	}
}

func TestSetViewportRefitsInFitMode(t *testing.T) {
	v := newLoadedViewState(1600, 1200, 800, 600)
	if !almostEqual(v.Zoom(), 0.5) {
		t.Fatalf("initial fit zoom = %v, want 0.5", v.Zoom())
	}

	v.SetViewport(400, 300)
	if !almostEqual(v.Zoom(), 0.25) {
		t.Errorf("zoom after resize = %v, want 0.25", v.Zoom())
	}
}

func TestSetViewportReclampsManualZoom(t *testing.T) {
	v := newLoadedViewState(1600, 1200, 800, 600)
	v.SetZoom(1.0)
	v.Pan(-10000, -10000)

	// Growing the viewport must keep the manual zoom but pull the pan back
	// inside the tighter bounds.
	v.SetViewport(1200, 900)
	if !almostEqual(v.Zoom(), 1.0) {
		t.Fatalf("manual zoom lost on resize: %v", v.Zoom())
	}
	wantX := 1200.0 - v.ScaledWidth()
	wantY := 900.0 - v.ScaledHeight()
	if v.PanX() != wantX || v.PanY() != wantY {
		t.Errorf("pan = (%v, %v), want (%v, %v)", v.PanX(), v.PanY(), wantX, wantY)
	}
}

func TestSetImageResetsToFitMode(t *testing.T) {
	v := newLoadedViewState(1600, 1200, 800, 600)
	v.SetZoomAt(3.0, 100, 100)
	if v.FitMode() {
		t.Fatal("manual zoom should leave fit mode")
	}

	v.SetImage(2000, 1000)
	if !v.FitMode() {
		t.Error("new image should reset to fit mode")
	}
	if !v.FitToWindow() {
		t.Fatal("fit unexpectedly deferred")
	}
	if !almostEqual(v.Zoom(), 0.4) {
		t.Errorf("fit zoom for new image = %v, want 0.4", v.Zoom())
	}
}

func TestImagePointAtRoundTrip(t *testing.T) {
	v := newLoadedViewState(4000, 3000, 800, 600)
	v.SetZoomAt(2.0, 400, 300)

	imgX, imgY := v.ImagePointAt(123, 456)
	backX := imgX*v.Zoom() + v.PanX()
	backY := imgY*v.Zoom() + v.PanY()
	if !almostEqual(backX, 123) || !almostEqual(backY, 456) {
		t.Errorf("round trip gave (%v, %v), want (123, 456)", backX, backY)
	}
}
