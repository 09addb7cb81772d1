package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseMouseString(t *testing.T) {
	mapping := buildMouseMapping()

	tests := []struct {
		mouseStr    string
		button      ebiten.MouseButton
		isWheel     bool
		wheelDeltaX float64
		wheelDeltaY float64
		isDouble    bool
		shift       bool
		ctrl        bool
	}{
		{"LeftClick", ebiten.MouseButtonLeft, false, 0, 0, false, false, false},
		{"MiddleClick", ebiten.MouseButtonMiddle, false, 0, 0, false, false, false},
		{"Back", ebiten.MouseButton3, false, 0, 0, false, false, false},
		{"Forward", ebiten.MouseButton4, false, 0, 0, false, false, false},
		{"DoubleLeftClick", ebiten.MouseButtonLeft, false, 0, 0, true, false, false},
		{"WheelUp", 0, true, 0, 1.0, false, false, false},
		{"WheelDown", 0, true, 0, -1.0, false, false, false},
		{"WheelLeft", 0, true, -1.0, 0, false, false, false},
		{"WheelRight", 0, true, 1.0, 0, false, false, false},
		{"Ctrl+WheelUp", 0, true, 0, 1.0, false, false, true},
		{"Shift+WheelDown", 0, true, 0, -1.0, false, true, false},
	}

	for _, test := range tests {
		combination, ok := parseMouseString(test.mouseStr, mapping)
		if !ok {
			t.Errorf("parseMouseString(%q): expected success", test.mouseStr)
			continue
		}
		if combination.IsWheel != test.isWheel {
			t.Errorf("parseMouseString(%q): expected isWheel %v, got %v", test.mouseStr, test.isWheel, combination.IsWheel)
		}
		if combination.IsWheel {
			if combination.WheelDeltaX != test.wheelDeltaX || combination.WheelDeltaY != test.wheelDeltaY {
				t.Errorf("parseMouseString(%q): expected wheel delta %v/%v, got %v/%v",
					test.mouseStr, test.wheelDeltaX, test.wheelDeltaY,
					combination.WheelDeltaX, combination.WheelDeltaY)
			}
		} else if combination.Button != test.button {
			t.Errorf("parseMouseString(%q): expected button %v, got %v", test.mouseStr, test.button, combination.Button)
		}
		if combination.IsDoubleClick != test.isDouble {
			t.Errorf("parseMouseString(%q): expected double %v, got %v", test.mouseStr, test.isDouble, combination.IsDoubleClick)
		}
		if combination.Shift != test.shift || combination.Ctrl != test.ctrl {
			t.Errorf("parseMouseString(%q): expected shift/ctrl %v/%v, got %v/%v",
				test.mouseStr, test.shift, test.ctrl, combination.Shift, combination.Ctrl)
		}
	}
}

func TestParseMouseStringInvalid(t *testing.T) {
	mapping := buildMouseMapping()

	for _, mouseStr := range []string{"", "TripleClick", "WheelSideways", "DoubleWheelUp", "Ctrl+Bogus"} {
		if _, ok := parseMouseString(mouseStr, mapping); ok {
			t.Errorf("parseMouseString(%q): expected failure", mouseStr)
		}
	}
}

func TestGetDefaultMouseSettings(t *testing.T) {
	settings := GetDefaultMouseSettings()

	if settings.WheelSensitivity != 1.0 {
		t.Errorf("Expected wheel sensitivity 1.0, got %v", settings.WheelSensitivity)
	}
	if settings.DoubleClickTime != 300 {
		t.Errorf("Expected double click time 300, got %d", settings.DoubleClickTime)
	}
	if settings.DragThreshold != 4 {
		t.Errorf("Expected drag threshold 4, got %d", settings.DragThreshold)
	}
	if !settings.EnableMouse || !settings.EnableDragPan {
		t.Error("Expected mouse and drag pan enabled by default")
	}
	if settings.WheelInverted {
		t.Error("Expected wheel not inverted by default")
	}
}
