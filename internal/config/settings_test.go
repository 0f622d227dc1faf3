package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetOutputDirectory()
	if dir == "" {
		t.Error("Output directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/pictures"
	settings.SetOutputDirectory(customDir)

	if got := settings.GetOutputDirectory(); got != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, got)
	}
}

func TestSteps(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetSteps(); got != DefaultSteps {
		t.Errorf("Expected default steps %d, got %d", DefaultSteps, got)
	}

	settings.SetSteps(40)
	if got := settings.GetSteps(); got != 40 {
		t.Errorf("Expected steps 40, got %d", got)
	}

	// Boundary values are clamped
	settings.SetSteps(0)
	if settings.GetSteps() != MinSteps {
		t.Error("Steps should be clamped to the minimum")
	}
	settings.SetSteps(1000)
	if settings.GetSteps() != MaxSteps {
		t.Error("Steps should be clamped to the maximum")
	}
}

func TestSizeScale(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetSizeScale(); got != DefaultSizeScale {
		t.Errorf("Expected default scale %v, got %v", DefaultSizeScale, got)
	}

	settings.SetSizeScale(0.5)
	if got := settings.GetSizeScale(); got != 0.5 {
		t.Errorf("Expected scale 0.5, got %v", got)
	}

	settings.SetSizeScale(0.01)
	if settings.GetSizeScale() != MinSizeScale {
		t.Error("Scale should be clamped to the minimum")
	}
	settings.SetSizeScale(7)
	if settings.GetSizeScale() != MaxSizeScale {
		t.Error("Scale should be clamped to the maximum")
	}
}

func TestModelIndex(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetModelIndex(); got != DefaultModelIndex {
		t.Errorf("Expected default model index %d, got %d", DefaultModelIndex, got)
	}

	settings.SetModelIndex(3)
	if got := settings.GetModelIndex(); got != 3 {
		t.Errorf("Expected model index 3, got %d", got)
	}

	settings.SetModelIndex(-5)
	if settings.GetModelIndex() != DefaultModelIndex {
		t.Error("Negative index should reset to default")
	}
}

func TestFullscreenFlag(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetFullscreen() {
		t.Error("Fullscreen should default to false")
	}

	settings.SetFullscreen(true)
	if !settings.GetFullscreen() {
		t.Error("Fullscreen flag should persist")
	}
}

func TestWindowSize(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	w, h := settings.GetWindowSize(1100, 780)
	if w != 1100 || h != 780 {
		t.Errorf("Expected defaults 1100x780, got %vx%v", w, h)
	}

	settings.SetWindowSize(1280, 900)
	w, h = settings.GetWindowSize(1100, 780)
	if w != 1280 || h != 900 {
		t.Errorf("Expected 1280x900, got %vx%v", w, h)
	}

	// Degenerate saved sizes fall back to the defaults
	settings.SetWindowSize(10, 10)
	w, h = settings.GetWindowSize(1100, 780)
	if w != 1100 || h != 780 {
		t.Errorf("Expected fallback to defaults, got %vx%v", w, h)
	}
}

func TestHistoryCapacity(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetHistoryCapacity(); got != DefaultHistoryCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultHistoryCapacity, got)
	}
}
