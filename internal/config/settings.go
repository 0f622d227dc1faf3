package config

import (
	"fyne.io/fyne/v2"

	"github.com/kubux/ai-image-studio/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir       = "output_directory"
	KeySteps           = "generation_steps"
	KeySizeScale       = "size_scale"
	KeyModelIndex      = "model_index"
	KeyFullscreen      = "viewer_fullscreen"
	KeyHistoryCapacity = "history_capacity"
	KeyWindowWidth     = "window_width"
	KeyWindowHeight    = "window_height"
)

// Default values
const (
	DefaultSteps           = 28
	DefaultSizeScale       = 1.0
	DefaultModelIndex      = 0
	DefaultHistoryCapacity = 100

	MinSteps = 1
	MaxSteps = 64

	MinSizeScale = 0.2
	MaxSizeScale = 1.0
)

// AppName keys per-user directories (config, pictures).
const AppName = "ai-image-studio"

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the base directory of the organized image tree
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetHomePicturesDir(AppName)
		if err != nil {
			defaultDir = "/tmp/" + AppName
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the base output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetSteps returns the configured diffusion step count
func (s *Settings) GetSteps() int {
	value := s.app.Preferences().Int(KeySteps)
	if value < MinSteps || value > MaxSteps {
		s.SetSteps(DefaultSteps)
		return DefaultSteps
	}
	return value
}

// SetSteps sets the diffusion step count, clamped to the valid range
func (s *Settings) SetSteps(steps int) {
	if steps < MinSteps {
		steps = MinSteps
	}
	if steps > MaxSteps {
		steps = MaxSteps
	}
	s.app.Preferences().SetInt(KeySteps, steps)
}

// GetSizeScale returns the user scale factor applied to the viewport when
// negotiating generation dimensions
func (s *Settings) GetSizeScale() float64 {
	value := s.app.Preferences().Float(KeySizeScale)
	if value < MinSizeScale || value > MaxSizeScale {
		s.SetSizeScale(DefaultSizeScale)
		return DefaultSizeScale
	}
	return value
}

// SetSizeScale sets the size scale factor, clamped to (0.2, 1.0]
func (s *Settings) SetSizeScale(scale float64) {
	if scale < MinSizeScale {
		scale = MinSizeScale
	}
	if scale > MaxSizeScale {
		scale = MaxSizeScale
	}
	s.app.Preferences().SetFloat(KeySizeScale, scale)
}

// GetModelIndex returns the selected model catalogue index
func (s *Settings) GetModelIndex() int {
	return s.app.Preferences().IntWithFallback(KeyModelIndex, DefaultModelIndex)
}

// SetModelIndex sets the selected model catalogue index
func (s *Settings) SetModelIndex(idx int) {
	if idx < 0 {
		idx = DefaultModelIndex
	}
	s.app.Preferences().SetInt(KeyModelIndex, idx)
}

// GetFullscreen returns whether the viewer was left in fullscreen mode
func (s *Settings) GetFullscreen() bool {
	return s.app.Preferences().Bool(KeyFullscreen)
}

// SetFullscreen records the viewer fullscreen flag
func (s *Settings) SetFullscreen(fullscreen bool) {
	s.app.Preferences().SetBool(KeyFullscreen, fullscreen)
}

// GetWindowSize returns the persisted window size, or the given defaults
// when nothing sensible was saved
func (s *Settings) GetWindowSize(defaultW, defaultH float32) (float32, float32) {
	w := s.app.Preferences().Float(KeyWindowWidth)
	h := s.app.Preferences().Float(KeyWindowHeight)
	if w < 200 || h < 200 {
		return defaultW, defaultH
	}
	return float32(w), float32(h)
}

// SetWindowSize records the window size for the next session
func (s *Settings) SetWindowSize(w, h float32) {
	s.app.Preferences().SetFloat(KeyWindowWidth, float64(w))
	s.app.Preferences().SetFloat(KeyWindowHeight, float64(h))
}

// GetHistoryCapacity returns the prompt history cap
func (s *Settings) GetHistoryCapacity() int {
	value := s.app.Preferences().IntWithFallback(KeyHistoryCapacity, DefaultHistoryCapacity)
	if value < 1 {
		return DefaultHistoryCapacity
	}
	return value
}
