package viewer

import "math"

// Zoom limits and input scaling.
const (
	ZoomMin = 0.05
	ZoomMax = 16.0

	// ZoomSensitivity converts wheel deltas into exponential zoom steps.
	ZoomSensitivity = 0.0015

	// KeyZoomStep is the delta applied per zoom-in/zoom-out key press,
	// roughly a 25% step at the sensitivity above.
	KeyZoomStep = 150.0
)

// fitSlack absorbs float noise when comparing the zoom factor against the
// fit-to-window factor.
const fitSlack = 1e-9

// State is the full viewer transform. PanX/PanY are the viewport
// coordinates of the image's top-left corner at the current zoom.
//
// Invariants: Zoom stays within [ZoomMin, ZoomMax]; whenever Zoom is at or
// below the fit-to-window factor the pan is exactly centered; above it the
// image can never leave the viewport entirely on either axis.
type State struct {
	Zoom       float64
	PanX, PanY float64

	ImageW, ImageH       float64
	ViewportW, ViewportH float64

	Fullscreen bool
}

// NewState creates a viewer for the given viewport with no image loaded.
func NewState(viewportW, viewportH float64) *State {
	return &State{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// HasImage reports whether an image is loaded.
func (s *State) HasImage() bool {
	return s.ImageW > 0 && s.ImageH > 0
}

// FitFactor returns the zoom at which the whole image is visible without
// cropping, or zero when no image is loaded.
func (s *State) FitFactor() float64 {
	if !s.HasImage() || s.ViewportW <= 0 || s.ViewportH <= 0 {
		return 0
	}
	return math.Min(s.ViewportW/s.ImageW, s.ViewportH/s.ImageH)
}

// AtOrBelowFit reports whether the current zoom shows the whole image.
func (s *State) AtOrBelowFit() bool {
	return s.Zoom <= s.FitFactor()+fitSlack
}

// LoadImage installs a new image: zoom resets to fit-to-window, the pan
// centers, and only the fullscreen flag carries over.
func (s *State) LoadImage(imageW, imageH float64) {
	s.ImageW = imageW
	s.ImageH = imageH
	s.ResetZoom()
}

// ResetZoom returns to fit-to-window on the current image.
func (s *State) ResetZoom() {
	if !s.HasImage() {
		return
	}
	s.Zoom = clampZoom(s.FitFactor())
	s.center()
}

// ZoomBy scales the view by exp(delta*sensitivity), keeping the image point
// under the anchor visually fixed and re-clamping the pan.
func (s *State) ZoomBy(delta, anchorX, anchorY float64) {
	if !s.HasImage() {
		return
	}

	oldZoom := s.Zoom
	newZoom := clampZoom(oldZoom * math.Exp(delta*ZoomSensitivity))
	if newZoom == oldZoom {
		return
	}

	// Image-space point under the anchor stays put across the rescale.
	imgX := (anchorX - s.PanX) / oldZoom
	imgY := (anchorY - s.PanY) / oldZoom
	s.Zoom = newZoom
	s.PanX = anchorX - imgX*newZoom
	s.PanY = anchorY - imgY*newZoom

	s.constrain()
}

// Pan shifts the view. Below the fit factor the image is fully visible and
// centered, so panning is a no-op there.
func (s *State) Pan(dx, dy float64) {
	if !s.HasImage() || s.AtOrBelowFit() {
		return
	}
	s.PanX += dx
	s.PanY += dy
	s.constrain()
}

// SetViewport adapts the state to a resized viewport. A view that showed
// the whole image keeps doing so; a zoomed-in view keeps its zoom and gets
// its pan re-clamped.
func (s *State) SetViewport(viewportW, viewportH float64) {
	wasAtFit := s.HasImage() && s.AtOrBelowFit()

	s.ViewportW = viewportW
	s.ViewportH = viewportH

	if !s.HasImage() {
		return
	}
	if wasAtFit {
		s.ResetZoom()
		return
	}
	s.constrain()
}

// ToggleFullscreen flips the flag and recomputes the transform against the
// new viewport dimensions.
func (s *State) ToggleFullscreen(viewportW, viewportH float64) {
	s.Fullscreen = !s.Fullscreen
	s.SetViewport(viewportW, viewportH)
}

// ScaledSize returns the displayed image dimensions at the current zoom.
func (s *State) ScaledSize() (float64, float64) {
	return s.ImageW * s.Zoom, s.ImageH * s.Zoom
}

// center positions the image exactly in the middle of the viewport.
func (s *State) center() {
	w, h := s.ScaledSize()
	s.PanX = (s.ViewportW - w) / 2
	s.PanY = (s.ViewportH - h) / 2
}

// constrain enforces the pan invariant: centered at or below fit, clamped
// per axis above it so the image always touches the viewport.
func (s *State) constrain() {
	if s.AtOrBelowFit() {
		s.center()
		return
	}

	w, h := s.ScaledSize()
	s.PanX = constrainAxis(s.PanX, w, s.ViewportW)
	s.PanY = constrainAxis(s.PanY, h, s.ViewportH)
}

// constrainAxis clamps one axis: a dimension larger than the viewport may
// not expose a gap on either side; a smaller one sits centered.
func constrainAxis(pan, scaled, viewport float64) float64 {
	if scaled <= viewport {
		return (viewport - scaled) / 2
	}
	if pan > 0 {
		return 0
	}
	if pan < viewport-scaled {
		return viewport - scaled
	}
	return pan
}

func clampZoom(z float64) float64 {
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}
