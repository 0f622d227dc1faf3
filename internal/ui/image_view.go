package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/kubux/ai-image-studio/internal/viewer"
)

// ImageView displays the current image with interactive zoom and pan.
// Scroll wheel zooms around the cursor, dragging pans when zoomed in,
// and +/-/0 work from the keyboard once the view has focus.
type ImageView struct {
	widget.BaseWidget

	state *viewer.State
	img   *canvas.Image

	// OnViewportChange fires on every resize with the new viewport size.
	OnViewportChange func(width, height float64)

	// OnToggleFullscreen fires when the user requests fullscreen (F11/F).
	OnToggleFullscreen func()
}

// NewImageView creates an empty image view.
func NewImageView() *ImageView {
	v := &ImageView{
		state: viewer.NewState(0, 0),
		img:   canvas.NewImageFromImage(nil),
	}
	v.img.FillMode = canvas.ImageFillStretch
	v.img.ScaleMode = canvas.ImageScaleSmooth
	v.img.Hide()
	v.ExtendBaseWidget(v)
	return v
}

// SetImageFile loads an image from disk and installs it in the view.
func (v *ImageView) SetImageFile(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}
	v.SetImage(img)
	return nil
}

// SetImage installs a decoded image: zoom resets to fit-to-window.
func (v *ImageView) SetImage(img image.Image) {
	bounds := img.Bounds()
	v.img.Image = img
	v.img.Resource = nil
	v.state.LoadImage(float64(bounds.Dx()), float64(bounds.Dy()))
	v.img.Show()
	v.Refresh()

	logrus.WithFields(logrus.Fields{
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}).Debug("Image installed in viewer")
}

// HasImage reports whether an image is currently displayed.
func (v *ImageView) HasImage() bool {
	return v.state.HasImage()
}

// SetFullscreen records the fullscreen flag; the actual viewport change
// arrives through Resize once the window has switched modes.
func (v *ImageView) SetFullscreen(fullscreen bool) {
	v.state.Fullscreen = fullscreen
}

// Fullscreen reports the recorded fullscreen flag.
func (v *ImageView) Fullscreen() bool {
	return v.state.Fullscreen
}

// ResetZoom returns to fit-to-window.
func (v *ImageView) ResetZoom() {
	v.state.ResetZoom()
	v.Refresh()
}

// Resize updates the viewer transform before the renderer lays out.
func (v *ImageView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	v.state.SetViewport(float64(size.Width), float64(size.Height))
	if v.OnViewportChange != nil {
		v.OnViewportChange(float64(size.Width), float64(size.Height))
	}
	v.Refresh()
}

// Scrolled zooms around the cursor position.
func (v *ImageView) Scrolled(ev *fyne.ScrollEvent) {
	delta := float64(ev.Scrolled.DY) * ScrollZoomScale
	v.state.ZoomBy(delta, float64(ev.Position.X), float64(ev.Position.Y))
	v.Refresh()
}

// Dragged pans the image. Panning is a no-op while the whole image fits.
func (v *ImageView) Dragged(ev *fyne.DragEvent) {
	v.state.Pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	v.Refresh()
}

// DragEnd implements fyne.Draggable.
func (v *ImageView) DragEnd() {}

// Tapped grabs keyboard focus so zoom keys reach the view.
func (v *ImageView) Tapped(_ *fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(v); c != nil {
		c.Focus(v)
	}
}

// FocusGained implements fyne.Focusable.
func (v *ImageView) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (v *ImageView) FocusLost() {}

// TypedRune implements fyne.Focusable.
func (v *ImageView) TypedRune(r rune) {
	switch r {
	case '+', '=':
		v.zoomAtCenter(viewer.KeyZoomStep)
	case '-':
		v.zoomAtCenter(-viewer.KeyZoomStep)
	case '0':
		v.ResetZoom()
	case 'f', 'F':
		v.requestFullscreen()
	}
}

// TypedKey handles the non-rune zoom and fullscreen keys.
func (v *ImageView) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyPlus:
		v.zoomAtCenter(viewer.KeyZoomStep)
	case fyne.KeyMinus:
		v.zoomAtCenter(-viewer.KeyZoomStep)
	case fyne.KeyF11:
		v.requestFullscreen()
	case fyne.KeyEscape:
		if v.state.Fullscreen {
			v.requestFullscreen()
		}
	}
}

func (v *ImageView) zoomAtCenter(delta float64) {
	size := v.Size()
	v.state.ZoomBy(delta, float64(size.Width)/2, float64(size.Height)/2)
	v.Refresh()
}

func (v *ImageView) requestFullscreen() {
	if v.OnToggleFullscreen != nil {
		v.OnToggleFullscreen()
	}
}

// CreateRenderer implements fyne.Widget.
func (v *ImageView) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	return &imageViewRenderer{
		view:       v,
		background: background,
	}
}

type imageViewRenderer struct {
	view       *ImageView
	background *canvas.Rectangle
}

func (r *imageViewRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	state := r.view.state
	if !state.HasImage() {
		return
	}
	w, h := state.ScaledSize()
	r.view.img.Move(fyne.NewPos(float32(state.PanX), float32(state.PanY)))
	r.view.img.Resize(fyne.NewSize(float32(w), float32(h)))
}

func (r *imageViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(240, 240)
}

func (r *imageViewRenderer) Refresh() {
	r.Layout(r.view.Size())
	canvas.Refresh(r.view)
}

func (r *imageViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.view.img}
}

func (r *imageViewRenderer) Destroy() {}
