package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/kubux/ai-image-studio/internal/config"
	"github.com/kubux/ai-image-studio/internal/generate"
	"github.com/kubux/ai-image-studio/internal/history"
	"github.com/kubux/ai-image-studio/internal/model"
	"github.com/kubux/ai-image-studio/internal/negotiate"
	"github.com/kubux/ai-image-studio/internal/platform"
	"github.com/kubux/ai-image-studio/internal/storage"
)

// RootUI represents the main UI structure
type RootUI struct {
	window     fyne.Window
	settings   *config.Settings
	generator  generate.Generator
	history    *history.Store
	organizer  *storage.Organizer
	negotiator *negotiate.Negotiator

	// Resize events arrive continuously while dragging; only the settled
	// size feeds the dimension preview.
	resizeDebounce *negotiate.Debouncer

	promptEntry   *widget.Entry
	negativeEntry *widget.Entry
	contextEntry  *widget.Entry
	modelSelect   *widget.Select
	stepsSlider   *widget.Slider
	stepsLabel    *widget.Label
	scaleSlider   *widget.Slider
	scaleLabel    *widget.Label
	generateBtn   *widget.Button
	statusLabel   *widget.Label
	dimsLabel     *widget.Label
	progress      *widget.ProgressBarInfinite
	imageView     *ImageView

	// Error notice panel (hidden by default)
	errorContainer *fyne.Container
	errorLabel     *widget.Label

	lastResultPath string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, generator generate.Generator, historyStore *history.Store, organizer *storage.Organizer) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	ui := &RootUI{
		window:         window,
		settings:       settings,
		generator:      generator,
		history:        historyStore,
		organizer:      organizer,
		negotiator:     negotiate.NewNegotiator(),
		resizeDebounce: negotiate.NewDebouncer(ResizeDebounce),
	}

	// Set up callback for job updates
	if ui.generator != nil {
		ui.generator.SetUpdateCallback(ui.onJobUpdate)
	}

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create prompt entries
	ui.promptEntry = widget.NewMultiLineEntry()
	ui.promptEntry.SetPlaceHolder("Describe the image to generate...")
	ui.promptEntry.Wrapping = fyne.TextWrapWord

	ui.negativeEntry = widget.NewEntry()
	ui.negativeEntry.SetPlaceHolder("Negative prompt (optional)")

	ui.contextEntry = widget.NewEntry()
	ui.contextEntry.SetPlaceHolder("Context image URL (optional)")

	// Create model selector
	ui.modelSelect = widget.NewSelect(model.ModelNames(), func(string) {
		ui.settings.SetModelIndex(ui.modelSelect.SelectedIndex())
	})
	ui.modelSelect.SetSelectedIndex(ui.settings.GetModelIndex())

	// Create steps slider
	ui.stepsLabel = widget.NewLabel("")
	ui.stepsSlider = widget.NewSlider(config.MinSteps, config.MaxSteps)
	ui.stepsSlider.Step = 1
	ui.stepsSlider.SetValue(float64(ui.settings.GetSteps()))
	ui.stepsSlider.OnChanged = func(value float64) {
		ui.settings.SetSteps(int(value))
		ui.refreshSliderLabels()
	}

	// Create size scale slider
	ui.scaleLabel = widget.NewLabel("")
	ui.scaleSlider = widget.NewSlider(config.MinSizeScale, config.MaxSizeScale)
	ui.scaleSlider.Step = 0.05
	ui.scaleSlider.SetValue(ui.settings.GetSizeScale())
	ui.scaleSlider.OnChanged = func(value float64) {
		ui.settings.SetSizeScale(value)
		ui.refreshSliderLabels()
		ui.updateDimensionPreview()
	}
	ui.refreshSliderLabels()

	// Create action buttons
	ui.generateBtn = widget.NewButton("Generate", ui.onGenerateClick)
	ui.generateBtn.Importance = widget.HighImportance

	historyBtn := widget.NewButton(IconHistory+" History", ui.onShowHistory)
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	revealBtn := widget.NewButton(IconFolder, ui.onRevealFolder)
	revealBtn.Importance = widget.LowImportance

	// Create error notice panel (hidden by default)
	ui.errorLabel = widget.NewLabel("")
	ui.errorLabel.Wrapping = fyne.TextWrapWord
	dismissBtn := widget.NewButton(IconClose, ui.hideError)
	dismissBtn.Importance = widget.LowImportance
	ui.errorContainer = container.NewBorder(nil, nil, nil, dismissBtn, ui.errorLabel)
	ui.errorContainer.Hide()

	// Create status bar
	ui.statusLabel = widget.NewLabel("Ready")
	ui.progress = widget.NewProgressBarInfinite()
	ui.progress.Hide()
	ui.dimsLabel = widget.NewLabel(DashPlaceholder)
	statusBar := container.NewBorder(nil, nil, nil, ui.dimsLabel,
		container.NewHBox(ui.statusLabel, ui.progress))

	// Create image view
	ui.imageView = NewImageView()
	ui.imageView.SetFullscreen(ui.settings.GetFullscreen())
	ui.imageView.OnViewportChange = ui.onViewportChange
	ui.imageView.OnToggleFullscreen = ui.onToggleFullscreen

	// Assemble the form panel
	form := container.NewVBox(
		widget.NewLabel("Prompt:"),
		ui.promptEntry,
		widget.NewLabel("Negative prompt:"),
		ui.negativeEntry,
		widget.NewLabel("Context image:"),
		ui.contextEntry,
		widget.NewSeparator(),

		widget.NewLabel("Model:"),
		ui.modelSelect,
		ui.stepsLabel,
		ui.stepsSlider,
		ui.scaleLabel,
		ui.scaleSlider,
		widget.NewSeparator(),

		ui.generateBtn,
		container.NewGridWithColumns(3, historyBtn, revealBtn, settingsBtn),
	)

	content := container.NewBorder(
		ui.errorContainer, // top
		statusBar,         // bottom
		form,              // left
		nil,               // right
		ui.imageView,      // center
	)

	ui.window.SetContent(content)

	// Restore fullscreen from the previous session
	if ui.settings.GetFullscreen() {
		ui.window.SetFullScreen(true)
	}

	logrus.Debug("UI setup completed")
}

// refreshSliderLabels updates the slider captions with current values
func (ui *RootUI) refreshSliderLabels() {
	ui.stepsLabel.SetText(fmt.Sprintf("Steps: %d", ui.settings.GetSteps()))
	ui.scaleLabel.SetText(fmt.Sprintf("Size: %d%%", int(ui.settings.GetSizeScale()*100+0.5)))
}

// onGenerateClick handles the generate/cancel button click
func (ui *RootUI) onGenerateClick() {
	if ui.generator == nil {
		ui.showError("Generation is disabled: no API key configured (set TOGETHER_API_KEY)")
		return
	}

	// While a job is in flight the button acts as Cancel
	if _, active := ui.generator.Current(); active {
		logrus.Info("Cancelling current generation")
		ui.generator.Cancel()
		return
	}

	prompt := strings.TrimSpace(ui.promptEntry.Text)
	if prompt == "" {
		ui.showError("Please enter a prompt")
		return
	}
	ui.hideError()

	width, height := ui.negotiatedDimensions()
	req := model.GenerationRequest{
		Prompt:          prompt,
		NegativePrompt:  strings.TrimSpace(ui.negativeEntry.Text),
		ContextImageURL: strings.TrimSpace(ui.contextEntry.Text),
		Steps:           ui.settings.GetSteps(),
		Width:           width,
		Height:          height,
		Model:           model.ModelByIndex(ui.settings.GetModelIndex()).ID,
	}

	// Record the prompt before the outcome is known; failed generations
	// are still worth re-running later.
	ui.history.Record(req.HistoryEntry())

	job := ui.generator.Submit(req)
	logrus.WithFields(logrus.Fields{
		"job_id": job.ID,
		"model":  req.Model,
		"size":   fmt.Sprintf(DimensionsFormat, width, height),
	}).Info("Generation submitted")
}

// onJobUpdate receives job lifecycle updates from the generation service.
// It is invoked from worker goroutines, so all UI work goes through fyne.Do.
func (ui *RootUI) onJobUpdate(job *model.GenerationJob) {
	fyne.Do(func() {
		switch job.Status {
		case model.JobStatusInFlight:
			ui.statusLabel.SetText("Generating " + job.GetDisplayTitle())
			ui.progress.Show()
			ui.generateBtn.SetText("Cancel")

		case model.JobStatusCompleted:
			ui.lastResultPath = job.ResultPath
			if err := ui.imageView.SetImageFile(job.ResultPath); err != nil {
				logrus.WithError(err).Error("Failed to display generated image")
				ui.showError("Could not display result: " + err.Error())
			}
			ui.statusLabel.SetText(fmt.Sprintf("Done in %.1fs", job.Elapsed().Seconds()))
			ui.updateDimensionPreview()
			ui.finishJobUI()

		case model.JobStatusFailed:
			ui.statusLabel.SetText("Failed")
			ui.showError(job.LastError)
			ui.finishJobUI()

		case model.JobStatusCancelled:
			ui.statusLabel.SetText("Cancelled")
			ui.finishJobUI()
		}
	})
}

// finishJobUI resets the in-flight controls unless a replacement job has
// already taken the slot (preemption delivers the old job's terminal update
// alongside the new job's start).
func (ui *RootUI) finishJobUI() {
	if _, active := ui.generator.Current(); active {
		return
	}
	ui.progress.Hide()
	ui.generateBtn.SetText("Generate")
}

// negotiatedDimensions computes the generation size for the current
// viewport and scale setting.
func (ui *RootUI) negotiatedDimensions() (int, int) {
	size := ui.imageView.Size()
	return ui.negotiator.Negotiate(float64(size.Width), float64(size.Height), ui.settings.GetSizeScale())
}

// updateDimensionPreview refreshes the status bar with the size the next
// generation would use.
func (ui *RootUI) updateDimensionPreview() {
	w, h := ui.negotiatedDimensions()
	ui.dimsLabel.SetText(fmt.Sprintf(DimensionsFormat, w, h))
}

// onViewportChange handles image view resizes; the preview only updates
// once the size has settled.
func (ui *RootUI) onViewportChange(_, _ float64) {
	ui.resizeDebounce.Trigger(func() {
		fyne.Do(ui.updateDimensionPreview)
	})
}

// onToggleFullscreen switches the window mode and persists the flag
func (ui *RootUI) onToggleFullscreen() {
	fullscreen := !ui.imageView.Fullscreen()
	ui.imageView.SetFullscreen(fullscreen)
	ui.settings.SetFullscreen(fullscreen)
	ui.window.SetFullScreen(fullscreen)
}

// onShowHistory shows the prompt history dialog
func (ui *RootUI) onShowHistory() {
	ShowHistoryDialog(ui.window, ui.history, func(entry model.PromptHistoryEntry) {
		ui.promptEntry.SetText(entry.Prompt)
		ui.negativeEntry.SetText(entry.NegativePrompt)
		ui.contextEntry.SetText(entry.ContextImageURL)
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, func() {
		ui.stepsSlider.SetValue(float64(ui.settings.GetSteps()))
		ui.scaleSlider.SetValue(ui.settings.GetSizeScale())
		ui.refreshSliderLabels()
		ui.updateDimensionPreview()
	})
}

// onRevealFolder opens the last result (or the output tree) in the file manager
func (ui *RootUI) onRevealFolder() {
	target := ui.lastResultPath
	if target == "" {
		target = ui.organizer.BaseDir()
	}
	if err := platform.OpenFileInManager(target); err != nil {
		logrus.WithError(err).Warn("Failed to open file manager")
		ui.showError("Could not open file manager: " + err.Error())
	}
}

// ShowError surfaces a message in the dismissible error panel. Safe to call
// from any goroutine.
func (ui *RootUI) ShowError(message string) {
	fyne.Do(func() {
		ui.showError(message)
	})
}

func (ui *RootUI) showError(message string) {
	ui.errorLabel.SetText(message)
	ui.errorContainer.Show()
	ui.errorContainer.Refresh()
}

func (ui *RootUI) hideError() {
	ui.errorContainer.Hide()
}

// Shutdown flushes state before the application exits.
func (ui *RootUI) Shutdown() {
	ui.resizeDebounce.Stop()
	if ui.generator != nil {
		ui.generator.Close()
	}
	if err := ui.history.Save(); err != nil {
		logrus.WithError(err).Warn("Failed to save prompt history")
	}
}
