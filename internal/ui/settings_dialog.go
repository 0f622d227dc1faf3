package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/kubux/ai-image-studio/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	outputDirEntry *widget.Entry
	stepsEntry     *widget.Entry
	scaleEntry     *widget.Entry
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs
// after a confirmed save so the caller can refresh dependent controls.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, onSaved func()) {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Output directory selection
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Output directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// Diffusion steps
	sd.stepsEntry = widget.NewEntry()
	sd.stepsEntry.SetPlaceHolder(strconv.Itoa(config.MinSteps) + "-" + strconv.Itoa(config.MaxSteps))

	// Size scale
	sd.scaleEntry = widget.NewEntry()
	sd.scaleEntry.SetPlaceHolder("0.2-1.0")

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Storage"),
		widget.NewSeparator(),

		widget.NewLabel("Output Directory:"),
		outputDirRow,

		widget.NewSeparator(),
		widget.NewLabel("Generation"),
		widget.NewSeparator(),

		widget.NewLabel("Diffusion Steps:"),
		sd.stepsEntry,

		widget.NewLabel("Size Scale:"),
		sd.scaleEntry,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 360))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.stepsEntry.SetText(strconv.Itoa(sd.settings.GetSteps()))
	sd.scaleEntry.SetText(strconv.FormatFloat(sd.settings.GetSizeScale(), 'f', 2, 64))
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Validate and save output directory
	if dir := sd.outputDirEntry.Text; dir != "" {
		sd.settings.SetOutputDirectory(dir)
	}

	// Validate and save steps
	if text := sd.stepsEntry.Text; text != "" {
		if steps, err := strconv.Atoi(text); err == nil {
			sd.settings.SetSteps(steps)
		}
	}

	// Validate and save size scale
	if text := sd.scaleEntry.Text; text != "" {
		if scale, err := strconv.ParseFloat(text, 64); err == nil {
			sd.settings.SetSizeScale(scale)
		}
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
