// Package ui implements the Fyne user interface: the root window with the
// prompt form and generation controls, the interactive image view with zoom
// and pan, and the history and settings dialogs.
package ui
