package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/kubux/ai-image-studio/internal/history"
	"github.com/kubux/ai-image-studio/internal/model"
)

// ShowHistoryDialog presents the recorded prompts, newest first. Picking an
// entry closes the dialog and hands the entry to onPick.
func ShowHistoryDialog(window fyne.Window, store *history.Store, onPick func(model.PromptHistoryEntry)) {
	entries := store.List()
	if len(entries) == 0 {
		dialog.ShowInformation("History", "No prompts recorded yet.", window)
		return
	}

	list := widget.NewList(
		func() int {
			return len(entries)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(entries) {
				return
			}
			entry := entries[id]
			text := entry.Timestamp.Format("2006-01-02 15:04") + MiddleDotSeparator + entry.Prompt
			obj.(*widget.Label).SetText(text)
		},
	)

	d := dialog.NewCustom("Prompt History", "Close", list, window)
	list.OnSelected = func(id widget.ListItemID) {
		if id >= len(entries) {
			return
		}
		d.Hide()
		onPick(entries[id])
	}

	d.Resize(fyne.NewSize(600, 400))
	d.Show()
}
