package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/kubux/ai-image-studio/internal/config"
	"github.com/kubux/ai-image-studio/internal/generate"
	"github.com/kubux/ai-image-studio/internal/history"
	"github.com/kubux/ai-image-studio/internal/platform"
	"github.com/kubux/ai-image-studio/internal/storage"
	"github.com/kubux/ai-image-studio/internal/together"
	"github.com/kubux/ai-image-studio/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.kubux.ai-image-studio"
	AppName = "AI Image Studio"

	historyFileName = "prompt_history.json"
)

func main() {
	logrus.Infof("%s v%s starting", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply application theme
	myApp.Settings().SetTheme(ui.NewStudioTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)

	// Initialize services
	settings := config.NewSettings(myApp)

	winW, winH := settings.GetWindowSize(ui.WindowWidth, ui.WindowHeight)
	myWindow.Resize(fyne.NewSize(winW, winH))

	organizer, err := storage.NewOrganizer(settings.GetOutputDirectory())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to prepare output directory")
	}

	historyStore := history.NewStore(historyPath(), settings.GetHistoryCapacity())

	svcCfg, cfgErr := config.LoadServiceConfig()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrMissingAPIKey) {
		logrus.WithError(cfgErr).Fatal("Failed to load service configuration")
	}

	// Without an API key the app still runs as a viewer over past results;
	// the generate button explains what is missing.
	var generator generate.Generator
	if cfgErr == nil {
		client := together.NewClient(svcCfg.APIKey, svcCfg.BaseURL, svcCfg.RequestTimeout)
		generator = generate.NewService(client, organizer, generate.Config{
			MaxAttempts: svcCfg.MaxAttempts,
			BaseDelay:   svcCfg.RetryBaseDelay,
			MaxDelay:    svcCfg.RetryMaxDelay,
			JobTimeout:  svcCfg.JobTimeout,
		})
	} else {
		logrus.Warn("No API key configured, generation disabled")
	}

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, generator, historyStore, organizer)

	myWindow.SetCloseIntercept(func() {
		size := myWindow.Canvas().Size()
		settings.SetWindowSize(size.Width, size.Height)
		rootUI.Shutdown()
		myWindow.Close()
	})

	// Show and run
	myWindow.ShowAndRun()
}

// historyPath puts the prompt history next to the service configuration.
func historyPath() string {
	dir, err := platform.GetConfigDir(config.AppName)
	if err != nil {
		logrus.WithError(err).Warn("Failed to resolve config dir, keeping history in the working directory")
		return historyFileName
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		logrus.WithError(err).Warn("Failed to create config dir, keeping history in the working directory")
		return historyFileName
	}
	return filepath.Join(dir, historyFileName)
}
