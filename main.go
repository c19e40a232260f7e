package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/provider"
	"github.com/ytget/yt-grabber/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-grabber"
	AppName = "YT Grabber"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	width, height := settings.GetWindowSize()
	myWindow.Resize(fyne.NewSize(float32(width), float32(height)))

	// Ensure the save directory exists before any download starts
	saveDir := settings.GetSaveDirectory()
	if err := platform.CreateDirectoryIfNotExists(saveDir); err != nil {
		fmt.Printf("failed to ensure save dir: %v\n", err)
	}

	// Initialize services with the configured backend
	downloadSvc := download.NewService(provider.ByName(settings.GetProvider()))

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, downloadSvc)

	// Persist window size for the next run
	myWindow.SetOnClosed(func() {
		size := myWindow.Canvas().Size()
		settings.SetWindowSize(int(size.Width), int(size.Height))
	})

	// Show and run
	myWindow.ShowAndRun()
}
