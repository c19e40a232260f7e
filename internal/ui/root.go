package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/provider"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	urlEntry     *widget.Entry
	fetchBtn     *widget.Button
	formatList   *widget.List
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	// Track filter checkboxes
	requireVideoCheck *widget.Check
	requireAudioCheck *widget.Check

	// Fetched metadata and the formats currently listed
	info           *model.VideoInfo
	visibleFormats []model.VideoFormat
	stateMutex     sync.Mutex

	// A new fetch cancels the previous one
	fetchCancel context.CancelFunc

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	// Ensure the save directory exists
	saveDir := settings.GetSaveDirectory()
	if err := platform.CreateDirectoryIfNotExists(saveDir); err != nil {
		log.Printf("Failed to ensure save dir %s: %v", saveDir, err)
	}

	ui := &RootUI{
		window:       window,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for download updates
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Create URL entry
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	// Trigger fetch when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onFetchClick()
	}

	// Create fetch button
	ui.fetchBtn = widget.NewButton(ui.localization.GetText(KeyFetch), ui.onFetchClick)
	ui.fetchBtn.Importance = widget.HighImportance

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Create top panel (URL row)
	topPanel := container.NewBorder(nil, nil, container.NewHBox(settingsBtn), ui.fetchBtn, ui.urlEntry)

	// Track filter checkboxes feed the format list directly
	ui.requireVideoCheck = widget.NewCheck(ui.localization.GetText(KeyRequireVideo), func(checked bool) {
		ui.settings.SetRequireVideo(checked)
		ui.refreshVisibleFormats()
	})
	ui.requireVideoCheck.SetChecked(ui.settings.GetRequireVideo())

	ui.requireAudioCheck = widget.NewCheck(ui.localization.GetText(KeyRequireAudio), func(checked bool) {
		ui.settings.SetRequireAudio(checked)
		ui.refreshVisibleFormats()
	})
	ui.requireAudioCheck.SetChecked(ui.settings.GetRequireAudio())

	filterRow := container.NewHBox(ui.requireVideoCheck, ui.requireAudioCheck)

	// Create notification panel under URL input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Combine URL row, filters and notification panel at the top
	topCombined := container.NewVBox(topPanel, filterRow, ui.notificationContainer)

	// Create format list
	ui.formatList = widget.NewList(
		func() int {
			ui.stateMutex.Lock()
			defer ui.stateMutex.Unlock()
			return len(ui.visibleFormats)
		},
		func() fyne.CanvasObject { return ui.createFormatItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateFormatItem(id, obj) },
	)

	// Create main layout
	content := container.NewBorder(
		topCombined,   // top
		nil,           // bottom
		nil,           // left
		nil,           // right
		ui.formatList, // center
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.fetchBtn.SetText(ui.localization.GetText(KeyFetch))
	ui.requireVideoCheck.Text = ui.localization.GetText(KeyRequireVideo)
	ui.requireVideoCheck.Refresh()
	ui.requireAudioCheck.Text = ui.localization.GetText(KeyRequireAudio)
	ui.requireAudioCheck.Refresh()

	// Refresh format list to update button texts
	ui.formatList.Refresh()
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}
	if err := provider.ValidateURL(strings.TrimSpace(input)); err != nil {
		return err
	}
	return nil
}

// onFetchClick handles the fetch button click
func (ui *RootUI) onFetchClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}

	if err := provider.ValidateURL(urlText); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return
	}

	log.Printf("Fetching formats for URL: %s", urlText)

	// A new fetch supersedes any in-flight one
	ui.stateMutex.Lock()
	if ui.fetchCancel != nil {
		ui.fetchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	ui.fetchCancel = cancel
	ui.stateMutex.Unlock()

	ui.showNotification(ui.localization.GetText(KeyFetching), true)

	go func() {
		info, err := ui.downloadSvc.Provider().Fetch(ctx, urlText)

		fyne.Do(func() {
			ui.applyFetchResult(ctx, urlText, info, err)
		})
	}()
}

// applyFetchResult installs one fetch outcome. Runs on the UI thread. A
// result whose context was cancelled lost to a newer fetch and is dropped,
// even when the fetch itself finished cleanly before the cancel landed.
func (ui *RootUI) applyFetchResult(ctx context.Context, urlText string, info *model.VideoInfo, err error) {
	if ctx.Err() != nil {
		log.Printf("Fetch superseded for URL: %s", urlText)
		return
	}

	if err != nil {
		log.Printf("Fetch failed for %s: %v", urlText, err)
		ui.showNotification(ui.localization.GetText(KeyFetchFailed)+": "+err.Error(), false)
		return
	}

	log.Printf("Fetched %d formats for %q", len(info.Formats), info.Title)

	// Previous video's tasks are no longer addressable
	ui.downloadSvc.Reset()

	ui.stateMutex.Lock()
	ui.info = info
	ui.stateMutex.Unlock()

	ui.refreshVisibleFormats()
	ui.showNotification(fmt.Sprintf("%s: %d %s", info.Title, len(info.Formats),
		ui.localization.GetText(KeyFormatsFound)), false)
}

// refreshVisibleFormats recomputes the listed formats from the current
// metadata and filter checkboxes, then refreshes the list.
func (ui *RootUI) refreshVisibleFormats() {
	ui.stateMutex.Lock()
	if ui.info == nil {
		ui.visibleFormats = nil
	} else {
		ui.visibleFormats = model.Visible(ui.info.Formats,
			ui.settings.GetRequireVideo(), ui.settings.GetRequireAudio())
	}
	ui.stateMutex.Unlock()

	ui.formatList.Refresh()
}

// showNotification displays a message in the notification panel under the URL input.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		// Pick up a backend change; active transfers keep their provider
		name := ui.settings.GetProvider()
		if ui.downloadSvc.Provider().Name() != name {
			log.Printf("Switching provider to %s", name)
			ui.downloadSvc.SetProvider(provider.ByName(name))
		}
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// createFormatItem creates a new format row widget for the list
func (ui *RootUI) createFormatItem() fyne.CanvasObject {
	row := NewFormatRow(model.VideoFormat{}, ui.localization)
	row.SetCallbacks(
		ui.onDownloadFormat,
		ui.onRevealFile,
		ui.onOpenFile,
	)
	return row
}

// updateFormatItem updates a format row with current data
func (ui *RootUI) updateFormatItem(id widget.ListItemID, item fyne.CanvasObject) {
	ui.stateMutex.Lock()
	if id >= len(ui.visibleFormats) {
		ui.stateMutex.Unlock()
		return
	}
	format := ui.visibleFormats[id]
	ui.stateMutex.Unlock()

	row, ok := item.(*FormatRow)
	if !ok {
		return
	}

	// Re-set callbacks on every update; list items are recycled
	row.SetCallbacks(
		ui.onDownloadFormat,
		ui.onRevealFile,
		ui.onOpenFile,
	)

	task, _ := ui.downloadSvc.Task(format.ID)
	row.UpdateFormat(format, task)
}

// onDownloadFormat handles download button click on a format row
func (ui *RootUI) onDownloadFormat(formatID string) {
	ui.stateMutex.Lock()
	info := ui.info
	ui.stateMutex.Unlock()

	if info == nil {
		return
	}

	format, ok := info.FormatByID(formatID)
	if !ok {
		log.Printf("Format %s not found in current metadata", formatID)
		return
	}

	log.Printf("Starting download of format %s for %q", formatID, info.Title)

	_, err := ui.downloadSvc.Start(info, format, ui.settings.GetSaveDirectory())
	if err != nil {
		if errors.Is(err, download.ErrDownloadActive) {
			ui.showNotification(ui.localization.GetText(KeyAlreadyActive), false)
		} else {
			ui.showNotification(ui.localization.GetText(KeyDownloadFailed)+": "+err.Error(), false)
		}
		return
	}

	ui.showNotification(ui.localization.GetText(KeyDownloadStarted), false)
	ui.formatList.Refresh()
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onOpenFile handles opening a downloaded file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		return
	}

	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onTaskUpdate handles task updates from the download service
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	log.Printf("Task update: format=%s status=%s percent=%.1f output=%s",
		task.FormatID, task.Status, task.Percent, task.OutputPath)

	wasCompleted := task.Status == model.TaskStatusCompleted

	fyne.Do(func() {
		ui.formatList.Refresh()

		if task.Status == model.TaskStatusError {
			ui.showNotification(ui.localization.GetText(KeyDownloadFailed)+": "+task.LastError, false)
		}
	})

	if wasCompleted {
		ui.sendCompletionNotification(task)
	}
}

// sendCompletionNotification sends a system notification for completed downloads
func (ui *RootUI) sendCompletionNotification(task *model.DownloadTask) {
	title := ui.localization.GetText(KeyDownloadCompleted)
	message := task.GetDisplayTitle()

	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   title,
		Content: message,
	})

	fyne.Do(func() {
		ui.showToastNotification(task)
	})
}

// showToastNotification shows an in-app toast notification with action buttons
func (ui *RootUI) showToastNotification(task *model.DownloadTask) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyDownloadCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(task.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() {
		ui.onRevealFile(task.OutputPath)
	})
	revealBtn.Importance = widget.HighImportance

	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
		ui.onOpenFile(task.OutputPath)
	})
	openBtn.Importance = widget.MediumImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	actions := container.NewHBox(revealBtn, openBtn)
	content := container.NewVBox(
		header,
		messageLabel,
		actions,
	)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
	}()
}
