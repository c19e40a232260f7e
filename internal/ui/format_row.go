package ui

import (
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/model"
)

// FormatRow represents one downloadable format in the list: its static
// description on the left and the download control or live transfer
// state on the right.
type FormatRow struct {
	widget.BaseWidget

	format       model.VideoFormat
	task         *model.DownloadTask
	localization *Localization

	// UI components
	idLabel    *widget.Label
	specLabel  *widget.Label
	sizeLabel  *widget.Label
	stateLabel *widget.Label

	// Action buttons
	downloadBtn *widget.Button
	revealBtn   *widget.Button // reveal in file manager
	openBtn     *widget.Button // open file with default app

	// Callbacks
	onDownload func(formatID string)
	onReveal   func(filePath string)
	onOpen     func(filePath string)
}

// NewFormatRow creates a new format row widget
func NewFormatRow(format model.VideoFormat, localization *Localization) *FormatRow {
	fr := &FormatRow{
		format:       format,
		localization: localization,
	}
	fr.ExtendBaseWidget(fr)
	fr.createUI()
	fr.updateFromState()
	return fr
}

// SetCallbacks sets the action callbacks
func (fr *FormatRow) SetCallbacks(
	onDownload func(formatID string),
	onReveal func(filePath string),
	onOpen func(filePath string),
) {
	fr.onDownload = onDownload
	fr.onReveal = onReveal
	fr.onOpen = onOpen
}

// UpdateFormat replaces the displayed format and its associated task.
// A nil task means no download has been started for this format.
func (fr *FormatRow) UpdateFormat(format model.VideoFormat, task *model.DownloadTask) {
	fr.format = format
	fr.task = task
	fr.updateFromState()
	fr.Refresh()
}

// createUI creates the UI components
func (fr *FormatRow) createUI() {
	fr.idLabel = widget.NewLabel("")
	fr.idLabel.TextStyle = fyne.TextStyle{Monospace: true}
	fr.idLabel.Alignment = fyne.TextAlignLeading

	fr.specLabel = widget.NewLabel("")
	fr.specLabel.Alignment = fyne.TextAlignLeading
	fr.specLabel.Truncation = fyne.TextTruncateEllipsis

	fr.sizeLabel = widget.NewLabel("")
	fr.sizeLabel.Alignment = fyne.TextAlignTrailing
	fr.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	fr.stateLabel = widget.NewLabel("")
	fr.stateLabel.Alignment = fyne.TextAlignTrailing
	fr.stateLabel.TextStyle = fyne.TextStyle{Monospace: true}

	fr.downloadBtn = widget.NewButton(fr.localization.GetText(KeyDownload), func() {
		if fr.onDownload == nil {
			log.Printf("onDownload callback is nil for format %s", fr.format.ID)
			return
		}
		fr.onDownload(fr.format.ID)
	})
	fr.downloadBtn.Importance = widget.HighImportance

	fr.revealBtn = widget.NewButton(fr.localization.GetText(KeyReveal), func() {
		task := fr.task
		if task == nil || task.OutputPath == "" {
			return
		}
		if fr.onReveal != nil {
			fr.onReveal(task.OutputPath)
		}
	})
	fr.revealBtn.Importance = widget.MediumImportance

	fr.openBtn = widget.NewButton(fr.localization.GetText(KeyOpen), func() {
		task := fr.task
		if task == nil || task.OutputPath == "" {
			return
		}
		if fr.onOpen != nil {
			fr.onOpen(task.OutputPath)
		}
	})
	fr.openBtn.Importance = widget.MediumImportance
}

// updateFromState updates the UI components from the format and its task
func (fr *FormatRow) updateFromState() {
	fr.idLabel.SetText(fr.format.ID)
	fr.specLabel.SetText(DisplaySpec(fr.format))
	fr.sizeLabel.SetText(DisplaySize(fr.format.SizeBytes))

	task := fr.task
	if task == nil {
		fr.stateLabel.SetText("")
		fr.stateLabel.Importance = widget.MediumImportance
		fr.downloadBtn.Show()
		fr.downloadBtn.Enable()
		fr.revealBtn.Hide()
		fr.openBtn.Hide()
		return
	}

	switch task.Status {
	case model.TaskStatusPending, model.TaskStatusStarting:
		fr.stateLabel.Importance = widget.MediumImportance
		fr.stateLabel.SetText(DashPlaceholder)
		fr.downloadBtn.Show()
		fr.downloadBtn.Disable()
		fr.revealBtn.Hide()
		fr.openBtn.Hide()
	case model.TaskStatusDownloading:
		fr.stateLabel.Importance = widget.HighImportance
		fr.stateLabel.SetText(fmt.Sprintf(PercentLabelFormat, task.Percent))
		fr.downloadBtn.Show()
		fr.downloadBtn.Disable()
		fr.revealBtn.Hide()
		fr.openBtn.Hide()
	case model.TaskStatusCompleted:
		fr.stateLabel.Importance = widget.SuccessImportance
		fr.stateLabel.SetText(IconDone)
		fr.downloadBtn.Hide()
		fr.revealBtn.Show()
		fr.openBtn.Show()
	case model.TaskStatusError:
		fr.stateLabel.Importance = widget.DangerImportance
		fr.stateLabel.SetText(IconError)
		// Terminal failure; a new fetch is required before retrying
		fr.downloadBtn.Show()
		fr.downloadBtn.Disable()
		fr.revealBtn.Hide()
		fr.openBtn.Hide()
	default:
		fr.stateLabel.Importance = widget.MediumImportance
		fr.stateLabel.SetText(task.Status.String())
		fr.downloadBtn.Show()
		fr.downloadBtn.Disable()
		fr.revealBtn.Hide()
		fr.openBtn.Hide()
	}
}

// ErrorText returns the failure message of the associated task, if any
func (fr *FormatRow) ErrorText() string {
	if fr.task != nil && fr.task.Status == model.TaskStatusError {
		return fr.task.LastError
	}
	return ""
}

// CreateRenderer creates the widget renderer
func (fr *FormatRow) CreateRenderer() fyne.WidgetRenderer {
	return &formatRowRenderer{formatRow: fr}
}

// formatRowRenderer renders the format row widget
type formatRowRenderer struct {
	formatRow *FormatRow
	layout    *fyne.Container
}

// Layout arranges the components
func (r *formatRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *formatRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *formatRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *formatRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *formatRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *formatRowRenderer) createLayout() {
	fr := r.formatRow

	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	// Left: format id, fixed width so the spec column lines up
	leftSide := fixedWidth(IDLabelWidth, fr.idLabel)

	// Right cluster: size, live state and the action buttons pinned to
	// the row's right edge
	actionRow := container.NewHBox(
		fr.downloadBtn,
		fr.revealBtn,
		fr.openBtn,
	)
	rightSide := container.NewHBox(
		fixedWidth(SizeLabelWidth, fr.sizeLabel),
		fixedWidth(StateLabelWidth, fr.stateLabel),
		actionRow,
	)

	// Center gets the remaining width for the spec text
	mainContent := container.NewBorder(nil, nil, leftSide, rightSide, fr.specLabel)

	r.layout = container.NewVBox(
		mainContent,
		widget.NewSeparator(),
	)
}
