package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
	IconError    = "❌"
	IconDone     = "✓"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	PercentLabelFormat = "%.1f%%"
)

// Layout sizing (FormatRow / lists)
const (
	IDLabelWidth    float32 = 56
	SizeLabelWidth  float32 = 80
	StateLabelWidth float32 = 90

	RowMinWidth  float32 = 420
	RowMinHeight float32 = 40
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 360
)
