// Package ui implements the Fyne desktop interface: the URL entry and
// fetch flow, the filterable format list with per-format download
// controls, the settings dialog, and localization.
package ui
