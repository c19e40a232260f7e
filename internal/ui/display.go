package ui

import (
	"fmt"
	"strings"

	"github.com/ytget/yt-grabber/internal/model"
)

// File size formatting constants. The unit ladder stops at GB, so very
// large streams render as many gigabytes rather than moving to TB.
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMG"
)

// DisplaySize formats a byte count for the size column. Unknown sizes
// render as an empty string so the column stays blank instead of
// showing a bogus number.
func DisplaySize(bytes int64) string {
	if bytes < 0 {
		return ""
	}
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit && exp < len(FileSizeUnits)-1; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.2f%cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// DisplayTracks renders the track composition of a format, e.g. "A+V",
// "V" for video-only or "A" for audio-only streams.
func DisplayTracks(f model.VideoFormat) string {
	switch {
	case f.HasAudio && f.HasVideo:
		return "A+V"
	case f.HasVideo:
		return "V"
	case f.HasAudio:
		return "A"
	default:
		return DashPlaceholder
	}
}

// DisplaySpec builds the middle column of a format row: container,
// resolution, frame rate and bitrate joined with middle dots. Fields
// the provider did not report are skipped.
func DisplaySpec(f model.VideoFormat) string {
	parts := []string{}

	if f.Container != "" {
		parts = append(parts, f.Container)
	}
	if res := f.Resolution(); res != "" {
		parts = append(parts, res)
	}
	if f.FPS > 0 {
		parts = append(parts, fmt.Sprintf("%dfps", f.FPS))
	}
	if f.VideoBitrate > 0 {
		parts = append(parts, fmt.Sprintf("%.0fk", f.VideoBitrate))
	} else if f.AudioBitrate > 0 {
		parts = append(parts, fmt.Sprintf("%.0fk", f.AudioBitrate))
	}
	parts = append(parts, DisplayTracks(f))

	return strings.Join(parts, MiddleDotSeparator)
}
