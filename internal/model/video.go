package model

import "fmt"

// SizeUnknown marks a format whose byte size was not reported by the provider.
const SizeUnknown int64 = -1

// VideoInfo is the normalized result of one metadata fetch. It is immutable
// after creation and replaced wholesale by the next fetch.
type VideoInfo struct {
	Title   string
	URL     string
	Formats []VideoFormat
}

// VideoFormat describes one downloadable encoding variant of a video.
// All fields come from the provider adapter; the ID is opaque and unique
// within one VideoInfo.
type VideoFormat struct {
	ID           string
	Container    string
	HasAudio     bool
	HasVideo     bool
	Width        int
	Height       int
	FPS          int
	VideoBitrate float64 // kbit/s, 0 if unknown
	AudioBitrate float64 // kbit/s, 0 if unknown
	SizeBytes    int64   // SizeUnknown if not reported
}

// Resolution returns "WxH" for video formats, or an empty string for
// audio-only formats.
func (f VideoFormat) Resolution() string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", f.Width, f.Height)
}

// Visible returns the subset of formats matching the require flags.
// A format is kept iff it has audio when audio is required and has video when
// video is required. Total over any input, including nil.
func Visible(formats []VideoFormat, requireVideo, requireAudio bool) []VideoFormat {
	out := make([]VideoFormat, 0, len(formats))
	for _, f := range formats {
		if (f.HasAudio || !requireAudio) && (f.HasVideo || !requireVideo) {
			out = append(out, f)
		}
	}
	return out
}

// FormatByID looks up a format by its opaque ID.
func (vi *VideoInfo) FormatByID(id string) (VideoFormat, bool) {
	for _, f := range vi.Formats {
		if f.ID == id {
			return f, true
		}
	}
	return VideoFormat{}, false
}
