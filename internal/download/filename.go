package download

import (
	"fmt"
	"strings"

	"github.com/ytget/yt-grabber/internal/model"
)

// Extension remapping for audio-only streams
const (
	ExtAudioMP4      = "m4a"
	ExtAudioWebm     = "webm"
	ExtUnknownStream = "unknown"
)

// titleSanitizer replaces characters that are invalid in filenames on at
// least one supported platform.
var titleSanitizer = strings.NewReplacer(
	`"`, "_",
	"*", "_",
	":", "_",
	"<", "_",
	">", "_",
	"?", "_",
	"/", "_",
	`\`, "_",
	"|", "_",
)

// SanitizeTitle replaces filesystem-hostile characters in a video title
// with underscores, leaving everything else verbatim.
func SanitizeTitle(title string) string {
	return titleSanitizer.Replace(title)
}

// OutputExt picks the file extension for a format: the container itself when
// the format carries video, otherwise the audio container remapped by family
// (mp4-family streams carry audio in m4a, webm-family in webm).
func OutputExt(f model.VideoFormat) string {
	if f.HasVideo {
		return f.Container
	}
	switch f.Container {
	case "mp4", "m4a":
		return ExtAudioMP4
	case "webm":
		return ExtAudioWebm
	default:
		return ExtUnknownStream
	}
}

// OutputName composes the output filename for one format download:
// <sanitizedTitle>-<formatID>.<ext>.
func OutputName(title string, f model.VideoFormat) string {
	return fmt.Sprintf("%s-%s.%s", SanitizeTitle(title), f.ID, OutputExt(f))
}
