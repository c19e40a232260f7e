package model

import (
	"path/filepath"
	"time"
)

// DownloadTask tracks one in-flight or finished format download. Tasks are
// keyed by format ID in the orchestrator; progress events overwrite Percent
// in place and never remove the entry.
type DownloadTask struct {
	ID         string
	FormatID   string
	URL        string
	Title      string
	Status     TaskStatus
	Percent    float64 // 0 to 100
	OutputPath string  // path to the downloaded file
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayTitle returns the video title, falling back to the output
// filename and then the URL.
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" {
		return dt.Title
	}
	if dt.OutputPath != "" {
		return filepath.Base(dt.OutputPath)
	}
	return dt.URL
}
