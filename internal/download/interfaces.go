package download

import (
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/provider"
)

// Downloader defines the interface for the download orchestrator.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))

	// Start begins downloading one format of the given video into dir.
	Start(info *model.VideoInfo, format model.VideoFormat, dir string) (*model.DownloadTask, error)

	// Task returns the task for a format ID, if one was started.
	Task(formatID string) (*model.DownloadTask, bool)

	// AllTasks returns all tasks for the current video.
	AllTasks() []*model.DownloadTask

	// Reset clears all task state; called when a new video is fetched.
	Reset()

	// SetProvider switches the transfer backend.
	SetProvider(p provider.Provider)

	// Provider returns the current transfer backend.
	Provider() provider.Provider
}
