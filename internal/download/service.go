package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/provider"
)

// Task ID prefix
const taskIDPrefix = "task-"

// ErrDownloadActive is returned when a download for the same format is
// already pending or running.
var ErrDownloadActive = errors.New("download already active for format")

// Service handles download operations. Tasks are keyed by format ID; each
// running download only ever writes its own entry, protected by the shared
// mutex.
type Service struct {
	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex
	provider   provider.Provider
	onUpdate   func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service backed by the given provider.
func NewService(p provider.Provider) *Service {
	return &Service{
		tasks:    make(map[string]*model.DownloadTask),
		provider: p,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// SetProvider switches the transfer backend. In-flight downloads keep the
// provider they started with.
func (s *Service) SetProvider(p provider.Provider) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.provider = p
}

// Provider returns the current transfer backend
func (s *Service) Provider() provider.Provider {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.provider
}

// Start begins downloading one format into dir. A second start for a format
// whose task is still active is refused; a finished task is replaced so a
// failed download can be started again.
func (s *Service) Start(info *model.VideoInfo, format model.VideoFormat, dir string) (*model.DownloadTask, error) {
	s.tasksMutex.Lock()

	if existing, ok := s.tasks[format.ID]; ok && existing.Status.IsActive() {
		s.tasksMutex.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDownloadActive, format.ID)
	}

	task := &model.DownloadTask{
		ID:         taskIDPrefix + newTaskID(),
		FormatID:   format.ID,
		URL:        info.URL,
		Title:      info.Title,
		Status:     model.TaskStatusPending,
		OutputPath: filepath.Join(dir, OutputName(info.Title, format)),
		StartedAt:  time.Now(),
	}
	s.tasks[format.ID] = task
	p := s.provider
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	go s.run(p, task, dir)

	return task, nil
}

// Task returns the task for a format ID, if one was started.
func (s *Service) Task(formatID string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[formatID]
	return task, exists
}

// AllTasks returns all tasks for the current video.
func (s *Service) AllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// Reset clears all task state. Called when a new video is fetched so the
// task key space always stays within the current video's format IDs.
func (s *Service) Reset() {
	s.tasksMutex.Lock()
	s.tasks = make(map[string]*model.DownloadTask)
	s.tasksMutex.Unlock()
}

// run performs one download in the background.
func (s *Service) run(p provider.Provider, task *model.DownloadTask, dir string) {
	s.setStatus(task, model.TaskStatusStarting)

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		s.fail(task, fmt.Errorf("failed to prepare directory: %w", err))
		return
	}

	req := provider.DownloadRequest{
		URL:        task.URL,
		FormatID:   task.FormatID,
		OutputPath: task.OutputPath,
	}

	s.setStatus(task, model.TaskStatusDownloading)
	log.Printf("Download started: format=%s output=%s", task.FormatID, task.OutputPath)

	err := p.Download(context.Background(), req, func(percent float64) {
		s.setPercent(task, percent)
	})
	if err != nil {
		s.fail(task, err)
		return
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.Percent = 100
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Printf("Download completed: format=%s output=%s", task.FormatID, task.OutputPath)
	s.notifyUpdate(task)
}

// setStatus transitions a task and notifies the UI.
func (s *Service) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// setPercent overwrites a task's progress with the latest event value.
func (s *Service) setPercent(task *model.DownloadTask, percent float64) {
	s.tasksMutex.Lock()
	task.Percent = percent
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// fail marks a task as failed. Other in-flight downloads are unaffected.
func (s *Service) fail(task *model.DownloadTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Printf("Download failed: format=%s error=%v", task.FormatID, err)
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// newTaskID generates a unique task ID using UUID v7 for time ordering
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return id.String()
}
