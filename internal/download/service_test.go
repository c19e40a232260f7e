package download

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/provider"
)

// fakeProvider simulates one transfer per Download call: it emits the
// configured percents and then succeeds or fails.
type fakeProvider struct {
	mu       sync.Mutex
	percents []float64
	err      error
	block    chan struct{} // when set, Download waits before finishing
	requests []provider.DownloadRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(ctx context.Context, url string) (*model.VideoInfo, error) {
	return &model.VideoInfo{
		Title: "Fetched Video",
		URL:   url,
		Formats: []model.VideoFormat{
			{ID: "1", Container: "mp4", HasAudio: true, HasVideo: true},
			{ID: "2", Container: "webm", HasAudio: true},
		},
	}, nil
}

func (f *fakeProvider) Download(ctx context.Context, req provider.DownloadRequest, onProgress func(float64)) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	percents := f.percents
	block := f.block
	f.mu.Unlock()

	for _, p := range percents {
		onProgress(p)
	}
	if block != nil {
		<-block
	}
	return f.err
}

// collectUpdates wires an update callback that records terminal statuses.
func waitForStatus(t *testing.T, s *Service, formatID string, want model.TaskStatus) *model.DownloadTask {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if task, ok := s.Task(formatID); ok && task.Status == want {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}

	task, _ := s.Task(formatID)
	t.Fatalf("Task %s never reached status %s (last: %+v)", formatID, want, task)
	return nil
}

func testInfo() *model.VideoInfo {
	return &model.VideoInfo{
		Title: "Test Video",
		URL:   "https://youtube.com/watch?v=test",
		Formats: []model.VideoFormat{
			{ID: "18", Container: "mp4", HasAudio: true, HasVideo: true},
			{ID: "140", Container: "m4a", HasAudio: true},
		},
	}
}

func TestStart_CompletesOnCleanExit(t *testing.T) {
	fake := &fakeProvider{percents: []float64{10, 42.5, 99}}
	service := NewService(fake)

	info := testInfo()
	task, err := service.Start(info, info.Formats[0], t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != model.TaskStatusPending {
		t.Errorf("Expected initial status Pending, got %s", task.Status)
	}
	if !strings.HasSuffix(task.OutputPath, "Test Video-18.mp4") {
		t.Errorf("Unexpected output path: %s", task.OutputPath)
	}

	done := waitForStatus(t, service, "18", model.TaskStatusCompleted)
	if done.Percent != 100 {
		t.Errorf("Expected percent 100 on completion, got %v", done.Percent)
	}
	if done.LastError != "" {
		t.Errorf("Expected no error message, got %q", done.LastError)
	}
}

func TestStart_FailureIsRecorded(t *testing.T) {
	fake := &fakeProvider{err: errors.New("exit status 1")}
	service := NewService(fake)

	info := testInfo()
	if _, err := service.Start(info, info.Formats[0], t.TempDir()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	task := waitForStatus(t, service, "18", model.TaskStatusError)
	if task.LastError == "" {
		t.Error("Expected LastError to be set")
	}
}

func TestStart_RefusesActiveDuplicate(t *testing.T) {
	fake := &fakeProvider{block: make(chan struct{})}
	service := NewService(fake)

	info := testInfo()
	dir := t.TempDir()
	if _, err := service.Start(info, info.Formats[0], dir); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	waitForStatus(t, service, "18", model.TaskStatusDownloading)

	_, err := service.Start(info, info.Formats[0], dir)
	if !errors.Is(err, ErrDownloadActive) {
		t.Errorf("Expected ErrDownloadActive, got %v", err)
	}

	// A different format may start concurrently
	if _, err := service.Start(info, info.Formats[1], dir); err != nil {
		t.Errorf("Expected concurrent start of another format, got %v", err)
	}

	close(fake.block)
	waitForStatus(t, service, "18", model.TaskStatusCompleted)

	// A finished task may be restarted
	if _, err := service.Start(info, info.Formats[0], dir); err != nil {
		t.Errorf("Expected restart after completion, got %v", err)
	}

	// Let the restarted download finish so its goroutine does not race
	// TempDir cleanup by recreating the directory mid-removal
	waitForStatus(t, service, "18", model.TaskStatusCompleted)
}

func TestStart_ProgressOverwrites(t *testing.T) {
	fake := &fakeProvider{percents: []float64{10, 42.5}}
	service := NewService(fake)

	var mu sync.Mutex
	var seen []float64
	service.SetUpdateCallback(func(task *model.DownloadTask) {
		mu.Lock()
		defer mu.Unlock()
		if task.Status == model.TaskStatusDownloading {
			seen = append(seen, task.Percent)
		}
	})

	info := testInfo()
	if _, err := service.Start(info, info.Formats[0], t.TempDir()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	waitForStatus(t, service, "18", model.TaskStatusCompleted)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 2 {
		t.Fatalf("Expected at least 2 downloading updates, got %v", seen)
	}
	if seen[len(seen)-1] != 42.5 {
		t.Errorf("Expected last progress 42.5, got %v", seen[len(seen)-1])
	}
}

func TestReset(t *testing.T) {
	fake := &fakeProvider{}
	service := NewService(fake)

	info := testInfo()
	if _, err := service.Start(info, info.Formats[0], t.TempDir()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitForStatus(t, service, "18", model.TaskStatusCompleted)

	service.Reset()

	if len(service.AllTasks()) != 0 {
		t.Error("Expected no tasks after Reset")
	}
	if _, ok := service.Task("18"); ok {
		t.Error("Expected task 18 to be gone after Reset")
	}
}

// TestFetchFilterDownloadFlow exercises the full path: fetch, filter to
// video-bearing formats, start the visible one, and observe completion.
func TestFetchFilterDownloadFlow(t *testing.T) {
	fake := &fakeProvider{}
	service := NewService(fake)

	info, err := fake.Fetch(context.Background(), "https://youtube.com/watch?v=flow")
	if err != nil {
		t.Fatalf("Expected no fetch error, got %v", err)
	}

	visible := model.Visible(info.Formats, true, false)
	if len(visible) != 1 || visible[0].ID != "1" {
		t.Fatalf("Expected only format 1 visible, got %+v", visible)
	}

	task, err := service.Start(info, visible[0], t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Status != model.TaskStatusPending {
		t.Errorf("Expected Pending entry on start, got %s", task.Status)
	}

	waitForStatus(t, service, "1", model.TaskStatusCompleted)
}
