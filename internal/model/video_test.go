package model

import "testing"

func sampleFormats() []VideoFormat {
	return []VideoFormat{
		{ID: "18", Container: "mp4", HasAudio: true, HasVideo: true, Width: 640, Height: 360},
		{ID: "137", Container: "mp4", HasVideo: true, Width: 1920, Height: 1080},
		{ID: "140", Container: "m4a", HasAudio: true},
		{ID: "251", Container: "webm", HasAudio: true},
	}
}

func TestVisible_NoConstraints(t *testing.T) {
	formats := sampleFormats()

	result := Visible(formats, false, false)
	if len(result) != len(formats) {
		t.Fatalf("Expected all %d formats, got %d", len(formats), len(result))
	}

	for i, f := range result {
		if f.ID != formats[i].ID {
			t.Errorf("Format %d: expected ID %s, got %s", i, formats[i].ID, f.ID)
		}
	}
}

func TestVisible_RequireBoth(t *testing.T) {
	result := Visible(sampleFormats(), true, true)

	if len(result) != 1 {
		t.Fatalf("Expected 1 format with both audio and video, got %d", len(result))
	}

	if result[0].ID != "18" {
		t.Errorf("Expected format 18, got %s", result[0].ID)
	}
}

func TestVisible_RequireVideoOnly(t *testing.T) {
	result := Visible(sampleFormats(), true, false)

	if len(result) != 2 {
		t.Fatalf("Expected 2 video formats, got %d", len(result))
	}

	for _, f := range result {
		if !f.HasVideo {
			t.Errorf("Format %s should have video", f.ID)
		}
	}
}

func TestVisible_RequireAudioOnly(t *testing.T) {
	result := Visible(sampleFormats(), false, true)

	if len(result) != 3 {
		t.Fatalf("Expected 3 audio formats, got %d", len(result))
	}
}

func TestVisible_EmptyAndNil(t *testing.T) {
	if got := Visible(nil, true, true); len(got) != 0 {
		t.Errorf("Expected empty result for nil input, got %d", len(got))
	}

	if got := Visible([]VideoFormat{}, false, false); len(got) != 0 {
		t.Errorf("Expected empty result for empty input, got %d", len(got))
	}
}

func TestVideoFormat_Resolution(t *testing.T) {
	tests := []struct {
		format   VideoFormat
		expected string
	}{
		{VideoFormat{Width: 1920, Height: 1080}, "1920x1080"},
		{VideoFormat{Width: 640, Height: 360}, "640x360"},
		{VideoFormat{}, ""},
		{VideoFormat{Width: 640}, ""},
	}

	for _, test := range tests {
		result := test.format.Resolution()
		if result != test.expected {
			t.Errorf("Resolution() = %q, expected %q", result, test.expected)
		}
	}
}

func TestVideoInfo_FormatByID(t *testing.T) {
	info := &VideoInfo{Title: "Test", Formats: sampleFormats()}

	f, ok := info.FormatByID("140")
	if !ok {
		t.Fatal("Expected format 140 to exist")
	}
	if f.Container != "m4a" {
		t.Errorf("Expected container m4a, got %s", f.Container)
	}

	_, ok = info.FormatByID("999")
	if ok {
		t.Error("Expected format 999 to not exist")
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		task     DownloadTask
		expected string
	}{
		{DownloadTask{Title: "Some Video"}, "Some Video"},
		{DownloadTask{OutputPath: "/tmp/out/video-18.mp4"}, "video-18.mp4"},
		{DownloadTask{URL: "https://youtube.com/watch?v=abc"}, "https://youtube.com/watch?v=abc"},
	}

	for _, test := range tests {
		result := test.task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() = %q, expected %q", result, test.expected)
		}
	}
}
