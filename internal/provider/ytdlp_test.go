package provider

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

func TestAdaptYTDLPFormat(t *testing.T) {
	tests := []struct {
		name     string
		raw      platform.YTDLPFormat
		expected model.VideoFormat
	}{
		{
			name: "muxed video+audio",
			raw: platform.YTDLPFormat{
				FormatID: "18", Ext: "mp4", ACodec: "mp4a.40.2", VCodec: "avc1.42001E",
				Width: 640, Height: 360, FPS: 30, VBR: 500, ABR: 96, Filesize: 1048576,
			},
			expected: model.VideoFormat{
				ID: "18", Container: "mp4", HasAudio: true, HasVideo: true,
				Width: 640, Height: 360, FPS: 30, VideoBitrate: 500, AudioBitrate: 96, SizeBytes: 1048576,
			},
		},
		{
			name: "audio only, none sentinel",
			raw: platform.YTDLPFormat{
				FormatID: "140", Ext: "m4a", ACodec: "mp4a.40.2", VCodec: "none", ABR: 128,
			},
			expected: model.VideoFormat{
				ID: "140", Container: "m4a", HasAudio: true, HasVideo: false,
				AudioBitrate: 128, SizeBytes: model.SizeUnknown,
			},
		},
		{
			name: "video only, approx size fallback",
			raw: platform.YTDLPFormat{
				FormatID: "137", Ext: "mp4", ACodec: "none", VCodec: "avc1.640028",
				Width: 1920, Height: 1080, FilesizeApprox: 2097152,
			},
			expected: model.VideoFormat{
				ID: "137", Container: "mp4", HasAudio: false, HasVideo: true,
				Width: 1920, Height: 1080, SizeBytes: 2097152,
			},
		},
		{
			name: "storyboard has neither stream",
			raw: platform.YTDLPFormat{
				FormatID: "sb0", Ext: "mhtml", ACodec: "none", VCodec: "none",
			},
			expected: model.VideoFormat{
				ID: "sb0", Container: "mhtml", SizeBytes: model.SizeUnknown,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, adaptYTDLPFormat(test.raw))
		})
	}
}

func TestAdaptYTDLPInfo(t *testing.T) {
	raw := &platform.YTDLPInfo{
		Title:      "Some Video",
		WebpageURL: "https://www.youtube.com/watch?v=abc",
		Formats: []platform.YTDLPFormat{
			{FormatID: "18", Ext: "mp4", ACodec: "mp4a", VCodec: "avc1"},
			{FormatID: "", Ext: "mp4"}, // no id, dropped
		},
	}

	info := adaptYTDLPInfo(raw, "https://youtu.be/abc")
	require.NotNil(t, info)
	assert.Equal(t, "Some Video", info.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", info.URL)
	require.Len(t, info.Formats, 1)
	assert.Equal(t, "18", info.Formats[0].ID)
}

func TestAdaptYTDLPInfo_FallsBackToRequestedURL(t *testing.T) {
	raw := &platform.YTDLPInfo{Title: "No Canonical"}

	info := adaptYTDLPInfo(raw, "https://youtu.be/abc")
	assert.Equal(t, "https://youtu.be/abc", info.URL)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url  string
		kind string // empty means valid
	}{
		{"https://youtube.com/watch?v=abc", ""},
		{"http://example.com/v/1", ""},
		{"", KindBadURL},
		{"   ", KindBadURL},
		{"ftp://example.com/file", KindBadURL},
		{"not a url", KindBadURL},
	}

	for _, test := range tests {
		ferr := ValidateURL(test.url)
		if test.kind == "" {
			assert.Nil(t, ferr, "URL %q should be valid", test.url)
		} else {
			require.NotNil(t, ferr, "URL %q should be invalid", test.url)
			assert.Equal(t, test.kind, ferr.Kind)
		}
	}
}

func TestYTDLPProvider_Fetch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}

	stub := filepath.Join(t.TempDir(), "yt-dlp-stub")
	script := `#!/bin/sh
echo '{"title":"Stub","webpage_url":"https://www.youtube.com/watch?v=stub","formats":[{"format_id":"18","ext":"mp4","acodec":"mp4a","vcodec":"avc1"},{"format_id":"140","ext":"m4a","acodec":"mp4a","vcodec":"none"}]}'
`
	require.NoError(t, os.WriteFile(stub, []byte(script), 0755))

	runner := platform.NewYTDLPRunner()
	runner.SetBinary(stub)
	p := NewYTDLPProvider(runner)

	info, err := p.Fetch(context.Background(), "https://youtube.com/watch?v=stub")
	require.NoError(t, err)
	assert.Equal(t, "Stub", info.Title)
	require.Len(t, info.Formats, 2)
	assert.True(t, info.Formats[0].HasVideo)
	assert.False(t, info.Formats[1].HasVideo)
}

func TestYTDLPProvider_FetchBadURL(t *testing.T) {
	p := NewYTDLPProvider(platform.NewYTDLPRunner())

	_, err := p.Fetch(context.Background(), "")
	require.Error(t, err)

	ferr, ok := err.(*FetchError)
	require.True(t, ok, "error should be a *FetchError")
	assert.Equal(t, KindBadURL, ferr.Kind)
}

func TestFetchError_Error(t *testing.T) {
	ferr := NewFetchError(KindProvider, "boom")
	assert.Contains(t, ferr.Error(), "provider")
	assert.Contains(t, ferr.Error(), "boom")
}
