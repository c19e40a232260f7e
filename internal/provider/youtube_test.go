package provider

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerFromMimeType(t *testing.T) {
	tests := []struct {
		mimeType string
		expected string
	}{
		{`video/mp4; codecs="avc1.64001F, mp4a.40.2"`, "mp4"},
		{`audio/webm; codecs="opus"`, "webm"},
		{"video/webm", "webm"},
		{"bogus", "bogus"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, containerFromMimeType(test.mimeType))
	}
}

func TestAdaptYouTubeFormat(t *testing.T) {
	f := youtube.Format{
		ItagNo:        22,
		MimeType:      `video/mp4; codecs="avc1.64001F, mp4a.40.2"`,
		Width:         1280,
		Height:        720,
		FPS:           30,
		Bitrate:       2000000,
		AudioChannels: 2,
		ContentLength: 5242880,
	}

	vf := adaptYouTubeFormat(f)
	assert.Equal(t, "22", vf.ID)
	assert.Equal(t, "mp4", vf.Container)
	assert.True(t, vf.HasVideo)
	assert.True(t, vf.HasAudio)
	assert.Equal(t, 1280, vf.Width)
	assert.Equal(t, int64(5242880), vf.SizeBytes)
	assert.InDelta(t, 2000, vf.VideoBitrate, 0.01)
	assert.Zero(t, vf.AudioBitrate)
}

func TestAdaptYouTubeFormat_AudioOnly(t *testing.T) {
	f := youtube.Format{
		ItagNo:        251,
		MimeType:      `audio/webm; codecs="opus"`,
		Bitrate:       160000,
		AudioChannels: 2,
	}

	vf := adaptYouTubeFormat(f)
	assert.Equal(t, "251", vf.ID)
	assert.Equal(t, "webm", vf.Container)
	assert.False(t, vf.HasVideo)
	assert.True(t, vf.HasAudio)
	assert.InDelta(t, 160, vf.AudioBitrate, 0.01)
}

func TestFindFormatByItag(t *testing.T) {
	formats := youtube.FormatList{
		{ItagNo: 18},
		{ItagNo: 140},
	}

	f := findFormatByItag(formats, "140")
	require.NotNil(t, f)
	assert.Equal(t, 140, f.ItagNo)

	assert.Nil(t, findFormatByItag(formats, "999"))
}

func TestCopyWithProgress(t *testing.T) {
	payload := strings.Repeat("x", 3*streamCopyChunk/2)
	var sink bytes.Buffer
	var percents []float64

	err := copyWithProgress(&sink, strings.NewReader(payload), int64(len(payload)), func(p float64) {
		percents = append(percents, p)
	})
	require.NoError(t, err)
	assert.Equal(t, payload, sink.String())

	require.NotEmpty(t, percents)
	assert.Equal(t, float64(100), percents[len(percents)-1])
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
}

func TestCopyWithProgress_UnknownTotal(t *testing.T) {
	var sink bytes.Buffer
	called := false

	err := copyWithProgress(&sink, strings.NewReader("data"), 0, func(float64) { called = true })
	require.NoError(t, err)
	assert.False(t, called, "no progress events when total size is unknown")
}
