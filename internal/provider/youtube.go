package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/ytget/yt-grabber/internal/model"
)

// Stream copy buffer size
const streamCopyChunk = 64 * 1024

// YouTubeVideoURLTemplate builds the canonical watch URL from a video ID.
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// YouTubeProvider fetches metadata and streams formats in-process via the
// youtube library. It adapts the itag/MimeType schema into the canonical
// model.
type YouTubeProvider struct {
	client youtube.Client
}

// NewYouTubeProvider creates an in-process YouTube provider.
func NewYouTubeProvider() *YouTubeProvider {
	return &YouTubeProvider{}
}

// Name returns the provider's settings identifier.
func (p *YouTubeProvider) Name() string {
	return NameYouTube
}

// Fetch retrieves and normalizes metadata for the given URL.
func (p *YouTubeProvider) Fetch(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	if ferr := ValidateURL(videoURL); ferr != nil {
		return nil, ferr
	}

	video, err := p.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return nil, classifyFetchErr(ctx, err)
	}

	formats := make([]model.VideoFormat, 0, len(video.Formats))
	for _, f := range video.Formats {
		formats = append(formats, adaptYouTubeFormat(f))
	}

	return &model.VideoInfo{
		Title:   video.Title,
		URL:     fmt.Sprintf(YouTubeVideoURLTemplate, video.ID),
		Formats: formats,
	}, nil
}

// Download streams the requested format into req.OutputPath, mapping
// (received, total) byte counts to percent events.
func (p *YouTubeProvider) Download(ctx context.Context, req DownloadRequest, onProgress func(percent float64)) error {
	video, err := p.client.GetVideoContext(ctx, req.URL)
	if err != nil {
		return fmt.Errorf("failed to resolve video: %w", err)
	}

	format := findFormatByItag(video.Formats, req.FormatID)
	if format == nil {
		return fmt.Errorf("format not found: %s", req.FormatID)
	}

	stream, total, err := p.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer stream.Close()

	sink, err := os.Create(req.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer sink.Close()

	return copyWithProgress(sink, stream, total, onProgress)
}

// copyWithProgress copies the stream to the sink, emitting a percent event
// after each chunk when the total size is known.
func copyWithProgress(sink io.Writer, stream io.Reader, total int64, onProgress func(percent float64)) error {
	buf := make([]byte, streamCopyChunk)
	var received int64

	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := sink.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write failed: %w", werr)
			}
			received += int64(n)
			if total > 0 && onProgress != nil {
				onProgress(100 * float64(received) / float64(total))
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream read failed: %w", err)
		}
	}
}

// findFormatByItag locates the format whose itag matches the opaque ID.
func findFormatByItag(formats youtube.FormatList, id string) *youtube.Format {
	for i := range formats {
		if strconv.Itoa(formats[i].ItagNo) == id {
			return &formats[i]
		}
	}
	return nil
}

// adaptYouTubeFormat maps one youtube library format. The MimeType prefix
// carries the stream kind and container; audio presence comes from the
// channel count.
func adaptYouTubeFormat(f youtube.Format) model.VideoFormat {
	size := model.SizeUnknown
	if f.ContentLength > 0 {
		size = f.ContentLength
	}

	hasVideo := strings.HasPrefix(f.MimeType, "video/")
	hasAudio := f.AudioChannels > 0

	bitrateKbps := float64(f.Bitrate) / 1000

	vf := model.VideoFormat{
		ID:        strconv.Itoa(f.ItagNo),
		Container: containerFromMimeType(f.MimeType),
		HasAudio:  hasAudio,
		HasVideo:  hasVideo,
		Width:     f.Width,
		Height:    f.Height,
		FPS:       f.FPS,
		SizeBytes: size,
	}
	if hasVideo {
		vf.VideoBitrate = bitrateKbps
	} else if hasAudio {
		vf.AudioBitrate = bitrateKbps
	}

	return vf
}

// containerFromMimeType extracts the container from a MimeType such as
// `video/mp4; codecs="avc1.64001F, mp4a.40.2"`.
func containerFromMimeType(mimeType string) string {
	slash := strings.Index(mimeType, "/")
	if slash < 0 {
		return mimeType
	}
	rest := mimeType[slash+1:]
	if semi := strings.Index(rest, ";"); semi >= 0 {
		rest = rest[:semi]
	}
	return strings.TrimSpace(rest)
}
