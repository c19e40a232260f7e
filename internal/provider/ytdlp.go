package provider

import (
	"context"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// yt-dlp codec sentinel for an absent stream
const codecNone = "none"

// YTDLPProvider fetches metadata and downloads formats through the yt-dlp
// binary. It adapts the format_id/ext/acodec/vcodec schema into the
// canonical model.
type YTDLPProvider struct {
	runner *platform.YTDLPRunner
}

// NewYTDLPProvider creates a provider backed by the given runner.
func NewYTDLPProvider(runner *platform.YTDLPRunner) *YTDLPProvider {
	return &YTDLPProvider{runner: runner}
}

// Name returns the provider's settings identifier.
func (p *YTDLPProvider) Name() string {
	return NameYTDLP
}

// Fetch retrieves and normalizes metadata for the given URL.
func (p *YTDLPProvider) Fetch(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	if ferr := ValidateURL(videoURL); ferr != nil {
		return nil, ferr
	}

	raw, err := p.runner.FetchInfo(ctx, videoURL)
	if err != nil {
		return nil, classifyFetchErr(ctx, err)
	}

	return adaptYTDLPInfo(raw, videoURL), nil
}

// Download spawns yt-dlp for the requested format and maps its stdout
// percent tokens to progress events.
func (p *YTDLPProvider) Download(ctx context.Context, req DownloadRequest, onProgress func(percent float64)) error {
	return p.runner.Download(ctx, req.FormatID, req.OutputPath, req.URL, onProgress)
}

// adaptYTDLPInfo maps the raw yt-dlp schema into the canonical model.
func adaptYTDLPInfo(raw *platform.YTDLPInfo, requestedURL string) *model.VideoInfo {
	canonicalURL := raw.WebpageURL
	if canonicalURL == "" {
		canonicalURL = requestedURL
	}

	formats := make([]model.VideoFormat, 0, len(raw.Formats))
	for _, f := range raw.Formats {
		if f.FormatID == "" {
			continue
		}
		formats = append(formats, adaptYTDLPFormat(f))
	}

	return &model.VideoInfo{
		Title:   raw.Title,
		URL:     canonicalURL,
		Formats: formats,
	}
}

// adaptYTDLPFormat maps one yt-dlp format entry. The "none" sentinel in
// acodec/vcodec marks an absent stream.
func adaptYTDLPFormat(f platform.YTDLPFormat) model.VideoFormat {
	size := model.SizeUnknown
	if f.Filesize > 0 {
		size = f.Filesize
	} else if f.FilesizeApprox > 0 {
		size = f.FilesizeApprox
	}

	return model.VideoFormat{
		ID:           f.FormatID,
		Container:    f.Ext,
		HasAudio:     f.ACodec != "" && f.ACodec != codecNone,
		HasVideo:     f.VCodec != "" && f.VCodec != codecNone,
		Width:        f.Width,
		Height:       f.Height,
		FPS:          int(f.FPS),
		VideoBitrate: f.VBR,
		AudioBitrate: f.ABR,
		SizeBytes:    size,
	}
}
