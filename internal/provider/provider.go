package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// Provider names, also used as settings values
const (
	NameYTDLP   = "ytdlp"
	NameYouTube = "youtube"
)

// FetchError kinds
const (
	KindBadURL    = "bad-url"
	KindProvider  = "provider"
	KindCancelled = "cancelled"
)

// DownloadRequest identifies one format transfer.
type DownloadRequest struct {
	URL        string
	FormatID   string
	OutputPath string
}

// Provider is the external capability boundary: metadata fetch plus one-shot
// format download with progress reporting.
type Provider interface {
	// Name returns the provider's settings identifier.
	Name() string

	// Fetch retrieves normalized metadata for the given URL. Errors are
	// *FetchError values.
	Fetch(ctx context.Context, videoURL string) (*model.VideoInfo, error)

	// Download transfers one format to req.OutputPath, invoking onProgress
	// with a 0-100 percent value as the transfer advances.
	Download(ctx context.Context, req DownloadRequest, onProgress func(percent float64)) error
}

// ByName constructs the provider for a settings value. Unknown names fall
// back to the yt-dlp backend.
func ByName(name string) Provider {
	switch name {
	case NameYouTube:
		return NewYouTubeProvider()
	default:
		return NewYTDLPProvider(platform.NewYTDLPRunner())
	}
}

// FetchError is the structured error surfaced to the UI when a metadata
// fetch fails.
type FetchError struct {
	Kind    string
	Message string
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s): %s", e.Kind, e.Message)
}

// NewFetchError creates a FetchError with the given kind.
func NewFetchError(kind, message string) *FetchError {
	return &FetchError{Kind: kind, Message: message}
}

// classifyFetchErr wraps a backend error into a FetchError, mapping context
// cancellation to its own kind.
func classifyFetchErr(ctx context.Context, err error) *FetchError {
	if ctx.Err() == context.Canceled {
		return NewFetchError(KindCancelled, "fetch cancelled")
	}
	return NewFetchError(KindProvider, err.Error())
}

// ValidateURL checks that the input is a non-empty absolute http(s) URL.
func ValidateURL(videoURL string) *FetchError {
	trimmed := strings.TrimSpace(videoURL)
	if trimmed == "" {
		return NewFetchError(KindBadURL, "URL is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return NewFetchError(KindBadURL, err.Error())
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return NewFetchError(KindBadURL, "URL must start with http:// or https://")
	}

	return nil
}
