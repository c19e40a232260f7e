package platform

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"
)

// Runner defaults
const (
	DefaultYTDLPBinary  = "yt-dlp"
	DefaultFetchTimeout = 60 * time.Second
)

// percentPattern matches the percent token yt-dlp prints on its progress
// lines, e.g. "[download]  42.0% of 10.00MiB".
var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// YTDLPInfo mirrors the subset of the yt-dlp -J output consumed by the app.
type YTDLPInfo struct {
	Title      string        `json:"title"`
	WebpageURL string        `json:"webpage_url"`
	Formats    []YTDLPFormat `json:"formats"`
}

// YTDLPFormat mirrors one entry of the yt-dlp formats array. Absent streams
// are reported with the "none" sentinel in ACodec/VCodec.
type YTDLPFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	ACodec         string  `json:"acodec"`
	VCodec         string  `json:"vcodec"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	FPS            float64 `json:"fps"`
	VBR            float64 `json:"vbr"`
	ABR            float64 `json:"abr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

// YTDLPRunner invokes the yt-dlp binary for metadata fetching and downloads.
type YTDLPRunner struct {
	binPath string
	timeout time.Duration
}

// NewYTDLPRunner creates a runner using the yt-dlp binary from PATH.
func NewYTDLPRunner() *YTDLPRunner {
	return &YTDLPRunner{
		binPath: DefaultYTDLPBinary,
		timeout: DefaultFetchTimeout,
	}
}

// SetBinary overrides the yt-dlp binary path. Tests use this to substitute
// a stub executable.
func (r *YTDLPRunner) SetBinary(path string) {
	r.binPath = path
}

// SetFetchTimeout sets the timeout for metadata fetches.
func (r *YTDLPRunner) SetFetchTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// FetchInfo runs yt-dlp -J for the given URL and decodes the single JSON
// object it prints.
func (r *YTDLPRunner) FetchInfo(ctx context.Context, url string) (*YTDLPInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binPath, "-J", "--no-playlist", "--no-warnings", url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("yt-dlp exec error: %w | stderr: %s", err, stderr.String())
	}

	var info YTDLPInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("yt-dlp parse error: %w", err)
	}

	return &info, nil
}

// Download runs yt-dlp for one format, scanning its line-oriented stdout for
// progress percent tokens. onPercent is invoked for each line carrying a
// percent token; lines without one are ignored. A clean exit means success,
// any nonzero exit is an error.
func (r *YTDLPRunner) Download(ctx context.Context, formatID, outputPath, url string, onPercent func(float64)) error {
	cmd := exec.CommandContext(ctx, r.binPath, "-f", formatID, "-o", outputPath, "--newline", url)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if percent, ok := ParsePercent(scanner.Text()); ok && onPercent != nil {
			onPercent(percent)
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("yt-dlp exited with error: %w", err)
	}

	return nil
}

// ParsePercent extracts the progress percent from one yt-dlp stdout line.
// The second return is false when the line carries no percent token.
func ParsePercent(line string) (float64, bool) {
	match := percentPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}

	percent, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	return percent, true
}
