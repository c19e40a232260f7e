package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, OS open/reveal, and the yt-dlp subprocess runner used
// for metadata fetching and format downloads.
