package download

// Package download implements the download orchestrator: it builds output
// filenames from the video title and format, runs one provider transfer per
// chosen format, and folds progress events into per-format task state for
// the UI.
