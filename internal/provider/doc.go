package provider

// Package provider defines the boundary between the app's canonical video
// model and concrete metadata/download backends. Each backend adapts its own
// schema (yt-dlp JSON, youtube itag formats) into model.VideoInfo so that
// provider-specific field names never leak into the rest of the app.
