package model

// Package model defines domain data structures used across the app: fetched
// video metadata, media formats, download tasks, and status enums. Structures
// are designed for direct binding in the UI and explicit state transitions.
