package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/provider"
)

// Settings keys for Fyne preferences
const (
	KeySaveDirectory = "save_directory"
	KeyRequireVideo  = "require_video"
	KeyRequireAudio  = "require_audio"
	KeyProvider      = "provider"
	KeyWindowWidth   = "window_width"
	KeyWindowHeight  = "window_height"
	KeyLanguage      = "app_language"
)

// Default values
const (
	DefaultRequireVideo = true
	DefaultRequireAudio = true
	DefaultProvider     = provider.NameYTDLP
	DefaultWindowWidth  = 900
	DefaultWindowHeight = 600
	DefaultLanguage     = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetSaveDirectory returns the configured save directory
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDirectory)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetSaveDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSaveDirectory sets the save directory
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDirectory, dir)
}

// GetRequireVideo returns whether only formats with a video track are listed
func (s *Settings) GetRequireVideo() bool {
	return s.app.Preferences().BoolWithFallback(KeyRequireVideo, DefaultRequireVideo)
}

// SetRequireVideo sets the video track filter
func (s *Settings) SetRequireVideo(require bool) {
	s.app.Preferences().SetBool(KeyRequireVideo, require)
}

// GetRequireAudio returns whether only formats with an audio track are listed
func (s *Settings) GetRequireAudio() bool {
	return s.app.Preferences().BoolWithFallback(KeyRequireAudio, DefaultRequireAudio)
}

// SetRequireAudio sets the audio track filter
func (s *Settings) SetRequireAudio(require bool) {
	s.app.Preferences().SetBool(KeyRequireAudio, require)
}

// GetProvider returns the configured metadata/download backend name
func (s *Settings) GetProvider() string {
	name := s.app.Preferences().String(KeyProvider)
	if name == "" {
		s.SetProvider(DefaultProvider)
		return DefaultProvider
	}
	return name
}

// SetProvider sets the backend name
func (s *Settings) SetProvider(name string) {
	s.app.Preferences().SetString(KeyProvider, name)
}

// GetWindowSize returns the persisted main window size
func (s *Settings) GetWindowSize() (width, height int) {
	width = s.app.Preferences().IntWithFallback(KeyWindowWidth, DefaultWindowWidth)
	height = s.app.Preferences().IntWithFallback(KeyWindowHeight, DefaultWindowHeight)
	if width < 400 {
		width = DefaultWindowWidth
	}
	if height < 300 {
		height = DefaultWindowHeight
	}
	return width, height
}

// SetWindowSize persists the main window size
func (s *Settings) SetWindowSize(width, height int) {
	s.app.Preferences().SetInt(KeyWindowWidth, width)
	s.app.Preferences().SetInt(KeyWindowHeight, height)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetProviderOptions returns available backend names
func (s *Settings) GetProviderOptions() []string {
	return []string{provider.NameYTDLP, provider.NameYouTube}
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
