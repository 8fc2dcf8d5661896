package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconClose    = "×"
	IconError    = "❌"
	IconLock     = "🔒"
)

// Text fragments
const (
	PillFormat     = "%d"
	PillPairFormat = "%d / %d"
)

// Layout sizing (EpisodeRow / PodcastRow / lists)
const (
	EpisodeRowMinWidth  float32 = 360
	EpisodeRowMinHeight float32 = 56
	StatusIconSize      float32 = 24
	SizeLabelWidth      float32 = 72
	DateLabelWidth      float32 = 96
	TimeLabelWidth      float32 = 64
	ProgressBarWidth    float32 = 96

	PodcastRowMinWidth float32 = 220
	PillMinWidth       float32 = 28

	// PodcastPaneOffset is the initial share of the split given to podcasts
	PodcastPaneOffset = 0.3
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// BackgroundYield is the pause between two list population slices
const BackgroundYield = 5 * time.Millisecond

// Timeouts for network actions started from the UI
const (
	SubscribeTimeout = 60 * time.Second
	RefreshTimeout   = 5 * time.Minute
)
