package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconHistory  = "🕘"
	IconFolder   = "📁"
	IconClose    = "×"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	DimensionsFormat   = "%d×%d"
)

// Layout sizing
const (
	WindowWidth  float32 = 1100
	WindowHeight float32 = 780
)

// Scroll wheel deltas are small; scale them up before feeding the zoom.
const ScrollZoomScale = 4.0

// Debounce durations
const (
	ResizeDebounce = 150 * time.Millisecond
)
