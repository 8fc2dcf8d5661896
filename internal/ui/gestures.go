package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureTap
	GestureLongPress
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// GestureHandler turns raw touch events into gestures
type GestureHandler struct {
	onGesture func(GestureType, fyne.Position)

	touchStartTime time.Time
	touchStartPos  fyne.Position

	swipeThreshold    float32
	longPressDuration time.Duration
	now               func() time.Time
}

// NewGestureHandler creates a new gesture handler. onGesture receives the
// gesture and the absolute position the touch ended at.
func NewGestureHandler(onGesture func(GestureType, fyne.Position)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
		now:               time.Now,
	}
}

// TouchDown handles touch down events for gesture detection
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.touchStartTime = gh.now()
	gh.touchStartPos = event.Position
}

// TouchUp handles touch up events for gesture detection
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	if gh.touchStartTime.IsZero() {
		return
	}
	duration := gh.now().Sub(gh.touchStartTime)
	gh.touchStartTime = time.Time{}

	dx := event.Position.X - gh.touchStartPos.X
	dy := event.Position.Y - gh.touchStartPos.Y

	if g := classifyGesture(duration, dx, dy, gh.swipeThreshold, gh.longPressDuration); g != GestureNone && gh.onGesture != nil {
		gh.onGesture(g, event.AbsolutePosition)
	}
}

// TouchCancel handles touch cancel events
func (gh *GestureHandler) TouchCancel(*mobile.TouchEvent) {
	gh.touchStartTime = time.Time{}
}

// classifyGesture maps a finished touch onto a gesture. Movement beyond
// threshold is a swipe regardless of duration.
func classifyGesture(duration time.Duration, dx, dy, threshold float32, longPress time.Duration) GestureType {
	if dx*dx+dy*dy >= threshold*threshold {
		absDx, absDy := dx, dy
		if absDx < 0 {
			absDx = -absDx
		}
		if absDy < 0 {
			absDy = -absDy
		}

		switch {
		case absDx > absDy && dx > 0:
			return GestureSwipeRight
		case absDx > absDy:
			return GestureSwipeLeft
		case dy > 0:
			return GestureSwipeDown
		default:
			return GestureSwipeUp
		}
	}

	if duration >= longPress {
		return GestureLongPress
	}
	return GestureTap
}
