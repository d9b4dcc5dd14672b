// Package gesture classifies the samples of a single pointer contact into at
// most one intent: a directional swipe (navigate) or a sustained press
// (edit). Taps and ambiguous motion produce nothing.
//
// A Classifier is a plain state machine and is not safe for concurrent use.
// The long-press timer is delegated to a Scheduler, which must deliver the
// scheduled event back to the same goroutine that drives Handle.
package gesture

import (
	"errors"
	"fmt"
	"time"
)

// Source names the input system a contact came from.
type Source string

const (
	SourcePointer Source = "pointer"
	SourceTouch   Source = "touch"
	SourceMouse   Source = "mouse"
)

// ParseSource maps a client-reported source name, defaulting to pointer.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceTouch, SourceMouse:
		return Source(s)
	default:
		return SourcePointer
	}
}

// Phase is the kind of a contact event.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
	// PhaseTimer is produced by the Classifier itself and delivered back by
	// the Scheduler when the long-press duration elapses.
	PhaseTimer
)

var phaseNames = map[Phase]string{
	PhaseStart:  "start",
	PhaseMove:   "move",
	PhaseEnd:    "end",
	PhaseCancel: "cancel",
	PhaseTimer:  "timer",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ParsePhase maps the wire names used by clients ("down", "move", "up",
// "cancel" and their start/end aliases).
func ParsePhase(s string) (Phase, bool) {
	switch s {
	case "down", "start":
		return PhaseStart, true
	case "move":
		return PhaseMove, true
	case "up", "end":
		return PhaseEnd, true
	case "cancel":
		return PhaseCancel, true
	default:
		return 0, false
	}
}

// Point is a position in CSS pixels, y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is one sample of a contact.
type Event struct {
	Phase   Phase
	Source  Source
	Contact int64
	Point   Point
	At      time.Time

	gen uint64
}

// Direction of a navigate intent.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case Left, Right, Up, Down:
		return d, true
	default:
		return "", false
	}
}

// IntentKind distinguishes the two possible outcomes of a gesture.
type IntentKind string

const (
	IntentNavigate IntentKind = "navigate"
	IntentEdit     IntentKind = "edit"
)

// Intent is emitted at most once per contact.
type Intent struct {
	Kind      IntentKind
	Direction Direction
	Origin    Point
	End       Point
}

// Config holds the tunables that used to differ between prototypes.
type Config struct {
	LongPress        time.Duration
	JitterPx         float64
	SwipeThresholdPx float64
}

// DefaultConfig returns 500ms long press, 12px jitter tolerance and a 28px
// swipe threshold.
func DefaultConfig() Config {
	return Config{
		LongPress:        500 * time.Millisecond,
		JitterPx:         12,
		SwipeThresholdPx: 28,
	}
}

var ErrInvalidConfig = errors.New("gesture: invalid config")

// Validate rejects non-positive durations and thresholds.
func (c Config) Validate() error {
	switch {
	case c.LongPress <= 0:
		return fmt.Errorf("%w: long press must be positive", ErrInvalidConfig)
	case c.JitterPx < 0:
		return fmt.Errorf("%w: jitter tolerance must not be negative", ErrInvalidConfig)
	case c.SwipeThresholdPx <= 0:
		return fmt.Errorf("%w: swipe threshold must be positive", ErrInvalidConfig)
	}
	return nil
}
