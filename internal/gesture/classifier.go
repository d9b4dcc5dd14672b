package gesture

import (
	"math"
	"time"
)

// State of the classifier for the active contact.
type State int

const (
	Idle State = iota
	Pressing
	Dragging
	LongPressFired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressing:
		return "pressing"
	case Dragging:
		return "dragging"
	case LongPressFired:
		return "long_press_fired"
	default:
		return "unknown"
	}
}

// Timer is a cancellable pending timer. Stop must be idempotent.
type Timer interface {
	Stop() bool
}

// Scheduler arranges for ev to be handed back to Classifier.Handle after d.
type Scheduler interface {
	Schedule(d time.Duration, ev Event) Timer
}

type contactKey struct {
	source Source
	id     int64
}

// Classifier disambiguates one contact at a time.
type Classifier struct {
	cfg   Config
	sched Scheduler

	state  State
	active contactKey
	origin Point
	last   Point
	timer  Timer
	gen    uint64
}

// New constructs a Classifier. cfg is used as given; callers validate it.
func New(cfg Config, sched Scheduler) *Classifier {
	return &Classifier{cfg: cfg, sched: sched}
}

// State returns the current state.
func (c *Classifier) State() State {
	return c.state
}

// Handle advances the state machine. It returns the intent emitted by this
// event, if any.
func (c *Classifier) Handle(ev Event) (Intent, bool) {
	if ev.Phase == PhaseTimer {
		return c.timerElapsed(ev)
	}

	key := contactKey{source: ev.Source, id: ev.Contact}
	if c.state == Idle {
		if ev.Phase == PhaseStart {
			c.start(key, ev)
		}
		return Intent{}, false
	}
	if key != c.active {
		// first contact wins
		return Intent{}, false
	}

	switch ev.Phase {
	case PhaseMove:
		c.move(ev.Point)
	case PhaseEnd:
		return c.end(ev.Point)
	case PhaseCancel:
		c.reset()
	}
	return Intent{}, false
}

// Reset abandons the active contact without emitting anything.
func (c *Classifier) Reset() {
	c.reset()
}

func (c *Classifier) start(key contactKey, ev Event) {
	c.gen++
	c.state = Pressing
	c.active = key
	c.origin = ev.Point
	c.last = ev.Point
	if c.sched != nil {
		c.timer = c.sched.Schedule(c.cfg.LongPress, Event{
			Phase:   PhaseTimer,
			Source:  key.source,
			Contact: key.id,
			At:      ev.At.Add(c.cfg.LongPress),
			gen:     c.gen,
		})
	}
}

func (c *Classifier) move(p Point) {
	switch c.state {
	case Pressing:
		c.last = p
		if c.exceedsJitter(p) {
			c.stopTimer()
			c.state = Dragging
		}
	case Dragging:
		c.last = p
	}
}

func (c *Classifier) end(p Point) (Intent, bool) {
	state, origin := c.state, c.origin
	c.reset()
	if state != Pressing && state != Dragging {
		return Intent{}, false
	}
	dir, ok := c.classify(origin, p)
	if !ok {
		return Intent{}, false
	}
	return Intent{Kind: IntentNavigate, Direction: dir, Origin: origin, End: p}, true
}

func (c *Classifier) timerElapsed(ev Event) (Intent, bool) {
	if c.state != Pressing || ev.gen != c.gen {
		return Intent{}, false
	}
	c.timer = nil
	c.state = LongPressFired
	return Intent{Kind: IntentEdit, Origin: c.origin, End: c.last}, true
}

func (c *Classifier) classify(origin, end Point) (Direction, bool) {
	dx, dy := end.X-origin.X, end.Y-origin.Y
	ax, ay := math.Abs(dx), math.Abs(dy)
	if math.Max(ax, ay) < c.cfg.SwipeThresholdPx {
		return "", false
	}
	if ax >= ay {
		if dx < 0 {
			return Left, true
		}
		return Right, true
	}
	if dy < 0 {
		return Up, true
	}
	return Down, true
}

func (c *Classifier) exceedsJitter(p Point) bool {
	return math.Abs(p.X-c.origin.X) > c.cfg.JitterPx || math.Abs(p.Y-c.origin.Y) > c.cfg.JitterPx
}

func (c *Classifier) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Classifier) reset() {
	c.stopTimer()
	c.state = Idle
	c.active = contactKey{}
}
