// Package navigation owns the browsing state of one viewer: the anchor being
// shown, the history of previous anchors and the candidate view opened by a
// directional gesture. A Controller is not safe for concurrent use; the
// session that owns it serializes every call.
package navigation

import (
	"slices"

	"swipetree/internal/gesture"
	"swipetree/pkg/lineage"
	pstrings "swipetree/pkg/platform/strings"
)

// View is an open multi-candidate selection.
type View struct {
	Direction  gesture.Direction `json:"direction"`
	Candidates []lineage.ID      `json:"candidates"`
}

// OutcomeKind describes what a navigation step did.
type OutcomeKind string

const (
	// OutcomeNone means nothing changed.
	OutcomeNone OutcomeKind = "none"
	// OutcomeView means a candidate view was opened (possibly empty).
	OutcomeView OutcomeKind = "view"
	// OutcomeMoved means the anchor changed.
	OutcomeMoved OutcomeKind = "moved"
	// OutcomeEdit means the caller should start the edit flow.
	OutcomeEdit OutcomeKind = "edit"
)

// Outcome is the result of applying an intent or command.
type Outcome struct {
	Kind   OutcomeKind
	Anchor lineage.ID
	View   *View
}

// Controller tracks anchor, history and candidate view.
type Controller struct {
	resolver *lineage.Resolver
	labels   Labels

	anchor  lineage.ID
	source  string
	history []lineage.ID
	view    *View
}

// New constructs a Controller anchored at anchor.
func New(resolver *lineage.Resolver, labels Labels, anchor lineage.ID) *Controller {
	return &Controller{
		resolver: resolver,
		labels:   labels,
		anchor:   anchor,
	}
}

// Anchor returns the identifier currently shown.
func (c *Controller) Anchor() lineage.ID {
	return c.anchor
}

// History returns a copy of the history stack, oldest first.
func (c *Controller) History() []lineage.ID {
	return slices.Clone(c.history)
}

// View returns the open candidate view, if any.
func (c *Controller) View() (View, bool) {
	if c.view == nil {
		return View{}, false
	}
	return View{Direction: c.view.Direction, Candidates: slices.Clone(c.view.Candidates)}, true
}

// Apply routes a classified intent.
func (c *Controller) Apply(intent gesture.Intent) Outcome {
	switch intent.Kind {
	case gesture.IntentNavigate:
		return c.Navigate(intent.Direction)
	case gesture.IntentEdit:
		return Outcome{Kind: OutcomeEdit, Anchor: c.anchor}
	default:
		return c.none()
	}
}

// Navigate resolves a direction from the current anchor. Right moves
// directly to the spouse; the other directions open a candidate view.
// Unresolvable structure yields an empty view, never an error.
func (c *Controller) Navigate(dir gesture.Direction) Outcome {
	switch dir {
	case gesture.Right:
		spouse, ok := c.resolver.Spouse(c.anchor)
		if !ok {
			return c.none()
		}
		c.moveTo(spouse)
		return Outcome{Kind: OutcomeMoved, Anchor: c.anchor}
	case gesture.Left:
		return c.open(dir, c.resolver.Siblings(c.anchor))
	case gesture.Up:
		return c.open(dir, c.resolver.Parents(c.anchor))
	case gesture.Down:
		return c.open(dir, c.descendants())
	default:
		return c.none()
	}
}

// Select picks a candidate from the open view. It reports false when no
// view is open or id is not one of its candidates.
func (c *Controller) Select(id lineage.ID) bool {
	if c.view == nil || !slices.Contains(c.view.Candidates, id) {
		return false
	}
	c.moveTo(id)
	return true
}

// Back closes an open view without popping history; otherwise it returns to
// the most recent anchor. It reports false when there is nothing to undo.
func (c *Controller) Back() bool {
	if c.view != nil {
		c.view = nil
		return true
	}
	if len(c.history) == 0 {
		return false
	}
	last := len(c.history) - 1
	c.anchor = c.history[last]
	c.history = c.history[:last]
	return true
}

// SetAnchor accepts an anchor set from outside the controller, such as a
// deep link. History is cleared when source differs from the previous
// external source. Any open view is closed.
func (c *Controller) SetAnchor(id lineage.ID, source string) {
	if source != c.source {
		c.history = nil
		c.source = source
	}
	c.view = nil
	c.anchor = id
}

func (c *Controller) descendants() []lineage.ID {
	ids := c.resolver.Children(c.anchor)
	if spouse, ok := c.resolver.Spouse(c.anchor); ok {
		ids = append(ids, c.resolver.Children(spouse)...)
	}
	return pstrings.Dedupe(ids)
}

func (c *Controller) open(dir gesture.Direction, candidates []lineage.ID) Outcome {
	if candidates == nil {
		candidates = []lineage.ID{}
	}
	c.view = &View{Direction: dir, Candidates: candidates}
	v, _ := c.View()
	return Outcome{Kind: OutcomeView, Anchor: c.anchor, View: &v}
}

func (c *Controller) moveTo(id lineage.ID) {
	c.history = append(c.history, c.anchor)
	c.anchor = id
	c.view = nil
}

func (c *Controller) none() Outcome {
	return Outcome{Kind: OutcomeNone, Anchor: c.anchor}
}
