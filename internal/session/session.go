// Package session runs one browsing session over a websocket. A single
// goroutine owns the gesture classifier and the navigation controller;
// timers, label I/O and image probes report back to it over channels.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"swipetree/internal/annotation/models"
	"swipetree/internal/gesture"
	"swipetree/internal/imagery"
	"swipetree/internal/navigation"
	"swipetree/internal/platform/metrics"
	"swipetree/pkg/lineage"
	"swipetree/pkg/requestcontext"
)

// SourceExternal tags anchors set by an anchor frame without its own source.
const SourceExternal = "external"

// Conn is the subset of *websocket.Conn the session uses.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
}

// Labels is the label collaborator: a read-through cache.
type Labels interface {
	navigation.Labels
	Peek(id string) (models.Label, bool)
	Prefetch(ctx context.Context, ids []string) error
}

// Images resolves photo URLs.
type Images interface {
	Resolve(ctx context.Context, id lineage.ID) (imagery.Image, error)
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Resolver *lineage.Resolver
	Gesture  gesture.Config
	Labels   Labels
	Images   Images
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

type imageResult struct {
	anchor lineage.ID
	image  imagery.Image
}

// Session is one connected viewer.
type Session struct {
	id   string
	conn Conn
	deps Deps

	classifier *gesture.Classifier
	controller *navigation.Controller

	timers   chan gesture.Event
	images   chan imageResult
	labelsIn chan struct{}
	done     chan struct{}

	prefill <-chan navigation.EditPrefill
	saved   <-chan navigation.SaveResult
	image   *imagery.Image
}

// New creates a session anchored at anchor.
func New(id string, conn Conn, anchor lineage.ID, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	s := &Session{
		id:       id,
		conn:     conn,
		deps:     deps,
		timers:   make(chan gesture.Event, 4),
		images:   make(chan imageResult, 4),
		labelsIn: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	s.classifier = gesture.New(deps.Gesture, gesture.AfterFuncScheduler{Deliver: s.deliverTimer})
	s.controller = navigation.New(deps.Resolver, deps.Labels, anchor)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) deliverTimer(ev gesture.Event) {
	select {
	case s.timers <- ev:
	case <-s.done:
	}
}

// Run serves the session until the client disconnects or ctx ends. A clean
// client disconnect returns nil.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(requestcontext.WithSessionID(ctx, s.id))
	defer cancel()
	defer close(s.done)
	defer s.classifier.Reset()

	s.deps.Metrics.SessionOpened()
	defer s.deps.Metrics.SessionClosed()
	s.deps.Logger.InfoContext(ctx, "session started", "session_id", s.id, "anchor", string(s.controller.Anchor()))

	inbound := make(chan Inbound)
	readErr := make(chan error, 1)
	go s.read(ctx, inbound, readErr)

	s.anchorChanged(ctx)
	if err := s.sendState(); err != nil {
		return err
	}

	for {
		var err error
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rerr := <-readErr:
			s.deps.Logger.InfoContext(ctx, "session ended", "session_id", s.id, "error", rerr)
			return nil
		case f := <-inbound:
			err = s.handleFrame(ctx, f)
		case ev := <-s.timers:
			err = s.handleGesture(ctx, ev)
		case res := <-s.images:
			if res.anchor == s.controller.Anchor() {
				img := res.image
				s.image = &img
				err = s.sendState()
			}
		case <-s.labelsIn:
			err = s.sendState()
		case p := <-s.prefill:
			s.prefill = nil
			err = s.sendPrefill(ctx, p)
		case r := <-s.saved:
			s.saved = nil
			err = s.sendSaved(ctx, r)
		}
		if err != nil {
			return fmt.Errorf("session %s: %w", s.id, err)
		}
	}
}

func (s *Session) read(ctx context.Context, out chan<- Inbound, errc chan<- error) {
	for {
		var f Inbound
		if err := s.conn.ReadJSON(&f); err != nil {
			errc <- err
			return
		}
		select {
		case out <- f:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handleFrame(ctx context.Context, f Inbound) error {
	switch f.Type {
	case FramePointer:
		phase, ok := gesture.ParsePhase(f.Phase)
		if !ok {
			return s.reject(ctx, f, "unknown pointer phase")
		}
		return s.handleGesture(ctx, gesture.Event{
			Phase:   phase,
			Source:  gesture.ParseSource(f.Source),
			Contact: f.PointerID,
			Point:   gesture.Point{X: f.X, Y: f.Y},
			At:      time.Now(),
		})
	case FrameSelect:
		if !s.controller.Select(lineage.ID(f.ID)) {
			return s.reject(ctx, f, "not a candidate")
		}
		s.deps.Metrics.IncNavigation(string(navigation.OutcomeMoved))
		s.anchorChanged(ctx)
		return s.sendState()
	case FrameBack:
		before := s.controller.Anchor()
		if s.controller.Back() && s.controller.Anchor() != before {
			s.anchorChanged(ctx)
		}
		return s.sendState()
	case FrameAnchor:
		id, ok := navigation.ParseAnchorRef(f.Ref)
		if !ok {
			id = lineage.ID(f.ID)
		}
		if !lineage.Valid(id) {
			return s.reject(ctx, f, "invalid anchor")
		}
		source := f.Source
		if source == "" {
			source = SourceExternal
		}
		s.controller.SetAnchor(id, source)
		s.anchorChanged(ctx)
		return s.sendState()
	case FrameEditBegin:
		s.beginEdit(ctx)
		return nil
	case FrameEditSubmit:
		if s.saved != nil {
			return s.reject(ctx, f, "save already in progress")
		}
		id := f.ID
		if id == "" {
			id = s.controller.Anchor().String()
		}
		s.saved = s.controller.SubmitEdit(ctx, models.Label{ID: id, Name: f.Name, DOB: f.DOB})
		return nil
	default:
		return s.reject(ctx, f, "unknown frame type")
	}
}

func (s *Session) handleGesture(ctx context.Context, ev gesture.Event) error {
	intent, ok := s.classifier.Handle(ev)
	if !ok {
		return nil
	}
	s.deps.Metrics.IncIntent(string(intent.Kind), string(intent.Direction))

	out := s.controller.Apply(intent)
	s.deps.Metrics.IncNavigation(string(out.Kind))
	switch out.Kind {
	case navigation.OutcomeEdit:
		s.beginEdit(ctx)
		return nil
	case navigation.OutcomeMoved:
		s.anchorChanged(ctx)
		return s.sendState()
	case navigation.OutcomeView:
		ids := make([]string, len(out.View.Candidates))
		for i, id := range out.View.Candidates {
			ids[i] = id.String()
		}
		s.prefetch(ctx, ids)
		return s.sendState()
	default:
		return nil
	}
}

func (s *Session) beginEdit(ctx context.Context) {
	if s.prefill != nil {
		return
	}
	s.prefill = s.controller.BeginEdit(ctx)
}

// anchorChanged drops the old image and starts loading the new anchor's
// photo and label in the background.
func (s *Session) anchorChanged(ctx context.Context) {
	anchor := s.controller.Anchor()
	s.image = nil
	s.deps.Logger.DebugContext(ctx, "anchor changed", "session_id", s.id, "anchor", anchor.String())

	if s.deps.Images != nil {
		go func() {
			img, _ := s.deps.Images.Resolve(ctx, anchor)
			select {
			case s.images <- imageResult{anchor: anchor, image: img}:
			case <-s.done:
			}
		}()
	}
	s.prefetch(ctx, []string{anchor.String()})
}

func (s *Session) prefetch(ctx context.Context, ids []string) {
	if s.deps.Labels == nil || len(ids) == 0 {
		return
	}
	go func() {
		if err := s.deps.Labels.Prefetch(ctx, ids); err != nil {
			return
		}
		select {
		case s.labelsIn <- struct{}{}:
		default:
		}
	}()
}

func (s *Session) sendState() error {
	anchor := s.controller.Anchor()
	frame := StateFrame{
		Type:    FrameState,
		Session: s.id,
		Anchor:  anchor,
		Ref:     navigation.AnchorRef(anchor),
		Label:   s.peek(anchor),
		Image:   s.image,
		History: len(s.controller.History()),
	}
	if v, ok := s.controller.View(); ok {
		vf := &ViewFrame{Direction: v.Direction, Candidates: make([]Candidate, len(v.Candidates))}
		for i, id := range v.Candidates {
			vf.Candidates[i] = Candidate{ID: id, Label: s.peek(id)}
		}
		frame.View = vf
	}
	return s.conn.WriteJSON(frame)
}

func (s *Session) peek(id lineage.ID) *models.Label {
	if s.deps.Labels == nil {
		return nil
	}
	l, ok := s.deps.Labels.Peek(id.String())
	if !ok {
		return nil
	}
	return &l
}

func (s *Session) sendPrefill(ctx context.Context, p navigation.EditPrefill) error {
	frame := EditFrame{Type: FrameEdit, Label: p.Label, Stale: p.Stale}
	if p.Err != nil {
		frame.Error = errorText(p.Err)
		s.deps.Logger.WarnContext(ctx, "label prefill failed",
			"session_id", s.id,
			"id", p.ID.String(),
			"error", p.Err,
		)
	}
	return s.conn.WriteJSON(frame)
}

func (s *Session) sendSaved(ctx context.Context, r navigation.SaveResult) error {
	if r.Err != nil {
		s.deps.Logger.WarnContext(ctx, "label save failed",
			"session_id", s.id,
			"id", r.Label.ID,
			"error", r.Err,
		)
		return s.conn.WriteJSON(SaveFrame{Type: FrameEditFailed, Label: r.Label, Error: errorText(r.Err)})
	}
	if err := s.conn.WriteJSON(SaveFrame{Type: FrameEditSaved, Label: r.Label}); err != nil {
		return err
	}
	return s.sendState()
}

func (s *Session) reject(ctx context.Context, f Inbound, reason string) error {
	s.deps.Logger.WarnContext(ctx, "rejected frame",
		"session_id", s.id,
		"type", f.Type,
		"reason", reason,
	)
	return s.conn.WriteJSON(ErrorFrame{Type: FrameError, Error: reason})
}

func errorText(err error) string {
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}
	return err.Error()
}
