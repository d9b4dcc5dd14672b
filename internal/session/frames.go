package session

import (
	"swipetree/internal/annotation/models"
	"swipetree/internal/gesture"
	"swipetree/internal/imagery"
	"swipetree/pkg/lineage"
)

// Inbound frame types.
const (
	FramePointer    = "pointer"
	FrameSelect     = "select"
	FrameBack       = "back"
	FrameAnchor     = "anchor"
	FrameEditBegin  = "edit_begin"
	FrameEditSubmit = "edit_submit"
)

// Outbound frame types.
const (
	FrameState      = "state"
	FrameEdit       = "edit"
	FrameEditSaved  = "edit_saved"
	FrameEditFailed = "edit_failed"
	FrameError      = "error"
)

// Inbound is one client message. Fields are used according to Type.
type Inbound struct {
	Type string `json:"type"`

	// pointer
	Phase     string  `json:"phase,omitempty"`
	Source    string  `json:"source,omitempty"`
	PointerID int64   `json:"pointer_id,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`

	// select, anchor, edit_submit
	ID  string `json:"id,omitempty"`
	Ref string `json:"ref,omitempty"`

	// edit_submit
	Name string `json:"name,omitempty"`
	DOB  string `json:"dob,omitempty"`
}

// Candidate is one entry of an open view.
type Candidate struct {
	ID    lineage.ID    `json:"id"`
	Label *models.Label `json:"label,omitempty"`
}

// ViewFrame mirrors navigation.View with labels attached.
type ViewFrame struct {
	Direction  gesture.Direction `json:"direction"`
	Candidates []Candidate       `json:"candidates"`
}

// StateFrame is sent whenever anything visible changes.
type StateFrame struct {
	Type    string         `json:"type"`
	Session string         `json:"session"`
	Anchor  lineage.ID     `json:"anchor"`
	Ref     string         `json:"ref"`
	Label   *models.Label  `json:"label,omitempty"`
	Image   *imagery.Image `json:"image,omitempty"`
	History int            `json:"history"`
	View    *ViewFrame     `json:"view,omitempty"`
}

// EditFrame prefills the edit prompt.
type EditFrame struct {
	Type  string       `json:"type"`
	Label models.Label `json:"label"`
	Stale bool         `json:"stale,omitempty"`
	Error string       `json:"error,omitempty"`
}

// SaveFrame reports the result of edit_submit.
type SaveFrame struct {
	Type  string       `json:"type"`
	Label models.Label `json:"label"`
	Error string       `json:"error,omitempty"`
}

// ErrorFrame reports a rejected inbound frame.
type ErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
