package models

import (
	"strings"
	"time"

	dErrors "swipetree/pkg/domain-errors"
)

const (
	maxIDLength    = 64
	maxFieldLength = 256
)

// Label is the text annotation shown for one person.
type Label struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DOB       string    `json:"dob"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Normalize trims surrounding whitespace from every field.
func (l *Label) Normalize() {
	l.ID = strings.TrimSpace(l.ID)
	l.Name = strings.TrimSpace(l.Name)
	l.DOB = strings.TrimSpace(l.DOB)
}

// Validate checks the label before it is persisted.
func (l Label) Validate() error {
	if l.ID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Missing id")
	}
	if len(l.ID) > maxIDLength {
		return dErrors.New(dErrors.CodeValidation, "id is too long")
	}
	if len(l.Name) > maxFieldLength || len(l.DOB) > maxFieldLength {
		return dErrors.New(dErrors.CodeValidation, "label fields are too long")
	}
	return nil
}

// IsEmpty reports whether the label carries no text.
func (l Label) IsEmpty() bool {
	return l.Name == "" && l.DOB == ""
}

// Display renders the caption shown over the photo: "Name • DOB".
func (l Label) Display() string {
	switch {
	case l.Name != "" && l.DOB != "":
		return l.Name + " • " + l.DOB
	case l.DOB != "":
		return "• " + l.DOB
	default:
		return l.Name
	}
}
