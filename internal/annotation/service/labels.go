package service

import (
	"context"

	"swipetree/internal/annotation/models"
	dErrors "swipetree/pkg/domain-errors"
	"swipetree/pkg/platform/sentinel"
)

// Labels adapts the service to the Get/Set shape used by browsing sessions.
type Labels struct {
	svc *Service
}

// AsLabels returns the session-facing view of s.
func (s *Service) AsLabels() *Labels {
	return &Labels{svc: s}
}

// Get returns the label, or sentinel.ErrNotFound when none is stored.
func (l *Labels) Get(ctx context.Context, id string) (models.Label, error) {
	got, err := l.svc.Get(ctx, id)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return models.Label{}, sentinel.ErrNotFound
		}
		return models.Label{}, err
	}
	return *got, nil
}

// Set stores the label.
func (l *Labels) Set(ctx context.Context, label models.Label) error {
	_, err := l.svc.Put(ctx, label)
	return err
}
