package navigation

import (
	"context"
	"errors"

	"swipetree/internal/annotation/models"
	"swipetree/pkg/lineage"
	"swipetree/pkg/platform/sentinel"
)

// Labels is the annotation collaborator used by the edit flow.
type Labels interface {
	Get(ctx context.Context, id string) (models.Label, error)
	Set(ctx context.Context, label models.Label) error
}

// EditPrefill carries the current label used to prefill an edit prompt.
// Stale is set when the label came from a local copy because the store
// could not be reached.
type EditPrefill struct {
	ID    lineage.ID
	Label models.Label
	Stale bool
	Err   error
}

// SaveResult reports the outcome of persisting an edited label.
type SaveResult struct {
	Label models.Label
	Err   error
}

// BeginEdit loads the label of the current anchor in the background. The
// returned channel yields exactly one value. Navigation state is not touched.
func (c *Controller) BeginEdit(ctx context.Context) <-chan EditPrefill {
	id := c.anchor
	out := make(chan EditPrefill, 1)
	go func() {
		defer close(out)
		label, err := c.labels.Get(ctx, string(id))
		res := EditPrefill{ID: id, Label: label}
		switch {
		case err == nil:
		case errors.Is(err, sentinel.ErrNotFound):
			res.Label = models.Label{ID: string(id)}
		case errors.Is(err, sentinel.ErrStale):
			res.Stale = true
		default:
			res.Label = models.Label{ID: string(id)}
			res.Err = err
		}
		out <- res
	}()
	return out
}

// SubmitEdit persists label in the background. The returned channel yields
// exactly one value; a failure is reported there and leaves navigation state
// untouched.
func (c *Controller) SubmitEdit(ctx context.Context, label models.Label) <-chan SaveResult {
	out := make(chan SaveResult, 1)
	go func() {
		defer close(out)
		label.Normalize()
		err := c.labels.Set(ctx, label)
		out <- SaveResult{Label: label, Err: err}
	}()
	return out
}
