// Package save pushes an edit session's changes to the backend and merges
// the result back into the in-memory list without a refetch.
package save

import (
	"context"

	"github.com/rs/zerolog"

	"orderdesk/internal/edit"
	"orderdesk/internal/list"
	"orderdesk/internal/model"
)

// Writer issues the order update call.
type Writer interface {
	UpdateOrder(ctx context.Context, orderID string, update model.OrderUpdate) (model.OrderSummary, error)
}

// Notifier surfaces save outcomes to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Reconciler coordinates a save: write, then patch the list in place.
type Reconciler struct {
	writer   Writer
	list     *list.Controller
	notifier Notifier
	logger   zerolog.Logger
}

// NewReconciler creates a save reconciler.
func NewReconciler(writer Writer, listCtrl *list.Controller, notifier Notifier, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		writer:   writer,
		list:     listCtrl,
		notifier: notifier,
		logger:   logger.With().Str("component", "save-reconciler").Logger(),
	}
}

// Save submits the session's draft. On success the matching list row is
// replaced in place by identifier, the session is closed, and a success
// notification is emitted. On failure the list is left untouched and the
// session stays open with its draft intact so the user can retry or
// cancel. Retrying with an identical payload is safe; idempotency of the
// write is the server's guarantee.
func (r *Reconciler) Save(ctx context.Context, session *edit.Session) error {
	payload, err := session.Submit()
	if err != nil {
		r.notifier.Error(err.Error())
		return err
	}

	orderID := session.OrderID()
	if _, err := r.writer.UpdateOrder(ctx, orderID, payload); err != nil {
		r.logger.Warn().
			Str("order_id", orderID).
			Err(err).
			Msg("order update failed")
		r.notifier.Error("Failed to update order: " + err.Error())
		return err
	}

	updated := session.Summary()
	if !r.list.ApplySaved(updated) {
		// The row left the current page between open and save. The write
		// still succeeded; nothing to patch.
		r.logger.Debug().Str("order_id", orderID).Msg("saved order not on current page")
	}
	session.Close()

	r.logger.Info().
		Str("order_id", orderID).
		Str("status", string(updated.Status)).
		Msg("order saved")
	r.notifier.Success("Order updated successfully.")
	return nil
}
