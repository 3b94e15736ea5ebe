package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

type Kind string

const (
	KindOrderReady           Kind = "order_ready"
	KindReservationConfirmed Kind = "reservation_confirmed"
	KindStatusChanged        Kind = "status_changed"
)

// Event describes one status transition made from the back office.
type Event struct {
	Kind       Kind           `json:"type"`
	Collection string         `json:"collection"`
	Key        string         `json:"key"`
	From       string         `json:"old_status"`
	To         string         `json:"new_status"`
	Email      string         `json:"email,omitempty"`
	Name       string         `json:"name,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	ChangedAt  time.Time      `json:"changed_at"`
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// OrderStatusChanged builds the event for a pre-order moving from one status
// to another. Moving to ready is what customers get an email for.
func OrderStatusChanged(o models.PreOrder, from string, at time.Time) Event {
	kind := KindStatusChanged
	if o.Status == models.OrderReady && from != models.OrderReady {
		kind = KindOrderReady
	}
	return Event{
		Kind:       kind,
		Collection: "preorders",
		Key:        o.Order_id,
		From:       from,
		To:         o.Status,
		Email:      o.Email,
		Name:       o.Name,
		Data: map[string]any{
			"order_id": o.Order_id,
			"date":     o.Date,
			"time":     o.Time,
			"total":    o.Total,
		},
		ChangedAt: at,
	}
}

func ReservationStatusChanged(r models.Reservation, from string, at time.Time) Event {
	kind := KindStatusChanged
	if r.Status == models.ReservationConfirmed && from != models.ReservationConfirmed {
		kind = KindReservationConfirmed
	}
	return Event{
		Kind:       kind,
		Collection: "reservations",
		Key:        r.Reservation_id,
		From:       from,
		To:         r.Status,
		Email:      r.Email,
		Name:       r.Name,
		Data: map[string]any{
			"reservation_id": r.Reservation_id,
			"date":           r.Date,
			"time":           r.Time,
			"guests":         r.Guests,
		},
		ChangedAt: at,
	}
}

func ContactStatusChanged(c models.Contact, from string, at time.Time) Event {
	return Event{
		Kind:       KindStatusChanged,
		Collection: "contacts",
		Key:        c.Contact_id,
		From:       from,
		To:         c.Status,
		Email:      c.Email,
		Name:       c.Name,
		ChangedAt:  at,
	}
}

// Multi hands every event to each notifier in turn; one failing does not
// stop the others.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

// BestEffort sends e and only logs a failure. Callers have already committed
// the status change and must not fail because of a notification.
func BestEffort(ctx context.Context, n Notifier, log *logger.Logger, e Event) {
	if n == nil {
		return
	}
	mylog := log.Action("notify").With("type", string(e.Kind), "collection", e.Collection, "key", e.Key)
	if err := n.Notify(ctx, e); err != nil {
		mylog.Error("Notification failed", err)
		return
	}
	mylog.Debug("Notification sent")
}

func describe(e Event) string {
	return fmt.Sprintf("%s %s: %s -> %s", e.Collection, e.Key, e.From, e.To)
}
