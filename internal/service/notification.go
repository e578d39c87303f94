package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/seatwise/seatwise/internal/domain/reservation"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
	"github.com/seatwise/seatwise/internal/port/database"
	"github.com/seatwise/seatwise/internal/port/mailer"
	"github.com/seatwise/seatwise/internal/port/messagequeue"
)

// NotificationService consumes reservation lifecycle events and sends the
// customer-facing emails. It runs entirely off the booking path: the
// admission response never waits for it, and every failure here is logged
// and swallowed.
type NotificationService struct {
	store      database.Store
	mailer     mailer.Mailer
	appBaseURL string
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(store database.Store, m mailer.Mailer, appBaseURL string) *NotificationService {
	return &NotificationService{store: store, mailer: m, appBaseURL: appBaseURL}
}

// StartSubscribers registers the lifecycle event consumers on the queue.
// The returned function cancels all subscriptions.
func (s *NotificationService) StartSubscribers(ctx context.Context, queue messagequeue.Queue) (func(), error) {
	cancelConfirmed, err := queue.Subscribe(ctx, messagequeue.SubjectReservationConfirmed, s.handleConfirmed)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", messagequeue.SubjectReservationConfirmed, err)
	}

	cancelCancelled, err := queue.Subscribe(ctx, messagequeue.SubjectReservationCancelled, s.handleCancelled)
	if err != nil {
		cancelConfirmed()
		return nil, fmt.Errorf("subscribe %s: %w", messagequeue.SubjectReservationCancelled, err)
	}

	return func() {
		cancelConfirmed()
		cancelCancelled()
	}, nil
}

// handleConfirmed sends the booking confirmation email carrying the
// cancellation link. It always returns nil: a lost email is not worth a
// redelivery loop, and it must never look like a booking failure.
func (s *NotificationService) handleConfirmed(ctx context.Context, subject string, data []byte) error {
	res, r, ok := s.loadEvent(ctx, subject, data)
	if !ok {
		return nil
	}

	emailSubject := fmt.Sprintf("Your reservation at %s is confirmed", r.Name)
	body := confirmationBody(res, r, s.cancelURL(res.CancelToken))

	if err := s.mailer.Send(ctx, res.CustomerEmail, emailSubject, body); err != nil {
		slog.Warn("confirmation email failed",
			"reservation_id", res.ID,
			"restaurant_id", r.ID,
			"error", err,
		)
		return nil
	}

	slog.Debug("confirmation email sent", "reservation_id", res.ID)
	return nil
}

// handleCancelled sends the cancellation notice email.
func (s *NotificationService) handleCancelled(ctx context.Context, subject string, data []byte) error {
	res, r, ok := s.loadEvent(ctx, subject, data)
	if !ok {
		return nil
	}

	emailSubject := fmt.Sprintf("Your reservation at %s has been cancelled", r.Name)
	body := cancellationBody(res, r)

	if err := s.mailer.Send(ctx, res.CustomerEmail, emailSubject, body); err != nil {
		slog.Warn("cancellation email failed",
			"reservation_id", res.ID,
			"restaurant_id", r.ID,
			"error", err,
		)
	}
	return nil
}

// loadEvent decodes an event payload and loads the entities it refers to.
// Any failure is logged and reported as not-ok; the caller drops the event.
func (s *NotificationService) loadEvent(ctx context.Context, subject string, data []byte) (*reservation.Reservation, *restaurant.Restaurant, bool) {
	var ev reservationEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Error("malformed reservation event", "subject", subject, "error", err)
		return nil, nil, false
	}

	res, err := s.store.GetReservation(ctx, ev.ReservationID)
	if err != nil {
		slog.Warn("reservation event refers to unknown reservation",
			"subject", subject, "reservation_id", ev.ReservationID, "error", err)
		return nil, nil, false
	}

	r, err := s.store.GetRestaurant(ctx, res.RestaurantID)
	if err != nil {
		slog.Warn("reservation event refers to unknown restaurant",
			"subject", subject, "restaurant_id", res.RestaurantID, "error", err)
		return nil, nil, false
	}

	return res, r, true
}

func (s *NotificationService) cancelURL(token string) string {
	return fmt.Sprintf("%s/reservations/cancel/%s", s.appBaseURL, token)
}

func confirmationBody(res *reservation.Reservation, r *restaurant.Restaurant, cancelURL string) string {
	return fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Your reservation is confirmed at <strong>%s</strong>.</p>
    <p>
      <strong>Date:</strong> %s<br/>
      <strong>Time:</strong> %s<br/>
      <strong>Guests:</strong> %d
    </p>
    <p>If you need to cancel, click the link below:</p>
    <p><a href="%s">Cancel this reservation</a></p>
    <p>If you didn't make this reservation, you can safely ignore this email.</p>
  `, res.CustomerName, r.Name, restaurant.DayKey(res.Date), res.Time, res.GroupSize, cancelURL)
}

func cancellationBody(res *reservation.Reservation, r *restaurant.Restaurant) string {
	return fmt.Sprintf(`
    <p>Hi %s,</p>
    <p>Your reservation at <strong>%s</strong> on %s at %s has been cancelled.</p>
    <p>We hope to see you another time.</p>
  `, res.CustomerName, r.Name, restaurant.DayKey(res.Date), res.Time)
}
