package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	swotel "github.com/seatwise/seatwise/internal/adapter/otel"
	"github.com/seatwise/seatwise/internal/config"
	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/reservation"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
	"github.com/seatwise/seatwise/internal/port/cache"
	"github.com/seatwise/seatwise/internal/port/database"
	"github.com/seatwise/seatwise/internal/port/messagequeue"
)

// SlotAvailability is the capacity snapshot of one configured slot on one
// day, for read-only display. Remaining never goes negative.
type SlotAvailability struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Capacity  int    `json:"capacity"`
	Reserved  int    `json:"reserved"`
	Remaining int    `json:"remaining"`
	Closed    bool   `json:"closed"`
}

// reservationEvent is the payload published on reservation lifecycle
// subjects. Consumers re-load the entities, so the ID is all that matters.
type reservationEvent struct {
	ReservationID string `json:"reservation_id"`
	RestaurantID  string `json:"restaurant_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// BookingService is the availability calculator and the single admission
// gate for new reservations, plus the cancellation workflow.
type BookingService struct {
	store    database.Store
	queue    messagequeue.Queue
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *swotel.Metrics

	minLead          time.Duration
	fallbackCapacity int
}

// NewBookingService creates a BookingService. queue, cache and metrics may
// be nil; without a queue no lifecycle events are published.
func NewBookingService(store database.Store, queue messagequeue.Queue, c cache.Cache, cacheTTL time.Duration, metrics *swotel.Metrics, cfg config.Booking) *BookingService {
	return &BookingService{
		store:            store,
		queue:            queue,
		cache:            c,
		cacheTTL:         cacheTTL,
		metrics:          metrics,
		minLead:          cfg.MinLead,
		fallbackCapacity: cfg.FallbackCapacity,
	}
}

// Availability returns the capacity snapshot for every configured slot of a
// restaurant on the given day. A restaurant without slots yields an empty
// list; callers must not infer bookability from it, the admission gate has
// its own fallback for unslotted restaurants.
func (s *BookingService) Availability(ctx context.Context, restaurantID string, day time.Time) ([]SlotAvailability, error) {
	day = restaurant.Day(day)

	var (
		r            *restaurant.Restaurant
		reservations []reservation.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r, err = getRestaurantCached(gctx, s.store, s.cache, s.cacheTTL, restaurantID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = s.store.ListReservations(gctx, restaurantID, &day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slots := r.Settings.Slots
	result := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		reserved := 0
		for _, res := range reservations {
			if res.Status == reservation.StatusConfirmed && res.Time >= slot.From && res.Time < slot.To {
				reserved += res.GroupSize
			}
		}
		remaining := max(slot.Capacity-reserved, 0)

		result = append(result, SlotAvailability{
			From:      slot.From,
			To:        slot.To,
			Capacity:  slot.Capacity,
			Reserved:  reserved,
			Remaining: remaining,
			Closed:    restaurant.IsClosedAt(r.Settings, day, slot.From),
		})
	}
	return result, nil
}

// CreateReservation is the admission gate. Checks run in strict order and
// the first failure wins: restaurant exists, instant not elapsed, not
// closed, then the atomic capacity check in the store. On success a
// confirmation event is published fire-and-forget.
func (s *BookingService) CreateReservation(ctx context.Context, restaurantID string, req reservation.CreateRequest) (*reservation.Reservation, error) {
	ctx, span := swotel.StartAdmissionSpan(ctx, restaurantID, req.Date, req.Time)
	defer span.End()

	day, err := req.Validate()
	if err != nil {
		s.recordRejection(ctx, "validation")
		return nil, err
	}

	r, err := getRestaurantCached(ctx, s.store, s.cache, s.cacheTTL, restaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if restaurant.IsPastInstant(day, req.Time, now, s.minLead) {
		s.recordRejection(ctx, "past")
		return nil, domain.ErrPastDate
	}
	if restaurant.IsClosedAt(r.Settings, day, req.Time) {
		s.recordRejection(ctx, "closed")
		return nil, domain.ErrClosed
	}

	// Without a matching slot the ceiling is effectively unlimited and the
	// accounting window collapses to the exact requested time.
	ceiling := s.fallbackCapacity
	window := reservation.Window{From: req.Time, To: req.Time}
	if slot := r.Settings.FindSlot(req.Time); slot != nil {
		ceiling = slot.Capacity
		window = reservation.Window{From: slot.From, To: slot.To}
	}

	token, err := reservation.NewCancelToken()
	if err != nil {
		return nil, err
	}

	res := &reservation.Reservation{
		ID:            uuid.New().String(),
		RestaurantID:  restaurantID,
		Date:          day,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		GroupSize:     req.GroupSize,
		Status:        reservation.StatusConfirmed,
		CancelToken:   token,
		CreatedAt:     now,
	}

	if err := s.store.AdmitReservation(ctx, res, window, ceiling); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.recordRejection(ctx, "capacity")
		}
		return nil, err
	}

	if s.metrics != nil {
		attrs := metric.WithAttributes(attribute.String("restaurant_id", restaurantID))
		s.metrics.ReservationsAdmitted.Add(ctx, 1, attrs)
		s.metrics.GroupSize.Record(ctx, int64(req.GroupSize), attrs)
	}

	s.publish(ctx, messagequeue.SubjectReservationConfirmed, res)
	return res, nil
}

// recordRejection counts a refused admission by reason.
func (s *BookingService) recordRejection(ctx context.Context, reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReservationsRejected.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)))
}

// ListReservations returns confirmed reservations for a restaurant,
// optionally narrowed to one day.
func (s *BookingService) ListReservations(ctx context.Context, restaurantID string, day *time.Time) ([]reservation.Reservation, error) {
	if _, err := getRestaurantCached(ctx, s.store, s.cache, s.cacheTTL, restaurantID); err != nil {
		return nil, err
	}
	return s.store.ListReservations(ctx, restaurantID, day)
}

// Cancel flips a reservation to cancelled by ID. Cancelling twice yields
// domain.ErrAlreadyCancelled, never a silent second success.
func (s *BookingService) Cancel(ctx context.Context, id string) (*reservation.Reservation, error) {
	ctx, span := swotel.StartCancelSpan(ctx, id)
	defer span.End()

	res, err := s.store.CancelReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReservationsCancelled.Add(ctx, 1,
			metric.WithAttributes(attribute.String("restaurant_id", res.RestaurantID)))
	}

	s.publish(ctx, messagequeue.SubjectReservationCancelled, res)
	return res, nil
}

// CancelByToken resolves the cancel token and runs the same status flip as
// Cancel. Unknown and malformed tokens are both domain.ErrNotFound.
func (s *BookingService) CancelByToken(ctx context.Context, token string) (*reservation.Reservation, error) {
	res, err := s.store.FindReservationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.Cancel(ctx, res.ID)
}

// publish emits a lifecycle event. Failures are logged and swallowed: the
// booking outcome never depends on notification delivery.
func (s *BookingService) publish(ctx context.Context, subject string, res *reservation.Reservation) {
	if s.queue == nil {
		return
	}

	data, err := json.Marshal(reservationEvent{
		ReservationID: res.ID,
		RestaurantID:  res.RestaurantID,
		Date:          restaurant.DayKey(res.Date),
		Time:          res.Time,
	})
	if err != nil {
		slog.Error("marshal reservation event", "subject", subject, "error", err)
		return
	}

	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Warn("reservation event publish failed",
			"subject", subject,
			"reservation_id", res.ID,
			"error", err,
		)
	}
}
