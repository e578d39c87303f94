package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "seatwise"

// StartAdmissionSpan starts a span for a reservation admission attempt.
func StartAdmissionSpan(ctx context.Context, restaurantID, date, hhmm string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "admission",
		trace.WithAttributes(
			attribute.String("restaurant.id", restaurantID),
			attribute.String("reservation.date", date),
			attribute.String("reservation.time", hhmm),
		),
	)
}

// StartCancelSpan starts a span for a reservation cancellation.
func StartCancelSpan(ctx context.Context, reservationID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "cancel",
		trace.WithAttributes(
			attribute.String("reservation.id", reservationID),
		),
	)
}
