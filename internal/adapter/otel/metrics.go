package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "seatwise"

// Metrics holds all booking metric instruments.
type Metrics struct {
	ReservationsAdmitted  metric.Int64Counter
	ReservationsRejected  metric.Int64Counter
	ReservationsCancelled metric.Int64Counter
	GroupSize             metric.Int64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.ReservationsAdmitted, err = meter.Int64Counter("seatwise.reservations.admitted",
		metric.WithDescription("Number of reservations admitted"))
	if err != nil {
		return nil, err
	}

	m.ReservationsRejected, err = meter.Int64Counter("seatwise.reservations.rejected",
		metric.WithDescription("Number of reservation requests rejected"))
	if err != nil {
		return nil, err
	}

	m.ReservationsCancelled, err = meter.Int64Counter("seatwise.reservations.cancelled",
		metric.WithDescription("Number of reservations cancelled"))
	if err != nil {
		return nil, err
	}

	m.GroupSize, err = meter.Int64Histogram("seatwise.reservations.group_size",
		metric.WithDescription("Covers per admitted reservation"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
