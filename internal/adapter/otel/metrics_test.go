package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collect gathers all recorded metrics from the manual reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMetricsRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	m, err := NewMetrics()
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	m.ReservationsAdmitted.Add(ctx, 1)
	m.ReservationsAdmitted.Add(ctx, 1)
	m.ReservationsRejected.Add(ctx, 1)
	m.ReservationsCancelled.Add(ctx, 1)
	m.GroupSize.Record(ctx, 4)

	got := collect(t, reader)

	admitted, ok := got["seatwise.reservations.admitted"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("admitted counter not recorded")
	}
	if admitted.DataPoints[0].Value != 2 {
		t.Fatalf("expected 2 admissions, got %d", admitted.DataPoints[0].Value)
	}

	for _, name := range []string{
		"seatwise.reservations.rejected",
		"seatwise.reservations.cancelled",
		"seatwise.reservations.group_size",
	} {
		if _, ok := got[name]; !ok {
			t.Fatalf("instrument %s not recorded", name)
		}
	}
}

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "seatwise", "")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
