package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seatwise/seatwise/internal/adapter/postgres"
	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/reservation"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
)

// testStore connects to Postgres or skips the test if DATABASE_URL is not set.
func testStore(t *testing.T) (*postgres.Store, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("requires DATABASE_URL")
	}

	ctx := context.Background()
	if err := postgres.RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool), pool
}

// createTestRestaurant inserts a restaurant with a unique name and registers
// cleanup of it and its reservations.
func createTestRestaurant(t *testing.T, store *postgres.Store, pool *pgxpool.Pool, settings *restaurant.Settings) *restaurant.Restaurant {
	t.Helper()
	ctx := context.Background()

	r, err := store.CreateRestaurant(ctx, &restaurant.CreateRequest{
		Name:     "test-" + uuid.New().String(),
		Settings: settings,
	})
	if err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM reservations WHERE restaurant_id = $1`, r.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, r.ID)
	})
	return r
}

func testReservation(restaurantID, hhmm string, size int) *reservation.Reservation {
	token, _ := reservation.NewCancelToken()
	return &reservation.Reservation{
		ID:            uuid.New().String(),
		RestaurantID:  restaurantID,
		Date:          restaurant.Day(time.Now().UTC().AddDate(0, 0, 7)),
		Time:          hhmm,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		GroupSize:     size,
		Status:        reservation.StatusConfirmed,
		CancelToken:   token,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestRestaurantRoundTrip(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	created := createTestRestaurant(t, store, pool, &restaurant.Settings{
		Slots: []restaurant.Slot{{From: "18:00", To: "21:00", Capacity: 10}},
	})

	got, err := store.GetRestaurant(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != created.Name || len(got.Settings.Slots) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	byName, err := store.FindRestaurantByName(ctx, created.Name)
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("find by name returned %s", byName.ID)
	}
}

func TestRestaurantUniqueName(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	created := createTestRestaurant(t, store, pool, nil)

	_, err := store.CreateRestaurant(ctx, &restaurant.CreateRequest{Name: created.Name})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRestaurantVersionConflict(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	created := createTestRestaurant(t, store, pool, nil)

	stale := *created
	if err := store.UpdateRestaurant(ctx, created); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := store.UpdateRestaurant(ctx, &stale); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for stale version, got %v", err)
	}
}

func TestAdmitReservation(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	r := createTestRestaurant(t, store, pool, nil)
	window := reservation.Window{From: "18:00", To: "21:00"}

	res := testReservation(r.ID, "19:00", 4)
	if err := store.AdmitReservation(ctx, res, window, 10); err != nil {
		t.Fatalf("admit: %v", err)
	}

	got, err := store.GetReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != "19:00" || got.GroupSize != 4 || got.Status != reservation.StatusConfirmed {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	byToken, err := store.FindReservationByToken(ctx, res.CancelToken)
	if err != nil {
		t.Fatalf("by token: %v", err)
	}
	if byToken.ID != res.ID {
		t.Fatalf("token resolved to %s", byToken.ID)
	}
}

func TestAdmitReservationCapacity(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	r := createTestRestaurant(t, store, pool, nil)
	window := reservation.Window{From: "18:00", To: "21:00"}

	if err := store.AdmitReservation(ctx, testReservation(r.ID, "18:30", 7), window, 10); err != nil {
		t.Fatalf("first admit: %v", err)
	}
	err := store.AdmitReservation(ctx, testReservation(r.ID, "19:30", 4), window, 10)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	// The exact remainder still fits.
	if err := store.AdmitReservation(ctx, testReservation(r.ID, "19:30", 3), window, 10); err != nil {
		t.Fatalf("exact-fit admit: %v", err)
	}
}

func TestAdmitReservationExactWindow(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	r := createTestRestaurant(t, store, pool, nil)
	exact := reservation.Window{From: "19:00", To: "19:00"}

	if err := store.AdmitReservation(ctx, testReservation(r.ID, "19:00", 5), exact, 8); err != nil {
		t.Fatalf("admit: %v", err)
	}
	// A different time is outside the exact window and does not count.
	if err := store.AdmitReservation(ctx, testReservation(r.ID, "19:30", 5), exact, 8); err != nil {
		t.Fatalf("admit outside window: %v", err)
	}
	err := store.AdmitReservation(ctx, testReservation(r.ID, "19:00", 4), exact, 8)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAdmitReservationUnknownRestaurant(t *testing.T) {
	store, _ := testStore(t)

	err := store.AdmitReservation(context.Background(),
		testReservation(uuid.New().String(), "19:00", 2),
		reservation.Window{From: "18:00", To: "21:00"}, 10)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentAdmissions(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	r := createTestRestaurant(t, store, pool, nil)
	window := reservation.Window{From: "18:00", To: "21:00"}

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.AdmitReservation(ctx, testReservation(r.ID, "19:00", 2), window, 10)
			if err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if admitted != 5 {
		t.Fatalf("expected exactly 5 admissions of 10 covers, got %d", admitted)
	}
}

func TestCancelReservation(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	r := createTestRestaurant(t, store, pool, nil)
	res := testReservation(r.ID, "19:00", 10)
	window := reservation.Window{From: "18:00", To: "21:00"}

	if err := store.AdmitReservation(ctx, res, window, 10); err != nil {
		t.Fatalf("admit: %v", err)
	}

	cancelled, err := store.CancelReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != reservation.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	if _, err := store.CancelReservation(ctx, res.ID); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}

	// Cancelled covers no longer count against the window.
	if err := store.AdmitReservation(ctx, testReservation(r.ID, "19:30", 10), window, 10); err != nil {
		t.Fatalf("admit after cancel: %v", err)
	}

	// Cancelled reservations drop out of the confirmed listing.
	day := res.Date
	list, err := store.ListReservations(ctx, r.ID, &day)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, got := range list {
		if got.ID == res.ID {
			t.Fatal("cancelled reservation still listed")
		}
	}
}

func TestListReservationsByDay(t *testing.T) {
	store, pool := testStore(t)
	ctx := context.Background()

	r := createTestRestaurant(t, store, pool, nil)
	window := reservation.Window{From: "00:00", To: "23:59"}

	res := testReservation(r.ID, "19:00", 2)
	if err := store.AdmitReservation(ctx, res, window, 100); err != nil {
		t.Fatalf("admit: %v", err)
	}

	day := res.Date
	list, err := store.ListReservations(ctx, r.ID, &day)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(list))
	}

	other := restaurant.Day(day.AddDate(0, 0, 1))
	list, err = store.ListReservations(ctx, r.ID, &other)
	if err != nil {
		t.Fatalf("list other day: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty day, got %d", len(list))
	}
}

func TestGetReservationNotFound(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.GetReservation(context.Background(), uuid.New().String())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = store.FindReservationByToken(context.Background(), "not-a-real-token")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("requires DATABASE_URL")
	}
	for i := 0; i < 2; i++ {
		if err := postgres.RunMigrations(context.Background(), dsn); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}
