package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const restaurantColumns = `id, name, logo, primary_color, settings, version, created_at, updated_at`

func (s *Store) ListRestaurants(ctx context.Context) ([]restaurant.Restaurant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []restaurant.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

func (s *Store) GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)

	r, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get restaurant %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	return &r, nil
}

func (s *Store) FindRestaurantByName(ctx context.Context, name string) (*restaurant.Restaurant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE name = $1`, name)

	r, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("restaurant %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find restaurant %q: %w", name, err)
	}
	return &r, nil
}

func (s *Store) CreateRestaurant(ctx context.Context, req *restaurant.CreateRequest) (*restaurant.Restaurant, error) {
	settings := restaurant.Settings{}
	if req.Settings != nil {
		settings = *req.Settings
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO restaurants (id, name, logo, primary_color, settings)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+restaurantColumns,
		uuid.New().String(), req.Name, req.Logo, req.PrimaryColor, settingsJSON)

	r, err := scanRestaurant(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("restaurant %q already exists: %w", req.Name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return &r, nil
}

func (s *Store) UpdateRestaurant(ctx context.Context, r *restaurant.Restaurant) error {
	settingsJSON, err := json.Marshal(r.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE restaurants
		 SET name = $2, logo = $3, primary_color = $4, settings = $5,
		     version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $6`,
		r.ID, r.Name, r.Logo, r.PrimaryColor, settingsJSON, r.Version)
	if err != nil {
		return fmt.Errorf("update restaurant %s: %w", r.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update restaurant %s: %w", r.ID, domain.ErrConflict)
	}
	r.Version++
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// scanRestaurant reads one restaurant row, decoding the settings JSONB blob.
func scanRestaurant(row pgx.Row) (restaurant.Restaurant, error) {
	var (
		r            restaurant.Restaurant
		settingsJSON []byte
	)
	err := row.Scan(&r.ID, &r.Name, &r.Logo, &r.PrimaryColor, &settingsJSON,
		&r.Version, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	if len(settingsJSON) > 0 {
		if err := json.Unmarshal(settingsJSON, &r.Settings); err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("unmarshal settings: %w", err)
		}
	}
	return r, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
