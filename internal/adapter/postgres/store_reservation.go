package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/reservation"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
)

const reservationColumns = `id, restaurant_id, date, time, customer_name, customer_email, group_size, status, cancel_token, created_at`

// ListReservations returns confirmed reservations for a restaurant. With a
// day it returns that UTC calendar day; without one it returns everything
// from today onward.
func (s *Store) ListReservations(ctx context.Context, restaurantID string, day *time.Time) ([]reservation.Reservation, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if day != nil {
		rows, err = s.pool.Query(ctx,
			`SELECT `+reservationColumns+`
			 FROM reservations
			 WHERE restaurant_id = $1 AND date = $2 AND status = 'confirmed'
			 ORDER BY time ASC`,
			restaurantID, restaurant.Day(*day))
	} else {
		rows, err = s.pool.Query(ctx,
			`SELECT `+reservationColumns+`
			 FROM reservations
			 WHERE restaurant_id = $1 AND date >= $2 AND status = 'confirmed'
			 ORDER BY date ASC, time ASC`,
			restaurantID, restaurant.Day(time.Now()))
	}
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (s *Store) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get reservation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get reservation %s: %w", id, err)
	}
	return &res, nil
}

// FindReservationByToken resolves a cancel token. Absent and malformed
// tokens both come back as domain.ErrNotFound so callers cannot distinguish
// them (no token-enumeration signal).
func (s *Store) FindReservationByToken(ctx context.Context, token string) (*reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE cancel_token = $1`, token)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reservation by token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reservation by token: %w", err)
	}
	return &res, nil
}

// AdmitReservation runs the capacity gate and the insert in one transaction.
//
// Two concurrent admissions for the same restaurant would otherwise both read
// the same cover sum and both pass the check. The SELECT ... FOR UPDATE on
// the restaurant row serialises them: the second transaction blocks until the
// first commits, then sees the first one's covers in its sum.
func (s *Store) AdmitReservation(ctx context.Context, res *reservation.Reservation, window reservation.Window, ceiling int) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin admission: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var restaurantID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM restaurants WHERE id = $1 FOR UPDATE`,
		res.RestaurantID,
	).Scan(&restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("admit reservation: restaurant %s: %w", res.RestaurantID, domain.ErrNotFound)
		}
		return fmt.Errorf("lock restaurant row: %w", err)
	}

	used, err := sumCovers(ctx, tx, res.RestaurantID, res.Date, window)
	if err != nil {
		return err
	}
	if used+res.GroupSize > ceiling {
		return fmt.Errorf("slot %s-%s has %d of %d covers used: %w",
			window.From, window.To, used, ceiling, domain.ErrConflict)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO reservations (id, restaurant_id, date, time, customer_name, customer_email, group_size, status, cancel_token, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		res.ID, res.RestaurantID, res.Date, res.Time, res.CustomerName,
		res.CustomerEmail, res.GroupSize, res.Status, res.CancelToken, res.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit admission: %w", err)
	}
	return nil
}

// sumCovers totals confirmed covers for one day inside the accounting
// window. An exact window counts only reservations at that precise time.
func sumCovers(ctx context.Context, tx pgx.Tx, restaurantID string, day time.Time, w reservation.Window) (int, error) {
	var (
		used  int
		query string
		args  []any
	)
	if w.Exact() {
		query = `SELECT COALESCE(SUM(group_size), 0) FROM reservations
		         WHERE restaurant_id = $1 AND date = $2 AND status = 'confirmed' AND time = $3`
		args = []any{restaurantID, day, w.From}
	} else {
		query = `SELECT COALESCE(SUM(group_size), 0) FROM reservations
		         WHERE restaurant_id = $1 AND date = $2 AND status = 'confirmed' AND time >= $3 AND time < $4`
		args = []any{restaurantID, day, w.From, w.To}
	}
	if err := tx.QueryRow(ctx, query, args...).Scan(&used); err != nil {
		return 0, fmt.Errorf("sum covers: %w", err)
	}
	return used, nil
}

// CancelReservation flips a confirmed reservation to cancelled. The row lock
// makes the flip race-free: of two concurrent cancels one wins and the other
// observes the already-cancelled state.
func (s *Store) CancelReservation(ctx context.Context, id string) (res *reservation.Reservation, err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)

	current, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cancel reservation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("cancel reservation %s: %w", id, err)
	}
	if current.Status == reservation.StatusCancelled {
		return nil, fmt.Errorf("cancel reservation %s: %w", id, domain.ErrAlreadyCancelled)
	}

	_, err = tx.Exec(ctx,
		`UPDATE reservations SET status = $2 WHERE id = $1`,
		id, reservation.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("update reservation status: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel: %w", err)
	}

	current.Status = reservation.StatusCancelled
	return &current, nil
}

// scanReservation reads one reservation row. The time column is CHAR(5);
// any blank padding is trimmed before the value is compared as HH:MM.
func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var res reservation.Reservation
	err := row.Scan(&res.ID, &res.RestaurantID, &res.Date, &res.Time,
		&res.CustomerName, &res.CustomerEmail, &res.GroupSize, &res.Status,
		&res.CancelToken, &res.CreatedAt)
	if err != nil {
		return reservation.Reservation{}, err
	}
	res.Time = strings.TrimSpace(res.Time)
	res.Date = restaurant.Day(res.Date)
	return res, nil
}
