package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository persists bookings. Availability-sensitive writes go
// through WithRoomLock so the overlap check and the insert share one
// transaction serialized per room.
type BookingRepository interface {
	WithRoomLock(ctx context.Context, roomID int64, fn func(tx BookingTx) error) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error)
	CompleteCheckedOut(ctx context.Context, today time.Time) ([]domain.Booking, error)
}

// BookingTx is the view of the booking store inside a room-locked transaction.
type BookingTx interface {
	FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
}

// SQLSTATE exclusion_violation, raised by bookings_no_overlap.
const exclusionViolation = "23P01"

const bookingColumns = `id, reference, user_id, room_id, check_in_date, check_out_date, guests, total_price::text, special_request, status, created_at, updated_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) WithRoomLock(ctx context.Context, roomID int64, fn func(tx BookingTx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, roomID); err != nil {
		return fmt.Errorf("lock room %d: %w", roomID, err)
	}

	if err := fn(&pgBookingTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapWriteError(err, "commit transaction")
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	return collectBookings(rows)
}

// TransitionStatus moves a booking from one status to another only if it is
// still in from. It returns (nil, nil) when no row matched.
func (r *PGBookingRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3 RETURNING `+bookingColumns, to, id, from)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err, "update booking status")
	}
	return b, nil
}

func (r *PGBookingRepository) CompleteCheckedOut(ctx context.Context, today time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE status=$2 AND check_out_date <= $3 RETURNING `+bookingColumns,
		domain.BookingStatusCompleted, domain.BookingStatusConfirmed, domain.DateOf(today))
	if err != nil {
		return nil, fmt.Errorf("complete bookings: %w", err)
	}
	return collectBookings(rows)
}

type pgBookingTx struct {
	tx pgx.Tx
}

func (t *pgBookingTx) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	rows, err := t.tx.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE room_id=$1 AND status=$2 AND check_in_date < $3 AND check_out_date > $4
		ORDER BY check_in_date`,
		roomID, domain.BookingStatusConfirmed, domain.DateOf(checkOut), domain.DateOf(checkIn))
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}
	return collectBookings(rows)
}

func (t *pgBookingTx) Create(ctx context.Context, b *domain.Booking) error {
	err := t.tx.QueryRow(ctx, `INSERT INTO bookings (reference, user_id, room_id, check_in_date, check_out_date, guests, total_price, special_request, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::numeric, $8, $9, $10, $10)
		RETURNING id, created_at, updated_at`,
		b.Reference, b.UserID, b.RoomID, domain.DateOf(b.CheckIn), domain.DateOf(b.CheckOut), b.Guests,
		b.TotalPrice.StringFixed(2), b.SpecialRequest, b.Status, b.CreatedAt).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "create booking")
	}
	return nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b     domain.Booking
		total string
	)
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Guests, &total, &b.SpecialRequest, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	price, err := parseMoney(total)
	if err != nil {
		return nil, err
	}
	b.TotalPrice = price
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// mapWriteError turns the no-overlap exclusion constraint into the domain
// unavailability error; anything else is wrapped with the action.
func mapWriteError(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return domain.ErrRoomUnavailable
	}
	return fmt.Errorf("%s: %w", action, err)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
var _ BookingTx = (*pgBookingTx)(nil)
