package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RoomFilter narrows a hotel's room listing. With both dates set, only rooms
// free for the whole [CheckIn, CheckOut) stay are returned; without dates
// the Available hint is used instead.
type RoomFilter struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Type     domain.RoomType
	MaxPrice *decimal.Decimal
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64, filter RoomFilter) ([]domain.Room, error)
}

const roomColumns = `r.id, r.hotel_id, r.room_number, r.type, r.price::text, r.capacity, r.description, r.amenities, r.image_url, r.available`

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

func (r *PGRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms r WHERE r.id=$1`, id)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room by id: %w", err)
	}
	return room, nil
}

func (r *PGRoomRepository) ListByHotel(ctx context.Context, hotelID int64, filter RoomFilter) ([]domain.Room, error) {
	query, args := buildRoomQuery(hotelID, filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms by hotel: %w", err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func buildRoomQuery(hotelID int64, filter RoomFilter) (string, []any) {
	var sb strings.Builder
	args := []any{hotelID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString(`SELECT ` + roomColumns + ` FROM rooms r WHERE r.hotel_id=$1`)

	if filter.CheckIn != nil && filter.CheckOut != nil {
		sb.WriteString(` AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.room_id = r.id AND b.status = ` + arg(string(domain.BookingStatusConfirmed)))
		sb.WriteString(` AND b.check_in_date < ` + arg(domain.DateOf(*filter.CheckOut)))
		sb.WriteString(` AND b.check_out_date > ` + arg(domain.DateOf(*filter.CheckIn)) + `)`)
	} else {
		sb.WriteString(` AND r.available`)
	}
	if filter.Type != "" {
		sb.WriteString(` AND upper(r.type) = ` + arg(strings.ToUpper(string(filter.Type))))
	}
	if filter.MaxPrice != nil {
		sb.WriteString(` AND r.price <= ` + arg(filter.MaxPrice.String()) + `::text::numeric`)
	}
	sb.WriteString(` ORDER BY r.price, r.room_number`)

	return sb.String(), args
}

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var (
		room  domain.Room
		price string
	)
	if err := row.Scan(&room.ID, &room.HotelID, &room.RoomNumber, &room.Type, &price, &room.Capacity, &room.Description, &room.Amenities, &room.ImageURL, &room.Available); err != nil {
		return nil, err
	}
	p, err := parseMoney(price)
	if err != nil {
		return nil, err
	}
	room.Price = p
	return &room, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse money %q: %w", s, err)
	}
	return d, nil
}

var _ RoomRepository = (*PGRoomRepository)(nil)
