package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HotelFilter struct {
	// Query matches name, location, description or amenities.
	Query     string
	Location  string
	MinRating *float64
}

func (f HotelFilter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && strings.TrimSpace(f.Location) == "" && f.MinRating == nil
}

type HotelRepository interface {
	List(ctx context.Context, filter HotelFilter) ([]domain.Hotel, error)
	TopRated(ctx context.Context, limit int) ([]domain.Hotel, error)
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

const hotelColumns = `id, name, location, rating, description, image_url, amenities, starting_price::text, created_at, updated_at`

type PGHotelRepository struct {
	db *pgxpool.Pool
}

func NewHotelRepository(db *pgxpool.Pool) HotelRepository {
	return &PGHotelRepository{db: db}
}

func (r *PGHotelRepository) List(ctx context.Context, filter HotelFilter) ([]domain.Hotel, error) {
	query, args := buildHotelQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return collectHotels(rows)
}

func (r *PGHotelRepository) TopRated(ctx context.Context, limit int) ([]domain.Hotel, error) {
	rows, err := r.db.Query(ctx, `SELECT `+hotelColumns+` FROM hotels ORDER BY rating DESC, name LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list top rated hotels: %w", err)
	}
	return collectHotels(rows)
}

func (r *PGHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	row := r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id=$1`, id)
	h, err := scanHotel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hotel by id: %w", err)
	}
	return h, nil
}

func buildHotelQuery(filter HotelFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		p := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %[1]s OR location ILIKE %[1]s OR description ILIKE %[1]s OR amenities ILIKE %[1]s)", p))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		conds = append(conds, "location ILIKE "+arg("%"+loc+"%"))
	}
	if filter.MinRating != nil {
		conds = append(conds, "rating >= "+arg(*filter.MinRating))
	}

	query := `SELECT ` + hotelColumns + ` FROM hotels`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY name", args
}

func scanHotel(row pgx.Row) (*domain.Hotel, error) {
	var (
		h     domain.Hotel
		price string
	)
	if err := row.Scan(&h.ID, &h.Name, &h.Location, &h.Rating, &h.Description, &h.ImageURL, &h.Amenities, &price, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	p, err := parseMoney(price)
	if err != nil {
		return nil, err
	}
	h.StartingPrice = p
	return &h, nil
}

func collectHotels(rows pgx.Rows) ([]domain.Hotel, error) {
	defer rows.Close()

	hotels := make([]domain.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, *h)
	}
	return hotels, rows.Err()
}

var _ HotelRepository = (*PGHotelRepository)(nil)
