package catalog

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"go.uber.org/zap"
)

type CatalogUseCase interface {
	ListHotels(ctx context.Context, filter repository.HotelFilter) ([]domain.Hotel, error)
	TopRatedHotels(ctx context.Context) ([]domain.Hotel, error)
	GetHotel(ctx context.Context, id int64) (*domain.Hotel, error)
	ListRooms(ctx context.Context, hotelID int64, filter repository.RoomFilter) ([]domain.Room, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// HotelCache stores hotel listings under a key. A miss is (nil, nil).
type HotelCache interface {
	GetHotels(ctx context.Context, key string) ([]domain.Hotel, error)
	SetHotels(ctx context.Context, key string, hotels []domain.Hotel) error
}

const (
	allHotelsKey = "all"
	topRatedKey  = "top"

	defaultTopRatedLimit = 10
)

type CatalogService struct {
	hotels        repository.HotelRepository
	rooms         repository.RoomRepository
	cache         HotelCache
	topRatedLimit int
	logger        *zap.Logger
}

func NewCatalogService(hotels repository.HotelRepository, rooms repository.RoomRepository, cache HotelCache, topRatedLimit int, logger *zap.Logger) *CatalogService {
	if topRatedLimit <= 0 {
		topRatedLimit = defaultTopRatedLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{hotels: hotels, rooms: rooms, cache: cache, topRatedLimit: topRatedLimit, logger: logger}
}

// ListHotels serves the unfiltered listing from cache; searches always hit
// the repository.
func (s *CatalogService) ListHotels(ctx context.Context, filter repository.HotelFilter) ([]domain.Hotel, error) {
	if filter.MinRating != nil && (*filter.MinRating < 0 || *filter.MinRating > 5) {
		return nil, domain.ValidationError("min rating must be between 0 and 5")
	}
	if !filter.IsZero() {
		return s.hotels.List(ctx, filter)
	}
	return s.cached(ctx, allHotelsKey, func() ([]domain.Hotel, error) {
		return s.hotels.List(ctx, filter)
	})
}

func (s *CatalogService) TopRatedHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.cached(ctx, topRatedKey, func() ([]domain.Hotel, error) {
		return s.hotels.TopRated(ctx, s.topRatedLimit)
	})
}

func (s *CatalogService) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, domain.ErrHotelNotFound
	}
	return hotel, nil
}

func (s *CatalogService) ListRooms(ctx context.Context, hotelID int64, filter repository.RoomFilter) ([]domain.Room, error) {
	if (filter.CheckIn == nil) != (filter.CheckOut == nil) {
		return nil, domain.ErrDatesRequired
	}
	if filter.CheckIn != nil && !domain.DateOf(*filter.CheckOut).After(domain.DateOf(*filter.CheckIn)) {
		return nil, domain.ErrCheckOutNotAfterCheckIn
	}
	if filter.MaxPrice != nil && filter.MaxPrice.IsNegative() {
		return nil, domain.ValidationError("max price must not be negative")
	}
	if filter.Type != "" {
		t, ok := domain.ParseRoomType(string(filter.Type))
		if !ok {
			return nil, domain.ValidationError("unknown room type")
		}
		filter.Type = t
	}

	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.rooms.ListByHotel(ctx, hotelID, filter)
}

func (s *CatalogService) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

func (s *CatalogService) cached(ctx context.Context, key string, load func() ([]domain.Hotel, error)) ([]domain.Hotel, error) {
	if s.cache != nil {
		cached, err := s.cache.GetHotels(ctx, key)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.logger.Warn("Hotel cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	hotels, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetHotels(ctx, key, hotels); err != nil {
			s.logger.Warn("Hotel cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return hotels, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
