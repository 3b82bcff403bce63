package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	GetUserBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	CompleteFinishedBookings(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	rooms              repository.RoomRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *zap.Logger
	now                func() time.Time
}

type CreateBookingInput struct {
	User           domain.UserRef
	RoomID         int64
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	SpecialRequest string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the source of "now"; "today" is its calendar date.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		rooms:        rooms,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       zap.NewNop(),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	now := s.now()
	if err := validateStay(input, domain.DateOf(now)); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	if input.Guests > room.Capacity {
		return nil, domain.ErrExceedsCapacity
	}

	checkIn, checkOut := domain.DateOf(input.CheckIn), domain.DateOf(input.CheckOut)
	booking := &domain.Booking{
		Reference:      uuid.NewString(),
		UserID:         input.User.ID,
		RoomID:         room.ID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         input.Guests,
		TotalPrice:     domain.TotalPrice(room.Price, domain.Nights(checkIn, checkOut)),
		SpecialRequest: strings.TrimSpace(input.SpecialRequest),
		Status:         domain.BookingStatusConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.bookings.WithRoomLock(ctx, room.ID, func(tx repository.BookingTx) error {
		existing, err := tx.FindOverlapping(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return domain.ErrRoomUnavailable
		}
		return tx.Create(ctx, booking)
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindUnavailable {
			s.logger.Info("Room not available",
				zap.Int64("room_id", room.ID),
				zap.Int64("user_id", input.User.ID),
				zap.String("check_in", checkIn.Format(domain.DateLayout)),
				zap.String("check_out", checkOut.Format(domain.DateLayout)),
			)
		}
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("room_id", booking.RoomID),
		zap.Int64("user_id", booking.UserID),
		zap.Int("nights", booking.Nights()),
		zap.String("total_price", booking.TotalPrice.StringFixed(2)),
	)

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

// validateStay runs the input checks that need no stored state, failing on
// the first violation.
func validateStay(input CreateBookingInput, today time.Time) error {
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() {
		return domain.ErrDatesRequired
	}
	checkIn, checkOut := domain.DateOf(input.CheckIn), domain.DateOf(input.CheckOut)
	if checkIn.Before(today) {
		return domain.ErrCheckInPast
	}
	if !checkOut.After(checkIn) {
		return domain.ErrCheckOutNotAfterCheckIn
	}
	if input.Guests < 1 {
		return domain.ErrInvalidGuestCount
	}
	return nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	current, err := s.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, domain.ErrNotBookingOwner
	}
	if current.Status != domain.BookingStatusConfirmed {
		return nil, domain.ErrBookingNotConfirmed
	}

	updated, err := s.bookings.TransitionStatus(ctx, bookingID, domain.BookingStatusConfirmed, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// cancelled or completed concurrently
		return nil, domain.ErrBookingNotConfirmed
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", updated.ID),
		zap.Int64("user_id", userID),
	)

	s.publish(ctx, kafka.EventBookingCancelled, updated)
	return updated, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) GetUserBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrNotBookingOwner
	}
	return booking, nil
}

// CompleteFinishedBookings marks every confirmed booking whose check-out day
// has arrived as COMPLETED.
func (s *BookingService) CompleteFinishedBookings(ctx context.Context) ([]domain.Booking, error) {
	completed, err := s.bookings.CompleteCheckedOut(ctx, domain.DateOf(s.now()))
	if err != nil {
		return nil, err
	}
	for i := range completed {
		s.publish(ctx, kafka.EventBookingCompleted, &completed[i])
	}
	if len(completed) > 0 {
		s.logger.Info("Bookings completed", zap.Int("count", len(completed)))
	}
	return completed, nil
}

// publish is best effort: the booking is already committed.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking, s.now())

	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		s.logger.Warn("Failed to publish booking event",
			zap.String("type", eventType),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err),
		)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			s.logger.Warn("Failed to publish notification",
				zap.String("type", eventType),
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
