package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetUserBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CompleteFinishedBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

var testUser = domain.UserRef{ID: 3, Name: "Ada"}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         1,
		Reference:  "3f1c9a52-7f43-4d6e-9c1b-2d3e4f5a6b7c",
		UserID:     testUser.ID,
		RoomID:     7,
		CheckIn:    date("2024-06-10"),
		CheckOut:   date("2024-06-13"),
		Guests:     2,
		TotalPrice: decimal.RequireFromString("450"),
		Status:     status,
		CreatedAt:  time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func newAuthedContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(currentUserKey, testUser)
	return c, w
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	body, _ := json.Marshal(createBookingRequest{RoomID: 7, CheckIn: "2024-06-10", CheckOut: "2024-06-13", Guests: 2})
	c, w := newAuthedContext("POST", "/api/bookings", body)

	input := booking.CreateBookingInput{
		User:     testUser,
		RoomID:   7,
		CheckIn:  date("2024-06-10"),
		CheckOut: date("2024-06-13"),
		Guests:   2,
	}
	mockService.On("CreateBooking", c.Request.Context(), input).Return(sampleBooking(domain.BookingStatusConfirmed), nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "450.00", response.TotalPrice)
	assert.Equal(t, 3, response.Nights)
	assert.Equal(t, "2024-06-10", response.CheckIn)
	assert.Equal(t, string(domain.BookingStatusConfirmed), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantKind   string
	}{
		{name: "malformed body", body: `{"room_id":`, wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "bad date", body: `{"room_id":7,"check_in":"10/06/2024","check_out":"2024-06-13","guests":1}`, wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "unavailable", body: `{"room_id":7,"check_in":"2024-06-10","check_out":"2024-06-13","guests":1}`, serviceErr: domain.ErrRoomUnavailable, wantStatus: http.StatusConflict, wantKind: "unavailable"},
		{name: "room missing", body: `{"room_id":7,"check_in":"2024-06-10","check_out":"2024-06-13","guests":1}`, serviceErr: domain.ErrRoomNotFound, wantStatus: http.StatusNotFound, wantKind: "not_found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)
			c, w := newAuthedContext("POST", "/api/bookings", []byte(tc.body))

			if tc.serviceErr != nil {
				mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, tc.serviceErr)
			}

			handler.create(c)

			assert.Equal(t, tc.wantStatus, w.Code)
			var response errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tc.wantKind, response.Kind)
			if tc.serviceErr != nil {
				assert.Equal(t, tc.serviceErr.Error(), response.Error)
			}
		})
	}
}

func TestBookingHandler_create_MissingDatesReachService(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("POST", "/api/bookings", []byte(`{"room_id":7,"guests":1}`))

	mockService.On("CreateBooking", c.Request.Context(), booking.CreateBookingInput{User: testUser, RoomID: 7, Guests: 1}).
		Return(nil, domain.ErrDatesRequired)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "dates required")
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("GET", "/api/bookings", nil)

	mockService.On("ListUserBookings", c.Request.Context(), testUser.ID).Return([]domain.Booking{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestBookingHandler_get_Forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("GET", "/api/bookings/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	mockService.On("GetUserBooking", c.Request.Context(), int64(1), testUser.ID).Return(nil, domain.ErrNotBookingOwner)

	handler.get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("DELETE", "/api/bookings/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	mockService.On("CancelBooking", c.Request.Context(), int64(1), testUser.ID).Return(sampleBooking(domain.BookingStatusCancelled), nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_InvalidID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("DELETE", "/api/bookings/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.cancel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything)
}
