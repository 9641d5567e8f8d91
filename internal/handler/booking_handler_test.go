package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiobook/studio-booking/internal/apperr"
	"github.com/studiobook/studio-booking/internal/middleware"
	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/internal/service"
	"go.uber.org/zap"
)

type mockBookingService struct {
	requestFn    func(ctx context.Context, in service.RequestBookingInput) (*models.Booking, error)
	confirmFn    func(ctx context.Context, id uint, in service.ConfirmInput) (*models.Booking, error)
	cancelReqFn  func(ctx context.Context, id uint, reason string) (*models.Booking, error)
	getFn        func(ctx context.Context, id uint) (*models.Booking, error)
	attendanceFn func(ctx context.Context, id uint, outcome models.BookingStatus) (*models.Booking, error)
}

func (m *mockBookingService) RequestBooking(ctx context.Context, in service.RequestBookingInput) (*models.Booking, error) {
	return m.requestFn(ctx, in)
}
func (m *mockBookingService) ConfirmBooking(ctx context.Context, id uint, in service.ConfirmInput) (*models.Booking, error) {
	return m.confirmFn(ctx, id, in)
}
func (m *mockBookingService) RejectBooking(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	return nil, nil
}
func (m *mockBookingService) CancelBooking(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	return nil, nil
}
func (m *mockBookingService) RequestCancellation(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	return m.cancelReqFn(ctx, id, reason)
}
func (m *mockBookingService) ApproveCancellation(ctx context.Context, id uint) (*models.Booking, error) {
	return nil, nil
}
func (m *mockBookingService) RejectCancellation(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	return nil, nil
}
func (m *mockBookingService) MarkAttendance(ctx context.Context, id uint, outcome models.BookingStatus) (*models.Booking, error) {
	return m.attendanceFn(ctx, id, outcome)
}
func (m *mockBookingService) CreateBlock(ctx context.Context, in service.BlockInput) (*models.Booking, error) {
	return nil, nil
}
func (m *mockBookingService) RemoveBlock(ctx context.Context, id uint) error { return nil }
func (m *mockBookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListTeacherBookings(ctx context.Context, teacherID uint, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingService) CompleteElapsed(ctx context.Context) (int64, error) { return 0, nil }

func newServer(svc service.BookingService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zap.NewNop())
	NewBookingHandler(svc).RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateBooking_Created(t *testing.T) {
	svc := &mockBookingService{
		requestFn: func(ctx context.Context, in service.RequestBookingInput) (*models.Booking, error) {
			assert.Equal(t, "idem-123", in.IdempotencyKey)
			return &models.Booking{
				ID:          7,
				CustomerID:  in.CustomerID,
				TeacherID:   in.TeacherID,
				SessionType: in.SessionType,
				Status:      models.StatusPending,
				StartTime:   in.StartTime,
				EndTime:     in.EndTime,
			}, nil
		},
	}
	e := newServer(svc)

	body := `{"customer_id":1,"teacher_id":10,"session_type":"private",` +
		`"start_time":"2026-03-11T10:00:00Z","end_time":"2026-03-11T11:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "idem-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 7, resp["id"])
	assert.Equal(t, string(models.StatusPending), resp["status"])
}

func TestCreateBooking_ConflictMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		requestFn: func(ctx context.Context, in service.RequestBookingInput) (*models.Booking, error) {
			return nil, apperr.New(apperr.Conflict, "teacher already has a booking overlapping this time")
		},
	}
	e := newServer(svc)

	rec := doJSON(e, http.MethodPost, "/api/v1/bookings",
		`{"customer_id":1,"teacher_id":10,"session_type":"private"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "overlapping")
}

func TestCreateBooking_ValidationMapsTo400(t *testing.T) {
	svc := &mockBookingService{
		requestFn: func(ctx context.Context, in service.RequestBookingInput) (*models.Booking, error) {
			return nil, apperr.New(apperr.Validation, "end time must be after start time")
		},
	}
	e := newServer(svc)

	rec := doJSON(e, http.MethodPost, "/api/v1/bookings", `{"customer_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBooking_NotFoundMapsTo404(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, apperr.New(apperr.NotFound, "booking not found")
		},
	}
	e := newServer(svc)

	rec := doJSON(e, http.MethodGet, "/api/v1/bookings/42", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking not found")
}

func TestGetBooking_BadID(t *testing.T) {
	svc := &mockBookingService{}
	e := newServer(svc)

	rec := doJSON(e, http.MethodGet, "/api/v1/bookings/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestCancellation_PolicyMapsTo422(t *testing.T) {
	var gotReason string
	svc := &mockBookingService{
		cancelReqFn: func(ctx context.Context, id uint, reason string) (*models.Booking, error) {
			gotReason = reason
			return nil, apperr.New(apperr.Policy, "cannot cancel within 6 hours of the session start")
		},
	}
	e := newServer(svc)

	rec := doJSON(e, http.MethodPost, "/api/v1/bookings/5/cancellation", `{"reason":"sick"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "sick", gotReason)
	assert.Contains(t, rec.Body.String(), "6 hours")
}

func TestConfirmBooking_StateMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		confirmFn: func(ctx context.Context, id uint, in service.ConfirmInput) (*models.Booking, error) {
			return nil, apperr.New(apperr.State, "booking is not pending, already processed")
		},
	}
	e := newServer(svc)

	rec := doJSON(e, http.MethodPost, "/api/v1/bookings/5/confirm", `{"confirmed_by":"teacher:10"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMarkAttendance_PassesOutcome(t *testing.T) {
	svc := &mockBookingService{
		attendanceFn: func(ctx context.Context, id uint, outcome models.BookingStatus) (*models.Booking, error) {
			assert.Equal(t, models.StatusNoShow, outcome)
			return &models.Booking{ID: id, Status: outcome}, nil
		},
	}
	e := newServer(svc)

	rec := doJSON(e, http.MethodPost, "/api/v1/bookings/5/attendance", `{"outcome":"no_show"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no_show")
}

func TestInternalErrorMasksMessage(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, apperr.New(apperr.Integrity, "package 3 is overcommitted")
		},
	}
	e := newServer(svc)

	rec := doJSON(e, http.MethodGet, "/api/v1/bookings/3", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "overcommitted")
}
