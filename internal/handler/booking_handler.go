package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/studiobook/studio-booking/internal/dto"
	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/confirm", h.ConfirmBooking)
	bookings.POST("/:id/reject", h.RejectBooking)
	bookings.POST("/:id/cancel", h.CancelBooking)
	bookings.POST("/:id/cancellation", h.RequestCancellation)
	bookings.POST("/:id/cancellation/approve", h.ApproveCancellation)
	bookings.POST("/:id/cancellation/reject", h.RejectCancellation)
	bookings.POST("/:id/attendance", h.MarkAttendance)

	e.GET("/api/v1/teachers/:id/bookings", h.ListTeacherBookings)

	e.POST("/api/v1/blocks", h.CreateBlock)
	e.DELETE("/api/v1/blocks/:id", h.RemoveBlock)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.RequestBooking(c.Request().Context(), service.RequestBookingInput{
		CustomerID:     req.CustomerID,
		TeacherID:      req.TeacherID,
		PackageID:      req.PackageID,
		SessionType:    models.SessionType(req.SessionType),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
		AutoConfirm:    req.AutoConfirm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.ConfirmBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	booking, err := h.svc.ConfirmBooking(c.Request().Context(), id, service.ConfirmInput{
		ConfirmedBy: req.ConfirmedBy,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) RejectBooking(c echo.Context) error {
	return h.withReason(c, h.svc.RejectBooking)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	return h.withReason(c, h.svc.CancelBooking)
}

func (h *BookingHandler) RequestCancellation(c echo.Context) error {
	return h.withReason(c, h.svc.RequestCancellation)
}

func (h *BookingHandler) RejectCancellation(c echo.Context) error {
	return h.withReason(c, h.svc.RejectCancellation)
}

func (h *BookingHandler) ApproveCancellation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.ApproveCancellation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) MarkAttendance(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.AttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	booking, err := h.svc.MarkAttendance(c.Request().Context(), id, models.BookingStatus(req.Outcome))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListTeacherBookings(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	from, to, err := parseWindow(c)
	if err != nil {
		return err
	}
	bookings, err := h.svc.ListTeacherBookings(c.Request().Context(), id, from, to)
	if err != nil {
		return err
	}
	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CreateBlock(c echo.Context) error {
	var req dto.CreateBlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	block, err := h.svc.CreateBlock(c.Request().Context(), service.BlockInput{
		TeacherID: req.TeacherID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(block))
}

func (h *BookingHandler) RemoveBlock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.RemoveBlock(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// withReason handles the transition endpoints that share the {reason} body.
func (h *BookingHandler) withReason(c echo.Context, fn func(ctx context.Context, id uint, reason string) (*models.Booking, error)) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.ReasonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	booking, err := fn(c.Request().Context(), id, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func parseWindow(c echo.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, c.QueryParam("from"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid or missing from parameter")
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid or missing to parameter")
	}
	return from, to, nil
}
