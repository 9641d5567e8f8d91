package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/studiobook/studio-booking/internal/service"
)

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/availability", h.GetAvailability)
}

func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	from, to, err := parseWindow(c)
	if err != nil {
		return err
	}

	var teacherID *uint
	if raw := c.QueryParam("teacher_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid teacher_id")
		}
		tid := uint(id)
		teacherID = &tid
	}

	slots, err := h.svc.GetAvailability(c.Request().Context(), teacherID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slots)
}
