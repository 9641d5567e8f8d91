package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/studiobook/studio-booking/internal/dto"
	"github.com/studiobook/studio-booking/internal/service"
)

type PackageHandler struct {
	svc service.PackageService
}

func NewPackageHandler(svc service.PackageService) *PackageHandler {
	return &PackageHandler{svc: svc}
}

func (h *PackageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/packages/:id", h.GetPackage)
	e.POST("/api/v1/packages/:id/reconcile", h.Reconcile)
}

func (h *PackageHandler) GetPackage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	view, err := h.svc.GetPackage(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToPackageResponse(view))
}

func (h *PackageHandler) Reconcile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	view, err := h.svc.Reconcile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToPackageResponse(view))
}
