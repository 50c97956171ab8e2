package appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ecemedico/ece/internal/platform/auth"
	"github.com/ecemedico/ece/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// The front desk owns the agenda; clinical staff can read and update it.
	g := api.Group("", auth.RequireRole(auth.RoleMedico, auth.RoleEnfermeria, auth.RoleRecepcion))
	g.GET("/citas", h.List)
	g.GET("/citas/:id", h.Get)
	g.POST("/citas", h.Create)
	g.PUT("/citas/:id", h.Update)
	g.PATCH("/citas/:id/estado", h.UpdateStatus)
	g.DELETE("/citas/:id", h.Delete)
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateAppointment(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	if pid := c.QueryParam("paciente_id"); pid != "" {
		patientID, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paciente_id")
		}
		list, total, err := h.svc.ListByPatient(ctx, patientID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
	}

	if mid := c.QueryParam("medico_id"); mid != "" {
		practitionerID, err := strconv.ParseInt(mid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid medico_id")
		}
		list, total, err := h.svc.ListByPractitioner(ctx, practitionerID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
	}

	list, total, err := h.svc.ListAppointments(ctx, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	if err := h.svc.UpdateAppointment(c.Request().Context(), &a); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var body struct {
		Status string `json:"estado"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		case errors.Is(err, ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
