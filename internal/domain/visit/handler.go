package visit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ecemedico/ece/internal/platform/auth"
	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleMedico, auth.RoleEnfermeria))
	read.GET("/consultas", h.List)
	read.GET("/consultas/:id", h.Get)
	read.GET("/consultas/:id/fhir", h.ExportEncounterBundle)
	read.GET("/pacientes/:id/fhir/bundle", h.ExportPatientBundle)

	write := api.Group("", auth.RequireRole(auth.RoleMedico, auth.RoleEnfermeria))
	write.POST("/consultas", h.Create)
	write.PUT("/consultas/:id", h.Update)
	write.DELETE("/consultas/:id", h.Delete)
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateVisit(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.GetVisit(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)

	if pid := c.QueryParam("paciente_id"); pid != "" {
		patientID, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paciente_id")
		}
		visits, total, err := h.svc.ListVisitsByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(visits, total, pg.Limit, pg.Offset))
	}

	visits, total, err := h.svc.ListVisits(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(visits, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = id
	if err := h.svc.UpdateVisit(c.Request().Context(), &v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "visit not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteVisit(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ExportEncounterBundle(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	bundle, err := h.svc.ExportEncounterBundle(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Encounter", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, bundle)
}

func (h *Handler) ExportPatientBundle(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	bundle, err := h.svc.ExportPatientBundle(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Patient", c.Param("id")))
	}
	return c.JSON(http.StatusOK, bundle)
}
