package prescription

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
	read.GET("/recetas", h.List)
	read.GET("/recetas/:id", h.Get)
	read.GET("/recetas/:id/fhir", h.ExportFHIR)

	write := api.Group("", auth.RequireRole(auth.RoleMedico))
	write.POST("/recetas", h.Create)
	write.PATCH("/recetas/:id/cancelar", h.Cancel)
	write.DELETE("/recetas/:id", h.Delete)
	write.POST("/fhir/import/receta", h.ImportFHIR)
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePrescription(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPrescription(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)

	if pid := c.QueryParam("paciente_id"); pid != "" {
		patientID, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paciente_id")
		}
		list, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
	}

	list, total, err := h.svc.ListPrescriptions(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"estado": "cancelada"})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePrescription(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ExportFHIR(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	bundle, err := h.svc.ExportBundle(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("MedicationRequest", c.Param("id")))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, bundle)
}

func (h *Handler) ImportFHIR(c echo.Context) error {
	var bundle map[string]interface{}
	if err := c.Bind(&bundle); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome(err.Error()))
	}
	p, err := h.svc.ImportBundle(c.Request().Context(), bundle)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoMedications), errors.Is(err, ErrPatientUnresolved):
			return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusCreated, p)
}
