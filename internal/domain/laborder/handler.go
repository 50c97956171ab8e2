package laborder

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ecemedico/ece/internal/platform/auth"
	"github.com/ecemedico/ece/internal/platform/catalog"
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
	read.GET("/laboratorio", h.List)
	read.GET("/laboratorio/catalogo", h.Catalog)
	read.GET("/laboratorio/catalogo/buscar", h.SearchCatalog)
	read.GET("/laboratorio/:id", h.Get)
	read.GET("/laboratorio/:id/fhir", h.ExportFHIR)

	// Nursing records results; only doctors order and remove.
	results := api.Group("", auth.RequireRole(auth.RoleMedico, auth.RoleEnfermeria))
	results.PATCH("/laboratorio/:id/resultados", h.RecordResults)
	results.PATCH("/laboratorio/:id/estado", h.UpdateStatus)

	write := api.Group("", auth.RequireRole(auth.RoleMedico))
	write.POST("/laboratorio", h.Create)
	write.DELETE("/laboratorio/:id", h.Delete)
	write.POST("/fhir/import/laboratorio", h.ImportFHIR)
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	var o LabOrder
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateOrder(c.Request().Context(), &o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	o, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab order not found")
	}
	return c.JSON(http.StatusOK, o)
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

	list, total, err := h.svc.ListOrders(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
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
	o, err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "lab order not found")
		case errors.Is(err, ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) RecordResults(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var body struct {
		Results map[int]string `json:"resultados"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o, err := h.svc.RecordResults(c.Request().Context(), id, body.Results)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "lab order not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

// Catalog serves the exam catalog grouped by category, for the order form.
func (h *Handler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.ByCategory())
}

// SearchCatalog matches the q parameter against exam names and LOINC codes.
// An empty or unmatched term yields an empty list.
func (h *Handler) SearchCatalog(c echo.Context) error {
	results := catalog.Search(c.QueryParam("q"))
	if results == nil {
		results = []catalog.Entry{}
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteOrder(c.Request().Context(), id); err != nil {
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
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("DiagnosticReport", c.Param("id")))
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
	o, err := h.svc.ImportBundle(c.Request().Context(), bundle)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoExams), errors.Is(err, ErrPatientUnresolved):
			return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusCreated, o)
}
