package user

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

// RegisterPublicRoutes mounts login outside the authenticated group.
func (h *Handler) RegisterPublicRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
}

// RegisterRoutes mounts account management; all of it is admin-only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.POST("/usuarios", h.Register)
	admin.GET("/usuarios", h.List)
	admin.GET("/usuarios/:id", h.Get)
	admin.PATCH("/usuarios/:id/activo", h.SetActive)
}

type loginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"usuario"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	token, u, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: u})
}

type registerRequest struct {
	Username string   `json:"usuario"`
	Name     string   `json:"nombre"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Register(c.Request().Context(), req.Username, req.Name, req.Password, req.Roles)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	u, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	list, total, err := h.svc.ListUsers(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
}

func (h *Handler) SetActive(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Active bool `json:"activo"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetActive(c.Request().Context(), id, body.Active); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"activo": body.Active})
}
