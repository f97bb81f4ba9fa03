package careplan

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ucna/ucna/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	client *Client
}

func NewHandler(svc *Service, client *Client) *Handler {
	return &Handler{svc: svc, client: client}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "assessor", "coordinator")

	g := api.Group("", role)
	g.GET("/care-plans/recent", h.GetRecentPlan)
	g.GET("/care-plans/:id", h.GetPlan)
	g.POST("/care-plans/:id/generate", h.GeneratePlan)
	g.DELETE("/care-plans/:id", h.DeletePlan)
	g.GET("/care-plans/service/health", h.ServiceHealth)
}

func (h *Handler) GetPlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	plan, err := h.svc.Plan(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) GetRecentPlan(c echo.Context) error {
	plan, err := h.svc.RecentPlan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) GeneratePlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Generate(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	plan, err := h.svc.Plan(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, plan)
}

func (h *Handler) DeletePlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ServiceHealth reports whether the upstream generation service is
// reachable.
func (h *Handler) ServiceHealth(c echo.Context) error {
	if h.client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no care plan service configured")
	}
	if err := h.client.Health(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
