package session

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ucna/ucna/internal/domain/assessment"
	"github.com/ucna/ucna/internal/platform/auth"
	"github.com/ucna/ucna/internal/schema"
)

type Handler struct {
	mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "assessor")

	g := api.Group("", role)
	g.POST("/sessions", h.OpenSession)
	g.GET("/sessions/:id", h.GetSession)
	g.PUT("/sessions/:id/sections/:key", h.SetFields)
	g.PUT("/sessions/:id/sections/:key/complete", h.MarkComplete)
	g.POST("/sessions/:id/next", h.Next)
	g.POST("/sessions/:id/previous", h.Previous)
	g.DELETE("/sessions/:id", h.CloseSession)
}

type openRequest struct {
	AssessmentID string `json:"assessment_id"`
}

type sessionView struct {
	AssessmentID uuid.UUID           `json:"assessment_id"`
	Repaired     bool                `json:"repaired,omitempty"`
	Section      int                 `json:"section"`
	Progress     int                 `json:"progress"`
	Dirty        bool                `json:"dirty"`
	Completed    []schema.SectionKey `json:"completed,omitempty"`
	Data         map[string]string   `json:"data"`
}

func view(s *Session, repaired bool) *sessionView {
	sec, _ := schema.SectionByNumber(s.Current())
	return &sessionView{
		AssessmentID: s.AssessmentID,
		Repaired:     repaired,
		Section:      s.Current(),
		Progress:     s.Progress(),
		Dirty:        s.Dirty(),
		Completed:    s.CompletedSections(),
		Data:         s.SectionData(sec.Key),
	}
}

// OpenSession starts (or resumes) the form for an assessment. A malformed
// assessment_id is repaired and the replacement returned to the caller.
func (h *Handler) OpenSession(c echo.Context) error {
	var req openRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, repaired := assessment.NormalizeID(req.AssessmentID)
	s, err := h.mgr.Load(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view(s, repaired))
}

func (h *Handler) GetSession(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view(s, false))
}

// SetFields merges edits into the named section's working data without
// persisting anything.
func (h *Handler) SetFields(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	key := schema.SectionKey(c.Param("key"))
	if _, ok := schema.SectionByKey(key); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown section")
	}
	var values map[string]string
	if err := c.Bind(&values); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.SetFields(key, values)
	return c.JSON(http.StatusOK, view(s, false))
}

type markCompleteRequest struct {
	Completed bool `json:"completed"`
}

// MarkComplete sets or clears a section's completion flag without moving the
// form. Progress reflects the change immediately.
func (h *Handler) MarkComplete(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	key := schema.SectionKey(c.Param("key"))
	if _, ok := schema.SectionByKey(key); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown section")
	}
	var req markCompleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.SetCompleted(key, req.Completed)
	return c.JSON(http.StatusOK, view(s, false))
}

// Next validates and flushes the current section, then advances. Field
// errors come back with 422 and the form stays put.
func (h *Handler) Next(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	res, err := h.mgr.Next(c.Request().Context(), s)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(res.Errors) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, res)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Previous(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.mgr.Previous(s))
}

func (h *Handler) CloseSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.mgr.Close(id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) session(c echo.Context) (*Session, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s, err := h.mgr.Load(c.Request().Context(), id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return s, nil
}
