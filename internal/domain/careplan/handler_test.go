package careplan

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo, *memAssessmentRepo) {
	svc, assessments, _, gen := newTestEnv()
	gen.plan = &GeneratedPlan{Domains: map[Domain][]*Entry{
		DomainHealth: {{IdentifiedNeed: "medication prompts", LevelOfNeed: LevelMedium}},
	}}
	return NewHandler(svc, nil), echo.New(), assessments
}

func TestHandler_GetPlan(t *testing.T) {
	h, e, assessments := newTestHandler()
	id := seedAssessment(assessments)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id"); c.SetParamValues(id.String())
	if err := h.GetPlan(c); err != nil { t.Fatalf("unexpected error: %v", err) }
	if rec.Code != http.StatusOK { t.Errorf("expected 200, got %d", rec.Code) }
}

func TestHandler_GetPlan_UnknownAssessment(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id"); c.SetParamValues(uuid.New().String())
	if err := h.GetPlan(c); err == nil { t.Error("expected error") }
}

func TestHandler_GetPlan_BadID(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id"); c.SetParamValues("not-a-uuid")
	if err := h.GetPlan(c); err == nil { t.Error("expected error") }
}

func TestHandler_GeneratePlan(t *testing.T) {
	h, e, assessments := newTestHandler()
	id := seedAssessment(assessments)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id"); c.SetParamValues(id.String())
	if err := h.GeneratePlan(c); err != nil { t.Fatalf("unexpected error: %v", err) }
	if rec.Code != http.StatusOK { t.Errorf("expected 200, got %d", rec.Code) }
}

func TestHandler_ServiceHealth_Unconfigured(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ServiceHealth(c); err == nil { t.Error("expected error with no client configured") }
}
