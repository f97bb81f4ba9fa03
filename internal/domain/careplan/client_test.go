package careplan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestClient_Generate(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost || r.URL.Path != "/generate-care-plan/"+id.String() {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"assessment_id":"` + id.String() + `","domains":{"health":[{"identified_need":"diabetes management","level_of_need":"High"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	plan, err := c.Generate(context.Background(), id)
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if plan.AssessmentID != id { t.Errorf("assessment id mismatch") }
	if len(plan.Domains[DomainHealth]) != 1 {
		t.Fatalf("expected 1 health entry, got %d", len(plan.Domains[DomainHealth]))
	}
	if plan.Domains[DomainHealth][0].LevelOfNeed != LevelHigh {
		t.Errorf("unexpected level: %s", plan.Domains[DomainHealth][0].LevelOfNeed)
	}
}

func TestClient_GenerateRecent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/generate-care-plan/recent" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"domains":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.GenerateRecent(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Generate(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}

func TestClient_RejectsUnknownDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"domains":{"astrology":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Generate(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown domain in response")
	}
}

func TestClient_RejectsUnknownLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"domains":{"health":[{"level_of_need":"critical"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Generate(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown level in response")
	}
}

func TestClient_NormalizesLevelCasing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"domains":{"health":[{"level_of_need":"high"},{"level_of_need":"MEDIUM"},{"level_of_need":"Low"}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	plan, err := c.Generate(context.Background(), uuid.New())
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	entries := plan.Domains[DomainHealth]
	if len(entries) != 3 { t.Fatalf("expected 3 entries, got %d", len(entries)) }
	want := []Level{LevelHigh, LevelMedium, LevelLow}
	for i, e := range entries {
		if e.LevelOfNeed != want[i] {
			t.Errorf("entry %d: got level %q, want %q", i, e.LevelOfNeed, want[i])
		}
	}
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "").Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv.Close()
	if err := NewClient(srv.URL, "").Health(context.Background()); err == nil {
		t.Fatal("expected error once the service is gone")
	}
}
