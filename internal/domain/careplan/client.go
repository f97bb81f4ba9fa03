package careplan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the external care-plan generation service. Requests carry
// the shared API key; responses are the generated entries grouped by domain.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GeneratedPlan is the generation service's response payload.
type GeneratedPlan struct {
	AssessmentID uuid.UUID           `json:"assessment_id"`
	Domains      map[Domain][]*Entry `json:"domains"`
}

// Health checks whether the generation service is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("care plan service returned status %d", resp.StatusCode)
	}
	return nil
}

// Generate asks the service to produce a care plan for one assessment.
func (c *Client) Generate(ctx context.Context, assessmentID uuid.UUID) (*GeneratedPlan, error) {
	return c.fetchPlan(ctx, http.MethodPost, c.baseURL+"/generate-care-plan/"+assessmentID.String())
}

// GenerateRecent asks the service for a plan over the most recently
// completed assessment it knows about.
func (c *Client) GenerateRecent(ctx context.Context) (*GeneratedPlan, error) {
	return c.fetchPlan(ctx, http.MethodGet, c.baseURL+"/generate-care-plan/recent")
}

func (c *Client) fetchPlan(ctx context.Context, method, url string) (*GeneratedPlan, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("care plan service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var plan GeneratedPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("decoding care plan response: %w", err)
	}
	for domain, entries := range plan.Domains {
		if !domain.Valid() {
			return nil, fmt.Errorf("care plan response carries unknown domain %q", domain)
		}
		for _, e := range entries {
			if e.LevelOfNeed == "" {
				continue
			}
			if !e.LevelOfNeed.Valid() {
				return nil, fmt.Errorf("care plan response carries unknown level %q", e.LevelOfNeed)
			}
			e.LevelOfNeed = e.LevelOfNeed.Canonical()
		}
	}
	return &plan, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	return c.client.Do(req)
}
