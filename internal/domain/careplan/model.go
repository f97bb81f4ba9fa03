package careplan

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ucna/ucna/internal/domain/assessment"
)

// Domain names one of the seven care-plan areas. Each domain has its own
// table; the column shape is identical across all of them.
type Domain string

const (
	DomainHealth               Domain = "health"
	DomainDailyLiving          Domain = "daily_living"
	DomainRisksSafeguarding    Domain = "risks_safeguarding"
	DomainSocialEmotional      Domain = "social_emotional"
	DomainEnvironmentLifestyle Domain = "environment_lifestyle"
	DomainAdvancePreferences   Domain = "advance_preferences"
	DomainOptionalAreas        Domain = "optional_areas"
)

var domainTables = map[Domain]string{
	DomainHealth:               "health_care_plan",
	DomainDailyLiving:          "daily_living_care_plan",
	DomainRisksSafeguarding:    "risks_safeguarding_care_plan",
	DomainSocialEmotional:      "social_emotional_care_plan",
	DomainEnvironmentLifestyle: "environment_lifestyle_care_plan",
	DomainAdvancePreferences:   "advance_preferences_care_plan",
	DomainOptionalAreas:        "optional_areas_care_plan",
}

var domainOrder = []Domain{
	DomainHealth,
	DomainDailyLiving,
	DomainRisksSafeguarding,
	DomainSocialEmotional,
	DomainEnvironmentLifestyle,
	DomainAdvancePreferences,
	DomainOptionalAreas,
}

// Domains returns the care-plan areas in presentation order.
func Domains() []Domain {
	out := make([]Domain, len(domainOrder))
	copy(out, domainOrder)
	return out
}

// Valid reports whether d is a known care-plan domain.
func (d Domain) Valid() bool {
	_, ok := domainTables[d]
	return ok
}

// Table returns the backing table for the domain.
func (d Domain) Table() string {
	return domainTables[d]
}

var domainTitles = map[Domain]string{
	DomainHealth:               "Health & Wellbeing",
	DomainDailyLiving:          "Daily Living",
	DomainRisksSafeguarding:    "Risks & Safeguarding",
	DomainSocialEmotional:      "Social & Emotional",
	DomainEnvironmentLifestyle: "Environment & Lifestyle",
	DomainAdvancePreferences:   "Advance Preferences",
	DomainOptionalAreas:        "Optional Areas",
}

// Title returns the domain's display name for rendered documents.
func (d Domain) Title() string {
	return domainTitles[d]
}

// Level grades how much support a planned need calls for.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Canonical folds any casing of a known level onto its canonical form.
// Unknown values come back unchanged so callers can report them.
func (l Level) Canonical() Level {
	switch strings.ToLower(string(l)) {
	case "low":
		return LevelLow
	case "medium":
		return LevelMedium
	case "high":
		return LevelHigh
	}
	return l
}

// Valid reports whether l is a known level of need, in any casing.
func (l Level) Valid() bool {
	switch l.Canonical() {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Entry is one planned need within a care-plan domain.
type Entry struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	AssessmentID    uuid.UUID  `db:"assessment_id" json:"assessment_id"`
	Description     string     `db:"description" json:"description"`
	IdentifiedNeed  string     `db:"identified_need" json:"identified_need"`
	PlannedOutcomes string     `db:"planned_outcomes" json:"planned_outcomes"`
	HowToAchieve    string     `db:"how_to_achieve" json:"how_to_achieve"`
	LevelOfNeed     Level      `db:"level_of_need" json:"level_of_need"`
	ReviewDate      *time.Time `db:"review_date" json:"review_date,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Plan is the assembled care plan for one assessment: the root record, the
// service-user identity, and every domain's entries. Domains with no entries
// are absent from the map.
type Plan struct {
	Assessment  *assessment.Assessment  `json:"assessment"`
	ServiceUser *assessment.ServiceUser `json:"service_user,omitempty"`
	Domains     map[Domain][]*Entry     `json:"domains"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// EntryCount is the total number of planned needs across all domains.
func (p *Plan) EntryCount() int {
	n := 0
	for _, entries := range p.Domains {
		n += len(entries)
	}
	return n
}
