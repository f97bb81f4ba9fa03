// Package report assembles the critical information summary for an
// assessment and renders it as a PDF handover document.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/ucna/ucna/internal/domain/assessment"
	"github.com/ucna/ucna/internal/domain/careplan"
)

// PlanSection is one care-plan domain's entries as they appear on the
// handover document.
type PlanSection struct {
	Domain  careplan.Domain   `json:"domain"`
	Title   string            `json:"title"`
	Entries []*careplan.Entry `json:"entries"`
}

// RiskFlag is one safeguarding concern answered "yes", with its notes.
type RiskFlag struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// Summary is the critical information a carer needs at handover: identity,
// access, allergies and medication, live risks, advance preferences, and
// the generated care plan.
// It is assembled strictly from the named assessment; a missing assessment
// is an error, never someone else's data.
type Summary struct {
	AssessmentID   uuid.UUID               `json:"assessment_id"`
	Status         assessment.Status       `json:"status"`
	AssessmentDate time.Time               `json:"assessment_date"`
	GeneratedAt    time.Time               `json:"generated_at"`

	ServiceUser *assessment.ServiceUser `json:"service_user,omitempty"`

	AccessToAccommodation string `json:"access_to_accommodation,omitempty"`
	KeySafe               string `json:"key_safe,omitempty"`
	WhoOpensTheDoor       string `json:"who_opens_the_door,omitempty"`
	LifelineInPlace       string `json:"lifeline_in_place,omitempty"`
	CommunicationNeeds    string `json:"communication_needs,omitempty"`

	PrimaryDiagnosis      string `json:"primary_diagnosis,omitempty"`
	OtherHealthConditions string `json:"other_health_conditions,omitempty"`
	Allergies             string `json:"allergies,omitempty"`
	Medication            string `json:"medication,omitempty"`

	Mobility     string `json:"mobility,omitempty"`
	Transfers    string `json:"transfers,omitempty"`
	Continence   string `json:"continence,omitempty"`
	PersonalCare string `json:"personal_care,omitempty"`

	Risks []RiskFlag `json:"risks,omitempty"`

	MentalCapacityDoLS     string `json:"mental_capacity_dols,omitempty"`
	DNACPRInPlace          string `json:"dnacpr_in_place,omitempty"`
	RespectFormInPlace     string `json:"respect_form_in_place,omitempty"`
	PowerOfAttorney        string `json:"power_of_attorney,omitempty"`
	PersonalEvacuationPlan string `json:"personal_evacuation_plan,omitempty"`

	CarePlan []PlanSection `json:"care_plan,omitempty"`

	Attachments []string `json:"attachments,omitempty"`

	AssessorName string `json:"assessor_name,omitempty"`
	AssessorDate string `json:"assessor_date,omitempty"`
}

// riskFields are the yes/no safeguarding questions surfaced on the summary,
// each paired with the notes column that explains it.
var riskFields = []struct {
	label, field, notes string
}{
	{"Risk of falls", "risk_of_falls", "risk_of_falls_notes"},
	{"Choking risk", "choking_risk", "choking_risk_notes"},
	{"Pressure sores / skin integrity", "pressure_sores_skin", "pressure_sores_skin_notes"},
	{"Self neglect", "self_neglect", "self_neglect_notes"},
	{"Safeguarding concerns", "safeguarding_concerns", "safeguarding_concerns_notes"},
}

// attachmentLabels maps the attachment flags to print labels, in form order.
var attachmentLabels = []struct {
	field, label string
}{
	{"risk_assessments", "Risk assessments"},
	{"dnacpr", "DNACPR"},
	{"respect_form", "ReSPECT form"},
	{"medication_list", "Medication list"},
	{"poa_documentation", "Power of attorney documentation"},
	{"peep_evacuation_plan", "PEEP evacuation plan"},
	{"communication_passport", "Communication passport"},
}
