package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ucna/ucna/internal/domain/assessment"
	"github.com/ucna/ucna/internal/domain/careplan"
	"github.com/ucna/ucna/internal/schema"
)

type Service struct {
	gateway *assessment.Service
	entries careplan.EntryRepository
}

func NewService(gateway *assessment.Service, entries careplan.EntryRepository) *Service {
	return &Service{gateway: gateway, entries: entries}
}

// Summarize builds the critical information summary for one assessment. The
// assessment must exist; sections never saved simply contribute nothing.
func (s *Service) Summarize(ctx context.Context, id uuid.UUID) (*Summary, error) {
	snap, err := s.gateway.SnapshotOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("assessment %s: %w", id, err)
	}

	sum := &Summary{
		AssessmentID:   snap.Assessment.ID,
		Status:         snap.Assessment.Status,
		AssessmentDate: snap.Assessment.AssessmentDate,
		GeneratedAt:    time.Now().UTC(),
		ServiceUser:    snap.ServiceUser(),
	}

	basic := snap.Sections[schema.BasicDetails]
	sum.AccessToAccommodation = basic["access_to_accommodation"]
	sum.KeySafe = basic["key_safe"]
	sum.WhoOpensTheDoor = basic["who_opens_the_door"]
	sum.LifelineInPlace = basic["lifeline_in_place"]
	sum.CommunicationNeeds = basic["communication_needs"]

	health := snap.Sections[schema.HealthWellbeing]
	sum.PrimaryDiagnosis = health["primary_diagnosis"]
	sum.OtherHealthConditions = health["other_health_conditions"]
	sum.Allergies = health["allergies"]
	sum.Medication = health["medication"]

	daily := snap.Sections[schema.DailyLiving]
	sum.Mobility = daily["mobility"]
	sum.Transfers = daily["transfers"]
	sum.Continence = daily["continence"]
	sum.PersonalCare = daily["personal_care"]

	risks := snap.Sections[schema.RisksSafeguarding]
	for _, rf := range riskFields {
		if risks[rf.field] == "yes" {
			sum.Risks = append(sum.Risks, RiskFlag{Name: rf.label, Notes: risks[rf.notes]})
		}
	}
	sum.MentalCapacityDoLS = risks["mental_capacity_dols"]
	if risks["personal_evacuation_plan"] == "yes" {
		sum.PersonalEvacuationPlan = risks["personal_evacuation_plan_notes"]
		if sum.PersonalEvacuationPlan == "" {
			sum.PersonalEvacuationPlan = "yes"
		}
	}

	prefs := snap.Sections[schema.AdvancePreferences]
	sum.DNACPRInPlace = prefs["dnacpr_in_place"]
	sum.RespectFormInPlace = prefs["respect_form_in_place"]
	sum.PowerOfAttorney = prefs["power_of_attorney"]

	for _, domain := range careplan.Domains() {
		entries, err := s.entries.ListByAssessment(ctx, id, domain)
		if err != nil {
			return nil, fmt.Errorf("care plan %s entries: %w", domain, err)
		}
		if len(entries) == 0 {
			continue
		}
		sum.CarePlan = append(sum.CarePlan, PlanSection{
			Domain:  domain,
			Title:   domain.Title(),
			Entries: entries,
		})
	}

	attach := snap.Sections[schema.OptionalAttachments]
	for _, al := range attachmentLabels {
		if attach[al.field] == "true" {
			sum.Attachments = append(sum.Attachments, al.label)
		}
	}

	sigs := snap.Sections[schema.Signatures]
	sum.AssessorName = sigs["assessor_name"]
	sum.AssessorDate = sigs["assessor_date"]

	return sum, nil
}
