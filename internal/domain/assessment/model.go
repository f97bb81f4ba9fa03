package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/ucna/ucna/internal/schema"
)

// Status is the lifecycle state of an assessment. Transitions only move
// forward: once a record is in review it cannot drop back to draft, and a
// locked record never changes again.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusInReview  Status = "in_review"
	StatusCompleted Status = "completed"
	StatusLocked    Status = "locked"
)

var statusRank = map[Status]int{
	StatusDraft:     0,
	StatusInReview:  1,
	StatusCompleted: 2,
	StatusLocked:    3,
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from s to target is allowed. Staying
// on the same status is permitted so that repeated submissions are harmless;
// skipping forward (draft straight to completed) is permitted too.
func (s Status) CanTransition(target Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	return to >= from
}

// Assessment is the root record one form session hangs off. Section data
// lives in per-section tables keyed by AssessmentID.
type Assessment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Status         Status    `db:"status" json:"status"`
	AssessorName   string    `db:"assessor_name" json:"assessor_name"`
	AssessmentDate time.Time `db:"assessment_date" json:"assessment_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ServiceUser is a typed view over the personal-details section record. The
// summary and care-plan layers read identity fields through it rather than
// poking at raw column maps.
type ServiceUser struct {
	FullName              string `json:"full_name"`
	PreferredName         string `json:"preferred_name,omitempty"`
	DateOfBirth           string `json:"date_of_birth"`
	NHSNumber             string `json:"nhs_number"`
	LocalAuthorityNumber  string `json:"local_authority_number,omitempty"`
	AddressLine           string `json:"address_line"`
	Postcode              string `json:"postcode,omitempty"`
	PhoneNumber           string `json:"phone_number"`
	GPName                string `json:"gp_name,omitempty"`
	GPContact             string `json:"gp_contact,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_number"`
	Relationship          string `json:"relationship_to_service_user"`
}

// ServiceUserFromRecord builds a ServiceUser from a personal-details column
// map as returned by the section repository.
func ServiceUserFromRecord(rec map[string]string) *ServiceUser {
	if rec == nil {
		return nil
	}
	return &ServiceUser{
		FullName:              rec["full_name"],
		PreferredName:         rec["preferred_name"],
		DateOfBirth:           rec["date_of_birth"],
		NHSNumber:             rec["nhs_number"],
		LocalAuthorityNumber:  rec["local_authority_number"],
		AddressLine:           rec["address_line"],
		Postcode:              rec["postcode"],
		PhoneNumber:           rec["phone_number"],
		GPName:                rec["gp_name"],
		GPContact:             rec["gp_contact"],
		EmergencyContactName:  rec["emergency_contact_name"],
		EmergencyContactPhone: rec["emergency_contact_number"],
		Relationship:          rec["relationship_to_service_user"],
	}
}

// Snapshot is an assessment with every persisted section record attached.
type Snapshot struct {
	Assessment *Assessment                          `json:"assessment"`
	Sections   map[schema.SectionKey]map[string]string `json:"sections"`
}

// ServiceUser returns the typed personal-details view, or nil when section 1
// has never been saved.
func (s *Snapshot) ServiceUser() *ServiceUser {
	rec, ok := s.Sections[schema.PersonalDetails]
	if !ok {
		return nil
	}
	return ServiceUserFromRecord(rec)
}
