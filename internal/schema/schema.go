// Package schema declares the sections and fields of the Universal Care
// Needs Assessment form, together with their validation rules. It is pure
// data plus predicates; persistence and navigation build on it.
package schema

// SectionKey identifies one topical grouping of assessment fields.
type SectionKey string

const (
	PersonalDetails     SectionKey = "personalDetails"
	BasicDetails        SectionKey = "basicDetails"
	HealthWellbeing     SectionKey = "healthWellbeing"
	DailyLiving         SectionKey = "dailyLiving"
	RisksSafeguarding   SectionKey = "risksSafeguarding"
	SocialEmotional     SectionKey = "socialEmotional"
	EnvironmentLifestyle SectionKey = "environmentLifestyle"
	AdvancePreferences  SectionKey = "advancePreferences"
	OptionalAreas       SectionKey = "optionalAreas"
	Signatures          SectionKey = "signatures"
	OptionalAttachments SectionKey = "optionalAttachments"
)

// TotalSections is the number of numbered sections in the primary form flow.
// The optionalAttachments record is persisted alongside section 10 and does
// not count toward progress.
const TotalSections = 10

// FieldKind selects the validation predicate applied to a non-empty value.
type FieldKind int

const (
	KindText FieldKind = iota
	KindEnum
	KindBool
	KindPastDate
	KindNHSNumber
	KindPostcode
	KindPhone
)

// Field describes one column of a section record.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
	Enum     []string
}

// Section describes one section of the assessment: its key, its 1-based
// position in the form flow (0 for optionalAttachments), the backing table,
// and its field list in form order.
type Section struct {
	Key    SectionKey
	Number int
	Table  string
	Title  string
	Fields []Field
}

var yesNo = []string{"yes", "no"}

var sections = []Section{
	{
		Key:    PersonalDetails,
		Number: 1,
		Table:  "service_users",
		Title:  "Personal Details",
		Fields: []Field{
			{Name: "full_name", Kind: KindText, Required: true},
			{Name: "date_of_birth", Kind: KindPastDate, Required: true},
			{Name: "nhs_number", Kind: KindNHSNumber, Required: true},
			{Name: "local_authority_number", Kind: KindText},
			{Name: "preferred_name", Kind: KindText},
			{Name: "address_line", Kind: KindText, Required: true},
			{Name: "postcode", Kind: KindPostcode},
			{Name: "phone_number", Kind: KindPhone, Required: true},
			{Name: "gp_name", Kind: KindText},
			{Name: "gp_contact", Kind: KindText},
			{Name: "emergency_contact_name", Kind: KindText, Required: true},
			{Name: "emergency_contact_number", Kind: KindPhone, Required: true},
			{Name: "relationship_to_service_user", Kind: KindText, Required: true},
		},
	},
	{
		Key:    BasicDetails,
		Number: 2,
		Table:  "basic_details",
		Title:  "Basic Details",
		Fields: []Field{
			{Name: "communication_needs", Kind: KindText},
			{Name: "communication_aids", Kind: KindText},
			{Name: "language_spoken", Kind: KindText},
			{Name: "religion_beliefs", Kind: KindText},
			{Name: "ethnicity", Kind: KindText},
			{Name: "cultural_preferences", Kind: KindText},
			{Name: "consent_for_sharing_info", Kind: KindEnum, Enum: yesNo},
			{Name: "capacity_for_care_decisions", Kind: KindEnum, Enum: []string{"yes", "no", "requires_assessment"}},
			{Name: "access_to_accommodation", Kind: KindText},
			{Name: "key_safe", Kind: KindEnum, Enum: yesNo},
			{Name: "who_opens_the_door", Kind: KindText},
			{Name: "lifeline_in_place", Kind: KindEnum, Enum: yesNo},
		},
	},
	{
		Key:    HealthWellbeing,
		Number: 3,
		Table:  "health_wellbeing",
		Title:  "Health & Wellbeing",
		Fields: []Field{
			{Name: "primary_diagnosis", Kind: KindText},
			{Name: "other_health_conditions", Kind: KindText},
			{Name: "allergies", Kind: KindText},
			{Name: "medication", Kind: KindText},
			{Name: "gp_involvement", Kind: KindText},
			{Name: "specialist_support", Kind: KindText},
			{Name: "mental_health_concerns", Kind: KindText},
			{Name: "cognition", Kind: KindText},
		},
	},
	{
		Key:    DailyLiving,
		Number: 4,
		Table:  "daily_living",
		Title:  "Daily Living",
		Fields: []Field{
			{Name: "mobility", Kind: KindEnum, Enum: []string{"independent", "aided", "hoist"}},
			{Name: "mobility_notes", Kind: KindText},
			{Name: "transfers", Kind: KindText},
			{Name: "transfers_notes", Kind: KindText},
			{Name: "falls_risk", Kind: KindEnum, Enum: yesNo},
			{Name: "falls_risk_notes", Kind: KindText},
			{Name: "eating_drinking", Kind: KindText},
			{Name: "eating_drinking_notes", Kind: KindText},
			{Name: "personal_care", Kind: KindEnum, Enum: []string{"independent", "partial_support", "full_support"}},
			{Name: "personal_care_notes", Kind: KindText},
			{Name: "continence", Kind: KindEnum, Enum: []string{"pads", "toilet", "catheter", "incontinent"}},
			{Name: "continence_notes", Kind: KindText},
			{Name: "sleep_pattern", Kind: KindEnum, Enum: []string{"normal", "disturbed", "needs_checks"}},
			{Name: "sleep_pattern_notes", Kind: KindText},
			{Name: "communication_mode", Kind: KindEnum, Enum: []string{"verbal", "non_verbal", "hearing_aids"}},
			{Name: "communication_notes", Kind: KindText},
		},
	},
	{
		Key:    RisksSafeguarding,
		Number: 5,
		Table:  "risks_safeguarding",
		Title:  "Risks & Safeguarding",
		Fields: []Field{
			{Name: "risk_of_falls", Kind: KindEnum, Enum: yesNo},
			{Name: "risk_of_falls_notes", Kind: KindText},
			{Name: "choking_risk", Kind: KindEnum, Enum: yesNo},
			{Name: "choking_risk_notes", Kind: KindText},
			{Name: "pressure_sores_skin", Kind: KindEnum, Enum: yesNo},
			{Name: "pressure_sores_skin_notes", Kind: KindText},
			{Name: "self_neglect", Kind: KindEnum, Enum: yesNo},
			{Name: "self_neglect_notes", Kind: KindText},
			{Name: "medication_risk_assessment", Kind: KindText},
			{Name: "safeguarding_concerns", Kind: KindEnum, Enum: yesNo},
			{Name: "safeguarding_concerns_notes", Kind: KindText},
			{Name: "mental_capacity_dols", Kind: KindText},
			{Name: "personal_evacuation_plan", Kind: KindEnum, Enum: yesNo},
			{Name: "personal_evacuation_plan_notes", Kind: KindText},
		},
	},
	{
		Key:    SocialEmotional,
		Number: 6,
		Table:  "social_emotional",
		Title:  "Social & Emotional Wellbeing",
		Fields: []Field{
			{Name: "family_involvement_notes", Kind: KindText},
			{Name: "hobbies_interests_notes", Kind: KindText},
			{Name: "routine_preferences_notes", Kind: KindText},
			{Name: "spiritual_religious_support_notes", Kind: KindText},
			{Name: "emotional_mental_health_support_needs_notes", Kind: KindText},
		},
	},
	{
		Key:    EnvironmentLifestyle,
		Number: 7,
		Table:  "environment_lifestyle",
		Title:  "Environment & Lifestyle",
		Fields: []Field{
			{Name: "living_arrangements_notes", Kind: KindText},
			{Name: "pets_notes", Kind: KindText},
			{Name: "smoking_alcohol_notes", Kind: KindText},
			{Name: "community_access_notes", Kind: KindText},
			{Name: "transport_needs_notes", Kind: KindText},
			{Name: "hoarding_clutter_notes", Kind: KindText},
		},
	},
	{
		Key:    AdvancePreferences,
		Number: 8,
		Table:  "advance_preferences",
		Title:  "Advance Preferences",
		Fields: []Field{
			{Name: "dnacpr_in_place", Kind: KindEnum, Enum: yesNo},
			{Name: "dnacpr_in_place_notes", Kind: KindText},
			{Name: "respect_form_in_place", Kind: KindEnum, Enum: yesNo},
			{Name: "respect_form_in_place_notes", Kind: KindText},
			{Name: "advance_care_plan_wishes", Kind: KindText},
			{Name: "advance_care_plan_wishes_notes", Kind: KindText},
			{Name: "power_of_attorney", Kind: KindText},
			{Name: "power_of_attorney_notes", Kind: KindText},
		},
	},
	{
		Key:    OptionalAreas,
		Number: 9,
		Table:  "optional_areas",
		Title:  "Optional Areas",
		Fields: []Field{
			{Name: "financial_management_needs", Kind: KindText},
			{Name: "equality_diversity_inclusion_edi_considerations", Kind: KindText},
			{Name: "assistive_technology_equipment", Kind: KindText},
			{Name: "legal_orders_or_restrictions", Kind: KindText},
			{Name: "sexuality_and_relationships", Kind: KindText},
			{Name: "access_to_advocacy_services", Kind: KindText},
		},
	},
	{
		Key:    Signatures,
		Number: 10,
		Table:  "signatures",
		Title:  "Signatures",
		Fields: []Field{
			{Name: "assessor_name", Kind: KindText},
			{Name: "assessor_signature", Kind: KindText},
			{Name: "assessor_date", Kind: KindText},
			{Name: "individual_representative_name", Kind: KindText},
			{Name: "individual_representative_signature", Kind: KindText},
			{Name: "individual_representative_date", Kind: KindText},
		},
	},
	{
		Key:   OptionalAttachments,
		Table: "optional_attachments",
		Title: "Optional Attachments",
		Fields: []Field{
			{Name: "risk_assessments", Kind: KindBool},
			{Name: "dnacpr", Kind: KindBool},
			{Name: "respect_form", Kind: KindBool},
			{Name: "medication_list", Kind: KindBool},
			{Name: "poa_documentation", Kind: KindBool},
			{Name: "peep_evacuation_plan", Kind: KindBool},
			{Name: "communication_passport", Kind: KindBool},
		},
	},
}

var (
	byKey    = map[SectionKey]*Section{}
	byNumber = map[int]*Section{}
)

func init() {
	for i := range sections {
		s := &sections[i]
		byKey[s.Key] = s
		if s.Number > 0 {
			byNumber[s.Number] = s
		}
	}
}

// Keys returns all section keys in form order, including optionalAttachments.
func Keys() []SectionKey {
	out := make([]SectionKey, len(sections))
	for i, s := range sections {
		out[i] = s.Key
	}
	return out
}

// SectionByKey looks a section up by its key.
func SectionByKey(key SectionKey) (*Section, bool) {
	s, ok := byKey[key]
	return s, ok
}

// SectionByNumber looks a numbered section (1..TotalSections) up.
func SectionByNumber(n int) (*Section, bool) {
	s, ok := byNumber[n]
	return s, ok
}

// FieldNames returns the section's column names in declaration order.
func (s *Section) FieldNames() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// FieldByName looks a field up within the section.
func (s *Section) FieldByName(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// RequiredFields returns the fields that must be present before the form can
// advance past this section.
func (s *Section) RequiredFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}
