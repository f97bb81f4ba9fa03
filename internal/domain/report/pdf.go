package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF lays the summary out as an A4 handover document. Long values
// wrap; the page breaks automatically when a section runs past the bottom
// margin.
func RenderPDF(sum *Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle("Critical Information Summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Critical Information Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, fmt.Sprintf("Assessment %s  |  %s  |  generated %s",
		sum.AssessmentID, sum.Status, sum.GeneratedAt.Format("02 Jan 2006 15:04")),
		"", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if su := sum.ServiceUser; su != nil {
		heading(pdf, "Service User")
		row(pdf, "Name", su.FullName)
		row(pdf, "Preferred name", su.PreferredName)
		row(pdf, "Date of birth", su.DateOfBirth)
		row(pdf, "NHS number", su.NHSNumber)
		row(pdf, "Address", strings.TrimSpace(su.AddressLine+" "+su.Postcode))
		row(pdf, "Phone", su.PhoneNumber)
		row(pdf, "GP", strings.TrimSpace(su.GPName+" "+su.GPContact))
		row(pdf, "Emergency contact", strings.TrimSpace(su.EmergencyContactName+" "+su.EmergencyContactPhone))
	}

	heading(pdf, "Access & Communication")
	row(pdf, "Access to accommodation", sum.AccessToAccommodation)
	row(pdf, "Key safe", sum.KeySafe)
	row(pdf, "Who opens the door", sum.WhoOpensTheDoor)
	row(pdf, "Lifeline in place", sum.LifelineInPlace)
	row(pdf, "Communication needs", sum.CommunicationNeeds)

	heading(pdf, "Health")
	row(pdf, "Primary diagnosis", sum.PrimaryDiagnosis)
	row(pdf, "Other conditions", sum.OtherHealthConditions)
	row(pdf, "Allergies", sum.Allergies)
	row(pdf, "Medication", sum.Medication)

	heading(pdf, "Daily Living")
	row(pdf, "Mobility", sum.Mobility)
	row(pdf, "Transfers", sum.Transfers)
	row(pdf, "Continence", sum.Continence)
	row(pdf, "Personal care", sum.PersonalCare)

	heading(pdf, "Risks & Safeguarding")
	if len(sum.Risks) == 0 {
		row(pdf, "Flagged risks", "none recorded")
	}
	for _, r := range sum.Risks {
		row(pdf, r.Name, orDash(r.Notes))
	}
	row(pdf, "Mental capacity / DoLS", sum.MentalCapacityDoLS)
	row(pdf, "Evacuation plan", sum.PersonalEvacuationPlan)

	heading(pdf, "Advance Preferences")
	row(pdf, "DNACPR in place", sum.DNACPRInPlace)
	row(pdf, "ReSPECT form in place", sum.RespectFormInPlace)
	row(pdf, "Power of attorney", sum.PowerOfAttorney)

	for _, ps := range sum.CarePlan {
		heading(pdf, "Care Plan: "+ps.Title)
		for i, e := range ps.Entries {
			if i > 0 {
				pdf.Ln(2)
			}
			row(pdf, "Description", e.Description)
			row(pdf, "Identified need", e.IdentifiedNeed)
			row(pdf, "Planned outcomes", e.PlannedOutcomes)
			row(pdf, "How to achieve", e.HowToAchieve)
			row(pdf, "Level of need", string(e.LevelOfNeed))
			if e.ReviewDate != nil {
				row(pdf, "Review date", e.ReviewDate.Format("02 Jan 2006"))
			}
		}
	}

	if len(sum.Attachments) > 0 {
		heading(pdf, "Attachments on File")
		for _, a := range sum.Attachments {
			row(pdf, "", a)
		}
	}

	if sum.AssessorName != "" || sum.AssessorDate != "" {
		heading(pdf, "Assessor")
		row(pdf, "Name", sum.AssessorName)
		row(pdf, "Date", sum.AssessorDate)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering summary PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(0, 7, text, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

// row prints one label/value line, skipping values never recorded.
func row(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(50, 5, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, value, "", "L", false)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
