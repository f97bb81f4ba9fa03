package schema

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldError describes a single failed validation predicate.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	digitsOnly      = regexp.MustCompile(`^\d{10}$`)
	ukPostcodeRe    = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`)
	ukPhoneRe       = regexp.MustCompile(`^(\+44|0)[1-9]\d{1,4}\s?\d{3,4}\s?\d{3,4}$`)
	nhsWeights      = [9]int{10, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateNHSNumber reports whether value is a 10-digit NHS number with a
// correct Mod-11 check digit. Whitespace is stripped first. A weighted sum
// remainder of 1 has no valid check digit, so such numbers always fail.
func ValidateNHSNumber(value string) bool {
	clean := strings.ReplaceAll(value, " ", "")
	clean = strings.ReplaceAll(clean, "\t", "")
	if !digitsOnly.MatchString(clean) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(clean[i]-'0') * nhsWeights[i]
	}

	remainder := sum % 11
	if remainder == 1 {
		return false
	}
	check := 0
	if remainder != 0 {
		check = 11 - remainder
	}
	return int(clean[9]-'0') == check
}

// ValidateUKPostcode reports whether value matches a permissive UK postcode
// pattern, case-insensitively, with an optional inner space. An empty value
// is valid: the field is optional everywhere it appears.
func ValidateUKPostcode(value string) bool {
	if value == "" {
		return true
	}
	return ukPostcodeRe.MatchString(value)
}

// ValidatePastDate reports whether value parses as a date strictly before
// the end of today. Unparseable input is invalid.
func ValidatePastDate(value string) bool {
	d, err := parseDate(value)
	if err != nil {
		return false
	}
	now := time.Now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return d.Before(endOfToday)
}

// ValidateUKPhone reports whether value looks like a UK phone number
// (+44 or 0 prefix). Spaces are tolerated between groups.
func ValidateUKPhone(value string) bool {
	return ukPhoneRe.MatchString(strings.ReplaceAll(value, " ", ""))
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// Validate checks data against the named section's schema. Every field is
// validated independently; missing optional fields never produce an error.
// Unknown keys in data are rejected so that typos cannot silently drop
// columns at persistence time.
func Validate(key SectionKey, data map[string]string) []FieldError {
	section, ok := SectionByKey(key)
	if !ok {
		return []FieldError{{Field: string(key), Message: "unknown section"}}
	}

	var errs []FieldError
	for name := range data {
		if _, ok := section.FieldByName(name); !ok {
			errs = append(errs, FieldError{Field: name, Message: "unknown field"})
		}
	}

	for _, f := range section.Fields {
		value := strings.TrimSpace(data[f.Name])
		if value == "" {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: "is required"})
			}
			continue
		}
		if fe := validateValue(f, value); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// ValidatePartial is Validate without the required-field checks. It is the
// contract for incremental saves: a half-filled section may be persisted as
// long as every value it does carry is well formed.
func ValidatePartial(key SectionKey, data map[string]string) []FieldError {
	section, ok := SectionByKey(key)
	if !ok {
		return []FieldError{{Field: string(key), Message: "unknown section"}}
	}

	var errs []FieldError
	for name, raw := range data {
		f, ok := section.FieldByName(name)
		if !ok {
			errs = append(errs, FieldError{Field: name, Message: "unknown field"})
			continue
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if fe := validateValue(*f, value); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

func validateValue(f Field, value string) *FieldError {
	switch f.Kind {
	case KindEnum:
		for _, allowed := range f.Enum {
			if value == allowed {
				return nil
			}
		}
		return &FieldError{Field: f.Name, Message: fmt.Sprintf("must be one of %s", strings.Join(f.Enum, ", "))}
	case KindBool:
		if value != "true" && value != "false" {
			return &FieldError{Field: f.Name, Message: "must be true or false"}
		}
	case KindPastDate:
		if !ValidatePastDate(value) {
			return &FieldError{Field: f.Name, Message: "must be a date in the past"}
		}
	case KindNHSNumber:
		if !ValidateNHSNumber(value) {
			return &FieldError{Field: f.Name, Message: "is not a valid NHS number"}
		}
	case KindPostcode:
		if !ValidateUKPostcode(value) {
			return &FieldError{Field: f.Name, Message: "is not a valid UK postcode"}
		}
	case KindPhone:
		if !ValidateUKPhone(value) {
			return &FieldError{Field: f.Name, Message: "is not a valid UK phone number"}
		}
	}
	return nil
}

// FilterEmpty returns a copy of data with empty-string and "false" values
// removed. A record that filters down to nothing is not worth a write: the
// persistence gateway treats it as a successful no-op.
func FilterEmpty(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		if v == "" || v == "false" {
			continue
		}
		out[k] = v
	}
	return out
}
