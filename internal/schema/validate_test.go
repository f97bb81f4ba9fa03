package schema

import (
	"testing"
	"time"
)

func TestValidateNHSNumber(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"4856291939", true},
		{"485 629 1939", true},
		{"9434765919", true},
		{"4856291934", false},
		{"9434765918", false},
		{"485629193", false},
		{"48562919390", false},
		{"485629193a", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateNHSNumber(tc.value); got != tc.want {
			t.Errorf("ValidateNHSNumber(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidateNHSNumber_RemainderOne(t *testing.T) {
	// The 9-digit prefix 485629198 has a weighted sum of 298, remainder 1:
	// no check digit can make it valid.
	for d := byte('0'); d <= '9'; d++ {
		value := "485629198" + string(d)
		if ValidateNHSNumber(value) {
			t.Errorf("ValidateNHSNumber(%q) = true, want false (remainder 1)", value)
		}
	}
}

func TestValidateUKPostcode(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"SW1A 1AA", true},
		{"sw1a1aa", true},
		{"LN1 2AB", true},
		{"12345", false},
		{"SW1A 1A", false},
		{"", true},
	}
	for _, tc := range cases {
		if got := ValidateUKPostcode(tc.value); got != tc.want {
			t.Errorf("ValidateUKPostcode(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidatePastDate(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	if !ValidatePastDate(yesterday) {
		t.Errorf("yesterday (%s) should validate", yesterday)
	}
	if !ValidatePastDate(time.Now().Format("2006-01-02")) {
		t.Error("today should validate (end-of-day granularity)")
	}
	if ValidatePastDate(tomorrow) {
		t.Errorf("tomorrow (%s) should not validate", tomorrow)
	}
	if ValidatePastDate("not-a-date") {
		t.Error("unparseable input should not validate")
	}
	if ValidatePastDate("") {
		t.Error("empty input should not validate")
	}
}

func TestValidateUKPhone(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"01234000000", true},
		{"01234 000 000", true},
		{"+441234000000", true},
		{"00234000000", false},
		{"12345", false},
	}
	for _, tc := range cases {
		if got := ValidateUKPhone(tc.value); got != tc.want {
			t.Errorf("ValidateUKPhone(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	errs := Validate(PersonalDetails, map[string]string{})
	if len(errs) != 8 {
		t.Fatalf("expected 8 required-field errors, got %d: %v", len(errs), errs)
	}
}

func TestValidate_OptionalSectionEmptyIsValid(t *testing.T) {
	for _, key := range []SectionKey{BasicDetails, HealthWellbeing, SocialEmotional, Signatures} {
		if errs := Validate(key, map[string]string{}); len(errs) != 0 {
			t.Errorf("section %s: expected no errors on empty data, got %v", key, errs)
		}
	}
}

func TestValidatePartial_SkipsRequired(t *testing.T) {
	errs := ValidatePartial(PersonalDetails, map[string]string{"preferred_name": "Maggie"})
	if len(errs) != 0 {
		t.Fatalf("partial save should not demand required fields, got %v", errs)
	}
	errs = ValidatePartial(PersonalDetails, map[string]string{"nhs_number": "4856291934"})
	if len(errs) != 1 {
		t.Fatalf("malformed value should still fail a partial save, got %v", errs)
	}
}

func TestValidate_EnumMembership(t *testing.T) {
	errs := Validate(DailyLiving, map[string]string{"mobility": "flying"})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs := Validate(DailyLiving, map[string]string{"mobility": "hoist"}); len(errs) != 0 {
		t.Errorf("valid enum value rejected: %v", errs)
	}
}

func TestValidate_UnknownField(t *testing.T) {
	errs := Validate(HealthWellbeing, map[string]string{"shoe_size": "9"})
	if len(errs) != 1 || errs[0].Field != "shoe_size" {
		t.Fatalf("expected unknown-field error, got %v", errs)
	}
}

func TestValidate_UnknownSection(t *testing.T) {
	if errs := Validate(SectionKey("bogus"), nil); len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}

func TestFilterEmpty(t *testing.T) {
	in := map[string]string{
		"a": "value",
		"b": "",
		"c": "false",
		"d": "true",
	}
	out := FilterEmpty(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 surviving values, got %v", out)
	}
	if out["a"] != "value" || out["d"] != "true" {
		t.Errorf("unexpected filter result: %v", out)
	}
}

func TestSectionRegistry(t *testing.T) {
	if got := len(Keys()); got != 11 {
		t.Fatalf("expected 11 section keys, got %d", got)
	}
	for n := 1; n <= TotalSections; n++ {
		if _, ok := SectionByNumber(n); !ok {
			t.Errorf("no section registered for number %d", n)
		}
	}
	s, ok := SectionByKey(OptionalAttachments)
	if !ok {
		t.Fatal("optionalAttachments not registered")
	}
	if s.Number != 0 {
		t.Errorf("optionalAttachments should carry no section number, got %d", s.Number)
	}
	if s.Table != "optional_attachments" {
		t.Errorf("unexpected table %q", s.Table)
	}
}

func TestRequiredFields(t *testing.T) {
	s, _ := SectionByKey(PersonalDetails)
	if got := len(s.RequiredFields()); got != 8 {
		t.Errorf("personalDetails should have 8 required fields, got %d", got)
	}
	s, _ = SectionByKey(OptionalAreas)
	if got := len(s.RequiredFields()); got != 0 {
		t.Errorf("optionalAreas should have no required fields, got %d", got)
	}
}
