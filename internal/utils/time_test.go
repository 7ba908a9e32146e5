package utils

import "testing"

func TestToday_FormatsAsISODate(t *testing.T) {
	today, err := Today("UTC")
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if _, err := ParseDate(today); err != nil {
		t.Errorf("Expected YYYY-MM-DD, got %q: %v", today, err)
	}
}

func TestToday_RejectsBogusTimezone(t *testing.T) {
	if _, err := Today("Not/AZone"); err == nil {
		t.Error("Expected error for bogus timezone")
	}
}

func TestParseTime(t *testing.T) {
	parsed, err := ParseTime("19:00")
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}
	if parsed.Hour() != 19 || parsed.Minute() != 0 {
		t.Errorf("Expected 19:00, got %v", parsed)
	}

	if _, err := ParseTime("7pm"); err == nil {
		t.Error("Expected error for non HH:MM input")
	}
}

func TestLoadLocation_LocalDefault(t *testing.T) {
	loc, err := LoadLocation("")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	if loc == nil {
		t.Error("Expected a location for the empty timezone")
	}
}
