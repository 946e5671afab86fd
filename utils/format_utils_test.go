package utils

import "testing"

func TestFormatSignedPct(t *testing.T) {
	up := 40.0
	if got := FormatSignedPct(&up); got != "+40.0%" {
		t.Fatalf("expected +40.0%%, got %s", got)
	}
	down := -12.5
	if got := FormatSignedPct(&down); got != "-12.5%" {
		t.Fatalf("expected -12.5%%, got %s", got)
	}
	if got := FormatSignedPct(nil); got != "--" {
		t.Fatalf("expected placeholder, got %s", got)
	}
}

func TestValidISODate(t *testing.T) {
	if !ValidISODate("2026-10-24") {
		t.Fatal("expected 2026-10-24 to be valid")
	}
	if ValidISODate("24-10-2026") || ValidISODate("2026-13-01") || ValidISODate("soon") {
		t.Fatal("expected invalid dates to be rejected")
	}
}
