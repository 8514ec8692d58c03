package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJoinList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"simple", []string{"grass", "poison"}, "grass,poison"},
		{"trims and drops blanks", []string{" fire ", "", "  "}, "fire"},
		{"empty", []string{}, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinList(tt.in); got != tt.want {
				t.Errorf("JoinList(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "grass,poison", []string{"grass", "poison"}},
		{"spaces and blanks", " fire , ,water,", []string{"fire", "water"}},
		{"empty string", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.in)
			if got == nil {
				t.Fatal("SplitList() returned nil, want a non-nil slice")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestRoundTripPreservesEntries(t *testing.T) {
	in := []string{"voltlion", "glimmerpuff"}
	if diff := cmp.Diff(in, SplitList(JoinList(in))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestIsValidType(t *testing.T) {
	if !IsValidType("electric") {
		t.Error(`IsValidType("electric") = false, want true`)
	}
	if IsValidType("Electric") {
		t.Error(`IsValidType("Electric") = true, want false: callers lowercase first`)
	}
	if IsValidType("plasma") {
		t.Error(`IsValidType("plasma") = true, want false`)
	}
}
