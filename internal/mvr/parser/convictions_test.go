package parser

import (
	"testing"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/jurisdiction"
)

func TestScanConvictions(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		profile *jurisdiction.Profile
		want    []string
	}{
		{
			name:    "generic dui term",
			text:    "Convicted of DUI on 01/15/2022",
			profile: jurisdiction.Generic,
			want:    []string{"DUI"},
		},
		{
			name:    "phrase match case insensitive",
			text:    "charge: Reckless Driving, dismissed",
			profile: jurisdiction.Generic,
			want:    []string{"reckless driving"},
		},
		{
			name:    "california statute code",
			text:    "VC 23152A CONVICTION 03/02/2021",
			profile: jurisdiction.ByID("CALIFORNIA"),
			want:    []string{"23152A"},
		},
		{
			name:    "statute code not matched inside longer number",
			text:    "case number 380244219",
			profile: jurisdiction.ByID("PENNSYLVANIA"),
			want:    nil,
		},
		{
			name:    "pennsylvania bare statute",
			text:    "cited under 3802 subsection a",
			profile: jurisdiction.ByID("PENNSYLVANIA"),
			want:    []string{"3802"},
		},
		{
			name:    "dui substring inside word ignored",
			text:    "scheduled for reduidation hearing", // fabricated word containing "dui"
			profile: jurisdiction.Generic,
			want:    nil,
		},
		{
			name:    "scan order preserved over text order",
			text:    "hit and run after DWI arrest",
			profile: jurisdiction.Generic,
			want:    []string{"DWI", "hit and run"},
		},
		{
			name:    "clean text",
			text:    "no convictions on record",
			profile: jurisdiction.Generic,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanConvictions(tt.text, tt.profile)
			if len(got) != len(tt.want) {
				t.Fatalf("ScanConvictions() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ScanConvictions()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
