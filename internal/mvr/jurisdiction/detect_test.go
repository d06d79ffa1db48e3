package jurisdiction

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "arizona by full name",
			text: "STATE OF ARIZONA\nDRIVER LICENSE MOTOR VEHICLE RECORD",
			want: "ARIZONA",
		},
		{
			name: "california dmv heading",
			text: "California DMV\nDriver Record Report",
			want: "CALIFORNIA",
		},
		{
			name: "wisconsin columnar report",
			text: "Wisconsin Department of Transportation\nVIOL\n01/02/2023",
			want: "WISCONSIN",
		},
		{
			name: "texas beats embedded tx code",
			text: "State of Texas driving record",
			want: "TEXAS",
		},
		{
			name: "florida",
			text: "FLORIDA DEPARTMENT OF HIGHWAY SAFETY",
			want: "FLORIDA",
		},
		{
			name: "new york by code",
			text: "NY Department of Motor Vehicles abstract",
			want: "NEW_YORK",
		},
		{
			name: "ohio state of phrasing",
			text: "state of oh record",
			want: "OHIO",
		},
		{
			name: "no state mentioned",
			text: "Driver Record\nName Searched JOHN DOE\nStatus: VALID",
			want: GenericID,
		},
		{
			name: "empty input",
			text: "",
			want: GenericID,
		},
		{
			name: "priority state wins over earlier abbreviation",
			text: "Mailing address includes CO 80014\nState of California record",
			want: "CALIFORNIA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.text)
			if got.ID != tt.want {
				t.Errorf("Detect() = %s, want %s", got.ID, tt.want)
			}
		})
	}
}

func TestDetect_NeverNil(t *testing.T) {
	for _, text := range []string{"", "\n\n", "garbage 12345"} {
		if got := Detect(text); got == nil {
			t.Fatalf("Detect(%q) returned nil profile", text)
		}
	}
}

func TestByID(t *testing.T) {
	if p := ByID("WISCONSIN"); !p.Columnar() {
		t.Error("Wisconsin profile should be columnar")
	}
	if p := ByID("CALIFORNIA"); p.Format != FormatDelimitedTable {
		t.Error("California profile should use the delimited table format")
	}
	if p := ByID("NO_SUCH_STATE"); p.ID != GenericID {
		t.Errorf("unknown ID should fall back to generic, got %s", p.ID)
	}
}
