package metro

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

func TestParseTransferInfo(t *testing.T) {
	tests := []struct {
		name        string
		indicator   string
		lines       string
		direction   string
		wantNil     bool
		wantLines   LineSet
		wantTermini []string
	}{
		{name: "absent", wantNil: true},
		{name: "indicator only", indicator: "Metro Center"},
		{
			name:      "direction absent",
			indicator: "Metro Center", lines: "[RD]",
			wantLines: NewLineSet(Red),
		},
		{
			name:      "both",
			indicator: "Metro Center", lines: "[BL, SV, OR]", direction: "both",
			wantLines: NewLineSet(Blue, Silver, Orange),
		},
		{
			name:      "quoted terminus",
			indicator: "L'Enfant Plaza", lines: "['GR', 'YL']", direction: "['Greenbelt']",
			wantLines: NewLineSet(Green, Yellow), wantTermini: []string{"Greenbelt"},
		},
		{
			name:      "terminus names",
			indicator: "Gallery Place", lines: "[RD]", direction: "[Shady Grove, Glenmont]",
			wantLines: NewLineSet(Red), wantTermini: []string{"Shady Grove", "Glenmont"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransferInfo(tt.indicator, tt.lines, tt.direction)
			if err != nil {
				t.Fatalf("ParseTransferInfo: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("got %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("got nil")
			}
			if got.Station != tt.indicator {
				t.Errorf("Station = %q, want %q", got.Station, tt.indicator)
			}
			if got.Lines != tt.wantLines {
				t.Errorf("Lines = %v, want %v", got.Lines, tt.wantLines)
			}
			if diff := pretty.Diff(got.Termini, tt.wantTermini); len(diff) > 0 {
				t.Errorf("Termini diff: %v", diff)
			}
		})
	}
}

func TestParseTransferInfo_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		lines     string
		direction string
	}{
		{"no brackets", "RD, GR", ""},
		{"empty list", "[]", ""},
		{"empty item", "[RD,,GR]", ""},
		{"unknown line", "[PK]", ""},
		{"empty direction list", "[RD]", "[]"},
		{"unbracketed direction", "[RD]", "eastbound"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransferInfo("Metro Center", tt.lines, tt.direction)
			if !errors.Is(err, ErrMalformedTransfer) {
				t.Errorf("err = %v, want ErrMalformedTransfer", err)
			}
		})
	}
}

func TestTransferInfo_Matches(t *testing.T) {
	var none *TransferInfo
	if none.Matches(Red, "Glenmont") {
		t.Error("nil TransferInfo should never match")
	}

	indicatorOnly := &TransferInfo{Station: "Metro Center"}
	if indicatorOnly.Matches(Red, "Glenmont") {
		t.Error("indicator without lines should not match")
	}

	tests := []struct {
		name      string
		lines     string
		direction string
		line      LineCode
		terminus  string
		want      bool
	}{
		{"listed line and terminus", "[BL, OR]", "[Franconia-Springfield]", Blue, "Franconia-Springfield", true},
		{"other line same way", "[BL, OR]", "[Franconia-Springfield]", Orange, "Vienna", false},
		{"listed terminus of other line", "[BL, SV, OR]", "[Downtown Largo]", Orange, "New Carrollton", false},
		{"shared terminus", "[BL, SV, OR]", "[Downtown Largo]", Silver, "Downtown Largo", true},
		{"opposite terminus", "[RD]", "[Glenmont]", Red, "Shady Grove", false},
		{"both", "[RD]", "both", Red, "Shady Grove", true},
		{"no direction recorded", "[RD]", "", Red, "Glenmont", true},
		{"unlisted line", "[RD]", "both", Blue, "Downtown Largo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseTransferInfo("Station", tt.lines, tt.direction)
			if err != nil {
				t.Fatalf("ParseTransferInfo: %v", err)
			}
			if got := info.Matches(tt.line, tt.terminus); got != tt.want {
				t.Errorf("Matches(%s, %q) = %v, want %v", tt.line, tt.terminus, got, tt.want)
			}
		})
	}
}
