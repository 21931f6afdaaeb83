package lef

import "testing"

func TestOrientString(t *testing.T) {
	tests := []struct {
		o    Orient
		want string
	}{
		{OrientN, "N"},
		{OrientW, "W"},
		{OrientS, "S"},
		{OrientE, "E"},
		{OrientFN, "FN"},
		{OrientFW, "FW"},
		{OrientFS, "FS"},
		{OrientFE, "FE"},
		{OrientNone, ""},
		{Orient(8), ""},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Orient(%d).String() = %q, want %q", int(tt.o), got, tt.want)
		}
	}
}

func TestParseOrient(t *testing.T) {
	tests := []struct {
		in      string
		want    Orient
		wantErr bool
	}{
		{"N", OrientN, false},
		{"fs", OrientFS, false},
		{"R90", OrientW, false},
		{"MX", OrientFS, false},
		{"MYR90", OrientFE, false},
		{"Q", OrientNone, true},
		{"", OrientNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrient(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrient(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOrient(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	for o := OrientN; o <= OrientFE; o++ {
		back, err := ParseOrient(o.String())
		if err != nil || back != o {
			t.Errorf("ParseOrient(%q) = %v, %v", o.String(), back, err)
		}
	}
}

func TestNameCase(t *testing.T) {
	var nilCase *NameCase
	if got := nilCase.Apply("abc"); got != "abc" {
		t.Errorf("nil NameCase changed name to %q", got)
	}
	if got := NewNameCase(true).Apply("Metal1"); got != "Metal1" {
		t.Errorf("sensitive NameCase changed name to %q", got)
	}
	if got := NewNameCase(false).Apply("Metal1_a"); got != "METAL1_A" {
		t.Errorf("insensitive NameCase = %q, want METAL1_A", got)
	}
}
