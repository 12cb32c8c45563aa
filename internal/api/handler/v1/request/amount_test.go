package request

import (
	"testing"
)

func TestParsePositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "1000", "1000", false},
		{"wei scale", "1000000000000000000", "1000000000000000000", false},
		{"zero", "0", "", true},
		{"empty", "", "", true},
		{"negative", "-5", "", true},
		{"hex", "0x10", "", true},
		{"decimal point", "1.5", "", true},
		{"whitespace", " 10", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePositiveAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePositiveAmount(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("ParsePositiveAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMinAmount(t *testing.T) {
	got, err := ParseMinAmount("")
	if err != nil {
		t.Fatalf("ParseMinAmount(\"\") err = %v", err)
	}
	if got.Sign() != 0 {
		t.Errorf("ParseMinAmount(\"\") = %v, want 0", got)
	}

	got, err = ParseMinAmount("0")
	if err != nil {
		t.Fatalf("ParseMinAmount(\"0\") err = %v", err)
	}
	if got.Sign() != 0 {
		t.Errorf("ParseMinAmount(\"0\") = %v, want 0", got)
	}

	if _, err = ParseMinAmount("abc"); err == nil {
		t.Error("ParseMinAmount(\"abc\") err = nil, want error")
	}
}
