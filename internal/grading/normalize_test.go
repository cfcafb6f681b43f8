package grading

import (
	"encoding/json"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Paris  ", "PARIS"},
		{"A) Paris", "PARIS"},
		{"a. paris", "PARIS"},
		{"B  Osmosis", "OSMOSIS"},
		{"c) Set", "SET"},
		{"A", "A"},   // bare letter is content, not a prefix
		{"X", "X"},   // outside A-D
		{"E) Paris", "E) PARIS"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{"A) Paris", "b. c) nested", "  spaced  ", "D)D) twice", "plain"}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("NormalizeText not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestOption_UnmarshalJSON(t *testing.T) {
	var opts []Option
	raw := `["Mitosis", {"label":"b","text":"Osmosis"}]`
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	norm := NormalizeOptions(opts)
	if norm[0].Label != "A" || norm[0].Text != "Mitosis" {
		t.Errorf("plain string option: %+v", norm[0])
	}
	if norm[1].Label != "B" || norm[1].Text != "Osmosis" {
		t.Errorf("object option: %+v", norm[1])
	}
}
