package parser

import (
	"bytes"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []byte
	}{
		{"empty", "", []byte{}},
		{"packed", "078083075079000000000000", []byte{78, 83, 75, 79, 0, 0, 0, 0}},
		{"spaced", "078 083 075 079\n001 000 000 030\n", []byte{78, 83, 75, 79, 1, 0, 0, 30}},
		{"max value", "255", []byte{255}},
		{"comments", "; header\n078 083 075 079 ; NSKO\n; trailing\n", []byte{78, 83, 75, 79}},
		{"tabs and crlf", "001\t002\r\n003", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name, tt.src)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"out of range", "078 256", "out of range"},
		{"way out of range", "999", "out of range"},
		{"short value", "078 83", ""},
		{"stray digit", "0780", ""},
		{"letters", "078 abc", ""},
		{"negative", "-01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name, tt.src)
			if err == nil {
				t.Fatalf("Expected error for %q", tt.src)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("prog.nsko", "078 083\n075 300\n")
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "prog.nsko:2:5") {
		t.Errorf("Error %q does not carry the source position", err)
	}
}
