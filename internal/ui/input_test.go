package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestGetInputFromUser(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantZeros int
		wantFind  int
	}{
		{"explicit values", "4\n2\n", 4, 2},
		{"defaults", "\n\n", 1, 1},
		{"retry after invalid", "11\nabc\n3\n0\n5\n", 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var status bytes.Buffer
			p := NewPrompter(NewConsole(io.Discard, &status, false), strings.NewReader(tt.input))

			zeros, find, err := p.GetInputFromUser(1, 1)
			if err != nil {
				t.Fatal(err)
			}
			if zeros != tt.wantZeros || find != tt.wantFind {
				t.Errorf("got (%d, %d), want (%d, %d)", zeros, find, tt.wantZeros, tt.wantFind)
			}
		})
	}
}

func TestGetInputFromUserReportsRange(t *testing.T) {
	var status bytes.Buffer
	p := NewPrompter(NewConsole(io.Discard, &status, false), strings.NewReader("42\n2\n1\n"))

	if _, _, err := p.GetInputFromUser(1, 1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "zeros=42, accepted range is 1-10") {
		t.Errorf("prompt output does not explain the range: %q", status.String())
	}
}

func TestGetInputFromUserEOF(t *testing.T) {
	p := NewPrompter(NewConsole(io.Discard, io.Discard, false), strings.NewReader("11"))
	if _, _, err := p.GetInputFromUser(1, 1); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestAskToContinue(t *testing.T) {
	tests := map[string]bool{
		"\n":     true,
		"y\n":    true,
		"q\n":    false,
		"QUIT\n": false,
		"exit\n": false,
		"":       false,
	}
	for input, want := range tests {
		p := NewPrompter(NewConsole(io.Discard, io.Discard, false), strings.NewReader(input))
		if got := p.AskToContinue(); got != want {
			t.Errorf("AskToContinue(%q) = %v, want %v", input, got, want)
		}
	}
}
