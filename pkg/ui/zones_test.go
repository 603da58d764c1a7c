package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
)

func TestClipTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		width int
	}{
		{"ShortASCII", "Check pulse", 20},
		{"LongASCII", "Continue compressions until help arrives", 12},
		{"Multibyte", "Réanimation cardio-pulmonaire", 10},
		{"WideGlyphs", "心肺蘇生法プロトコル", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipTitle(tt.title, tt.width)
			if !utf8.ValidString(got) {
				t.Fatalf("clipped title is not valid UTF-8: %q", got)
			}
			if w := ansi.PrintableRuneWidth(got); w > tt.width {
				t.Errorf("clipped width = %d cells, want <= %d: %q", w, tt.width, got)
			}
			if ansi.PrintableRuneWidth(tt.title) > tt.width && !strings.HasSuffix(got, "…") {
				t.Errorf("clipped title should carry the ellipsis tail: %q", got)
			}
		})
	}
}

func TestClipTitle_FitsUnchanged(t *testing.T) {
	s := "Attach AED"
	if got := clipTitle(s, len(s)); got != s {
		t.Errorf("title at exactly the zone width must pass through, got %q", got)
	}
}
