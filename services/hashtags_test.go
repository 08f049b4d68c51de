package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"case variants collapse", "#A1 #a1", []string{"a1"}},
		{"stops at first non alphanumeric", "#test-tag here", []string{"test"}},
		{"keeps first occurrence order", "#b then #a then #B", []string{"b", "a"}},
		{"exactly fifty characters", "#" + strings.Repeat("x", 50), []string{strings.Repeat("x", 50)}},
		{"fifty one characters discarded", "#" + strings.Repeat("y", 51) + " #ok", []string{"ok"}},
		{"bare hash", "# alone and ## twice", []string{}},
		{"adjacent tags", "#go#lang", []string{"go", "lang"}},
		{"non ascii ends the tag", "#café", []string{"caf"}},
		{"no tags", "just words", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractHashtags(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractHashtags(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRenderWithHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"blank", "   ", ""},
		{"plain text escaped", "a < b & c", "a &lt; b &amp; c"},
		{"tag keeps its case", "Hello #GoLang!", `Hello <a href="/hashtags/GoLang/cheeps">#GoLang</a>!`},
		{"markup around tags is escaped", "<b>#x</b>", `&lt;b&gt;<a href="/hashtags/x/cheeps">#x</a>&lt;/b&gt;`},
		{"two tags", "#a #b", `<a href="/hashtags/a/cheeps">#a</a> <a href="/hashtags/b/cheeps">#b</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(RenderWithHashtags(tt.text)); got != tt.want {
				t.Fatalf("RenderWithHashtags(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
