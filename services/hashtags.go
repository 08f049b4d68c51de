package services

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/chirp-bdsa/chirp/models"
)

// A tag runs from '#' to the first non-alphanumeric character.
var hashtagPattern = regexp.MustCompile(`#([a-zA-Z0-9]+)`)

// ExtractHashtags returns the distinct lower-cased tags in text in order of
// first occurrence. Runs longer than MaxTagLength are dropped, not truncated.
func ExtractHashtags(text string) []string {
	seen := make(map[string]bool)
	tags := []string{}

	for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(match[1])
		if len(tag) > models.MaxTagLength || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// RenderWithHashtags escapes text for HTML and turns every #tag into a link to
// that tag's timeline, keeping the tag's case as written.
func RenderWithHashtags(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var b strings.Builder
	last := 0
	for _, loc := range hashtagPattern.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(template.HTMLEscapeString(text[last:loc[0]]))
		tag := text[loc[2]:loc[3]]
		fmt.Fprintf(&b, `<a href="/hashtags/%s/cheeps">#%s</a>`, tag, tag)
		last = loc[1]
	}
	b.WriteString(template.HTMLEscapeString(text[last:]))

	return template.HTML(b.String())
}
