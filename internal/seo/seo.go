// Package seo derives the hashtag list and the templated description
// stored on a ping at creation time.
package seo

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// Canned expansion phrases keyed by lowercased hashtag. Hashtags without
// an entry are silently omitted from the description.
var hashtagExpansions = map[string]string{
	"tech":     "technology insights and updates",
	"news":     "breaking news and current events",
	"business": "business strategies and market insights",
	"health":   "health and wellness tips",
	"travel":   "travel destinations and adventure stories",
	"food":     "culinary experiences and recipe ideas",
	"sports":   "sports highlights and athletic achievements",
	"music":    "music reviews and artist spotlights",
	"books":    "book recommendations and literary discussions",
	"movies":   "film reviews and cinematic experiences",
}

const fallbackSentence = ". Discover insights and discussions on this topic."

// ExtractHashtags returns every #word token in text, case-preserving and
// in order of appearance. A word runs over letters, digits and underscore.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// JoinHashtags renders tags in the comma-joined storage form.
func JoinHashtags(tags []string) string {
	return strings.Join(tags, ",")
}

// Description synthesizes the SEO description for text. Hashtag tokens are
// stripped from the base text; known hashtags expand into canned phrases.
// When no hashtag expands, the generic fallback sentence is appended instead.
func Description(text string) string {
	base := hashtagPattern.ReplaceAllString(text, "")
	base = strings.ReplaceAll(base, "#", "")

	var expansions []string
	for _, tag := range ExtractHashtags(text) {
		if phrase, ok := hashtagExpansions[strings.ToLower(tag)]; ok {
			expansions = append(expansions, phrase)
		}
	}

	if len(expansions) == 0 {
		return base + fallbackSentence
	}
	return base + ". Explore " + strings.Join(expansions, ", ") + "."
}
