package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags_CasePreservingAndOrdered(t *testing.T) {
	tags := ExtractHashtags("hello #Tech and #xyz")

	assert.Equal(t, []string{"Tech", "xyz"}, tags, "Extraction should preserve case and order")
}

func TestExtractHashtags_TableDriven(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "no_hashtags",
			text:     "plain text without tags",
			expected: nil,
		},
		{
			name:     "underscore_and_digits",
			text:     "check #go_lang and #web3 out",
			expected: []string{"go_lang", "web3"},
		},
		{
			name:     "duplicates_kept",
			text:     "#tech again #tech",
			expected: []string{"tech", "tech"},
		},
		{
			name:     "token_stops_at_non_word",
			text:     "big #sale! today",
			expected: []string{"sale"},
		},
		{
			name:     "bare_hash_ignored",
			text:     "just a # sign",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractHashtags(tc.text))
		})
	}
}

func TestExtractHashtags_Idempotent(t *testing.T) {
	text := "hello #Tech and #xyz"

	first := ExtractHashtags(text)
	second := ExtractHashtags(text)

	assert.Equal(t, first, second, "Extraction should be deterministic for the same text")
}

func TestJoinHashtags(t *testing.T) {
	assert.Equal(t, "Tech,xyz", JoinHashtags([]string{"Tech", "xyz"}))
	assert.Equal(t, "", JoinHashtags(nil))
}

func TestDescription_KnownHashtag(t *testing.T) {
	desc := Description("love #tech stuff")

	assert.Equal(t, "love  stuff. Explore technology insights and updates.", desc)
}

func TestDescription_UnknownHashtagFallsBack(t *testing.T) {
	desc := Description("random #zzz tag")

	assert.Equal(t, "random  tag. Discover insights and discussions on this topic.", desc)
}

func TestDescription_NoHashtagsFallsBack(t *testing.T) {
	desc := Description("just some text")

	assert.Equal(t, "just some text. Discover insights and discussions on this topic.", desc)
}

func TestDescription_MultipleKnownHashtags(t *testing.T) {
	desc := Description("#tech meets #music tonight")

	assert.Equal(t, " meets  tonight. Explore technology insights and updates, music reviews and artist spotlights.", desc)
}

func TestDescription_CaseInsensitiveLookup(t *testing.T) {
	desc := Description("all about #Tech")

	assert.Equal(t, "all about . Explore technology insights and updates.", desc)
}

func TestDescription_MixedKnownAndUnknown(t *testing.T) {
	// Unknown tags are dropped from the expansion list but still stripped from the base.
	desc := Description("read #books and #qwerty")

	assert.Equal(t, "read  and . Explore book recommendations and literary discussions.", desc)
}
