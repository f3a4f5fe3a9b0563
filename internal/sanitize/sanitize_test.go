package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"research", "research"},
		{"Research", "research"},
		{"Home Lab", "home-lab"},
		{"A  B", "a--b"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Category(tt.input))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "TCP-IP basics- part 1", Title("TCP/IP basics: part 1"))
	assert.Equal(t, "plain", Title("plain"))
	assert.Equal(t, "keeps #hash", Title("keeps #hash"))
}

func TestVideoTitle(t *testing.T) {
	assert.Equal(t, "Go -1 -tips- - more-- x-y", VideoTitle("Go #1 [tips] | more^: x/y"))
	assert.Equal(t, "Foo", VideoTitle("Foo"))
}

func TestStripPrivateUse(t *testing.T) {
	assert.Equal(t, "abc", StripPrivateUse("a\uE000b\uF8FFc"))
	assert.Equal(t, "See sourceciteturn0search0.", StripPrivateUse("See source\ue200cite\ue202turn0search0\ue201."))
	assert.Equal(t, "h\u00e9llo \U0001F44B", StripPrivateUse("h\u00e9llo \U0001F44B"))
	assert.Equal(t, "", StripPrivateUse(""))
}

func TestCitationURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a", CitationURL("https://example.com/a?utm_source=chatgpt.com"))
	assert.Equal(t, "https://example.com/a", CitationURL("https://example.com/a"))
	assert.Equal(t, "https://example.com/a?utm_source=chatgpt.com&x=1",
		CitationURL("https://example.com/a?utm_source=chatgpt.com&x=1"))
}
