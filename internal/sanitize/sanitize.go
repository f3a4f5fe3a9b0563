// Package sanitize provides the string rules used to turn conversation
// titles and citation links into safe file names and stable keys.
package sanitize

import "strings"

// TrackingSuffix is appended by the chat service to cited links.
const TrackingSuffix = "?utm_source=chatgpt.com"

// Private-use range emitted by the chat UI for inline citation markers.
const (
	privateUseFirst = '\uE000'
	privateUseLast  = '\uF8FF'
)

var (
	// titleReplacer makes a conversation title safe as a file name.
	titleReplacer = strings.NewReplacer("/", "-", ":", "-")

	// videoTitleReplacer additionally removes characters that break wiki links.
	videoTitleReplacer = strings.NewReplacer(
		"#", "-", "[", "-", "]", "-", "|", "-", "^", "-",
		"/", "-", ":", "-",
	)
)

// Category converts a title prefix into a tag: spaces become hyphens and the
// result is lowercased.
//
// Examples:
//
//	"Research"      -> "research"
//	"Home Lab"      -> "home-lab"
func Category(prefix string) string {
	return strings.ToLower(strings.ReplaceAll(prefix, " ", "-"))
}

// Title replaces path separators and colons with hyphens.
func Title(title string) string {
	return titleReplacer.Replace(title)
}

// VideoTitle replaces wiki-link metacharacters, path separators and colons
// with hyphens.
func VideoTitle(title string) string {
	return videoTitleReplacer.Replace(title)
}

// StripPrivateUse removes characters in U+E000..U+F8FF.
func StripPrivateUse(s string) string {
	if !strings.ContainsFunc(s, isPrivateUse) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isPrivateUse(r) {
			return -1
		}
		return r
	}, s)
}

// CitationURL removes the tracking suffix from a cited URL.
func CitationURL(url string) string {
	return strings.TrimSuffix(url, TrackingSuffix)
}

func isPrivateUse(r rune) bool {
	return r >= privateUseFirst && r <= privateUseLast
}
