package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/sanitize"
)

// Markers that identify a video transcript prompt in the first message.
const (
	videoTitleMarker      = `Title: "`
	videoTranscriptMarker = `Transcript: "`

	// categorySeparator splits "<category> - <title>".
	categorySeparator = " - "

	// uncategorised is the tag for transcript conversations without a category.
	uncategorised = "none"
)

// Classify decides how a conversation is routed.
// Returns false when the conversation produces no output: the first visible
// message does not start with text, or it has neither a title category nor a
// video transcript.
func Classify(conv domain.Conversation, transcript domain.Transcript, loc *time.Location) (domain.Classification, bool) {
	var c domain.Classification

	title := conv.Title
	if title == "" {
		title = "no-title-" + conv.CreatedAt.In(location(loc)).Format("2006-01-02-15-04")
	} else if idx := strings.Index(title, categorySeparator); idx > 0 {
		c.Category = sanitize.Category(title[:idx])
		title = title[idx+len(categorySeparator):]
	}

	if len(transcript.Messages) == 0 {
		return c, false
	}
	first, ok := transcript.Messages[0].FirstText()
	if !ok {
		return c, false
	}

	titleIdx := strings.Index(first, videoTitleMarker)
	transcriptIdx := strings.Index(first, videoTranscriptMarker)
	if titleIdx != -1 && transcriptIdx != -1 {
		c.TranscriptMode = true
		// A closing quote and one separator precede the transcript marker.
		c.VideoTitle = sanitize.VideoTitle(substring(first, titleIdx+len(videoTitleMarker), backRunes(first, transcriptIdx, 2)))
		// The transcript ends with a closing quote and one trailing character.
		c.TranscriptBody = substring(first, transcriptIdx+len(videoTranscriptMarker), backRunes(first, len(first), 2))
	}

	if c.Category == "" && !c.TranscriptMode {
		return c, false
	}
	if c.Category == "" {
		c.Category = uncategorised
	}
	c.Title = sanitize.Title(title)
	return c, true
}

// substring returns s[start:end] with both bounds clamped to the string and
// an empty result when the range is inverted.
func substring(s string, start, end int) string {
	start = max(0, min(start, len(s)))
	end = max(0, min(end, len(s)))
	if end <= start {
		return ""
	}
	return s[start:end]
}

// backRunes returns the byte offset n characters before end in s.
func backRunes(s string, end, n int) int {
	for ; n > 0 && end > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return end
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
