package domain

import "time"

// DocumentType is the value of the header `type` field.
type DocumentType string

// Document types written by this system.
const (
	DocumentTypeConversation      DocumentType = "chatgpt-conversation"
	DocumentTypeYouTubeSummary    DocumentType = "chatgpt-youtube-summary"
	DocumentTypeYouTubeTranscript DocumentType = "youtube-transcript"
)

// StatusImported is the status stamped on every primary document.
const StatusImported = "imported"

// TimestampLayout is the display pattern for header timestamps (minute precision).
const TimestampLayout = "2006-01-02 15:04"

// Header is the front-matter record of a rendered document.
// ModifiedAt is never set by this system; it only appears on disk
// after an external edit.
type Header struct {
	Title      string
	Tags       []string
	URL        string
	Transcript string
	Type       DocumentType
	ModelSlug  string
	CreatedAt  string
	UpdatedAt  string
	Status     string
}

// Document is a rendered Markdown document ready to be synchronised.
type Document struct {
	// Identifier is the stable key used for relocation (the canonical URL).
	// Empty for documents that are never relocated.
	Identifier string

	// Path is the destination file path.
	Path string

	// Header is the structured header.
	Header Header

	// Body is the Markdown body following the header.
	Body string
}

// Classification is the per-conversation routing decision.
type Classification struct {
	// Category is the lowercase, hyphen-joined tag. "none" for transcript
	// conversations without a title category.
	Category string

	// Title is the effective, filesystem-safe title.
	Title string

	// TranscriptMode is set when the first message carries a video transcript.
	TranscriptMode bool

	// VideoTitle is the sanitised video title (transcript mode only).
	VideoTitle string

	// TranscriptBody is the extracted transcript text (transcript mode only).
	TranscriptBody string
}

// Rendered is the output of rendering one conversation.
type Rendered struct {
	// Primary is the conversation or summary document.
	Primary Document

	// Transcript is the companion transcript document, nil outside transcript mode.
	Transcript *Document

	// CreatedAt and UpdatedAt are the source timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time
}
