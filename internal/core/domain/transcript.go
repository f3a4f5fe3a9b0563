package domain

// Display labels for remapped author roles.
const (
	AuthorLabelAssistant  = "ChatGPT"
	AuthorLabelUserSystem = "Custom user info"
)

// TranscriptPartType classifies a transcript part.
type TranscriptPartType string

// Transcript part types.
const (
	TranscriptPartText       TranscriptPartType = "text"
	TranscriptPartTranscript TranscriptPartType = "transcript"
	TranscriptPartAsset      TranscriptPartType = "asset"
)

// TranscriptPart is one renderable element of a transcript message.
type TranscriptPart struct {
	Type TranscriptPartType

	// Text holds the content of text and transcript parts.
	Text string

	// Asset is set for asset parts.
	Asset *AssetPointer
}

// TranscriptMessage is a visible message with its display author.
type TranscriptMessage struct {
	// Author is the display label, not the raw role.
	Author string

	// Parts is never empty.
	Parts []TranscriptPart
}

// FirstText returns the text of the first part when that part is text.
func (m TranscriptMessage) FirstText() (string, bool) {
	if len(m.Parts) == 0 || m.Parts[0].Type != TranscriptPartText {
		return "", false
	}
	return m.Parts[0].Text, true
}

// Transcript is the linearised view of a conversation.
type Transcript struct {
	// Messages are ordered oldest first.
	Messages []TranscriptMessage

	// Citations holds one list per sources footnote, in walk order.
	Citations [][]Citation

	// ModelSlug is the model identifier, empty when none was declared.
	ModelSlug string

	// CycleDetected is set when the parent chain revisited a node.
	CycleDetected bool
}
