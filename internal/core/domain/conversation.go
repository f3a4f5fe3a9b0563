package domain

import "time"

// Conversation is one exported chat session.
// The message graph is a tree keyed by node ID; only the branch ending at
// CurrentNode is considered visible.
type Conversation struct {
	// ID is the stable identifier assigned by the exporting service.
	ID string

	// Title is the user-visible title. May be empty.
	Title string

	// CreatedAt is when the conversation was started.
	CreatedAt time.Time

	// UpdatedAt is when the conversation last changed upstream.
	UpdatedAt time.Time

	// CurrentNode is the leaf of the active branch.
	CurrentNode string

	// Mapping holds every node of the graph, visible or not.
	Mapping map[string]Node
}

// Node is one point in the message graph.
type Node struct {
	// ID is the node identifier (the key in Conversation.Mapping).
	ID string

	// Message is the payload, nil for structural nodes.
	Message *Message

	// Parent is the parent node ID. Empty marks the root.
	Parent string
}

// Well-known author roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
	RoleSystem    = "system"
)

// Content types that carry renderable text.
const (
	ContentTypeText           = "text"
	ContentTypeMultimodalText = "multimodal_text"
)

// Message is the payload of a node.
type Message struct {
	// AuthorRole is the raw role (user, assistant, tool, system).
	AuthorRole string

	// ContentType classifies the content (text, multimodal_text, code, ...).
	ContentType string

	// Parts is the ordered content.
	Parts []ContentPart

	// Metadata carries auxiliary signals.
	Metadata MessageMetadata
}

// MessageMetadata holds the message metadata this system reads.
type MessageMetadata struct {
	// IsUserSystemMessage marks a system message written by the user
	// (custom instructions).
	IsUserSystemMessage bool

	// ModelSlug identifies the model that produced the message.
	ModelSlug string

	// ContentReferences are typed reference lists attached to the message.
	ContentReferences []ContentReference
}

// ContentReferenceSourcesFootnote is the reference type that carries citations.
const ContentReferenceSourcesFootnote = "sources_footnote"

// ContentReference is a typed reference list.
type ContentReference struct {
	Type    string
	Sources []Citation
}

// Citation is a (url, title) pair.
type Citation struct {
	URL   string
	Title string
}

// PartKind classifies a content part.
type PartKind string

// Content part kinds.
const (
	PartKindText                  PartKind = "text"
	PartKindAudioTranscription    PartKind = "audio_transcription"
	PartKindAudioAssetPointer     PartKind = "audio_asset_pointer"
	PartKindImageAssetPointer     PartKind = "image_asset_pointer"
	PartKindVideoContainerPointer PartKind = "video_container_asset_pointer"
	PartKindRealTimeAudioVideo    PartKind = "real_time_user_audio_video_asset_pointer"
	PartKindUnknown               PartKind = "unknown"
)

// IsAssetPointer returns true for the single-asset pointer kinds.
func (k PartKind) IsAssetPointer() bool {
	switch k {
	case PartKindAudioAssetPointer, PartKindImageAssetPointer, PartKindVideoContainerPointer:
		return true
	default:
		return false
	}
}

// ContentPart is one element of a message's content.
type ContentPart struct {
	// Kind classifies the part.
	Kind PartKind

	// Text is set for text parts and audio transcriptions.
	Text string

	// Asset is set for single-asset pointer kinds.
	Asset *AssetPointer

	// AudioAsset, VideoAsset and Frames are set for the composite
	// real-time audio/video kind.
	AudioAsset *AssetPointer
	VideoAsset *AssetPointer
	Frames     []AssetPointer
}

// AssetPointer references an uploaded or generated asset.
type AssetPointer struct {
	// ContentType is the pointer kind as exported.
	ContentType string

	// Pointer is the opaque asset locator (e.g. file-service://...).
	Pointer string

	// SizeBytes is the asset size when known.
	SizeBytes int64
}
