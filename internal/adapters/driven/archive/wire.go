package archive

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

// wireConversation mirrors one element of conversations.json.
type wireConversation struct {
	ID             string              `json:"id"`
	ConversationID string              `json:"conversation_id"`
	Title          string              `json:"title"`
	CreateTime     *float64            `json:"create_time"`
	UpdateTime     *float64            `json:"update_time"`
	CurrentNode    string              `json:"current_node"`
	Mapping        map[string]wireNode `json:"mapping"`
}

type wireNode struct {
	ID      string       `json:"id"`
	Message *wireMessage `json:"message"`
	Parent  *string      `json:"parent"`
}

type wireMessage struct {
	Author struct {
		Role string `json:"role"`
	} `json:"author"`
	Content struct {
		ContentType string            `json:"content_type"`
		Parts       []json.RawMessage `json:"parts"`
	} `json:"content"`
	Metadata wireMetadata `json:"metadata"`
}

type wireMetadata struct {
	IsUserSystemMessage bool   `json:"is_user_system_message"`
	ModelSlug           string `json:"model_slug"`
	// Reference shapes vary by type; each is decoded on its own.
	ContentReferences []json.RawMessage `json:"content_references"`
}

type wireContentReference struct {
	Type    string         `json:"type"`
	Sources []wireCitation `json:"sources"`
}

type wireCitation struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// wirePart is the object form of a content part.
type wirePart struct {
	ContentType  string     `json:"content_type"`
	Text         string     `json:"text"`
	AssetPointer string     `json:"asset_pointer"`
	SizeBytes    int64      `json:"size_bytes"`
	AudioAsset   *wirePart  `json:"audio_asset_pointer"`
	VideoAsset   *wirePart  `json:"video_container_asset_pointer"`
	FrameAssets  []wirePart `json:"frames_asset_pointers"`
}

func (w *wireConversation) toDomain() domain.Conversation {
	id := w.ID
	if id == "" {
		id = w.ConversationID
	}

	conv := domain.Conversation{
		ID:          id,
		Title:       w.Title,
		CreatedAt:   unixSeconds(w.CreateTime),
		UpdatedAt:   unixSeconds(w.UpdateTime),
		CurrentNode: w.CurrentNode,
		Mapping:     make(map[string]domain.Node, len(w.Mapping)),
	}
	for key, n := range w.Mapping {
		node := domain.Node{ID: key}
		if n.Parent != nil {
			node.Parent = *n.Parent
		}
		if n.Message != nil {
			node.Message = n.Message.toDomain()
		}
		conv.Mapping[key] = node
	}
	return conv
}

func (m *wireMessage) toDomain() *domain.Message {
	msg := &domain.Message{
		AuthorRole:  m.Author.Role,
		ContentType: m.Content.ContentType,
		Metadata: domain.MessageMetadata{
			IsUserSystemMessage: m.Metadata.IsUserSystemMessage,
			ModelSlug:           m.Metadata.ModelSlug,
		},
	}

	if len(m.Content.Parts) > 0 {
		msg.Parts = make([]domain.ContentPart, 0, len(m.Content.Parts))
		for _, raw := range m.Content.Parts {
			msg.Parts = append(msg.Parts, decodePart(raw))
		}
	}

	for _, raw := range m.Metadata.ContentReferences {
		var ref wireContentReference
		if err := json.Unmarshal(raw, &ref); err != nil {
			continue
		}
		r := domain.ContentReference{Type: ref.Type}
		if ref.Sources != nil {
			r.Sources = make([]domain.Citation, 0, len(ref.Sources))
			for _, s := range ref.Sources {
				r.Sources = append(r.Sources, domain.Citation{URL: s.URL, Title: s.Title})
			}
		}
		msg.Metadata.ContentReferences = append(msg.Metadata.ContentReferences, r)
	}
	return msg
}

// decodePart accepts a bare string (text) or a typed object.
// Anything else decodes as an unknown part.
func decodePart(raw json.RawMessage) domain.ContentPart {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return domain.ContentPart{Kind: domain.PartKindUnknown}
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return domain.ContentPart{Kind: domain.PartKindUnknown}
		}
		return domain.ContentPart{Kind: domain.PartKindText, Text: text}
	case '{':
		var p wirePart
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return domain.ContentPart{Kind: domain.PartKindUnknown}
		}
		return p.toDomain()
	default:
		return domain.ContentPart{Kind: domain.PartKindUnknown}
	}
}

func (p *wirePart) toDomain() domain.ContentPart {
	kind := domain.PartKind(p.ContentType)
	switch {
	case kind == domain.PartKindAudioTranscription:
		return domain.ContentPart{Kind: kind, Text: p.Text}
	case kind.IsAssetPointer():
		return domain.ContentPart{Kind: kind, Asset: p.asset()}
	case kind == domain.PartKindRealTimeAudioVideo:
		part := domain.ContentPart{Kind: kind}
		if p.AudioAsset != nil {
			part.AudioAsset = p.AudioAsset.asset()
		}
		if p.VideoAsset != nil {
			part.VideoAsset = p.VideoAsset.asset()
		}
		for i := range p.FrameAssets {
			part.Frames = append(part.Frames, *p.FrameAssets[i].asset())
		}
		return part
	default:
		return domain.ContentPart{Kind: domain.PartKindUnknown}
	}
}

func (p *wirePart) asset() *domain.AssetPointer {
	return &domain.AssetPointer{
		ContentType: p.ContentType,
		Pointer:     p.AssetPointer,
		SizeBytes:   p.SizeBytes,
	}
}

// unixSeconds converts fractional epoch seconds. Nil yields the zero time.
func unixSeconds(v *float64) time.Time {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return time.Time{}
	}
	sec, frac := math.Modf(*v)
	return time.Unix(int64(sec), int64(frac*1e9))
}
