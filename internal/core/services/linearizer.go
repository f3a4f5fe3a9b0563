package services

import (
	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// Linearize walks a conversation from its current node up to the root and
// returns the visible messages oldest first, together with the citation lists
// and model identifier found along the way.
//
// Nodes off the current branch are never visited. The walk stops at the root,
// at a parent ID missing from the mapping, or when a node is revisited.
func Linearize(conv domain.Conversation) domain.Transcript {
	var transcript domain.Transcript
	visited := make(map[string]struct{}, len(conv.Mapping))

	for id := conv.CurrentNode; id != ""; {
		if _, seen := visited[id]; seen {
			logger.Warn("cycle in conversation graph",
				zap.String("conversation", conv.ID), zap.String("node", id))
			transcript.CycleDetected = true
			break
		}
		visited[id] = struct{}{}

		node, ok := conv.Mapping[id]
		if !ok {
			break
		}

		if msg, ok := visibleMessage(node.Message); ok {
			transcript.Messages = append(transcript.Messages, msg)
		}

		// Metadata is read on every visited node, including filtered ones.
		if node.Message != nil {
			for _, ref := range node.Message.Metadata.ContentReferences {
				if ref.Type == domain.ContentReferenceSourcesFootnote && ref.Sources != nil {
					transcript.Citations = append(transcript.Citations, ref.Sources)
				}
			}
			// Walking leaf to root, so the node closest to the root wins.
			if slug := node.Message.Metadata.ModelSlug; slug != "" {
				transcript.ModelSlug = slug
			}
		}

		id = node.Parent
	}

	reverse(transcript.Messages)
	logger.Debug("linearised conversation",
		zap.String("conversation", conv.ID),
		zap.Int("messages", len(transcript.Messages)),
		zap.Int("citation_lists", len(transcript.Citations)))
	return transcript
}

// visibleMessage filters a node's message and converts its parts.
// Returns false when the message is hidden or yields no parts.
func visibleMessage(m *domain.Message) (domain.TranscriptMessage, bool) {
	if m == nil || len(m.Parts) == 0 {
		return domain.TranscriptMessage{}, false
	}
	if m.AuthorRole == domain.RoleSystem && !m.Metadata.IsUserSystemMessage {
		return domain.TranscriptMessage{}, false
	}
	if m.ContentType != domain.ContentTypeText && m.ContentType != domain.ContentTypeMultimodalText {
		return domain.TranscriptMessage{}, false
	}

	parts := make([]domain.TranscriptPart, 0, len(m.Parts))
	for i := range m.Parts {
		parts = appendParts(parts, &m.Parts[i])
	}
	if len(parts) == 0 {
		return domain.TranscriptMessage{}, false
	}

	return domain.TranscriptMessage{
		Author: authorLabel(m.AuthorRole),
		Parts:  parts,
	}, true
}

// authorLabel maps a raw role to its display label.
func authorLabel(role string) string {
	switch role {
	case domain.RoleAssistant, domain.RoleTool:
		return domain.AuthorLabelAssistant
	case domain.RoleSystem:
		// Only user system messages get this far.
		return domain.AuthorLabelUserSystem
	default:
		return role
	}
}

func appendParts(parts []domain.TranscriptPart, p *domain.ContentPart) []domain.TranscriptPart {
	switch {
	case p.Kind == domain.PartKindText:
		if p.Text != "" {
			parts = append(parts, domain.TranscriptPart{Type: domain.TranscriptPartText, Text: p.Text})
		}
	case p.Kind == domain.PartKindAudioTranscription:
		parts = append(parts, domain.TranscriptPart{Type: domain.TranscriptPartTranscript, Text: p.Text})
	case p.Kind.IsAssetPointer():
		parts = append(parts, assetPart(p.Asset))
	case p.Kind == domain.PartKindRealTimeAudioVideo:
		if p.AudioAsset != nil {
			parts = append(parts, assetPart(p.AudioAsset))
		}
		if p.VideoAsset != nil {
			parts = append(parts, assetPart(p.VideoAsset))
		}
		for i := range p.Frames {
			parts = append(parts, assetPart(&p.Frames[i]))
		}
	}
	return parts
}

func assetPart(a *domain.AssetPointer) domain.TranscriptPart {
	return domain.TranscriptPart{Type: domain.TranscriptPartAsset, Asset: a}
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
