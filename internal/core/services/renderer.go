package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/sanitize"
)

// conversationURLPrefix builds the canonical URL used as document identifier.
const conversationURLPrefix = "https://chatgpt.com/c/"

// idSuffixLength is the number of trailing ID characters in file names.
const idSuffixLength = 6

// Renderer turns a classified transcript into documents.
type Renderer struct {
	layout   domain.Layout
	location *time.Location
}

// NewRenderer creates a renderer writing into layout with timestamps in loc.
// A nil loc renders local time.
func NewRenderer(layout domain.Layout, loc *time.Location) *Renderer {
	return &Renderer{
		layout:   layout,
		location: location(loc),
	}
}

// ConversationURL returns the canonical URL for a conversation ID.
func ConversationURL(id string) string {
	return conversationURLPrefix + id
}

// Render produces the primary document and, in transcript mode, the
// companion transcript document.
func (r *Renderer) Render(conv domain.Conversation, t domain.Transcript, c domain.Classification) domain.Rendered {
	url := ConversationURL(conv.ID)
	fileName := fmt.Sprintf("%s - %s.md", c.Title, idSuffix(conv.ID))

	header := domain.Header{
		Title:     c.Title,
		Tags:      []string{c.Category},
		URL:       url,
		Type:      domain.DocumentTypeConversation,
		ModelSlug: t.ModelSlug,
		CreatedAt: r.timestamp(conv.CreatedAt),
		UpdatedAt: r.timestamp(conv.UpdatedAt),
		Status:    domain.StatusImported,
	}
	dir := filepath.Join(r.layout.Conversations(), c.Category)
	messages := t.Messages

	out := domain.Rendered{
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}

	if c.TranscriptMode {
		header.Type = domain.DocumentTypeYouTubeSummary
		header.Transcript = "[[" + c.VideoTitle + "]]"
		dir = filepath.Join(r.layout.Summaries(), c.Category)
		// The first message is the transcript prompt; it lives in its own document.
		messages = messages[1:]

		out.Transcript = &domain.Document{
			Path: filepath.Join(r.layout.Transcripts(), c.VideoTitle+".md"),
			Header: domain.Header{
				Title: c.VideoTitle,
				Tags:  []string{c.Category},
				Type:  domain.DocumentTypeYouTubeTranscript,
			},
			Body: c.TranscriptBody,
		}
	}

	out.Primary = domain.Document{
		Identifier: url,
		Path:       filepath.Join(dir, fileName),
		Header:     header,
		Body:       renderBody(messages, t.Citations),
	}
	return out
}

func (r *Renderer) timestamp(ts time.Time) string {
	return ts.In(r.location).Format(domain.TimestampLayout)
}

// renderBody renders callout blocks per message followed by the citations.
func renderBody(messages []domain.TranscriptMessage, citations [][]domain.Citation) string {
	var lines []string

	for i, msg := range messages {
		lines = append(lines,
			"> [!NOTE] Author",
			">",
			"> # Author: "+msg.Author,
			"",
		)
		for _, part := range msg.Parts {
			lines = append(lines, renderPart(part))
		}
		if i != len(messages)-1 {
			lines = append(lines, "", "")
		}
	}

	if sources := dedupeCitations(citations); len(sources) > 0 {
		lines = append(lines,
			"",
			"",
			"> [!info]",
			">",
			"> # Sources",
			"",
		)
		for _, c := range sources {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", c.Title, c.URL))
		}
	}

	return strings.Join(lines, "\n")
}

func renderPart(p domain.TranscriptPart) string {
	switch p.Type {
	case domain.TranscriptPartTranscript:
		return "[Transcript]: " + p.Text
	case domain.TranscriptPartAsset:
		if p.Asset == nil || p.Asset.Pointer == "" {
			return "[File]: -Deleted-"
		}
		return "[File]: " + p.Asset.Pointer
	default:
		return sanitize.StripPrivateUse(p.Text)
	}
}

// dedupeCitations flattens citation lists keyed by URL without the tracking
// suffix. First-seen order is kept; a later title replaces an earlier one.
func dedupeCitations(lists [][]domain.Citation) []domain.Citation {
	var out []domain.Citation
	pos := make(map[string]int)

	for _, list := range lists {
		for _, c := range list {
			if c.URL == "" {
				continue
			}
			url := sanitize.CitationURL(c.URL)
			if i, ok := pos[url]; ok {
				out[i].Title = c.Title
				continue
			}
			pos[url] = len(out)
			out = append(out, domain.Citation{URL: url, Title: c.Title})
		}
	}
	return out
}

func idSuffix(id string) string {
	if len(id) <= idSuffixLength {
		return id
	}
	return id[len(id)-idSuffixLength:]
}
