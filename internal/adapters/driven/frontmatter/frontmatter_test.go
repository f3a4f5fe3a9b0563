package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatvault/internal/core/domain"
)

func conversationDoc() domain.Document {
	return domain.Document{
		Header: domain.Header{
			Title:     "Quantum Basics",
			Tags:      []string{"research"},
			URL:       "https://chatgpt.com/c/abc123",
			Type:      domain.DocumentTypeConversation,
			ModelSlug: "gpt-4o",
			CreatedAt: "2024-03-01 09:05",
			UpdatedAt: "2024-03-02 17:30",
			Status:    domain.StatusImported,
		},
		Body: "> [!NOTE] Author",
	}
}

func TestEncode_Conversation(t *testing.T) {
	out, err := New().Encode(conversationDoc())
	require.NoError(t, err)

	want := `---
title: Quantum Basics
tags:
  - research
URL: https://chatgpt.com/c/abc123
type: chatgpt-conversation
model_slug: gpt-4o
created_at: 2024-03-01 09:05
updated_at: 2024-03-02 17:30
status: imported
---

> [!NOTE] Author
`
	assert.Equal(t, want, string(out))
}

func TestEncode_SummaryQuotesTranscriptLink(t *testing.T) {
	doc := conversationDoc()
	doc.Header.Type = domain.DocumentTypeYouTubeSummary
	doc.Header.Transcript = "[[Foo]]"
	doc.Header.ModelSlug = ""

	out, err := New().Encode(doc)
	require.NoError(t, err)

	assert.Contains(t, string(out), "transcript: \"[[Foo]]\"\ntype: chatgpt-youtube-summary\n")
	assert.Contains(t, string(out), "model_slug: \"\"\n")
}

func TestEncode_Transcript(t *testing.T) {
	doc := domain.Document{
		Header: domain.Header{
			Title: "Foo",
			Tags:  []string{"none"},
			Type:  domain.DocumentTypeYouTubeTranscript,
		},
		Body: "bar baz",
	}

	out, err := New().Encode(doc)
	require.NoError(t, err)

	want := `---
title: "Foo"
tags:
  - none
URL: ""
type: youtube-transcript
---

bar baz
`
	assert.Equal(t, want, string(out))
}

func TestEncode_TitleNeedingQuotes(t *testing.T) {
	doc := conversationDoc()
	doc.Header.Title = "Why? - a #1 question"

	out, err := New().Encode(doc)
	require.NoError(t, err)

	fields, err := New().ParseHeader(out)
	require.NoError(t, err)
	assert.Equal(t, "Why? - a #1 question", fields["title"])
}

func TestRoundTrip(t *testing.T) {
	codec := New()

	out, err := codec.Encode(conversationDoc())
	require.NoError(t, err)

	fields, err := codec.ParseHeader(out)
	require.NoError(t, err)

	assert.Equal(t, "Quantum Basics", fields["title"])
	assert.Equal(t, []any{"research"}, fields["tags"])
	assert.Equal(t, "https://chatgpt.com/c/abc123", fields["URL"])
	assert.Equal(t, "chatgpt-conversation", fields["type"])
	assert.Equal(t, "2024-03-02 17:30", fields["updated_at"])
	assert.False(t, fields.Has("modified_at"))
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, fields map[string]any)
	}{
		{
			name:    "user edited file",
			content: "---\ntitle: A\ntype: chatgpt-conversation\nupdated_at: 2024-03-02 17:30\nmodified_at: 2024-04-01\n---\n\nbody\n",
			check: func(t *testing.T, fields map[string]any) {
				assert.Contains(t, fields, "modified_at")
				assert.Equal(t, "chatgpt-conversation", fields["type"])
			},
		},
		{
			name:    "delimiters with surrounding whitespace",
			content: "---  \ntitle: A\n ---\nbody",
			check: func(t *testing.T, fields map[string]any) {
				assert.Equal(t, "A", fields["title"])
			},
		},
		{
			name:    "no closing delimiter",
			content: "---\ntitle: A\n",
			check: func(t *testing.T, fields map[string]any) {
				assert.Equal(t, "A", fields["title"])
			},
		},
		{
			name:    "body may contain delimiters",
			content: "---\ntitle: A\n---\n\n---\nnot: header\n",
			check: func(t *testing.T, fields map[string]any) {
				assert.NotContains(t, fields, "not")
			},
		},
		{name: "no header", content: "# Just markdown\n", wantErr: true},
		{name: "empty file", content: "", wantErr: true},
		{name: "empty header", content: "---\n---\nbody", wantErr: true},
		{name: "invalid yaml", content: "---\ntitle: [unclosed\n---\n", wantErr: true},
		{name: "scalar header", content: "---\njust text\n---\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := New().ParseHeader([]byte(tt.content))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrHeaderParse)
				return
			}
			require.NoError(t, err)
			tt.check(t, fields)
		})
	}
}
