// Package frontmatter serialises documents as a YAML header block followed
// by a markdown body, and parses such headers back.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.FrontMatter = (*Codec)(nil)

// delimiter opens and closes the header block.
const delimiter = "---"

// Codec is the YAML implementation of driven.FrontMatter.
type Codec struct{}

// New creates a front-matter codec.
func New() *Codec {
	return &Codec{}
}

// Encode renders doc as
//
//	---
//	<header>
//	---
//
//	<body>
//
// Header fields appear in a fixed order. Transcript documents carry only
// title, tags, URL and type.
func (c *Codec) Encode(doc domain.Document) ([]byte, error) {
	node := headerNode(doc.Header)

	var header bytes.Buffer
	enc := yaml.NewEncoder(&header)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(delimiter + "\n")
	out.Write(header.Bytes())
	out.WriteString(delimiter + "\n\n")
	out.WriteString(doc.Body)
	out.WriteString("\n")
	return out.Bytes(), nil
}

// ParseHeader parses the lines between a leading delimiter line and the next
// delimiter line. Without a closing delimiter the rest of the content is
// taken as header.
func (c *Codec) ParseHeader(content []byte) (driven.HeaderFields, error) {
	lines := strings.Split(string(content), "\n")
	if strings.TrimSpace(lines[0]) != delimiter {
		return nil, fmt.Errorf("%w: missing opening delimiter", domain.ErrHeaderParse)
	}

	var header []string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == delimiter {
			break
		}
		header = append(header, line)
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(strings.Join(header, "\n")), &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrHeaderParse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: empty header", domain.ErrHeaderParse)
	}
	return driven.HeaderFields(fields), nil
}

func headerNode(h domain.Header) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, scalar(key, 0), value)
	}

	if h.Type == domain.DocumentTypeYouTubeTranscript {
		add("title", scalar(h.Title, yaml.DoubleQuotedStyle))
	} else {
		add("title", scalar(h.Title, 0))
	}
	add("tags", sequence(h.Tags))
	add("URL", scalar(h.URL, 0))
	if h.Transcript != "" {
		add("transcript", scalar(h.Transcript, yaml.DoubleQuotedStyle))
	}
	add("type", scalar(string(h.Type), 0))
	if h.Type == domain.DocumentTypeYouTubeTranscript {
		return m
	}

	add("model_slug", scalar(h.ModelSlug, 0))
	add("created_at", scalar(h.CreatedAt, 0))
	add("updated_at", scalar(h.UpdatedAt, 0))
	add("status", scalar(h.Status, 0))
	return m
}

func scalar(value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: style}
}

func sequence(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		seq.Content = append(seq.Content, scalar(v, 0))
	}
	return seq
}
