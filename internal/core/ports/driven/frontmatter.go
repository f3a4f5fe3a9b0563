package driven

import "github.com/custodia-labs/chatvault/internal/core/domain"

// HeaderFields is a parsed header block. Values keep the types produced by
// the structured-data parser (strings, lists, timestamps, ...).
type HeaderFields map[string]any

// Has reports whether key is present with a non-empty value.
func (h HeaderFields) Has(key string) bool {
	v, ok := h[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return s != ""
	}
	return true
}

// FrontMatter serialises and parses front-matter documents.
type FrontMatter interface {
	// Encode renders a document as header block followed by body.
	Encode(doc domain.Document) ([]byte, error)

	// ParseHeader extracts the header block (the text between the first two
	// bare delimiter lines) and parses it.
	// Returns domain.ErrHeaderParse when there is no header or it is invalid.
	ParseHeader(content []byte) (HeaderFields, error)
}
