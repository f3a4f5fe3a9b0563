package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"go.uber.org/zap"

	"github.com/custodia-labs/chatvault/internal/core/domain"
	"github.com/custodia-labs/chatvault/internal/core/ports/driven"
	"github.com/custodia-labs/chatvault/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.ArchiveReader = (*Reader)(nil)

// ConversationsFile is the export entry holding the conversations.
const ConversationsFile = "conversations.json"

// zipMagic is the local file header signature of a zip archive.
var zipMagic = []byte("PK\x03\x04")

// Reader decodes conversations from a JSON file or an export zip.
type Reader struct{}

// NewReader creates an archive reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the conversations in archive order.
func (r *Reader) Read(ctx context.Context, p string) ([]domain.Conversation, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	if bytes.HasPrefix(data, zipMagic) {
		data, err = extractConversations(data)
		if err != nil {
			return nil, err
		}
	}

	convs, err := Decode(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	logger.Debug("read archive", zap.String("path", p), zap.Int("conversations", len(convs)))
	return convs, nil
}

// Decode reads a JSON array of conversations from in.
// Malformed content is reported as domain.ErrInvalidInput.
func Decode(ctx context.Context, in io.Reader) ([]domain.Conversation, error) {
	dec := json.NewDecoder(in)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("%w: archive is not a list of conversations", domain.ErrInvalidInput)
	}

	var convs []domain.Conversation
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var w wireConversation
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("%w: conversation %d: %w", domain.ErrInvalidInput, len(convs), err)
		}
		convs = append(convs, w.toDomain())
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return convs, nil
}

// extractConversations returns the conversations entry of an export zip.
// An entry at the archive root is preferred over nested ones.
func extractConversations(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening zip: %w", domain.ErrInvalidInput, err)
	}

	var found *zip.File
	for _, f := range zr.File {
		if path.Base(f.Name) != ConversationsFile {
			continue
		}
		if f.Name == ConversationsFile {
			found = f
			break
		}
		if found == nil {
			found = f
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: zip has no %s", domain.ErrInvalidInput, ConversationsFile)
	}

	rc, err := found.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrInvalidInput, found.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrInvalidInput, found.Name, err)
	}
	return content, nil
}
