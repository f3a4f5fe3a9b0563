package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatvault/internal/adapters/driven/frontmatter"
)

func note(url string) string {
	return "---\ntitle: \"Note\"\ntags: []\nURL: " + url + "\ntype: conversation\n---\n\nbody\n"
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestIndexer_Build(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"research/a.md":      note("https://chat.openai.com/c/a"),
		"research/deep/b.md": note("https://chat.openai.com/c/b"),
		"misc/c.md":          note("https://chat.openai.com/c/c"),
		"misc/notes.txt":     note("https://chat.openai.com/c/txt"),
		"misc/plain.md":      "no header here\n",
		"misc/no-url.md":     "---\ntitle: x\n---\n",
	})

	index, err := NewIndexer(frontmatter.New()).Build(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, 3, index.Len())

	path, ok := index.Lookup("https://chat.openai.com/c/b")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "research", "deep", "b.md"), path)

	_, ok = index.Lookup("https://chat.openai.com/c/txt")
	assert.False(t, ok)
}

func TestIndexer_LaterRootWins(t *testing.T) {
	conv := t.TempDir()
	summaries := t.TempDir()
	writeTree(t, conv, map[string]string{"x/dup.md": note("https://chat.openai.com/c/dup")})
	writeTree(t, summaries, map[string]string{"dup.md": note("https://chat.openai.com/c/dup")})

	index, err := NewIndexer(frontmatter.New()).Build(context.Background(), conv, summaries)

	require.NoError(t, err)
	path, ok := index.Lookup("https://chat.openai.com/c/dup")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(summaries, "dup.md"), path)
}

func TestIndexer_LastVisitedWinsWithinRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/dup.md": note("https://chat.openai.com/c/dup"),
		"b/dup.md": note("https://chat.openai.com/c/dup"),
	})

	index, err := NewIndexer(frontmatter.New()).Build(context.Background(), root)

	require.NoError(t, err)
	path, _ := index.Lookup("https://chat.openai.com/c/dup")
	assert.Equal(t, filepath.Join(root, "b", "dup.md"), path)
}

func TestIndexer_MissingRoot(t *testing.T) {
	index, err := NewIndexer(frontmatter.New()).Build(context.Background(), filepath.Join(t.TempDir(), "absent"))

	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
}

func TestIndexer_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.md": note("u")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIndexer(frontmatter.New()).Build(ctx, root)

	assert.ErrorIs(t, err, context.Canceled)
}
