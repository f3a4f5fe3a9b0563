package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".chatvault", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNewConfigStore_LoadsTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[output]
conversations_dir = "notes/chats"

[display]
timezone = "Europe/Berlin"

[journal]
enabled = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "notes/chats", store.GetString("output.conversations_dir"))
	assert.Equal(t, "Europe/Berlin", store.GetString("display.timezone"))
	assert.True(t, store.GetBool("journal.enabled"))
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[unclosed"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

// writeConfig writes a config.toml into a fresh directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600))
	return dir
}

func TestConfigStore_Getters(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, `
[journal]
enabled = true
dir = "/tmp/j"
`))
	require.NoError(t, err)

	val, ok := store.Get("journal.dir")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/j", val)

	assert.True(t, store.GetBool("journal.enabled"))
	assert.False(t, store.GetBool("journal.dir"))
	assert.Empty(t, store.GetString("journal.enabled"))

	_, ok = store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_LoadPicksUpEdits(t *testing.T) {
	dir := writeConfig(t, "[log]\nformat = \"console\"\n")
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "console", store.GetString("log.format"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[log]\nformat = \"json\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "json", store.GetString("log.format"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Load())

	_, ok := store.Get("anything")
	assert.False(t, ok)
	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, "[display]\ntimezone = \"UTC\"\n"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Load()
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("display.timezone")
		}()
	}
	wg.Wait()

	assert.Equal(t, "UTC", store.GetString("display.timezone"))
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"output": map[string]any{"conversations_dir": "a", "summaries_dir": "b"},
		"log":    map[string]any{"format": "json"},
		"top":    1,
	}

	assert.Equal(t, map[string]any{
		"output.conversations_dir": "a",
		"output.summaries_dir":     "b",
		"log.format":               "json",
		"top":                      1,
	}, flattenMap(nested, ""))
}
