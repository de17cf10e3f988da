package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("party.json", `{"name": "party", "created": 100, "url": "https://cdn.example.com/party.gif", "team_id": "T123"}`)
	write("ship.json", `{"name": "ship", "created": 200, "url": "https://cdn.example.com/ship.png"}`)
	write("broken.json", `{"name": "broken", "created":`)
	write("notes.txt", "not a record")
	write("ship.png", "\x89PNG...") // a downloaded asset next to its record
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep.json"), []byte(`{"name": "deep"}`), 0o644))

	list, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, list, 2)
	byName := map[string]bool{}
	for _, e := range list {
		byName[e.Name] = true
	}
	require.True(t, byName["party"])
	require.True(t, byName["ship"])

	for _, e := range list {
		if e.Name == "party" {
			require.JSONEq(t, `"T123"`, string(e.Extra["team_id"]))
		}
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	list, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, list)
}
