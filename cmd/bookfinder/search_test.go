package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/bookfinder/pkg/covers"
	"github.com/kerbaras/bookfinder/pkg/data"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResultsTable(t *testing.T) {
	year := 1965
	id := int64(12345)
	books := []data.Book{
		{Key: "/works/OL1W", Title: "Dune", AuthorNames: []string{"Frank Herbert"}, FirstPublishYear: &year, CoverID: &id},
		{Key: "/works/OL2W", Title: "Untitled", AuthorNames: []string{data.UnknownAuthor}},
	}

	out := ansi.Strip(resultsTable(books, covers.DefaultResolver()).String())
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Frank Herbert")
	assert.Contains(t, out, "1965")
	assert.Contains(t, out, "https://covers.openlibrary.org/b/id/12345-M.jpg")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, covers.DefaultGridPlaceholder)
}

func TestSearchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "the hobbit", r.URL.Query().Get("title"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"docs": []map[string]any{{"key": "/works/OL3W", "title": "The Hobbit", "author_name": []string{"J.R.R. Tolkien"}}},
		})
	}))
	defer server.Close()

	out, err := execute(t, "search", "--search-url", server.URL, "--log-file", filepath.Join(t.TempDir(), "bf.log"), "the", "hobbit")
	require.NoError(t, err)
	assert.Contains(t, ansi.Strip(out), "The Hobbit")
	assert.Contains(t, ansi.Strip(out), "J.R.R. Tolkien")
}

func TestSearchCommandNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs": []}`))
	}))
	defer server.Close()

	out, err := execute(t, "search", "--search-url", server.URL, "--log-file", filepath.Join(t.TempDir(), "bf.log"), "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCommandFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := execute(t, "search", "--search-url", server.URL, "--log-file", filepath.Join(t.TempDir(), "bf.log"), "dune")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("covers_url = \"http://covers.local\"\n"), 0o644))

	out, err := execute(t, "config", "--config", path, "--log-file", filepath.Join(dir, "bf.log"), "--log-level", "debug")
	require.NoError(t, err)
	assert.Regexp(t, `covers_url = ['"]http://covers.local['"]`, out)
	assert.Regexp(t, `log_level = ['"]debug['"]`, out)
	assert.Regexp(t, `timeout = ['"]15s['"]`, out)
}
