package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookfinder.log")

	closer, err := Setup(path, "debug")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = closer.Close()
		_, _ = Setup("", "info")
	})

	ctx := ContextWithSearch(context.Background(), 7)
	For(ctx).WithField("query", "dune").Error("search failed")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "search failed")
	assert.Contains(t, string(contents), "search_id=7")
	assert.Contains(t, string(contents), "query=dune")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetupInvalidLevelDefaultsToInfo(t *testing.T) {
	closer, err := Setup("", "chatty")
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestForWithoutSearch(t *testing.T) {
	entry := For(context.Background())
	_, ok := entry.Data["search_id"]
	assert.False(t, ok)
}
