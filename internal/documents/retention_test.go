package documents

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save("old.pdf", strings.NewReader("old"))
	require.NoError(t, err)
	_, err = storage.Save("fresh.pdf", strings.NewReader("fresh"))
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(storage.Path("old.pdf"), stale, stale))

	sweeper := NewSweeper(storage, 24*time.Hour, time.Hour, zap.NewNop())
	sweeper.sweep()

	assert.False(t, storage.Exists("old.pdf"))
	assert.True(t, storage.Exists("fresh.pdf"))
}

func TestSweeperDisabledByDefault(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save("old.pdf", strings.NewReader("old"))
	require.NoError(t, err)
	stale := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(storage.Path("old.pdf"), stale, stale))

	// Zero max age: Start is a no-op and nothing is ever removed.
	sweeper := NewSweeper(storage, 0, time.Hour, zap.NewNop())
	sweeper.Start()
	sweeper.Stop()

	assert.True(t, storage.Exists("old.pdf"))
}
