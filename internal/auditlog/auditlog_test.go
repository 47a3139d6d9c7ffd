package auditlog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLog(t *testing.T, path string) *Log {
	t.Helper()
	l, err := Open(path)
	require.NoError(t, err, "failed to open audit log")
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAppendAndHead(t *testing.T) {
	ctx := context.Background()
	l := setupTestLog(t, MemoryPath)

	_, err := l.Head(ctx)
	assert.ErrorIs(t, err, ErrEmpty)

	for seq := uint64(0); seq < 5; seq++ {
		require.NoError(t, l.Append(ctx, seq, "run-a"))
	}

	head, err := l.Head(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), head.Seq)
	assert.Equal(t, "run-a", head.Data)
	assert.NotEmpty(t, head.Timestamp)

	n, err := l.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestAppendDuplicateSeqFails(t *testing.T) {
	ctx := context.Background()
	l := setupTestLog(t, MemoryPath)

	require.NoError(t, l.Append(ctx, 7, ""))
	err := l.Append(ctx, 7, "")
	assert.Error(t, err)
}

func TestFileBackedLogSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tickets.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(ctx, 1, "first"))
	require.NoError(t, l.Append(ctx, 2, "first"))
	require.NoError(t, l.Close())

	l = setupTestLog(t, path)
	assert.Equal(t, path, l.Path())
	n, err := l.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAppendAfterCloseFails(t *testing.T) {
	l, err := Open(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	assert.Error(t, l.Append(context.Background(), 1, ""))
}

func TestNextSeq(t *testing.T) {
	ctx := context.Background()
	l := setupTestLog(t, MemoryPath)

	next, err := l.NextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), next)

	require.NoError(t, l.Append(ctx, 3, ""))
	require.NoError(t, l.Append(ctx, 9, ""))
	require.NoError(t, l.Append(ctx, 5, ""))

	next, err = l.NextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), next)
}
