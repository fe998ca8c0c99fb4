package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryAppendListRoundTrip(t *testing.T) {
	t.Parallel()

	historyPath := filepath.Join(t.TempDir(), "history.toml")
	repo, err := NewRepository(historyPath)
	require.NoError(t, err)

	first := domain.Created("words_500.txt", "https://klavogonki.test/vocs/777",
		time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))
	second := domain.Failed("texts_war.txt", "remote rejected dictionary: duplicate name",
		time.Date(2026, 8, 20, 10, 1, 0, 0, time.UTC))

	require.NoError(t, repo.Append(context.Background(), first))
	require.NoError(t, repo.Append(context.Background(), second))

	results, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.UploadResult{first, second}, results)
}

func TestRepositoryListMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "history.toml"))
	require.NoError(t, err)

	results, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRepositoryRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	historyPath := filepath.Join(t.TempDir(), "history.toml")
	require.NoError(t, os.WriteFile(historyPath, []byte("version = 99\n"), 0o600))

	repo, err := NewRepository(historyPath)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported history file version")
}

func TestRepositoryRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewRepository("")
	assert.Error(t, err)
}

func TestRepositoryAppendHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "history.toml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = repo.Append(ctx, domain.Created("a.txt", "u", time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
}
