package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T, baseURL string) *LocalStorage {
	t.Helper()

	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  baseURL,
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestLocalStorage(t, "")

	err := s.Save(ctx, "templates/a/file.zip", strings.NewReader("archive-bytes"), "application/zip")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "templates/a/file.zip")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, "templates/a/file.zip")
	require.NoError(t, err)
	assert.EqualValues(t, len("archive-bytes"), size)

	rc, err := s.Get(ctx, "templates/a/file.zip")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "archive-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "templates/a/file.zip"))

	exists, err = s.Exists(ctx, "templates/a/file.zip")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestLocalStorage(t, "")
	assert.NoError(t, s.Delete(context.Background(), "no/such/file.png"))
}

func TestLocalStorage_URLs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	plain := newTestLocalStorage(t, "")
	url, err := plain.GetURL(ctx, "x/y.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/x/y.png", url)

	cdn := newTestLocalStorage(t, "https://cdn.test")
	url, err = cdn.GetURL(ctx, "x/y.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/x/y.png", url)

	// Подписанных ссылок у локального хранилища нет
	signed, err := cdn.GetSignedURL(ctx, "x/y.png", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, url, signed)
}

func TestLocalStorage_KeyFromURL(t *testing.T) {
	t.Parallel()

	cdn := newTestLocalStorage(t, "https://cdn.test")

	key, ok := cdn.KeyFromURL("https://cdn.test/profiles/u.png")
	assert.True(t, ok)
	assert.Equal(t, "profiles/u.png", key)

	_, ok = cdn.KeyFromURL("https://other.host/profiles/u.png")
	assert.False(t, ok)

	plain := newTestLocalStorage(t, "")
	key, ok = plain.KeyFromURL("/files/profiles/u.png")
	assert.True(t, ok)
	assert.Equal(t, "profiles/u.png", key)
}
