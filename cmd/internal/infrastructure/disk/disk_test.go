package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "abc/acme-logo.jpg", []byte("jpeg")))

	data, err := os.ReadFile(filepath.Join(s.Root, "abc", "acme-logo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)

	ok, err := s.Exists(ctx, "abc/acme-logo.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "abc/acme-logo.jpg"))
	require.NoError(t, s.Delete(ctx, "abc/acme-logo.jpg"))

	ok, err = s.Exists(ctx, "abc/acme-logo.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorageRejectsEscapingKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Put(context.Background(), "../evil.jpg", []byte("x")))
	assert.Error(t, s.Put(context.Background(), "", []byte("x")))
}
