package storage

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := "proofs/2025-03-05-abc.jpg"
	require.NoError(t, store.Upload(ctx, path, []byte("first"), "image/jpeg", true))
	require.NoError(t, store.Upload(ctx, path, []byte("second"), "image/jpeg", true))

	r, err := store.Open(ctx, path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	err = store.Upload(ctx, path, []byte("third"), "image/jpeg", false)
	assert.ErrorIs(t, err, ErrObjectExists)
}

func TestLocalStorage_ExistsAndMissing(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ok, err := store.Exists(ctx, "proofs/missing.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Open(ctx, "proofs/missing.jpg")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, store.Upload(ctx, "proofs/a.jpg", []byte("x"), "image/jpeg", false))
	ok, err = store.Exists(ctx, "proofs/a.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete("proofs/a.jpg"))
	ok, _ = store.Exists(ctx, "proofs/a.jpg")
	assert.False(t, ok)
	assert.Empty(t, store.PublicURL("proofs/a.jpg"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../escape.jpg", "/etc/passwd", "", "proofs/../../x"} {
		err := store.Upload(context.Background(), p, []byte("x"), "image/jpeg", true)
		assert.Error(t, err, p)
	}
}

func TestIsValidContentType(t *testing.T) {
	assert.True(t, IsValidContentType("image/jpeg"))
	assert.True(t, IsValidContentType("image/png"))
	assert.False(t, IsValidContentType("application/pdf"))
}
