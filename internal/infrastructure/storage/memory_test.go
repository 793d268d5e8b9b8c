package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage_UploadAndExists(t *testing.T) {
	s := NewMemoryObjectStorage("")
	ctx := context.Background()

	ok, err := s.Exists(ctx, "clients/abc/contrato.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Upload(ctx, "clients/abc/contrato.pdf", []byte("conteudo"), "application/pdf"))

	ok, err = s.Exists(ctx, "clients/abc/contrato.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	data, found := s.Get("clients/abc/contrato.pdf")
	require.True(t, found)
	assert.Equal(t, []byte("conteudo"), data)
}

func TestMemoryObjectStorage_Delete(t *testing.T) {
	s := NewMemoryObjectStorage("")
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "k", []byte("v"), "text/plain"))
	require.NoError(t, s.Delete(ctx, "k"))

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryObjectStorage_RejectsEmptyKey(t *testing.T) {
	s := NewMemoryObjectStorage("")
	ctx := context.Background()

	assert.Error(t, s.Upload(ctx, "", nil, ""))
	assert.Error(t, s.Delete(ctx, ""))
	_, err := s.Exists(ctx, "")
	assert.Error(t, err)
}

func TestMemoryObjectStorage_PublicURL(t *testing.T) {
	s := NewMemoryObjectStorage("https://cdn.gestor.com.br")
	assert.Equal(t, "https://cdn.gestor.com.br/products/p1/foto.png", s.PublicURL("products/p1/foto.png"))
}
