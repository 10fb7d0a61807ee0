package appconfig

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
	"github.com/dmitrijs2005/nbbackup/internal/server/blobstore"
)

const testToken = "A1B2-C3D4-E5F6-G7H8"

func TestWriteConfig_CreatesNamespaceAndOverwrites(t *testing.T) {
	root := t.TempDir()
	s := NewStore(blobstore.NewFileStore(root), logging.Discard())
	ctx := context.Background()
	path := filepath.Join(root, testToken, "app-config.json")

	require.NoError(t, s.WriteConfig(ctx, testToken, []byte(`{"theme":"dark"}`)))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, string(got))

	require.NoError(t, s.WriteConfig(ctx, testToken, []byte(`{"theme":"light"}`)))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"light"}`, string(got))

	entries, err := os.ReadDir(filepath.Join(root, testToken))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no history is kept")
}

func TestWriteConfig_ContentIsNotValidated(t *testing.T) {
	root := t.TempDir()
	s := NewStore(blobstore.NewFileStore(root), logging.Discard())

	require.NoError(t, s.WriteConfig(context.Background(), testToken, []byte("not json at all")))
}

func TestWriteConfig_InvalidToken(t *testing.T) {
	s := NewStore(blobstore.NewFileStore(t.TempDir()), logging.Discard())

	err := s.WriteConfig(context.Background(), "", []byte("{}"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingField))
}
