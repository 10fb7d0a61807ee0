// Package appconfig keeps the single client configuration blob of each
// token namespace. There is no history; every write replaces the blob.
package appconfig

import (
	"context"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
	"github.com/dmitrijs2005/nbbackup/internal/server/blobstore"
)

type Store struct {
	blobs  blobstore.Store
	logger logging.Logger
}

func NewStore(blobs blobstore.Store, l logging.Logger) *Store {
	return &Store{blobs: blobs, logger: l.With("module", "appconfig")}
}

// WriteConfig replaces app-config.json of token with conf.
func (s *Store) WriteConfig(ctx context.Context, token string, conf []byte) error {
	key := blobstore.TokenKey(token, common.AppConfigFile)
	if err := s.blobs.Prepare(ctx, key); err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, key, conf); err != nil {
		return err
	}
	s.logger.Info(ctx, "wrote conf", "bytes", len(conf))
	return nil
}
