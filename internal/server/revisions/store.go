// Package revisions stores board snapshots. Each board of a token gets a
// namespace holding numbered snapshot files, a metadata blob and an
// optional deletion marker. Revision numbers come from the client; the
// store neither generates nor orders them.
package revisions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
	"github.com/dmitrijs2005/nbbackup/internal/server/blobstore"
)

type Store struct {
	blobs  blobstore.Store
	logger logging.Logger
}

func NewStore(blobs blobstore.Store, l logging.Logger) *Store {
	return &Store{blobs: blobs, logger: l.With("module", "revisions")}
}

// WriteRevision records a snapshot of board boardID under token.
//
// The revision number is read from envelope before anything is touched, so
// a malformed envelope leaves no trace. data and meta are optional (nil
// means absent); when present they replace rev-<revision>.nbx and meta.json
// respectively.
func (s *Store) WriteRevision(ctx context.Context, token string, boardID int64, envelope, data, meta []byte) error {
	if err := checkBoard(boardID); err != nil {
		return err
	}
	rev, err := ParseEnvelope(envelope)
	if err != nil {
		s.logger.Info(ctx, "incorrectly formatted request data", "board", boardID, "error", err)
		return err
	}

	ns := blobstore.BoardKey(token, boardID, "")
	if err := s.blobs.Prepare(ctx, ns); err != nil {
		return err
	}

	if data != nil {
		key := blobstore.BoardKey(token, boardID, FileName(rev))
		if err := s.blobs.Put(ctx, key, data); err != nil {
			return err
		}
		s.logger.Info(ctx, "wrote board data", "board", boardID, "revision", rev)
	}
	if meta != nil {
		key := blobstore.BoardKey(token, boardID, common.MetaFile)
		if err := s.blobs.Put(ctx, key, meta); err != nil {
			return err
		}
		s.logger.Info(ctx, "wrote board meta", "board", boardID, "revision", rev)
	}
	return nil
}

// DeleteBoard marks a board deleted. Snapshots are kept; calling it again
// is harmless.
func (s *Store) DeleteBoard(ctx context.Context, token string, boardID int64) error {
	if err := checkBoard(boardID); err != nil {
		return err
	}
	key := blobstore.BoardKey(token, boardID, common.DeletedMarker)
	if err := s.blobs.Prepare(ctx, key); err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, key, []byte(common.DeletedMarkerContent)); err != nil {
		return err
	}
	s.logger.Info(ctx, "deleted board", "board", boardID)
	return nil
}

// IsDeleted reports whether the deletion marker of a board exists.
func (s *Store) IsDeleted(ctx context.Context, token string, boardID int64) (bool, error) {
	if err := checkBoard(boardID); err != nil {
		return false, err
	}
	return s.blobs.Exists(ctx, blobstore.BoardKey(token, boardID, common.DeletedMarker))
}

func checkBoard(boardID int64) error {
	if boardID < 0 {
		return fmt.Errorf("%w: board id %d", common.ErrMalformedInput, boardID)
	}
	return nil
}
