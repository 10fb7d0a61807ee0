package blobstore

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/nbbackup/internal/filex"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps blobs under a root directory:
//
//	<root>/<token>/<name>
//	<root>/<token>/<boardId>/<name>
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Path(key Key) string {
	return filepath.Join(append([]string{s.root}, key.Segments()...)...)
}

func (s *FileStore) Prepare(_ context.Context, ns Key) error {
	if err := ns.Validate(); err != nil {
		return err
	}
	if err := filex.EnsureDir(s.Path(ns.Namespace())); err != nil {
		return storageErr("prepare", ns, err)
	}
	return nil
}

func (s *FileStore) Put(_ context.Context, key Key, data []byte) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(s.Path(key), data, filex.FilePerm); err != nil {
		return storageErr("put", key, err)
	}
	return nil
}

func (s *FileStore) Exists(_ context.Context, key Key) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}
	ok, err := filex.Exists(s.Path(key))
	if err != nil {
		return false, storageErr("stat", key, err)
	}
	return ok, nil
}
