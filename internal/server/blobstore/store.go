// Package blobstore maps the (token, board, object) key space of a backup
// onto a concrete storage backend. The filesystem backend reproduces the
// historical directory layout byte for byte; the S3 backend reuses the same
// layout as object keys.
package blobstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/nbbackup/internal/common"
)

// NoBoard marks a key that lives directly in a token namespace.
const NoBoard int64 = -1

// Key addresses one blob. Name is empty for a namespace (directory) key.
type Key struct {
	Token   string
	BoardID int64
	Name    string
}

// TokenKey addresses name inside the token namespace.
func TokenKey(token, name string) Key {
	return Key{Token: token, BoardID: NoBoard, Name: name}
}

// BoardKey addresses name inside a board namespace.
func BoardKey(token string, boardID int64, name string) Key {
	return Key{Token: token, BoardID: boardID, Name: name}
}

// Namespace returns the key of the directory containing k.
func (k Key) Namespace() Key {
	return Key{Token: k.Token, BoardID: k.BoardID}
}

// Segments returns the path elements of k, root-relative.
func (k Key) Segments() []string {
	s := []string{k.Token}
	if k.BoardID != NoBoard {
		s = append(s, strconv.FormatInt(k.BoardID, 10))
	}
	if k.Name != "" {
		s = append(s, k.Name)
	}
	return s
}

// Validate rejects keys that could escape the token namespace.
func (k Key) Validate() error {
	if k.Token == "" {
		return fmt.Errorf("%w: empty token in key", common.ErrMissingField)
	}
	if k.BoardID < NoBoard {
		return fmt.Errorf("%w: board id %d", common.ErrMalformedInput, k.BoardID)
	}
	for _, seg := range []string{k.Token, k.Name} {
		if seg == "." || seg == ".." || strings.ContainsAny(seg, `/\`) {
			return fmt.Errorf("%w: key segment %q", common.ErrInvalidFormat, seg)
		}
	}
	return nil
}

// Store is implemented by every backend. Put replaces the whole blob.
type Store interface {
	// Prepare makes sure the namespace ns can hold blobs.
	Prepare(ctx context.Context, ns Key) error
	Put(ctx context.Context, key Key, data []byte) error
	Exists(ctx context.Context, key Key) (bool, error)
}

func storageErr(op string, key Key, err error) error {
	return fmt.Errorf("%w: %s %v: %w", common.ErrStorageFailure, op, key.Segments(), err)
}
