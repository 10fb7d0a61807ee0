// Package tokens implements the token registry: a flat ledger file with one
// "<token> <user>" line per record. The ledger is the source of truth and is
// re-read on every call, so edits made to it by hand are picked up without a
// restart.
package tokens

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/filex"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
	"github.com/dmitrijs2005/nbbackup/internal/textenc"
)

// Registry issues, looks up, lists and revokes tokens.
//
// Issue and Revoke hold the write lock for their whole read-modify-write,
// everything else shares the read lock. Two concurrent Issue calls for the
// same new user therefore produce exactly one record.
type Registry struct {
	mu       sync.RWMutex
	path     string
	codec    *textenc.Codec
	logger   logging.Logger
	generate func() (string, error)
}

// NewRegistry opens the ledger at path, creating it (and its directory)
// when absent. A nil codec means UTF-8.
func NewRegistry(path string, codec *textenc.Codec, l logging.Logger) (*Registry, error) {
	if codec == nil {
		codec = textenc.UTF8
	}
	if err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, storageErr("create ledger dir", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filex.FilePerm)
	if err != nil {
		return nil, storageErr("create ledger", err)
	}
	if err := f.Close(); err != nil {
		return nil, storageErr("close ledger", err)
	}

	return &Registry{
		path:     path,
		codec:    codec,
		logger:   l.With("module", "tokens"),
		generate: Generate,
	}, nil
}

// Path returns the ledger file location.
func (r *Registry) Path() string { return r.path }

// Issue creates a token for user and appends the record to the ledger.
func (r *Registry) Issue(ctx context.Context, user string) (string, error) {
	if user == "" {
		return "", fmt.Errorf("%w: user", common.ErrMissingField)
	}
	if strings.IndexFunc(user, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: user %q contains whitespace", common.ErrInvalidFormat, user)
	}
	ub, err := r.codec.Encode(user)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.read()
	if err != nil {
		return "", err
	}
	if _, ok := findUser(data, ub); ok {
		r.logger.Info(ctx, "user already exists", "user", user)
		return "", fmt.Errorf("%w: %s", common.ErrUserExists, user)
	}

	var token string
	for {
		token, err = r.generate()
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		if _, taken := findToken(data, []byte(token)); !taken {
			break
		}
		r.logger.Info(ctx, "token conflict, regenerating", "token", token)
	}

	line := make([]byte, 0, len(token)+len(ub)+3)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		line = append(line, '\n')
	}
	line = append(line, token...)
	line = append(line, ' ')
	line = append(line, ub...)
	line = append(line, '\n')

	if err := r.append(line); err != nil {
		return "", err
	}

	r.logger.Info(ctx, "issued token", "user", user, "ledger", r.path)
	return token, nil
}

// Lookup returns the token recorded for user.
func (r *Registry) Lookup(ctx context.Context, user string) (string, error) {
	if user == "" {
		return "", fmt.Errorf("%w: user", common.ErrMissingField)
	}
	ub, err := r.codec.Encode(user)
	if err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := r.read()
	if err != nil {
		return "", err
	}
	rec, ok := findUser(data, ub)
	if !ok {
		r.logger.Info(ctx, "user not found", "user", user)
		return "", fmt.Errorf("%w: user %s", common.ErrNotFound, user)
	}
	return r.codec.Decode(rec.token())
}

// List returns every token in ledger order. Users are not exposed.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := r.read()
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, rec := range scan(data) {
		tok := rec.token()
		if len(tok) == 0 {
			continue
		}
		s, err := r.codec.Decode(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	r.logger.Debug(ctx, "listed tokens", "count", len(out))
	return out, nil
}

// Validate reports whether token has a record in the ledger.
func (r *Registry) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := r.read()
	if err != nil {
		return false, err
	}
	_, ok := findToken(data, []byte(token))
	return ok, nil
}

// Revoke removes the record for token, provided it belongs to user. Every
// other record keeps its exact bytes and position.
//
// The new ledger is prefix + remainder, written to a temp file and renamed
// over the old one; readers never observe a ledger longer than the result
// or a half-written one.
func (r *Registry) Revoke(ctx context.Context, user, token string) error {
	if user == "" || token == "" {
		return fmt.Errorf("%w: user and token", common.ErrMissingField)
	}
	want, err := r.codec.Encode(token + " " + user)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.read()
	if err != nil {
		return err
	}
	rec, ok := findToken(data, []byte(token))
	if !ok {
		r.logger.Info(ctx, "token not found", "token", token)
		return fmt.Errorf("%w: token %s", common.ErrNotFound, token)
	}
	if !bytes.Equal(bytes.TrimSpace(rec.line), want) {
		r.logger.Info(ctx, "no matching record", "user", user, "token", token)
		return fmt.Errorf("%w for user %q and token %q", common.ErrMismatch, user, token)
	}

	out := make([]byte, 0, len(data)-(rec.end-rec.start))
	out = append(out, data[:rec.start]...)
	out = append(out, data[rec.end:]...)

	if err := filex.WriteFileAtomic(r.path, out, filex.FilePerm); err != nil {
		return storageErr("rewrite ledger", err)
	}

	r.logger.Info(ctx, "revoked token", "user", user, "token", token)
	return nil
}

func (r *Registry) read() ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, storageErr("read ledger", err)
	}
	return data, nil
}

func (r *Registry) append(line []byte) error {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND, filex.FilePerm)
	if err != nil {
		return storageErr("open ledger", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return storageErr("append ledger", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return storageErr("sync ledger", err)
	}
	if err := f.Close(); err != nil {
		return storageErr("close ledger", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrStorageFailure, op, err)
}

