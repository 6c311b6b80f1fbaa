// Package kvstore persists JSON documents under string keys.
//
// Every backend offers the same atomic multi-key read-modify-write through
// Update, which is what keeps per-account counters and the unlock sequence
// consistent under concurrent requests.
package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrUndeclaredKey is returned when an Update callback writes a key it did not declare.
	ErrUndeclaredKey = errors.New("key not declared for update")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)

// Tx is the view of the declared keys inside one Update.
type Tx interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
	Delete(key string)
}

// Store is a key-value store holding JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update reads the declared keys, runs fn, and applies its writes
	// atomically. Nothing is written when fn returns an error.
	Update(ctx context.Context, keys []string, fn func(Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}

// stagedTx buffers an Update's reads and writes until the backend commits them.
type stagedTx struct {
	declared map[string]struct{}
	current  map[string][]byte
	changed  map[string]struct{}
	err      error
}

func newStagedTx(keys []string) *stagedTx {
	tx := &stagedTx{
		declared: make(map[string]struct{}, len(keys)),
		current:  make(map[string][]byte, len(keys)),
		changed:  make(map[string]struct{}),
	}
	for _, k := range keys {
		tx.declared[k] = struct{}{}
	}
	return tx
}

// load seeds the staged view with a persisted value.
func (tx *stagedTx) load(key string, value []byte) {
	tx.current[key] = value
}

func (tx *stagedTx) Get(key string) ([]byte, bool) {
	if _, ok := tx.declared[key]; !ok {
		return nil, false
	}
	v, ok := tx.current[key]
	if !ok {
		return nil, false
	}
	return cloneBytes(v), true
}

func (tx *stagedTx) Put(key string, value []byte) {
	if !tx.allow(key) {
		return
	}
	tx.current[key] = cloneBytes(value)
	tx.changed[key] = struct{}{}
}

func (tx *stagedTx) Delete(key string) {
	if !tx.allow(key) {
		return
	}
	delete(tx.current, key)
	tx.changed[key] = struct{}{}
}

func (tx *stagedTx) allow(key string) bool {
	if _, ok := tx.declared[key]; ok {
		return true
	}
	if tx.err == nil {
		tx.err = ErrUndeclaredKey
	}
	return false
}

// run invokes fn and reports the first error from fn or from an undeclared write.
func (tx *stagedTx) run(fn func(Tx) error) error {
	if err := fn(tx); err != nil {
		return err
	}
	return tx.err
}

// each visits every changed key; value is nil when the key was deleted.
func (tx *stagedTx) each(visit func(key string, value []byte, deleted bool) error) error {
	for k := range tx.changed {
		v, ok := tx.current[k]
		if err := visit(k, v, !ok); err != nil {
			return err
		}
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
