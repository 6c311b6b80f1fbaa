package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// decodeDocument unmarshals raw into a fresh T. A JSON null reads as absent
// and yields def, so callers never receive a nil map or slice for it.
func decodeDocument[T any](key string, raw []byte, def T) (T, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// GetJSON decodes the document at key. def is returned when the key is
// absent or holds null, and also alongside any read or decode error.
func GetJSON[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	return decodeDocument(key, raw, def)
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// TxGetJSON is GetJSON inside an Update. A corrupt document fails the update.
func TxGetJSON[T any](tx Tx, key string, def T) (T, error) {
	raw, ok := tx.Get(key)
	if !ok {
		return def, nil
	}
	return decodeDocument(key, raw, def)
}

// TxPutJSON is SetJSON inside an Update.
func TxPutJSON(tx Tx, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	tx.Put(key, raw)
	return nil
}
