package repositories

import (
	"context"
	"errors"

	"github.com/excellence-hub/excellence/internal/kvstore"
)

var errBackendDown = errors.New("backend down")

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errBackendDown
}
func (failingStore) Set(context.Context, string, []byte) error { return errBackendDown }
func (failingStore) Delete(context.Context, string) error      { return errBackendDown }
func (failingStore) Update(context.Context, []string, func(kvstore.Tx) error) error {
	return errBackendDown
}
func (failingStore) Ping(context.Context) error { return errBackendDown }
func (failingStore) Close() error               { return nil }
