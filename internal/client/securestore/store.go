// Package securestore is the device's encrypted key/value store. Session
// credentials live here. Values are sealed with AES-256-GCM under a per-device
// key before they reach the SQLite file.
package securestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/beautystore/internal/client/repositories/items"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/cryptox"
	"github.com/dmitrijs2005/beautystore/internal/filex"
)

// ErrCorrupted is returned by GetItem when a stored value cannot be opened
// with the device key. Callers should treat the item as absent.
var ErrCorrupted = errors.New("secure item corrupted")

var ErrInvalidKey = fmt.Errorf("device key must be %d bytes", cryptox.KeySize)

type Store struct {
	repo items.Repository
	key  []byte
}

func New(repo items.Repository, key []byte) (*Store, error) {
	if len(key) != cryptox.KeySize {
		return nil, ErrInvalidKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Store{repo: repo, key: k}, nil
}

// LoadDeviceKey reads the device key from path, creating a fresh random key
// with mode 0600 on first use.
func LoadDeviceKey(path string) ([]byte, error) {
	return filex.LoadOrCreateSecret(path, cryptox.KeySize, common.GenerateRandByteArray)
}

// GetItem returns the value stored under key and whether it was present.
func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	sealed, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if sealed == nil {
		return "", false, nil
	}

	plain, err := cryptox.Open(s.key, sealed)
	if err != nil {
		return "", false, fmt.Errorf("%w: %s: %w", ErrCorrupted, key, err)
	}
	defer common.WipeByteArray(plain)
	return string(plain), true, nil
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	plain := []byte(value)
	defer common.WipeByteArray(plain)

	sealed, err := cryptox.Seal(s.key, plain)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.repo.Put(ctx, key, sealed)
}

// RemoveItem deletes key. Removing an absent key is not an error.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Clear removes every stored value. It backs the device reset.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Close wipes the in-memory copy of the device key.
func (s *Store) Close() {
	common.WipeByteArray(s.key)
}
