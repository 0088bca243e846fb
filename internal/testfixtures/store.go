package testfixtures

import (
	"context"

	"github.com/example/appointment-booker/internal/persistence"
)

// NewStore returns typed repositories over a fresh in-memory KV, plus the KV
// itself for tests that need to reach underneath the repositories.
func NewStore() (*persistence.Store, *persistence.MemoryKV) {
	kv := persistence.NewMemoryKV()
	return persistence.NewStore(kv), kv
}

// UnavailableKV fails every operation with persistence.ErrUnavailable. It
// models an environment where the durable store cannot be reached at all.
type UnavailableKV struct{}

func (UnavailableKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, persistence.ErrUnavailable
}

func (UnavailableKV) Set(ctx context.Context, key string, value []byte) error {
	return persistence.ErrUnavailable
}

func (UnavailableKV) Delete(ctx context.Context, key string) error {
	return persistence.ErrUnavailable
}
