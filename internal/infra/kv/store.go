package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key was never written.
var ErrNotFound = errors.New("kv: key not found")

// Store guarda um valor opaco por chave. Implementações: file, memory,
// redis e s3.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
