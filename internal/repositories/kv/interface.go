package kv

import (
	"context"
)

type Repository interface {
	SetAll(ctx context.Context, values map[string][]byte) error
	List(ctx context.Context) (map[string][]byte, error)
}
