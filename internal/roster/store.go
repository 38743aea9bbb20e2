// Package roster holds the players loaded into the current session, keyed
// by case-folded name.
package roster

import "context"

// Store is an ordered name-keyed collection. Keys compare case-insensitively.
type Store[T any] interface {
	Get(ctx context.Context, name string) (T, bool, error)
	Put(ctx context.Context, name string, v T) error
	Delete(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]T, error)
}
