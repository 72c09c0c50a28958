package page

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("page session not found")

// Repo persists page sessions between requests.
type Repo interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, st *State) error
	Delete(ctx context.Context, id string) error
}
