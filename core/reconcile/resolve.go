package reconcile

import (
	"context"
	"fmt"
)

// State tags how a resource was resolved.
type State int

const (
	// Existing means the stored reference still resolves; the record is unchanged.
	Existing State = iota + 1
	// Created means a new resource was made; the caller must store its reference.
	Created
)

func (s State) String() string {
	switch s {
	case Existing:
		return "existing"
	case Created:
		return "created"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of a get-or-create.
type Resolution[T any] struct {
	Resource T
	State    State
}

// WasCreated reports whether the resource did not exist before.
func (r Resolution[T]) WasCreated() bool {
	return r.State == Created
}

// Fetcher loads a live resource by id.
type Fetcher[T any] func(ctx context.Context, id uint64) (T, error)

// Creator makes a fresh resource.
type Creator[T any] func(ctx context.Context) (T, error)

// CreationError reports a resource that could be neither fetched nor created.
type CreationError struct {
	Resource string
	Err      error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create %s: %v", e.Resource, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Resolve fetches the resource behind stored, or creates it when stored is unset
// or no longer resolves. It never touches the record itself.
func Resolve[T any](ctx context.Context, name string, stored Ref, fetch Fetcher[T], create Creator[T]) (Resolution[T], error) {
	if stored.IsSet() {
		if res, err := fetch(ctx, stored.ID); err == nil {
			return Resolution[T]{Resource: res, State: Existing}, nil
		}
	}

	res, err := create(ctx)
	if err != nil {
		var zero Resolution[T]
		return zero, &CreationError{Resource: name, Err: err}
	}
	return Resolution[T]{Resource: res, State: Created}, nil
}
