// Package optimistic implements the apply-then-revert mutation pattern: local
// state changes immediately, the backend call follows, and a failed call
// restores the pre-mutation snapshot. The user therefore always sees either
// the new state or the last known good one, never a partial mix.
package optimistic

import (
	"context"
)

// Apply snapshots the current state via read, writes next(snapshot)
// immediately, then runs op. When op fails the snapshot is written back and
// the error returned for the caller to surface.
//
// next must be pure: it builds the optimistic state without touching the
// snapshot, since the snapshot is what gets restored. When two mutations race
// on the same state before either resolves, the last one to settle wins the
// restore; a later refresh from the backend reconciles.
func Apply[S any](ctx context.Context, read func() S, write func(S), next func(S) S, op func(context.Context) error) error {
	snapshot := read()
	write(next(snapshot))
	if err := op(ctx); err != nil {
		write(snapshot)
		return err
	}
	return nil
}
