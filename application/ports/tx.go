package ports

import (
	"context"
	"sync"
)

// TxManager runs a function inside a single storage transaction.
// Nested calls reuse the surrounding transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// txHooks collects functions to run after the surrounding transaction
// commits. A rollback drops them unexecuted, so side effects registered
// here (cache writes in particular) follow the transaction's outcome.
type txHooks struct {
	mu  sync.Mutex
	fns []func(ctx context.Context)
}

type txHooksKey struct{}

// WithAfterCommitHooks attaches an after-commit hook list to the
// context. Transaction managers call this when opening a transaction.
func WithAfterCommitHooks(ctx context.Context) context.Context {
	return context.WithValue(ctx, txHooksKey{}, &txHooks{})
}

// AfterCommit registers fn to run once the surrounding transaction
// commits. Returns false when no transaction hooks are attached, in
// which case the caller should execute the side effect immediately.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) bool {
	hooks, ok := ctx.Value(txHooksKey{}).(*txHooks)
	if !ok {
		return false
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.fns = append(hooks.fns, fn)
	return true
}

// RunAfterCommitHooks executes the registered hooks in order. Called by
// the transaction manager after a successful commit.
func RunAfterCommitHooks(ctx context.Context) {
	hooks, ok := ctx.Value(txHooksKey{}).(*txHooks)
	if !ok {
		return
	}
	hooks.mu.Lock()
	fns := hooks.fns
	hooks.fns = nil
	hooks.mu.Unlock()

	for _, fn := range fns {
		fn(ctx)
	}
}
