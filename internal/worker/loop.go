// Package worker implements the outermost run-loop shape every
// long-lived process in this system shares: catch, log, and continue.
// Errors a step returns are logged through the logger passed to Run,
// without a per-message correlation id; steps that want one log
// through a tagged child logger themselves. No error below the
// readiness gate (internal/pubsub.WaitUntilReady) kills a worker
// (spec.md §7).
package worker

import (
	"context"

	"go.uber.org/zap"
)

// Run repeatedly invokes step until ctx is done. A step returning an
// error is logged and the loop continues immediately; a step returning
// (false, nil) means "nothing to do right now" and causes the loop to
// yield briefly via idle before trying again.
func Run(ctx context.Context, log *zap.SugaredLogger, idle func(context.Context), step func(context.Context) (did bool, err error)) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		did, err := step(ctx)
		if err != nil {
			log.Errorw("worker step failed", "error", err)
			continue
		}
		if !did && idle != nil {
			idle(ctx)
		}
	}
}
