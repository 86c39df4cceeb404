package ledger

import (
	"time"

	"go.uber.org/zap"
)

// Resilient wraps a Ledger so that storage failures degrade the session
// instead of aborting it: lookups answer as if nothing was found and
// writes are dropped, with every failure logged and reported through
// the error hook.
type Resilient struct {
	inner   Ledger
	logger  *zap.Logger
	onError func()
}

func NewResilient(inner Ledger, logger *zap.Logger) *Resilient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resilient{inner: inner, logger: logger}
}

// OnError registers a callback invoked once per swallowed storage
// failure, so the session's error counter still sees them.
func (r *Resilient) OnError(fn func()) {
	r.onError = fn
}

func (r *Resilient) failed() {
	if r.onError != nil {
		r.onError()
	}
}

func (r *Resilient) HasRecentInteraction(account, target string, kind Kind, window time.Duration) (bool, error) {
	ok, err := r.inner.HasRecentInteraction(account, target, kind, window)
	if err != nil {
		r.failed()
		r.logger.Warn("ledger lookup failed, treating target as new",
			zap.String("target", target),
			zap.Error(err))
		return false, nil
	}
	return ok, nil
}

func (r *Resilient) RecordInteraction(rec Record) error {
	if err := r.inner.RecordInteraction(rec); err != nil {
		r.failed()
		r.logger.Warn("ledger write failed, interaction not persisted",
			zap.String("target", rec.Target),
			zap.String("kind", string(rec.Kind)),
			zap.Error(err))
	}
	return nil
}

func (r *Resilient) CountForScope(account, scope string, kind Kind) (int, error) {
	n, err := r.inner.CountForScope(account, scope, kind)
	if err != nil {
		r.failed()
		r.logger.Warn("ledger count failed, assuming zero",
			zap.String("scope", scope),
			zap.Error(err))
		return 0, nil
	}
	return n, nil
}

func (r *Resilient) Close() error {
	return r.inner.Close()
}
