package battle

import (
	"context"
	"time"
)

// timerToken identifies one armed time-limit timer. Cancelling it stops the
// timer if it has not fired yet; a restart receives the token of the timer
// that triggered it.
type timerToken struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (b *Battle) newToken() *timerToken {
	ctx, cancel := context.WithCancel(b.ctx)
	return &timerToken{ctx: ctx, cancel: cancel}
}

// after runs fn under the battle lock once d elapses, unless ctx is cancelled first.
// ctx is re-checked after acquiring the lock, so cancelling under the lock is final.
// Caller must hold b.mu.
func (b *Battle) after(ctx context.Context, d time.Duration, fn func()) {
	if b.closed {
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		fn()
	}()
}

// every calls fn under the battle lock each interval until fn returns false
// or ctx is cancelled. Caller must hold b.mu.
func (b *Battle) every(ctx context.Context, interval time.Duration, fn func() bool) {
	if b.closed {
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			b.mu.Lock()
			if ctx.Err() != nil {
				b.mu.Unlock()
				return
			}
			keep := fn()
			b.mu.Unlock()
			if !keep {
				return
			}
		}
	}()
}

// sleep waits for d or ctx cancellation without holding the battle lock.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
