package application

import (
	"context"
	"time"

	"github.com/avatarneil/stack-status/internal/domain"
	"go.uber.org/zap"
)

// Keys recognized between render cycles. Raw mode disables ISIG, so
// Ctrl-C is delivered as a byte on stdin rather than as SIGINT and has
// to be handled here.
const (
	KeyQuit      = 'q'
	KeyRefresh   = 'r'
	KeyInterrupt = 0x03
)

// WatchLoop drives repeated snapshot composition on a fixed interval.
// It is single-flight: compose, render, poll one keypress, decide, wait.
// A new cycle never starts before the previous render finished.
type WatchLoop struct {
	log      *zap.Logger
	composer *Composer
	render   domain.Renderer
	keys     domain.KeyPoller
	sink     domain.StatusSink // optional
	notify   domain.Notifier   // optional

	interval time.Duration
	details  bool
	reload   chan time.Duration
}

func NewWatchLoop(log *zap.Logger, c *Composer, r domain.Renderer, k domain.KeyPoller, interval time.Duration, details bool) *WatchLoop {
	return &WatchLoop{
		log:      log,
		composer: c,
		render:   r,
		keys:     k,
		interval: interval,
		details:  details,
		reload:   make(chan time.Duration, 1),
	}
}

// WithSink mirrors each snapshot to a status sink after composition.
func (w *WatchLoop) WithSink(s domain.StatusSink) *WatchLoop {
	w.sink = s
	return w
}

// WithNotifier sends a desktop notification when the loop completes.
func (w *WatchLoop) WithNotifier(n domain.Notifier) *WatchLoop {
	w.notify = n
	return w
}

// UpdateInterval retunes the tick period from the next wait onward. Safe
// to call from another goroutine (config hot reload).
func (w *WatchLoop) UpdateInterval(d time.Duration) {
	select {
	case w.reload <- d:
	default:
	}
}

// Run executes the loop until the stack settles, the user quits, the
// context is cancelled, or composition fails. Composition failures are
// fatal: there is no silent skip-and-continue.
func (w *WatchLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		st, err := w.composer.Compose(ctx)
		if err != nil {
			return err
		}

		if w.sink != nil {
			if err := w.sink.Write(ctx, st); err != nil {
				w.log.Warn("status sink write failed", zap.Error(err))
			}
		}

		w.render.Render(st, w.details)
		w.render.RenderHelp()

		if key, ok := w.keys.Poll(); ok {
			switch key {
			case KeyQuit, KeyInterrupt:
				w.log.Info("watch loop quit by user")
				return nil
			case KeyRefresh:
				// Out-of-band tick: recompose without waiting.
				continue
			}
		}

		if st.AllComplete() {
			w.render.RenderComplete()
			if w.notify != nil {
				_ = w.notify.Notify(ctx, "stack-status", "All checks complete", "")
			}
			w.log.Info("all checks complete, leaving watch mode")
			return nil
		}

	wait:
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case d := <-w.reload:
				if d > 0 && d != w.interval {
					w.interval = d
					ticker.Reset(d)
					w.log.Info("refresh interval updated", zap.Duration("interval", d))
				}
			case <-ticker.C:
				break wait
			}
		}
	}
}
