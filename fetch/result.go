package fetch

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// SourceResult owns one connector's lifecycle within a session.
//
// The connector runs at most once per epoch, on the first observation of the
// source. Every observer reads the same buffer, so late observers replay the
// items in arrival order without invoking the connector again.
type SourceResult struct {
	instance source.Instance
	session  *Session
	logger   *logrus.Entry

	mu    sync.Mutex
	state State
	epoch uint64
	// items produced by the current epoch
	items []source.MatchMedia
	// items of a superseded epoch, shown until the current one yields or completes
	stale  []source.MatchMedia
	cancel context.CancelFunc

	changed *signal
}

func newSourceResult(session *Session, instance source.Instance) *SourceResult {
	r := &SourceResult{
		instance: instance,
		session:  session,
		changed:  newSignal(),
		logger: log.WithFields(log.Fields{
			"session": session.id,
			"source":  instance.ID,
		}),
	}

	if instance.Enabled {
		r.state = Idle{}
	} else {
		r.state = Disabled{}
	}

	return r
}

// ID returns the identifier of the connector instance.
func (r *SourceResult) ID() string {
	return r.instance.ID
}

// Instance returns the connector instance this source was created from.
func (r *SourceResult) Instance() source.Instance {
	return r.instance
}

// State returns the current state.
func (r *SourceResult) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Epoch returns the current epoch. It grows on every Restart and Disable.
func (r *SourceResult) Epoch() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.epoch
}

// Failure returns the error of a failed source.
func (r *SourceResult) Failure() mo.Option[error] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if failed, ok := r.state.(Failed); ok {
		return mo.Some(failed.Err)
	}
	return mo.None[error]()
}

// Items returns the currently visible items without triggering a fetch.
// After a restart these are the previous epoch's items until the new epoch yields one.
func (r *SourceResult) Items() []source.MatchMedia {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.visibleLocked())
}

// Changed returns a channel closed on the next change of state or items.
func (r *SourceResult) Changed() <-chan struct{} {
	return r.changed.wait()
}

// Results returns a cursor over the current epoch's items.
// The connector starts on the first call to Next. On a disabled source the cursor waits until the source is enabled.
func (r *SourceResult) Results() *Cursor {
	return &Cursor{result: r}
}

// ResultsIfEnabled is like Results, but the cursor is exhausted right away while the source is disabled.
func (r *SourceResult) ResultsIfEnabled() *Cursor {
	return &Cursor{result: r, ifEnabled: true}
}

// Enable moves a disabled source to Idle. It is a no-op on an enabled source.
func (r *SourceResult) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.(Disabled); !ok {
		return
	}

	r.state = Idle{}
	r.logger.Debug("source enabled")
	r.notifyLocked()
}

// Disable cancels any running fetch and hides the source's items.
func (r *SourceResult) Disable() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.(Disabled); ok {
		return
	}

	r.epoch++
	r.cancelLocked()
	r.items = nil
	r.stale = nil
	r.state = Disabled{}
	r.logger.WithField("epoch", r.epoch).Debug("source disabled")
	r.notifyLocked()
}

// Restart begins a new epoch and moves the source to Idle, enabling it if needed.
// The running fetch, if any, is cancelled and whatever it delivers later is dropped.
// The visible items stay until the new epoch yields its first item or completes.
func (r *SourceResult) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stale = slices.Clone(r.visibleLocked())
	r.epoch++
	r.cancelLocked()
	r.items = nil
	r.state = Idle{}
	r.logger.WithField("epoch", r.epoch).Debug("source restarted")
	r.notifyLocked()
}

// AwaitCompletedResults starts the source if needed and waits until it succeeds or fails.
// A restart in the meantime starts the new epoch and keeps waiting for it.
func (r *SourceResult) AwaitCompletedResults(ctx context.Context) ([]source.MatchMedia, error) {
	for {
		r.mu.Lock()
		if Completed(r.state) {
			items := slices.Clone(r.items)
			r.mu.Unlock()
			return items, nil
		}
		r.startLocked()
		changed := r.changed.wait()
		r.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (r *SourceResult) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

// startLocked launches the connector for the current epoch if the source is Idle.
func (r *SourceResult) startLocked() {
	if _, ok := r.state.(Idle); !ok {
		return
	}

	epoch := r.epoch
	ctx, cancel := context.WithCancel(r.session.ctx)
	r.cancel = cancel
	r.state = Fetching{}
	r.logger.WithField("epoch", epoch).Debug("fetch started")
	r.notifyLocked()

	if err := r.session.pool.Go(func() { r.run(ctx, epoch) }); err != nil {
		go r.finish(ctx, epoch, err)
	}
}

func (r *SourceResult) run(ctx context.Context, epoch uint64) {
	var err error
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("connector panicked: %v", p)
		}
		r.finish(ctx, epoch, err)
	}()

	if err = ctx.Err(); err != nil {
		return
	}

	err = r.instance.Connector.Fetch(ctx, r.session.request, func(m source.MatchMedia) bool {
		return ctx.Err() == nil && r.append(epoch, m)
	})
}

// append commits one item of the given epoch. It returns false once the epoch is stale.
func (r *SourceResult) append(epoch uint64, m source.MatchMedia) bool {
	if m.Media.SourceID == "" {
		m.Media.SourceID = r.instance.ID
	}

	r.mu.Lock()
	if r.epoch != epoch {
		r.mu.Unlock()
		return false
	}
	r.items = append(r.items, m)
	r.stale = nil
	r.notifyLocked()
	r.mu.Unlock()

	r.session.observe(r.instance.ID, m)
	return true
}

func (r *SourceResult) finish(ctx context.Context, epoch uint64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.epoch != epoch {
		r.logger.WithField("epoch", epoch).Debug("discarding stale fetch")
		return
	}

	// a fetch cut short by Close or the parent context still fails
	if err == nil {
		err = ctx.Err()
	}
	r.cancelLocked()

	logger := r.logger.WithFields(log.Fields{
		"epoch": epoch,
		"items": len(r.items),
	})
	if err != nil {
		r.state = Failed{Err: &FetchError{SourceID: r.instance.ID, Err: err}}
		logger.WithError(err).Warn("fetch failed")
	} else {
		r.state = Succeed{}
		logger.Debug("fetch succeeded")
	}
	r.stale = nil
	r.notifyLocked()
}

func (r *SourceResult) cancelLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *SourceResult) visibleLocked() []source.MatchMedia {
	switch r.state.(type) {
	case Disabled:
		return nil
	case Succeed, Failed:
		return r.items
	}
	if len(r.items) == 0 && r.stale != nil {
		return r.stale
	}
	return r.items
}

func (r *SourceResult) notifyLocked() {
	r.changed.broadcast()
	r.session.changed.broadcast()
}

// Cursor iterates over one epoch of a source's items.
// It binds to the epoch current at its first Next and ends when that epoch is superseded.
type Cursor struct {
	result    *SourceResult
	ifEnabled bool
	bound     bool
	epoch     uint64
	pos       int
}

// Next returns the next item, waiting for the connector to produce it.
// It returns io.EOF once the epoch has completed or was superseded.
func (c *Cursor) Next(ctx context.Context) (source.MatchMedia, error) {
	r := c.result
	for {
		r.mu.Lock()
		if !c.bound {
			if _, disabled := r.state.(Disabled); disabled {
				if c.ifEnabled {
					r.mu.Unlock()
					return source.MatchMedia{}, io.EOF
				}
			} else {
				c.bound = true
				c.epoch = r.epoch
				r.startLocked()
			}
		}

		if c.bound {
			if r.epoch != c.epoch {
				r.mu.Unlock()
				return source.MatchMedia{}, io.EOF
			}
			if c.pos < len(r.items) {
				m := r.items[c.pos]
				c.pos++
				r.mu.Unlock()
				return m, nil
			}
			if Completed(r.state) {
				r.mu.Unlock()
				return source.MatchMedia{}, io.EOF
			}
		}

		changed := r.changed.wait()
		r.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return source.MatchMedia{}, ctx.Err()
		}
	}
}

// Collect drains the cursor.
func (c *Cursor) Collect(ctx context.Context) ([]source.MatchMedia, error) {
	var items []source.MatchMedia
	for {
		m, err := c.Next(ctx)
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return items, err
		}
		items = append(items, m)
	}
}
