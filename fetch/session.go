package fetch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/source"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Session is one request fanned out to every connector instance of a fetcher.
type Session struct {
	id      string
	request source.Request
	key     source.KeyFunc
	pool    pond.Pool

	ctx    context.Context
	cancel context.CancelFunc

	sources []*SourceResult
	changed *signal

	mu sync.Mutex

	// positions fixes where a key is listed, at its first arrival from any source
	positions map[string]uint64
	// arrivals orders the copies of a key delivered by different sources
	arrivals  map[arrival]uint64
	next      uint64
}

type arrival struct {
	source, key string
}

type pick struct {
	position, arrival uint64
	item              source.MatchMedia
}

func newSession(ctx context.Context, pool pond.Pool, key source.KeyFunc, request source.Request, instances []source.Instance) *Session {
	ctx, cancel := context.WithCancel(ctx)

	s := &Session{
		id:        uuid.NewString(),
		request:   request,
		key:       key,
		pool:      pool,
		ctx:       ctx,
		cancel:    cancel,
		changed:   newSignal(),
		positions: make(map[string]uint64),
		arrivals:  make(map[arrival]uint64),
	}

	s.sources = lo.Map(instances, func(instance source.Instance, _ int) *SourceResult {
		return newSourceResult(s, instance)
	})

	log.WithFields(log.Fields{
		"session":     s.id,
		"request":     request.String(),
		"fingerprint": fmt.Sprintf("%016x", request.Fingerprint()),
		"sources":     len(s.sources),
	}).Info("session created")

	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Request returns the request the session was created for.
func (s *Session) Request() source.Request {
	return s.request
}

// Sources returns the per-instance results in instance order.
func (s *Session) Sources() []*SourceResult {
	return s.sources
}

// Source looks up a source by instance ID.
func (s *Session) Source(id string) mo.Option[*SourceResult] {
	r, ok := lo.Find(s.sources, func(r *SourceResult) bool {
		return r.ID() == id
	})
	if !ok {
		return mo.None[*SourceResult]()
	}
	return mo.Some(r)
}

// Changed returns a channel closed on the next change in any source.
func (s *Session) Changed() <-chan struct{} {
	return s.changed.wait()
}

// Start triggers every enabled source that has not been observed in its current epoch.
func (s *Session) Start() {
	for _, r := range s.sources {
		r.start()
	}
}

// HasCompleted reports whether every source is disabled, succeeded or failed.
// A session without sources has completed.
func (s *Session) HasCompleted() bool {
	return lo.EveryBy(s.sources, func(r *SourceResult) bool {
		return Settled(r.State())
	})
}

// Results returns the deduplicated union of every source's visible items.
// Keys are ordered by when they were first seen. A key is represented by the
// visible copy that arrived earliest, so a disabled or restarted source never
// lends its items to the union.
// It does not trigger any fetch.
func (s *Session) Results() []source.MatchMedia {
	snapshots := lo.Map(s.sources, func(r *SourceResult, _ int) []source.MatchMedia {
		return r.Items()
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make(map[string]pick)
	for i, items := range snapshots {
		id := s.sources[i].ID()
		for _, item := range items {
			k := s.key(item.Media)
			a := s.arriveLocked(id, k)
			if p, ok := visible[k]; ok && p.arrival <= a {
				continue
			}
			visible[k] = pick{position: s.positions[k], arrival: a, item: item}
		}
	}

	picks := lo.Values(visible)
	sort.Slice(picks, func(i, j int) bool {
		return picks[i].position < picks[j].position
	})

	return lo.Map(picks, func(p pick, _ int) source.MatchMedia {
		return p.item
	})
}

// AwaitCompletedResults starts the enabled sources and waits until the session has completed,
// then returns the cumulative results at that instant.
// Sources restarted in the meantime are started again and waited for.
func (s *Session) AwaitCompletedResults(ctx context.Context) ([]source.MatchMedia, error) {
	for {
		changed := s.changed.wait()
		s.Start()
		if s.HasCompleted() {
			return s.Results(), nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close cancels every running fetch. Sources that were fetching end as Failed.
func (s *Session) Close() {
	s.cancel()
	log.WithFields(log.Fields{"session": s.id}).Debug("session closed")
}

// observe records the arrival of an item so its position is fixed from now on.
func (s *Session) observe(sourceID string, item source.MatchMedia) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arriveLocked(sourceID, s.key(item.Media))
}

func (s *Session) arriveLocked(sourceID, k string) uint64 {
	at := arrival{source: sourceID, key: k}
	a, ok := s.arrivals[at]
	if !ok {
		a = s.next
		s.next++
		s.arrivals[at] = a
	}
	if _, ok := s.positions[k]; !ok {
		s.positions[k] = a
	}
	return a
}
