package store

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
	"storefront/internal/domain"
)

// Remote is the persistence service as seen by the store.
type Remote interface {
	Health(ctx context.Context) error
	// Fetch decodes the JSON document at path into out. A missing
	// document is reported as domain.ErrNotFound.
	Fetch(ctx context.Context, path string, out any) error
	Send(ctx context.Context, e Effect) error
}

// Store is the session's single writer. Dispatch serializes transitions;
// readers get snapshots that are never modified afterwards.
type Store struct {
	mu       sync.Mutex
	state    State
	fallback domain.Dataset
	remote   Remote
	logger   *log.Logger

	// outbox holds effects not yet sent, in commit order. A single drain
	// goroutine runs while it is non-empty.
	outbox   []outbound
	draining bool
	inflight sync.WaitGroup
}

type outbound struct {
	kind   string
	effect Effect
}

// New builds a disconnected store seeded with fallback. remote may be nil,
// in which case the store never leaves the disconnected state.
func New(remote Remote, fallback domain.Dataset, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		state:    FromDataset(fallback),
		fallback: fallback,
		remote:   remote,
		logger:   logger,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch commits a transition and returns the new snapshot. When the
// session is connected, the transition's effects are sent in the
// background, one at a time and in commit order; their failures are
// logged and never undo the local change.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, effects, err := Reduce(s.state, a)
	if err != nil {
		return next, err
	}
	s.state = next
	if next.Connected && s.remote != nil {
		for _, e := range effects {
			s.enqueue(a.Kind(), e)
		}
	}
	return next, nil
}

// enqueue must be called with s.mu held.
func (s *Store) enqueue(kind string, e Effect) {
	s.inflight.Add(1)
	s.outbox = append(s.outbox, outbound{kind: kind, effect: e})
	if !s.draining {
		s.draining = true
		go s.drain()
	}
}

func (s *Store) drain() {
	for {
		s.mu.Lock()
		if len(s.outbox) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		next := s.outbox[0]
		s.outbox[0] = outbound{}
		s.outbox = s.outbox[1:]
		s.mu.Unlock()

		e := next.effect
		if err := s.remote.Send(context.Background(), e); err != nil {
			s.logger.Printf("store: mirror %s %s %s failed: %v", next.kind, e.Method, e.Path, err)
		}
		s.inflight.Done()
	}
}

// Wait blocks until every queued effect has been sent.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Refresh probes the persistence service and, when it answers, replaces
// the remote-backed collections with fresh copies. Empty collections fall
// back to the seed data. It reports whether the session is connected.
// Concurrent calls are allowed; the last one to finish wins.
func (s *Store) Refresh(ctx context.Context) bool {
	if s.remote == nil {
		return false
	}
	if err := s.remote.Health(ctx); err != nil {
		s.logger.Printf("store: persistence service unreachable, using seed data: %v", err)
		_, _ = s.Dispatch(SetConnection{Connected: false})
		return false
	}

	data, err := s.load(ctx)
	if err != nil {
		s.logger.Printf("store: hydrate failed, keeping current data: %v", err)
		_, _ = s.Dispatch(SetConnection{Connected: false})
		return false
	}
	_, _ = s.Dispatch(Hydrate{Data: data, Connected: true})
	s.logger.Printf("store: hydrated products=%d categories=%d users=%d orders=%d",
		len(data.Products), len(data.Categories), len(data.Users), len(data.Orders))
	return true
}

func (s *Store) load(ctx context.Context) (domain.Dataset, error) {
	var (
		d        domain.Dataset
		settings domain.Settings
		found    bool
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.remote.Fetch(ctx, "/products", &d.Products) })
	g.Go(func() error { return s.remote.Fetch(ctx, "/categories", &d.Categories) })
	g.Go(func() error { return s.remote.Fetch(ctx, "/slides", &d.Slides) })
	g.Go(func() error { return s.remote.Fetch(ctx, "/users", &d.Users) })
	g.Go(func() error { return s.remote.Fetch(ctx, "/orders", &d.Orders) })
	g.Go(func() error { return s.remote.Fetch(ctx, "/reviews", &d.Reviews) })
	g.Go(func() error {
		err := s.remote.Fetch(ctx, "/settings", &settings)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		found = err == nil
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Dataset{}, err
	}
	if found {
		d.Settings = &settings
	}
	return withFallback(d, s.fallback), nil
}

// withFallback substitutes seed data for every empty collection so the
// catalog is never shown empty while seed data exists.
func withFallback(d, seed domain.Dataset) domain.Dataset {
	d.Products = orSeed(d.Products, seed.Products)
	d.Categories = orSeed(d.Categories, seed.Categories)
	d.Slides = orSeed(d.Slides, seed.Slides)
	d.Users = orSeed(d.Users, seed.Users)
	d.Orders = orSeed(d.Orders, seed.Orders)
	d.Reviews = orSeed(d.Reviews, seed.Reviews)
	if d.Settings == nil {
		d.Settings = seed.Settings
	}
	return d
}

func orSeed[T any](fetched, seed []T) []T {
	if len(fetched) > 0 {
		return fetched
	}
	if seed != nil {
		return seed
	}
	return []T{}
}
