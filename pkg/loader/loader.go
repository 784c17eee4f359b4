package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/canvastui/pkg/action"
	"tableflip.dev/canvastui/pkg/calendar"
	"tableflip.dev/canvastui/pkg/logging"
	"tableflip.dev/canvastui/pkg/planner"
	"tableflip.dev/canvastui/pkg/store"
)

// Producer is one background source of actions. Its failures stay inside it.
type Producer interface {
	Name() string
	Run(ctx context.Context, out action.Sender) error
}

// Feed returns the raw planner payload for items starting at start.
type Feed interface {
	PlannerItems(ctx context.Context, start time.Time) ([]byte, error)
}

// CacheLoader turns the cached blob into a CacheReady action.
type CacheLoader struct {
	Blob     store.Blob
	Location *time.Location
}

func (l *CacheLoader) Name() string { return "cache" }

// Load decodes the cached payload.
func (l *CacheLoader) Load() (calendar.Calendar, error) {
	if l.Blob == nil {
		return calendar.Calendar{}, store.ErrNotFound
	}
	data, err := l.Blob.Read()
	if err != nil {
		return calendar.Calendar{}, err
	}
	events, err := planner.Decode(data, l.Location)
	if err != nil {
		return calendar.Calendar{}, err
	}
	return calendar.Build(events), nil
}

// Run pushes CacheReady on a usable cache and nothing otherwise.
func (l *CacheLoader) Run(_ context.Context, out action.Sender) error {
	cal, err := l.Load()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logging.Debug("cache miss", "reason", "empty")
		} else {
			logging.Debug("cache miss", "reason", err)
		}
		return nil
	}
	if err := out.Push(action.FromCache(cal)); err != nil {
		return fmt.Errorf("cache: deliver: %w", err)
	}
	return nil
}

// Fetcher pulls the live feed, delivers it and refreshes the cache.
type Fetcher struct {
	Feed     Feed
	Blob     store.Blob
	Location *time.Location
	Now      func() time.Time
}

func (f *Fetcher) Name() string { return "network" }

func (f *Fetcher) now() time.Time {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Fetch returns the decoded calendar together with the raw body.
func (f *Fetcher) Fetch(ctx context.Context) (calendar.Calendar, []byte, error) {
	if f.Feed == nil {
		return calendar.Calendar{}, nil, errors.New("network: no feed configured")
	}
	body, err := f.Feed.PlannerItems(ctx, f.now())
	if err != nil {
		return calendar.Calendar{}, nil, err
	}
	events, err := planner.Decode(body, f.Location)
	if err != nil {
		return calendar.Calendar{}, nil, err
	}
	return calendar.Build(events), body, nil
}

// Persist overwrites the cache blob with a fetched body.
func (f *Fetcher) Persist(body []byte) error {
	if f.Blob == nil {
		return nil
	}
	return f.Blob.Write(body)
}

// Run fetches once. The calendar is delivered before the cache is written;
// a failed cache write is logged and otherwise ignored.
func (f *Fetcher) Run(ctx context.Context, out action.Sender) error {
	cal, body, err := f.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("network: %w", err)
	}
	// The body is persisted even when nobody is left to receive it, so the
	// next start sees the latest fetch.
	pushErr := out.Push(action.FromNetwork(cal))
	if err := f.Persist(body); err != nil {
		logging.Error("cache write", err)
	}
	if pushErr != nil {
		return fmt.Errorf("network: deliver: %w", pushErr)
	}
	return nil
}

// Coordinator tracks the producers started by Start.
type Coordinator struct {
	g errgroup.Group
}

// Start runs every producer concurrently. There is no shared cancellation:
// one producer failing does not stop the others, and errors never reach out.
func Start(ctx context.Context, out action.Sender, producers ...Producer) *Coordinator {
	c := &Coordinator{}
	for _, p := range producers {
		p := p
		c.g.Go(func() error {
			started := time.Now()
			if err := p.Run(ctx, out); err != nil {
				logging.Error("producer failed", err, "producer", p.Name())
				return nil
			}
			logging.Debug("producer done", "producer", p.Name(), "took", time.Since(started))
			return nil
		})
	}
	return c
}

// Wait blocks until every producer has finished.
func (c *Coordinator) Wait() {
	_ = c.g.Wait()
}
