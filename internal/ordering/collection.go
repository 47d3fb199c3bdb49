package ordering

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/logging"
	"github.com/rihlatech/go-portal/pkg/interfaces"
)

var (
	// ErrIndexOutOfRange signals a move referencing a position outside the
	// collection.
	ErrIndexOutOfRange = errors.New("ordering: index out of range")
	// ErrBusy signals a commit or toggle while a previous persist is still
	// in flight.
	ErrBusy = errors.New("ordering: persist in progress")
	// ErrNotReordering signals a commit with no pending moves.
	ErrNotReordering = errors.New("ordering: no pending reorder")
	// ErrUnknownEntry signals a toggle for a record not in the collection.
	ErrUnknownEntry = errors.New("ordering: entry not in collection")
)

// ReorderError reports a failed commit after the local rollback completed.
// It wraps the first persistence error from the batch.
type ReorderError struct {
	Kind catalog.Kind
	Err  error
}

func (e *ReorderError) Error() string {
	return "ordering: reorder of " + string(e.Kind) + " not persisted: " + e.Err.Error()
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}

// State describes where a collection is in the reorder lifecycle.
type State int

const (
	// StateIdle means local order matches the last known persisted order.
	StateIdle State = iota
	// StateReordering means local moves have been applied but not persisted.
	StateReordering
	// StatePersisting means a commit batch is in flight.
	StatePersisting
)

// Item is one row of the admin ordering screen: identity plus the flags the
// screen can toggle inline.
type Item struct {
	ID         uuid.UUID
	Slug       string
	Title      string
	IsActive   bool
	ComingSoon bool
}

// Store is the persistence surface a collection commits through.
type Store interface {
	SetDisplayOrders(ctx context.Context, orders []catalog.EntryOrder) error
	SetFlag(ctx context.Context, id uuid.UUID, flag catalog.Flag, value bool) error
}

// Collection manages the display order of one kind's entries with optimistic
// local updates. Moves apply immediately to the local sequence; Commit
// persists every recomputed rank as independent writes and rolls the whole
// local sequence back to its pre-drag snapshot if any write fails. Flag
// toggles are likewise optimistic with single-item rollback.
type Collection struct {
	mu       sync.Mutex
	kind     catalog.Kind
	items    []Item
	snapshot []Item
	state    State
	store    Store
	logger   interfaces.Logger
}

// Option configures a collection.
type Option func(*Collection)

// WithLogger injects a structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollection builds a collection over the supplied items, which must be in
// current presentation order.
func NewCollection(kind catalog.Kind, items []Item, store Store, opts ...Option) *Collection {
	c := &Collection{
		kind:   kind,
		items:  append([]Item(nil), items...),
		store:  store,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load builds a collection from the service's current presentation order.
func Load(ctx context.Context, svc catalog.Service, kind catalog.Kind, opts ...Option) (*Collection, error) {
	records, err := svc.List(ctx, kind, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}
	resolver := svc.Resolver()
	items := make([]Item, 0, len(records))
	for _, record := range records {
		items = append(items, Item{
			ID:         record.ID,
			Slug:       record.Slug,
			Title:      resolver.Text(record.Title, resolver.DefaultLocale()),
			IsActive:   record.IsActive,
			ComingSoon: record.ComingSoon,
		})
	}
	return NewCollection(kind, items, svc, opts...), nil
}

// State reports the current lifecycle state.
func (c *Collection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items returns the local presentation order.
func (c *Collection) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// Move relocates the item at index from to index to, shifting everything in
// between. The first move of a session captures the rollback snapshot; the
// change is local until Commit.
func (c *Collection) Move(from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePersisting {
		return ErrBusy
	}
	if from < 0 || from >= len(c.items) || to < 0 || to >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	if c.state == StateIdle {
		c.snapshot = append([]Item(nil), c.items...)
		c.state = StateReordering
	}

	moved := c.items[from]
	rest := append(append([]Item(nil), c.items[:from]...), c.items[from+1:]...)
	c.items = append(append(append([]Item(nil), rest[:to]...), moved), rest[to:]...)
	return nil
}

// Commit persists the local order. Every item receives its recomputed rank,
// not just the moved one, so persisted ranks always form a dense 0..n-1
// sequence. On any write failure the local order reverts to the pre-drag
// snapshot; the store is not repaired, the next successful commit rewrites
// every rank anyway.
func (c *Collection) Commit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StatePersisting:
		c.mu.Unlock()
		return ErrBusy
	case StateIdle:
		c.mu.Unlock()
		return ErrNotReordering
	}

	orders := make([]catalog.EntryOrder, len(c.items))
	for i, item := range c.items {
		orders[i] = catalog.EntryOrder{ID: item.ID, DisplayOrder: i}
	}
	c.state = StatePersisting
	c.mu.Unlock()

	err := c.store.SetDisplayOrders(ctx, orders)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.items = c.snapshot
		c.snapshot = nil
		c.state = StateIdle
		c.logger.Warn("ordering.commit.rolled_back", "kind", string(c.kind), "error", err)
		return &ReorderError{Kind: c.kind, Err: err}
	}
	c.snapshot = nil
	c.state = StateIdle
	c.logger.Info("ordering.commit.persisted", "kind", string(c.kind), "count", len(orders))
	return nil
}

// Cancel discards pending local moves and restores the snapshot.
func (c *Collection) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReordering {
		return
	}
	c.items = c.snapshot
	c.snapshot = nil
	c.state = StateIdle
}

// Toggle flips one boolean flag on one item, independent of any pending
// reorder. The flip is applied locally first and persisted immediately; a
// write failure reverts that single item only.
func (c *Collection) Toggle(ctx context.Context, id uuid.UUID, flag catalog.Flag, value bool) error {
	c.mu.Lock()
	if c.state == StatePersisting {
		c.mu.Unlock()
		return ErrBusy
	}

	index := -1
	for i, item := range c.items {
		if item.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		c.mu.Unlock()
		return ErrUnknownEntry
	}

	previous := c.items[index]
	if err := applyFlag(&c.items[index], flag, value); err != nil {
		c.mu.Unlock()
		return err
	}
	// Keep the pre-drag snapshot coherent with persisted flag state.
	for i := range c.snapshot {
		if c.snapshot[i].ID == id {
			applyFlag(&c.snapshot[i], flag, value)
		}
	}
	c.mu.Unlock()

	if err := c.store.SetFlag(ctx, id, flag, value); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A concurrent move may have shifted positions; restore by identity.
		for i := range c.items {
			if c.items[i].ID == id {
				c.items[i] = previous
			}
		}
		for i := range c.snapshot {
			if c.snapshot[i].ID == id {
				c.snapshot[i] = previous
			}
		}
		c.logger.Warn("ordering.toggle.rolled_back", "id", id.String(), "error", err)
		return err
	}
	return nil
}

func applyFlag(item *Item, flag catalog.Flag, value bool) error {
	switch flag {
	case catalog.FlagActive:
		item.IsActive = value
	case catalog.FlagComingSoon:
		item.ComingSoon = value
	default:
		return catalog.ErrFlagUnknown
	}
	return nil
}
