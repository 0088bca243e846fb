package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/example/appointment-booker/internal/calendar"
	"github.com/example/appointment-booker/internal/persistence"
)

// Ledger is the authoritative slot list. It mirrors the persisted bookedSlots
// record in memory, funnels every mutation through a single full-list write,
// and broadcasts each new list to subscribers.
//
// Entries are never mutated in place: booking appends, cancellation filters
// out, and the whole list is replaced atomically.
type Ledger struct {
	repo   persistence.SlotRepository
	logger *slog.Logger

	mu          sync.Mutex
	slots       []calendar.Slot
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func([]calendar.Slot)
}

// OpenLedger loads the persisted ledger. On first-ever load, when nothing has
// been persisted yet, the seed dataset is written and becomes the initial
// state.
func OpenLedger(ctx context.Context, repo persistence.SlotRepository, seed []calendar.Slot, logger *slog.Logger) (*Ledger, error) {
	if repo == nil {
		return nil, fmt.Errorf("slot repository not configured")
	}

	ledger := &Ledger{
		repo:   repo,
		logger: defaultLogger(logger),
	}

	slots, err := repo.LoadSlots(ctx)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		if err := repo.SaveSlots(ctx, seed); err != nil {
			return nil, mapStorageErr(err)
		}
		ledger.slots = cloneSlots(seed)
		ledger.logger.InfoContext(ctx, "seeded empty ledger", "service", "Ledger", "slots", len(seed))
	case err != nil:
		return nil, mapStorageErr(err)
	default:
		ledger.slots = slots
	}

	return ledger, nil
}

// Snapshot returns a copy of the current slot list in insertion order.
func (l *Ledger) Snapshot() []calendar.Slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneSlots(l.slots)
}

// Replace overwrites the entire ledger: the list is persisted synchronously,
// the in-memory mirror is updated, and subscribers receive the new list. It
// is the sole write primitive; mutators compute the full new list first.
func (l *Ledger) Replace(ctx context.Context, slots []calendar.Slot) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.replaceLocked(ctx, slots)
}

// MutateFunc computes a new full slot list from the freshly re-read persisted
// state. Returning changed=false leaves the store untouched and suppresses
// the broadcast.
type MutateFunc func(slots []calendar.Slot) (next []calendar.Slot, changed bool, err error)

// Mutate runs fn inside the ledger's read-check-write sequence. The list
// handed to fn is re-read from the durable store under the ledger lock, so
// the check observes writes made by another process sharing the store rather
// than a possibly stale mirror. An error from fn aborts without writing.
func (l *Ledger) Mutate(ctx context.Context, fn MutateFunc) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.repo.LoadSlots(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			current = nil
		} else {
			return mapStorageErr(err)
		}
	}

	next, changed, err := fn(current)
	if err != nil {
		return err
	}
	if !changed {
		l.slots = current
		return nil
	}

	return l.replaceLocked(ctx, next)
}

// Subscribe registers an observer for ledger changes and returns its
// unsubscribe function. Observers receive the full new list on every replace.
func (l *Ledger) Subscribe(fn func([]calendar.Slot)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSubID
	l.nextSubID++
	l.subscribers = append(l.subscribers, subscriber{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, sub := range l.subscribers {
			if sub.id == id {
				l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (l *Ledger) replaceLocked(ctx context.Context, slots []calendar.Slot) error {
	if err := l.repo.SaveSlots(ctx, slots); err != nil {
		return mapStorageErr(err)
	}
	l.slots = cloneSlots(slots)

	for _, sub := range l.subscribers {
		sub.fn(cloneSlots(l.slots))
	}
	return nil
}

func cloneSlots(slots []calendar.Slot) []calendar.Slot {
	out := make([]calendar.Slot, len(slots))
	copy(out, slots)
	return out
}

func mapStorageErr(err error) error {
	if errors.Is(err, persistence.ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
