// Package store keeps the client-side copy of a resource list.
//
// A List is the single place a view reads its items from. Fetches and local
// mutations may interleave: a fetch captures a Revision with BeginLoad and
// hands its result to Commit, which keeps every local change made after that
// revision. An item deleted while a fetch was in flight therefore never comes
// back from that fetch's (stale) result.
package store

import (
	"sync"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// Revision counts local mutations of a List.
type Revision uint64

type List[T models.Identifiable] struct {
	mu         sync.RWMutex
	items      []T
	rev        Revision
	committed  Revision
	loaded     bool
	removedAt  map[string]Revision
	upsertedAt map[string]Revision

	subMu   sync.Mutex
	subs    map[int]func([]T)
	nextSub int
}

func NewList[T models.Identifiable]() *List[T] {
	return &List[T]{
		removedAt:  make(map[string]Revision),
		upsertedAt: make(map[string]Revision),
		subs:       make(map[int]func([]T)),
	}
}

// Snapshot returns a copy of the items in display order.
func (l *List[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *List[T]) snapshotLocked() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Loaded reports whether any fetch has been committed.
func (l *List[T]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

func (l *List[T]) Get(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, it := range l.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// BeginLoad marks the start of a fetch.
func (l *List[T]) BeginLoad() Revision {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.rev
}

// Commit installs a fetched list that was started at rev. It returns false
// (and changes nothing) when a fetch started later has already been
// committed.
func (l *List[T]) Commit(rev Revision, fetched []T) bool {
	l.mu.Lock()
	if rev < l.committed {
		l.mu.Unlock()
		return false
	}

	local := make(map[string]T, len(l.items))
	for _, it := range l.items {
		local[it.Key()] = it
	}

	next := make([]T, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))
	for _, it := range fetched {
		id := it.Key()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if at, ok := l.removedAt[id]; ok && at > rev {
			continue
		}
		if at, ok := l.upsertedAt[id]; ok && at > rev {
			if mine, ok := local[id]; ok {
				it = mine
			}
		}
		next = append(next, it)
	}

	// local creations the fetch could not have seen
	for _, it := range l.items {
		id := it.Key()
		if _, ok := seen[id]; ok {
			continue
		}
		if at, ok := l.upsertedAt[id]; ok && at > rev {
			next = append(next, it)
		}
	}

	for id, at := range l.removedAt {
		if at <= rev {
			delete(l.removedAt, id)
		}
	}
	for id, at := range l.upsertedAt {
		if at <= rev {
			delete(l.upsertedAt, id)
		}
	}

	l.items = next
	l.committed = rev
	l.loaded = true
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
	return true
}

// Upsert replaces the item with the same id or appends it.
func (l *List[T]) Upsert(item T) {
	id := item.Key()

	l.mu.Lock()
	l.rev++
	l.upsertedAt[id] = l.rev
	delete(l.removedAt, id)

	replaced := false
	for i, it := range l.items {
		if it.Key() == id {
			l.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		l.items = append(l.items, item)
	}
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
}

// Remove drops the item with id and remembers the removal so an in-flight
// fetch cannot restore it. Removing an absent id still records it.
func (l *List[T]) Remove(id string) {
	l.mu.Lock()
	l.rev++
	l.removedAt[id] = l.rev
	delete(l.upsertedAt, id)

	next := l.items[:0]
	for _, it := range l.items {
		if it.Key() != id {
			next = append(next, it)
		}
	}
	var zero T
	for i := len(next); i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = next
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(snap)
}

// Reset empties the list and forgets all history.
func (l *List[T]) Reset() {
	l.mu.Lock()
	l.items = nil
	l.rev++
	l.committed = l.rev
	l.loaded = false
	l.removedAt = make(map[string]Revision)
	l.upsertedAt = make(map[string]Revision)
	l.mu.Unlock()

	l.notify(nil)
}

// Subscribe calls fn with a fresh snapshot after every change.
func (l *List[T]) Subscribe(fn func([]T)) (unsubscribe func()) {
	l.subMu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.subMu.Unlock()

	return func() {
		l.subMu.Lock()
		delete(l.subs, id)
		l.subMu.Unlock()
	}
}

func (l *List[T]) notify(snap []T) {
	l.subMu.Lock()
	fns := make([]func([]T), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
