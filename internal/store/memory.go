package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// subscriberBuffer is the channel buffer given to each subscriber.
const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// Products are kept in a slice in insertion order; the slice position is the
// product's global index. Removal re-packs the slice so indices stay
// contiguous.
//
// Subscribers receive updates via buffered channels (buffer size 100). Updates
// are sent non-blocking; if a subscriber's buffer is full, the update is dropped
// for that subscriber to prevent blocking the entire system.
//
// Observers and subscribers see changes in version order, even when
// mutations race.
type MemoryStore struct {
	mu       sync.RWMutex
	products []Product
	version  uint64

	subMu       sync.RWMutex
	subscribers map[chan Change]struct{}
	observers   []*observer

	// notified is the last version delivered; guarded by notifyMu.
	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	notified   uint64
}

type observer struct {
	fn func(Change)
}

// NewMemoryStore creates a new, empty in-memory [Store].
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{
		subscribers: make(map[chan Change]struct{}),
	}
	m.notifyCond = sync.NewCond(&m.notifyMu)
	return m
}

// Add appends p to the end of the catalog and notifies observers.
//
// A fresh id is always assigned; any id already set on p is ignored.
func (m *MemoryStore) Add(p Product) Product {
	p.ID = uuid.NewString()

	m.mu.Lock()
	m.products = append(m.products, p)
	m.version++
	change := Change{Kind: ChangeAdded, Product: p, Index: len(m.products) - 1, Version: m.version}
	m.mu.Unlock()

	m.notify(change)
	return p
}

// EditAt replaces the record at index, keeping its id and position.
func (m *MemoryStore) EditAt(index int, p Product) (Product, error) {
	m.mu.Lock()
	if index < 0 || index >= len(m.products) {
		n := len(m.products)
		m.mu.Unlock()
		return Product{}, fmt.Errorf("edit index %d (length %d): %w", index, n, ErrOutOfRange)
	}
	change := m.replaceLocked(index, p)
	m.mu.Unlock()

	m.notify(change)
	return change.Product, nil
}

// Edit replaces the record with the given id, keeping its id and position.
func (m *MemoryStore) Edit(id string, p Product) (Product, error) {
	m.mu.Lock()
	index := m.indexLocked(id)
	if index < 0 {
		m.mu.Unlock()
		return Product{}, fmt.Errorf("edit %q: %w", id, ErrNotFound)
	}
	change := m.replaceLocked(index, p)
	m.mu.Unlock()

	m.notify(change)
	return change.Product, nil
}

// RemoveAt deletes the record at index. Every later record moves down by one.
func (m *MemoryStore) RemoveAt(index int) (Product, error) {
	m.mu.Lock()
	if index < 0 || index >= len(m.products) {
		n := len(m.products)
		m.mu.Unlock()
		return Product{}, fmt.Errorf("remove index %d (length %d): %w", index, n, ErrOutOfRange)
	}
	change := m.removeLocked(index)
	m.mu.Unlock()

	m.notify(change)
	return change.Product, nil
}

// Remove deletes the record with the given id.
func (m *MemoryStore) Remove(id string) (Product, error) {
	m.mu.Lock()
	index := m.indexLocked(id)
	if index < 0 {
		m.mu.Unlock()
		return Product{}, fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	change := m.removeLocked(index)
	m.mu.Unlock()

	m.notify(change)
	return change.Product, nil
}

// Get returns the product with the given id and its current global index.
func (m *MemoryStore) Get(id string) (Product, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	index := m.indexLocked(id)
	if index < 0 {
		return Product{}, -1, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return m.products[index], index, nil
}

// List returns a snapshot of the catalog.
//
// The returned slice is a copy; modifications do not affect the store.
func (m *MemoryStore) List() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]Product, len(m.products))
	copy(products, m.products)
	return Snapshot{Version: m.version, Products: products}
}

// Len returns the number of products in the catalog.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}

// Version returns the current catalog version.
func (m *MemoryStore) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// replaceLocked overwrites name and price at index. Caller holds mu.
func (m *MemoryStore) replaceLocked(index int, p Product) Change {
	p.ID = m.products[index].ID
	m.products[index] = p
	m.version++
	return Change{Kind: ChangeEdited, Product: p, Index: index, Version: m.version}
}

// removeLocked deletes index and closes the gap. Caller holds mu.
func (m *MemoryStore) removeLocked(index int) Change {
	removed := m.products[index]
	m.products = slices.Delete(m.products, index, index+1)
	m.version++
	return Change{Kind: ChangeRemoved, Product: removed, Index: index, Version: m.version}
}

// indexLocked returns the global index of id, or -1. Caller holds mu.
func (m *MemoryStore) indexLocked(id string) int {
	for i, p := range m.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Observe registers fn to be called synchronously after every mutation.
//
// Observers run in registration order on the mutating goroutine, after the
// store lock has been released, so an observer may read the store. Changes
// reach observers in version order: a mutation waits until every earlier
// version has been delivered. An observer must therefore not mutate the
// store. The returned function removes the observer; it is safe to call
// more than once.
func (m *MemoryStore) Observe(fn func(Change)) (cancel func()) {
	o := &observer{fn: fn}

	m.subMu.Lock()
	m.observers = append(m.observers, o)
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			for i, existing := range m.observers {
				if existing == o {
					m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribe creates a new subscription and returns a channel for receiving changes.
//
// The returned channel has a buffer of 100 messages. If the buffer fills
// (slow consumer), new changes are dropped for this subscriber. Changes that
// are delivered arrive in version order.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent resource leaks.
func (m *MemoryStore) Subscribe() <-chan Change {
	ch := make(chan Change, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (m *MemoryStore) Unsubscribe(ch <-chan Change) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notify runs observers in order, then fans the change out to subscribers.
// It waits for the previous version to be delivered first.
func (m *MemoryStore) notify(change Change) {
	m.notifyMu.Lock()
	for m.notified+1 < change.Version {
		m.notifyCond.Wait()
	}
	m.notifyMu.Unlock()

	defer func() {
		m.notifyMu.Lock()
		m.notified = change.Version
		m.notifyMu.Unlock()
		m.notifyCond.Broadcast()
	}()

	m.subMu.RLock()
	observers := make([]*observer, len(m.observers))
	copy(observers, m.observers)
	m.subMu.RUnlock()

	for _, o := range observers {
		o.fn(change)
	}

	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- change:
		default:
			// subscriber is slow, drop the message
		}
	}
}
