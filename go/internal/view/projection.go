// Package view maintains live, predicate-filtered projections over the roster.
package view

import (
	"slices"
	"sync"
)

// Predicate selects the entities a projection shows.
type Predicate[T any] func(T) bool

// ShowAll is the default predicate.
func ShowAll[T any](T) bool { return true }

// Projection is a filtered copy of a source collection, in source order.
// It is recomputed on Refresh, which the roster triggers after every change.
type Projection[T any] struct {
	source    func() []T
	predicate Predicate[T]
	filtered  bool
	items     []T

	mu          sync.Mutex
	subscribers map[int]func([]T)
	nextID      int
}

// NewProjection creates a projection showing everything source returns.
func NewProjection[T any](source func() []T) *Projection[T] {
	p := &Projection[T]{
		source:      source,
		predicate:   ShowAll[T],
		subscribers: make(map[int]func([]T)),
	}
	p.items = source()
	return p
}

// SetPredicate replaces the active predicate and recomputes. A nil predicate shows all.
func (p *Projection[T]) SetPredicate(pred Predicate[T]) {
	if pred == nil {
		p.ShowAll()
		return
	}
	p.predicate = pred
	p.filtered = true
	p.Refresh()
}

// ShowAll resets the predicate.
func (p *Projection[T]) ShowAll() {
	p.predicate = ShowAll[T]
	p.filtered = false
	p.Refresh()
}

// Filtered reports whether a predicate other than ShowAll is active.
func (p *Projection[T]) Filtered() bool { return p.filtered }

// Refresh recomputes the items from the source and notifies subscribers.
func (p *Projection[T]) Refresh() {
	var items []T
	for _, item := range p.source() {
		if p.predicate(item) {
			items = append(items, item)
		}
	}
	p.items = items
	p.publish()
}

// Items returns a copy of the visible items.
func (p *Projection[T]) Items() []T { return slices.Clone(p.items) }

// Len returns the number of visible items.
func (p *Projection[T]) Len() int { return len(p.items) }

// At returns the item at a 1-based ordinal.
func (p *Projection[T]) At(ordinal int) (T, bool) {
	if ordinal < 1 || ordinal > len(p.items) {
		var zero T
		return zero, false
	}
	return p.items[ordinal-1], true
}

// Subscribe registers fn to receive the items after every refresh. fn is
// called synchronously on the refreshing goroutine and must not block.
func (p *Projection[T]) Subscribe(fn func([]T)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *Projection[T]) publish() {
	p.mu.Lock()
	fns := make([]func([]T), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(p.items))
	}
}
