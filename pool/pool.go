// Package pool provides a free-list object pool with lifecycle hooks.
//
// Released items are never dropped by the garbage collector. They keep
// their identity and whatever state the release hook left on them until
// the next Get.
package pool

import (
	"errors"
	"sync"
)

var (
	ErrNotActive = errors.New("pool: item is not active in this pool")
	ErrDisposed  = errors.New("pool: disposed")
)

// Hooks customize a Pool. New is required.
type Hooks[T comparable] struct {
	// New creates an item when the free list is empty.
	New func() T
	// OnGet runs on every item handed out.
	OnGet func(T)
	// OnRelease runs on every item returned.
	OnRelease func(T)
	// OnDestroy runs on items discarded by the size cap or by Dispose.
	OnDestroy func(T)
}

// Pool reuses items of type T. All methods are safe for concurrent use.
type Pool[T comparable] struct {
	mu       sync.Mutex
	hooks    Hooks[T]
	free     []T
	active   map[T]struct{}
	maxSize  int // max idle items, 0 means unlimited
	disposed bool
}

// New creates a pool retaining at most maxIdle released items.
func New[T comparable](hooks Hooks[T], maxIdle int) *Pool[T] {
	if hooks.New == nil {
		panic("pool: Hooks.New is nil")
	}
	return &Pool[T]{
		hooks:   hooks,
		active:  make(map[T]struct{}),
		maxSize: maxIdle,
	}
}

// Get pops an idle item or creates a new one.
func (p *Pool[T]) Get() (T, error) {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		var zero T
		return zero, ErrDisposed
	}
	var item T
	if n := len(p.free); n > 0 {
		item = p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
	} else {
		item = p.hooks.New()
	}
	p.active[item] = struct{}{}
	p.mu.Unlock()

	if p.hooks.OnGet != nil {
		p.hooks.OnGet(item)
	}
	return item, nil
}

// Release returns an item handed out by Get. Releasing an item twice, or
// one the pool never issued, fails with ErrNotActive.
func (p *Pool[T]) Release(item T) error {
	p.mu.Lock()
	if _, ok := p.active[item]; !ok {
		p.mu.Unlock()
		return ErrNotActive
	}
	delete(p.active, item)
	keep := !p.disposed && (p.maxSize <= 0 || len(p.free) < p.maxSize)
	if keep {
		p.free = append(p.free, item)
	}
	p.mu.Unlock()

	if p.hooks.OnRelease != nil {
		p.hooks.OnRelease(item)
	}
	if !keep && p.hooks.OnDestroy != nil {
		p.hooks.OnDestroy(item)
	}
	return nil
}

// Warmup creates idle items until count are available.
func (p *Pool[T]) Warmup(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.disposed && len(p.free) < count && (p.maxSize <= 0 || len(p.free) < p.maxSize) {
		item := p.hooks.New()
		if p.hooks.OnRelease != nil {
			p.hooks.OnRelease(item)
		}
		p.free = append(p.free, item)
	}
}

func (p *Pool[T]) CountActive() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}

func (p *Pool[T]) CountInactive() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Dispose destroys every idle item. Items still out are destroyed when
// they come back.
func (p *Pool[T]) Dispose() {
	p.mu.Lock()
	free := p.free
	p.free = nil
	p.disposed = true
	p.mu.Unlock()

	if p.hooks.OnDestroy == nil {
		return
	}
	for _, item := range free {
		p.hooks.OnDestroy(item)
	}
}
