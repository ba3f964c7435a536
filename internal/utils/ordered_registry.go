package utils

import "sync"

// OrderedRegistry is a generic registry that remembers the order keys were
// first registered in. Re-registering a key replaces its value (last write
// wins) but keeps its original position, so iteration is deterministic.
type OrderedRegistry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// NewOrderedRegistry creates an empty registry
func NewOrderedRegistry[K comparable, V any]() *OrderedRegistry[K, V] {
	return &OrderedRegistry[K, V]{items: make(map[K]V)}
}

// Set adds or replaces an item
func (r *OrderedRegistry[K, V]) Set(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(key, value)
}

func (r *OrderedRegistry[K, V]) set(key K, value V) {
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = value
}

// Get retrieves an item from the registry
func (r *OrderedRegistry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// Has checks if a key exists in the registry
func (r *OrderedRegistry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// Keys returns all keys in registration order
func (r *OrderedRegistry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]K(nil), r.order...)
}

// Values returns all values in registration order
func (r *OrderedRegistry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make([]V, 0, len(r.order))
	for _, k := range r.order {
		values = append(values, r.items[k])
	}
	return values
}

// Size returns the number of items in the registry
func (r *OrderedRegistry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// ForEach applies fn to each item in registration order. fn must not
// register into the same registry.
func (r *OrderedRegistry[K, V]) ForEach(fn func(K, V)) {
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		fn(k, v)
	}
}

// Filter returns the values matching predicate, in registration order
func (r *OrderedRegistry[K, V]) Filter(predicate func(K, V) bool) []V {
	var result []V
	r.ForEach(func(k K, v V) {
		if predicate(k, v) {
			result = append(result, v)
		}
	})
	return result
}

// Merge registers every item of other, in other's order
func (r *OrderedRegistry[K, V]) Merge(other *OrderedRegistry[K, V]) {
	other.ForEach(func(k K, v V) {
		r.Set(k, v)
	})
}
