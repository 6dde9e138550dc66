package notify

import (
	"sort"
	"sync"
)

// registry manages subscriptions organized by topic pattern.
// It is thread-safe for concurrent access.
type registry struct {
	mu   sync.RWMutex
	subs map[Topic][]*subscription
	byID map[string]*subscription
}

func newRegistry() *registry {
	return &registry{
		subs: make(map[Topic][]*subscription),
		byID: make(map[string]*subscription),
	}
}

// add inserts a subscription under its topic pattern, keeping the
// pattern's subscriptions in priority order (lower values first).
func (r *registry) add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pattern := sub.Topic()
	subs := append(r.subs[pattern], sub)
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].config.Priority < subs[j].config.Priority
	})
	r.subs[pattern] = subs
	r.byID[sub.ID()] = sub
}

// remove removes a subscription by ID.
func (r *registry) remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	pattern := sub.Topic()
	subs := r.subs[pattern]
	for i, s := range subs {
		if s.ID() == subID {
			r.subs[pattern] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[pattern]) == 0 {
		delete(r.subs, pattern)
	}

	delete(r.byID, subID)
	return true
}

// match returns a copy of all active subscriptions whose pattern matches
// the given concrete topic, in priority order across patterns.
func (r *registry) match(t Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*subscription
	for pattern, subs := range r.subs {
		if !t.Matches(pattern) {
			continue
		}
		for _, sub := range subs {
			if sub.IsActive() {
				all = append(all, sub)
			}
		}
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].config.Priority < all[j].config.Priority
	})
	return all
}

// countActive returns the number of active subscriptions.
func (r *registry) countActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			count++
		}
	}
	return count
}

// clear removes all subscriptions.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = make(map[Topic][]*subscription)
	r.byID = make(map[string]*subscription)
}
