package service

import (
	"home-panel/internal/domain/model"
	"sync"
)

// Store holds the panel snapshot. Writes go through model.Reduce; the last
// write by arrival order wins.
type Store struct {
	mu        sync.RWMutex
	snap      model.Snapshot
	closed    bool
	nextSub   int
	listeners map[int]func(model.Snapshot)
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]func(model.Snapshot))}
}

func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Apply merges u and returns the resulting snapshot. After Close it is a no-op.
func (s *Store) Apply(u model.Update) model.Snapshot {
	snap, _ := s.update(func(model.Snapshot) model.Update { return u })
	return snap
}

// Toggle flips device under a single lock and returns the new value. ok is
// false once the store is closed.
func (s *Store) Toggle(device model.Device) (on bool, ok bool) {
	_, ok = s.update(func(cur model.Snapshot) model.Update {
		on = !cur.Devices.Get(device)
		return model.Update{}.SetDevice(device, on)
	})
	return on, ok
}

func (s *Store) update(next func(model.Snapshot) model.Update) (model.Snapshot, bool) {
	s.mu.Lock()
	if s.closed {
		snap := s.snap
		s.mu.Unlock()
		return snap, false
	}
	u := next(s.snap)
	if u.IsEmpty() {
		snap := s.snap
		s.mu.Unlock()
		return snap, true
	}
	s.snap = model.Reduce(s.snap, u)
	snap := s.snap
	listeners := make([]func(model.Snapshot), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap, true
}

// Subscribe registers fn to run after every applied update.
func (s *Store) Subscribe(fn func(model.Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close releases the store. Responses that land afterwards are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.listeners = make(map[int]func(model.Snapshot))
	s.mu.Unlock()
}

func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
