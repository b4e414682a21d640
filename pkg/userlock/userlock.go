package userlock

import "sync"

// Set hands out one mutex per user id, so mutations of a single user's
// cart can be serialized without blocking other users.
type Set struct {
	locks sync.Map
}

func New() *Set {
	return &Set{}
}

// Lock acquires the mutex for userID and returns its unlock func.
func (s *Set) Lock(userID string) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
