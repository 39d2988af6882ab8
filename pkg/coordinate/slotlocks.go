package coordinate

import (
	"fmt"
	"sync"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/roles"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// slotLocks serializes same-instance signups for one (type, date, role)
// slot, shrinking the pre-check race window. Locks are never reclaimed;
// the key space is bounded by the number of slots in play.
type slotLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *slotLocks) lock(signupType store.SignupType, date string, role roles.Role) func() {
	key := fmt.Sprintf("%s|%s|%s", signupType, date, role)

	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
