package memory

import (
	"sync"
	"time"

	"hushh-site-backend/internal/domain"
)

// DraftStore keeps live contact drafts in process memory. Drafts are
// deliberately never persisted: they model the ephemeral client-side form
// state and die with the process or the idle TTL.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*domain.Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[string]*domain.Draft),
	}
}

func (s *DraftStore) Put(draft *domain.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
}

func (s *DraftStore) Get(id string) (*domain.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	return d, ok
}

func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// ReapIdle removes drafts whose last activity is older than the TTL and
// returns them so the caller can release recorder resources.
//
// Submit holds a draft's mutex across the outbound dispatch, which has no
// timeout, so the janitor must never wait on a draft mutex while holding
// the store lock. TryLock keeps the store responsive: a draft whose mutex
// is contended is busy right now and therefore not idle.
func (s *DraftStore) ReapIdle(ttl time.Duration) []*domain.Draft {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var reaped []*domain.Draft
	for id, d := range s.drafts {
		if !d.TryLock() {
			continue
		}
		idle := d.LastActivity.Before(cutoff) && !d.InFlight
		d.Unlock()
		if idle {
			reaped = append(reaped, d)
			delete(s.drafts, id)
		}
	}
	return reaped
}
