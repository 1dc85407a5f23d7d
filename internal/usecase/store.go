package usecase

import (
	"sync"

	"github.com/xavierca1/lintra-console/internal/entity"
)

// Store is the page-scoped state shared by the board, the stage editor and the forms.
// Every mutation goes through a named method; readers receive copies.
type Store struct {
	mu           sync.RWMutex
	funnels      []entity.Funnel
	activeFunnel string
	deals        []entity.Deal
	users        []entity.User
	contacts     []entity.Contact
	moveSeq      map[string]uint64
}

func NewStore() *Store {
	return &Store{moveSeq: make(map[string]uint64)}
}

func (s *Store) Funnels() []entity.Funnel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Funnel, len(s.funnels))
	for i, f := range s.funnels {
		out[i] = f.Clone()
	}
	return out
}

func (s *Store) SetFunnels(funnels []entity.Funnel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funnels = make([]entity.Funnel, len(funnels))
	for i, f := range funnels {
		s.funnels[i] = f.Clone()
	}
	if s.activeFunnel != "" && s.funnelIndex(s.activeFunnel) < 0 {
		s.activeFunnel = ""
	}
	if s.activeFunnel == "" && len(s.funnels) > 0 {
		s.activeFunnel = s.funnels[0].ID
	}
}

func (s *Store) Funnel(id string) (entity.Funnel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.funnelIndex(id)
	if i < 0 {
		return entity.Funnel{}, false
	}
	return s.funnels[i].Clone(), true
}

// ActiveFunnel returns the funnel shown on the board.
func (s *Store) ActiveFunnel() (entity.Funnel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.funnelIndex(s.activeFunnel)
	if i < 0 {
		return entity.Funnel{}, false
	}
	return s.funnels[i].Clone(), true
}

func (s *Store) SetActiveFunnel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.funnelIndex(id) < 0 {
		return entity.ErrFunnelNotFound
	}
	s.activeFunnel = id
	return nil
}

func (s *Store) AddFunnel(f entity.Funnel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funnels = append(s.funnels, f.Clone())
}

func (s *Store) ReplaceFunnel(f entity.Funnel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.funnelIndex(f.ID)
	if i < 0 {
		return entity.ErrFunnelNotFound
	}
	s.funnels[i] = f.Clone()
	return nil
}

// RemoveFunnel drops the funnel and its deals. If it was active, the next funnel
// (or the previous one, when it was last) becomes active.
func (s *Store) RemoveFunnel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.funnelIndex(id)
	if i < 0 {
		return entity.ErrFunnelNotFound
	}
	s.funnels = append(s.funnels[:i], s.funnels[i+1:]...)

	kept := s.deals[:0]
	for _, d := range s.deals {
		if d.FunnelID == id {
			delete(s.moveSeq, d.ID)
			continue
		}
		kept = append(kept, d)
	}
	s.deals = kept

	if s.activeFunnel == id {
		s.activeFunnel = ""
		switch {
		case i < len(s.funnels):
			s.activeFunnel = s.funnels[i].ID
		case len(s.funnels) > 0:
			s.activeFunnel = s.funnels[len(s.funnels)-1].ID
		}
	}
	return nil
}

func (s *Store) funnelIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.funnels {
		if s.funnels[i].ID == id {
			return i
		}
	}
	return -1
}

// Deals returns the deals of a funnel in insertion order.
func (s *Store) Deals(funnelID string) []entity.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Deal
	for _, d := range s.deals {
		if d.FunnelID == funnelID {
			out = append(out, d.Clone())
		}
	}
	return out
}

func (s *Store) Deal(id string) (entity.Deal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.dealIndex(id)
	if i < 0 {
		return entity.Deal{}, false
	}
	return s.deals[i].Clone(), true
}

func (s *Store) AppendDeal(d entity.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals = append(s.deals, d.Clone())
}

// MergeDeals appends the deals that are not in the store yet and returns how many were added.
func (s *Store) MergeDeals(deals []entity.Deal) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, d := range deals {
		if s.dealIndex(d.ID) >= 0 {
			continue
		}
		s.deals = append(s.deals, d.Clone())
		added++
	}
	return added
}

func (s *Store) ReplaceDeal(d entity.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.dealIndex(d.ID)
	if i < 0 {
		return entity.ErrDealNotFound
	}
	s.deals[i] = d.Clone()
	return nil
}

func (s *Store) RemoveDeal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.dealIndex(id)
	if i < 0 {
		return entity.ErrDealNotFound
	}
	s.deals = append(s.deals[:i], s.deals[i+1:]...)
	delete(s.moveSeq, id)
	return nil
}

// MoveDeal sets the deal's stage and returns the previous stage together with the
// sequence number of this move.
func (s *Store) MoveDeal(id, stageID string) (prev string, seq uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.dealIndex(id)
	if i < 0 {
		return "", 0, entity.ErrDealNotFound
	}
	prev = s.deals[i].StageID
	s.deals[i].StageID = stageID
	s.moveSeq[id]++
	return prev, s.moveSeq[id], nil
}

// RestoreStage puts the deal back in stageID, but only if no other move of the same
// deal happened after seq. It reports whether the restore was applied.
func (s *Store) RestoreStage(id, stageID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.dealIndex(id)
	if i < 0 || s.moveSeq[id] != seq {
		return false
	}
	s.deals[i].StageID = stageID
	s.moveSeq[id]++
	return true
}

func (s *Store) dealIndex(id string) int {
	for i := range s.deals {
		if s.deals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.User(nil), s.users...)
}

func (s *Store) User(id string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return entity.User{}, false
}

func (s *Store) SetUsers(users []entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]entity.User(nil), users...)
}

func (s *Store) Contacts() []entity.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Contact(nil), s.contacts...)
}

func (s *Store) SetContacts(contacts []entity.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append([]entity.Contact(nil), contacts...)
}
