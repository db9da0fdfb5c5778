package watchlist

import (
	"context"
	"fmt"

	market "stockplus/internal/domain/entity/market"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MutationState tracks an optimistic favorite change.
type MutationState int

const (
	MutationPending MutationState = iota
	MutationConfirmed
	MutationRolledBack
	// MutationDiverged is a failed change kept locally because rollback is
	// disabled. The next Load restores the server value.
	MutationDiverged
)

func (s MutationState) String() string {
	switch s {
	case MutationPending:
		return "pending"
	case MutationConfirmed:
		return "confirmed"
	case MutationRolledBack:
		return "rolled_back"
	case MutationDiverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Mutation is one favorite toggle, applied locally before the backend answers.
type Mutation struct {
	ID       uuid.UUID     `json:"id"`
	Code     string        `json:"code"`
	GroupID  int           `json:"groupId"`
	Previous bool          `json:"previous"`
	Desired  bool          `json:"desired"`
	State    MutationState `json:"state"`
	Err      error         `json:"-"`
}

func mutationKey(groupID int, code string) string {
	return fmt.Sprintf("%d|%s", groupID, code)
}

// ToggleFavorite sets the favorite flag locally, then confirms it with the
// backend. On failure the flag is restored when rollback is enabled and no
// newer toggle superseded this one.
func (s *Store) ToggleFavorite(ctx context.Context, code string, groupID int, value bool) (Mutation, error) {
	if code == "" {
		return Mutation{}, ErrEmptyCode
	}
	if !market.ValidGroup(groupID) {
		return Mutation{}, ErrInvalidGroup
	}

	key := mutationKey(groupID, code)
	m := &Mutation{ID: uuid.New(), Code: code, GroupID: groupID, Desired: value, State: MutationPending}

	s.mu.Lock()
	idx := s.indexLocked(groupID, code)
	if idx < 0 {
		s.mu.Unlock()
		return Mutation{}, ErrNotFound
	}
	g := s.groups[groupID]
	m.Previous = g.items[idx].Favorite
	g.items[idx].Favorite = value
	s.mutations[key] = m
	items := cloneInstruments(g.items)
	s.mu.Unlock()
	s.notify(groupID, items)

	log := s.logger.WithFields(logrus.Fields{"mutation_id": m.ID, "code": code, "group": groupID, "favorite": value})
	err := s.watchlist.SetFavorite(ctx, code, groupID, value)

	s.mu.Lock()
	superseded := s.mutations[key] != m
	if !superseded {
		delete(s.mutations, key)
	}
	switch {
	case err == nil:
		m.State = MutationConfirmed
	case s.opts.RollbackOnFailure:
		m.State = MutationRolledBack
		m.Err = err
		if !superseded {
			if i := s.indexLocked(groupID, code); i >= 0 {
				s.groups[groupID].items[i].Favorite = m.Previous
			}
		}
	default:
		m.State = MutationDiverged
		m.Err = err
	}
	result := *m
	var rolled []market.Instrument
	if m.State == MutationRolledBack && !superseded {
		rolled = cloneInstruments(s.groups[groupID].items)
	}
	s.mu.Unlock()

	if err != nil {
		log.WithError(err).WithField("state", result.State).Warn("favorite toggle failed")
		if rolled != nil {
			s.notify(groupID, rolled)
		}
		return result, fmt.Errorf("set favorite %s: %w", code, err)
	}
	log.Debug("favorite confirmed")
	return result, nil
}

// PendingMutation returns the unconfirmed toggle for a symbol, if any.
func (s *Store) PendingMutation(groupID int, code string) (Mutation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mutations[mutationKey(groupID, code)]
	if !ok {
		return Mutation{}, false
	}
	return *m, true
}

func (s *Store) indexLocked(groupID int, code string) int {
	g, ok := s.groups[groupID]
	if !ok {
		return -1
	}
	for i := range g.items {
		if g.items[i].Code == code {
			return i
		}
	}
	return -1
}
