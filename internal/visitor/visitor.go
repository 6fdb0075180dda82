// Package visitor provides the in-memory visitor lists used by the visitor
// registration screen and the booking screen.
package visitor

import (
	"errors"
	"fmt"

	"github.com/evcraddock/museum-visit/internal/validate"
)

var (
	ErrNotFound         = errors.New("visitor not found")
	ErrBlacklisted      = errors.New("visitor is blacklisted")
	ErrSelectionLimit   = errors.New("visitor selection limit reached")
	ErrNoPendingRemoval = errors.New("no removal awaiting confirmation")
)

// Visitor is a person a booking can be made for.
type Visitor struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	IDCard      string `json:"id_card"`
	Selected    bool   `json:"selected"`
	Blacklisted bool   `json:"blacklisted"`
	Warning     string `json:"warning,omitempty"`
}

// Policy limits how many visitors may be selected at once.
type Policy struct {
	MaxSelected int
	EnforceCap  bool
}

// DefaultPolicy allows three visitors per booking.
func DefaultPolicy() Policy {
	return Policy{MaxSelected: 3, EnforceCap: true}
}

// Store is one screen's visitor list. It is not safe for concurrent use.
type Store struct {
	visitors []Visitor
	nextID   int
	removing int
	policy   Policy
}

// NewStore creates a store holding a copy of seed.
func NewStore(seed []Visitor, policy Policy) *Store {
	s := &Store{
		visitors: make([]Visitor, len(seed)),
		nextID:   1,
		policy:   policy,
	}
	copy(s.visitors, seed)
	for _, v := range seed {
		if v.ID >= s.nextID {
			s.nextID = v.ID + 1
		}
	}
	return s
}

// List returns a copy of the visitors in display order.
func (s *Store) List() []Visitor {
	out := make([]Visitor, len(s.visitors))
	copy(out, s.visitors)
	return out
}

// Len returns the number of visitors.
func (s *Store) Len() int {
	return len(s.visitors)
}

// Policy returns the selection policy of the store.
func (s *Store) Policy() Policy {
	return s.policy
}

// Get returns the visitor with the given id.
func (s *Store) Get(id int) (Visitor, error) {
	i, err := s.index(id)
	if err != nil {
		return Visitor{}, err
	}
	return s.visitors[i], nil
}

// Add validates the form and appends a visitor with a fresh id.
func (s *Store) Add(f validate.VisitorForm) (Visitor, error) {
	if err := validate.Visitor(f); err != nil {
		return Visitor{}, err
	}

	v := Visitor{
		ID:     s.nextID,
		Name:   f.Name,
		Phone:  f.Phone,
		IDCard: f.IDCard,
	}
	s.nextID++
	s.visitors = append(s.visitors, v)
	return v, nil
}

// Edit validates the form and replaces the name, phone and id card of a
// visitor. The id and the selection and blacklist flags are kept.
func (s *Store) Edit(id int, f validate.VisitorForm) (Visitor, error) {
	i, err := s.index(id)
	if err != nil {
		return Visitor{}, err
	}
	if err := validate.Visitor(f); err != nil {
		return Visitor{}, err
	}

	s.visitors[i].Name = f.Name
	s.visitors[i].Phone = f.Phone
	s.visitors[i].IDCard = f.IDCard
	return s.visitors[i], nil
}

// RequestRemoval marks a visitor for removal. Nothing is removed until
// ConfirmRemoval is called.
func (s *Store) RequestRemoval(id int) error {
	if _, err := s.index(id); err != nil {
		return err
	}
	s.removing = id
	return nil
}

// PendingRemoval returns the id awaiting confirmation, if any.
func (s *Store) PendingRemoval() (int, bool) {
	return s.removing, s.removing != 0
}

// ConfirmRemoval removes the visitor marked by RequestRemoval.
func (s *Store) ConfirmRemoval() (Visitor, error) {
	if s.removing == 0 {
		return Visitor{}, ErrNoPendingRemoval
	}
	id := s.removing
	s.removing = 0

	i, err := s.index(id)
	if err != nil {
		return Visitor{}, err
	}
	v := s.visitors[i]
	s.visitors = append(s.visitors[:i], s.visitors[i+1:]...)
	return v, nil
}

// CancelRemoval drops the pending removal and leaves the list unchanged.
func (s *Store) CancelRemoval() {
	s.removing = 0
}

// Toggle flips the selection of a visitor. Blacklisted visitors are never
// changed. Selecting beyond the policy cap is rejected when enforced.
func (s *Store) Toggle(id int) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	v := &s.visitors[i]
	if v.Blacklisted {
		return ErrBlacklisted
	}
	if !v.Selected && s.policy.EnforceCap && s.SelectedCount() >= s.policy.MaxSelected {
		return fmt.Errorf("%w: at most %d", ErrSelectionLimit, s.policy.MaxSelected)
	}
	v.Selected = !v.Selected
	return nil
}

// SelectedCount returns how many visitors are selected.
func (s *Store) SelectedCount() int {
	n := 0
	for _, v := range s.visitors {
		if v.Selected {
			n++
		}
	}
	return n
}

// Selected returns the selected visitors that are not blacklisted.
func (s *Store) Selected() []Visitor {
	var out []Visitor
	for _, v := range s.visitors {
		if v.Selected && !v.Blacklisted {
			out = append(out, v)
		}
	}
	return out
}

func (s *Store) index(id int) (int, error) {
	for i, v := range s.visitors {
		if v.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrNotFound, id)
}
