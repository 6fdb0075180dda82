package navigation

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a requested edge does not exist.
var ErrInvalidTransition = errors.New("invalid transition")

// DefaultSelectedID is the activity and announcement selected before any click.
const DefaultSelectedID = 1

// State is the current screen plus the ids the detail screens read.
type State struct {
	Page                   Page   `json:"page"`
	SelectedActivityID     int    `json:"selected_activity_id"`
	SelectedAnnouncementID int    `json:"selected_announcement_id"`
	Username               string `json:"username"`
}

// NewState returns the state a fresh session starts in.
func NewState() State {
	return State{
		Page:                   Welcome,
		SelectedActivityID:     DefaultSelectedID,
		SelectedAnnouncementID: DefaultSelectedID,
	}
}

// Follow takes a Link edge to the given page.
func (s *State) Follow(to Page) error {
	return s.take(to, Link)
}

// Back returns to the parent of the current page.
func (s *State) Back() error {
	to, ok := Parent(s.Page)
	if !ok {
		return fmt.Errorf("%w: %s has no parent", ErrInvalidTransition, s.Page)
	}
	s.Page = to
	return nil
}

// Complete takes an Action edge. The caller has already validated whatever
// the action requires.
func (s *State) Complete(to Page) error {
	return s.take(to, Action)
}

// OpenActivity shows the detail screen for an activity.
func (s *State) OpenActivity(id int) error {
	if err := s.take(ActivityDetail, Select); err != nil {
		return err
	}
	s.SelectedActivityID = id
	return nil
}

// OpenAnnouncement shows the detail screen for an announcement.
func (s *State) OpenAnnouncement(id int) error {
	if err := s.take(AnnouncementDetail, Select); err != nil {
		return err
	}
	s.SelectedAnnouncementID = id
	return nil
}

// SignIn records the username and completes the login edge.
func (s *State) SignIn(username string) error {
	if err := s.Complete(Home); err != nil {
		return err
	}
	s.Username = username
	return nil
}

// SignOut clears the username and returns to Welcome from any page.
func (s *State) SignOut() {
	s.Username = ""
	s.Page = Welcome
}

func (s *State) take(to Page, kind EdgeKind) error {
	if !Allowed(s.Page, to, kind) {
		return fmt.Errorf("%w: %s -> %s (%s)", ErrInvalidTransition, s.Page, to, kind)
	}
	s.Page = to
	return nil
}
