package gamestate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samdwyer/mazecrawl/internal/entity"
)

const (
	// MaxPartySize is the most characters that can adventure together.
	MaxPartySize = 6
	// FrontRowSize is how many members fight in melee range.
	FrontRowSize = 3
)

var (
	// ErrPartyFull is returned when a seventh member tries to join.
	ErrPartyFull = errors.New("party is full")
	// ErrNotOnRoster is returned for character ids missing from the roster.
	ErrNotOnRoster = errors.New("character is not on the roster")
	// ErrAlreadyInParty is returned when a member joins twice.
	ErrAlreadyInParty = errors.New("character is already in the party")
)

// Recruit adds c to the roster, replacing any record with the same id.
func (s *GameState) Recruit(c entity.Character) {
	if s.Roster == nil {
		s.Roster = make(map[string]entity.Character)
	}
	s.Roster[c.ID] = c
}

// Join adds a roster character to the party. The front row fills first.
func (s *GameState) Join(id string) error {
	if _, ok := s.Roster[id]; !ok {
		return fmt.Errorf("join %q: %w", id, ErrNotOnRoster)
	}
	if s.Party.Has(id) {
		return fmt.Errorf("join %q: %w", id, ErrAlreadyInParty)
	}
	if len(s.Party.Members) >= MaxPartySize {
		return fmt.Errorf("join %q: %w", id, ErrPartyFull)
	}

	s.Party.Members = append(s.Party.Members, id)
	if len(s.Party.Formation.FrontRow) < FrontRowSize {
		s.Party.Formation.FrontRow = append(s.Party.Formation.FrontRow, id)
	} else {
		s.Party.Formation.BackRow = append(s.Party.Formation.BackRow, id)
	}
	return nil
}

// Leave removes a character from the party and its formation row.
// It reports whether the character was a member.
func (s *GameState) Leave(id string) bool {
	if !s.Party.Has(id) {
		return false
	}
	s.Party.Members = remove(s.Party.Members, id)
	s.Party.Formation.FrontRow = remove(s.Party.Formation.FrontRow, id)
	s.Party.Formation.BackRow = remove(s.Party.Formation.BackRow, id)
	return true
}

// Has reports whether id is a party member.
func (p *Party) Has(id string) bool {
	return slices.Contains(p.Members, id)
}

// Size returns the number of party members.
func (p *Party) Size() int {
	return len(p.Members)
}

func remove(refs []string, id string) []string {
	return slices.DeleteFunc(refs, func(ref string) bool { return ref == id })
}
