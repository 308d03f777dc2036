package sessions

import (
	"errors"
	"sync"
	"time"

	"Pickme/api/bracket"

	"github.com/google/uuid"
)

// ErrStaleSelection means the selection was made against a pair that is no
// longer on offer, e.g. a double click during the reveal animation.
var ErrStaleSelection = errors.New("sessions: selection does not match the pair on offer")

// Session serialises access to one engine.
type Session struct {
	ID          uuid.UUID
	CatalogID   uint
	Contestants int
	CreatedAt   time.Time

	mu       sync.Mutex
	engine   *bracket.Engine
	touched  time.Time
	recorded bool
	lastPick *Pick
	now      func() time.Time
}

// Pick is the most recent accepted selection.
type Pick struct {
	Match  int          `json:"match"`
	Pair   bracket.Pair `json:"pair"`
	Index  int          `json:"index"`
	Winner bracket.Item `json:"winner"`
}

// View is a snapshot of a session for rendering.
type View struct {
	ID            uuid.UUID     `json:"id"`
	CatalogID     uint          `json:"catalog_id"`
	State         string        `json:"state"`
	RoundLabel    string        `json:"round_label"`
	RoundSize     int           `json:"round_size"`
	MatchInRound  int           `json:"match_in_round"`
	MatchesPlayed int           `json:"matches_played"`
	TotalMatches  int           `json:"total_matches"`
	Alive         int           `json:"alive"`
	Pair          *bracket.Pair `json:"pair,omitempty"`
	Champion      *bracket.Item `json:"champion,omitempty"`
	Finished      bool          `json:"finished"`
	LastPick      *Pick         `json:"last_pick,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.now()
	return s.viewLocked()
}

// Select applies a pick for the pair numbered match, where match is the
// MatchesPlayed value the caller saw when the pair was displayed.
func (s *Session) Select(match, index int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.now()

	pair, ok := s.engine.CurrentPair()
	if ok && match != s.engine.MatchesPlayed() {
		return s.viewLocked(), ErrStaleSelection
	}
	if err := s.engine.SelectWinner(index); err != nil {
		return s.viewLocked(), err
	}
	s.lastPick = &Pick{Match: match, Pair: pair, Index: index, Winner: pair[index]}
	return s.viewLocked(), nil
}

// ClaimResult returns the champion the first time it is called after the
// tournament finished, so the result is stored once.
func (s *Session) ClaimResult() (bracket.Item, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	champion, ok := s.engine.Champion()
	if !ok || s.recorded {
		return bracket.Item{}, 0, false
	}
	s.recorded = true
	return champion, s.engine.MatchesPlayed(), true
}

// Champion returns the winner once the tournament is over.
func (s *Session) Champion() (bracket.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Champion()
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func (s *Session) viewLocked() View {
	v := View{
		ID:            s.ID,
		CatalogID:     s.CatalogID,
		RoundLabel:    s.engine.RoundLabel(),
		RoundSize:     s.engine.RoundSize(),
		MatchInRound:  s.engine.MatchInRound(),
		MatchesPlayed: s.engine.MatchesPlayed(),
		TotalMatches:  s.Contestants - 1,
		Alive:         s.engine.Alive(),
		Finished:      s.engine.IsFinished(),
	}
	if s.lastPick != nil {
		pick := *s.lastPick
		v.LastPick = &pick
	}
	if pair, ok := s.engine.CurrentPair(); ok {
		v.Pair = &pair
	}
	if champion, ok := s.engine.Champion(); ok {
		v.Champion = &champion
	}
	v.State = s.engine.State().String()
	return v
}
