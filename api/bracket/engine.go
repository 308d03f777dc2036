package bracket

import "fmt"

// Item is one contestant. Identity is positional: two items with the same
// title in different slots are different contestants.
type Item struct {
	Title     string `json:"title"`
	MediaLink string `json:"media_link"`
}

// Pair is the two items currently on offer.
type Pair [2]Item

type State int

const (
	AwaitingStart State = iota
	PairReady
	AwaitingSelection
	RoundComplete
	Finished
)

func (s State) String() string {
	switch s {
	case AwaitingStart:
		return "awaiting_start"
	case PairReady:
		return "pair_ready"
	case AwaitingSelection:
		return "awaiting_selection"
	case RoundComplete:
		return "round_complete"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Observer is notified on every state transition, including the transient
// RoundComplete state.
type Observer func(from, to State)

type Option func(*Engine)

func WithShuffler(s Shuffler) Option {
	return func(e *Engine) {
		if s != nil {
			e.shuffle = s
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// Engine runs one single-elimination tournament. It performs no I/O and is
// not safe for concurrent use; callers serialise access.
type Engine struct {
	shuffle  Shuffler
	observer Observer

	pool      []Item
	advancing []Item
	current   *Pair
	champion  *Item

	state         State
	roundSize     int
	matchInRound  int
	matchesPlayed int
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{shuffle: DefaultShuffler()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a fresh tournament from items. The slice is copied.
func (e *Engine) Start(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyBracket
	}

	pool := make([]Item, len(items))
	copy(pool, items)
	e.shuffle(pool)

	e.pool = pool
	e.advancing = nil
	e.current = nil
	e.champion = nil
	e.roundSize = len(items)
	e.matchInRound = 0
	e.matchesPlayed = 0

	if len(pool) == 1 {
		e.finish(pool[0])
		e.pool = nil
		return nil
	}

	e.advance()
	return nil
}

// CurrentPair returns the pair awaiting a decision. Reading it marks the
// pair as presented; the pools are not touched.
func (e *Engine) CurrentPair() (Pair, bool) {
	if e.current == nil {
		return Pair{}, false
	}
	if e.state == PairReady {
		e.transition(AwaitingSelection)
	}
	return *e.current, true
}

// SelectWinner advances the item at index (0 or 1) of the current pair and
// discards the other. On error the engine state is unchanged.
func (e *Engine) SelectWinner(index int) error {
	if e.current == nil {
		return &SelectionError{Index: index, Reason: "no active pair"}
	}
	if index != 0 && index != 1 {
		return &SelectionError{Index: index, Reason: "index must be 0 or 1"}
	}

	winner := e.current[index]
	e.current = nil
	e.advancing = append(e.advancing, winner)
	e.matchesPlayed++

	e.advance()
	return nil
}

func (e *Engine) IsFinished() bool { return e.state == Finished }

func (e *Engine) Champion() (Item, bool) {
	if e.state != Finished || e.champion == nil {
		return Item{}, false
	}
	return *e.champion, true
}

func (e *Engine) State() State { return e.state }

// RoundSize is the number of contestants the current round started with,
// as used for display.
func (e *Engine) RoundSize() int { return e.roundSize }

// MatchInRound is the 1-based number of the pair on offer within its round.
func (e *Engine) MatchInRound() int { return e.matchInRound }

func (e *Engine) MatchesPlayed() int { return e.matchesPlayed }

// Alive counts the contestants still in the tournament.
func (e *Engine) Alive() int {
	if e.state == Finished {
		return 1
	}
	n := len(e.pool) + len(e.advancing)
	if e.current != nil {
		n += 2
	}
	return n
}

func (e *Engine) RoundLabel() string {
	if e.state == AwaitingStart {
		return ""
	}
	return RoundLabel(e.roundSize, e.matchInRound)
}

// advance applies the pairing rule until a pair is on offer or the
// tournament is over.
func (e *Engine) advance() {
	for {
		if len(e.pool) >= 2 {
			pair := Pair{e.pool[0], e.pool[1]}
			e.pool = e.pool[2:]
			e.current = &pair
			e.matchInRound++
			e.transition(PairReady)
			return
		}

		if len(e.pool) == 1 && len(e.advancing) == 0 && e.roundSize <= 2 {
			last := e.pool[0]
			e.pool = nil
			e.finish(last)
			return
		}

		// Round drained. An odd leftover is carried into the next round
		// with the winners and reshuffled along with them.
		e.advancing = append(e.advancing, e.pool...)
		e.pool = nil
		e.transition(RoundComplete)

		if len(e.advancing) == 1 {
			last := e.advancing[0]
			e.advancing = nil
			e.finish(last)
			return
		}

		next := e.advancing
		e.advancing = nil
		e.shuffle(next)
		e.pool = next
		e.roundSize = nextRoundSize(e.roundSize)
		e.matchInRound = 0
	}
}

// nextRoundSize halves the display size, never below two while a match is
// still to be played.
func nextRoundSize(size int) int {
	half := size >> 1
	if half < 2 {
		return 2
	}
	return half
}

func (e *Engine) finish(champion Item) {
	e.champion = &champion
	e.current = nil
	e.roundSize = 1
	e.transition(Finished)
}

func (e *Engine) transition(to State) {
	from := e.state
	e.state = to
	if e.observer != nil {
		e.observer(from, to)
	}
}
