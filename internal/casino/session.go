package casino

import (
	"errors"
	"sync"
)

var (
	ErrGameActive = errors.New("a game of this kind is already in progress")
	ErrNoSession  = errors.New("no game of this kind in progress")
)

// Kind names a casino game. A player can hold at most one live session per
// kind, so a blackjack hand does not block a roulette spin.
type Kind string

const (
	KindBlackjack   Kind = "blackjack"
	KindCoinflip    Kind = "coinflip"
	KindHigherLower Kind = "higherlower"
	KindRoulette    Kind = "roulette"
	KindSlots       Kind = "slots"
)

type sessionKey struct {
	userID string
	kind   Kind
}

// Session is one live game for one player. State is mutated only while
// holding the session's own mutex, so interleaved button presses on the
// same hand stay serialized.
type Session struct {
	mu sync.Mutex

	UserID string
	Kind   Kind
	Wager  int64

	// blackjack running totals
	PlayerTotal int
	DealerTotal int

	// roulette pick: "red", "black", "odd", "even", or a number
	Choice string
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Registry tracks live sessions. Begin reserves the (user, kind) slot before
// any money moves, so a double-click cannot debit twice.
type Registry struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[sessionKey]*Session)}
}

// Begin reserves the slot and returns the fresh session. The caller must
// call Resolve if setup fails after this point, or the slot leaks.
func (r *Registry) Begin(userID string, kind Kind) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey{userID: userID, kind: kind}
	if _, exists := r.sessions[key]; exists {
		return nil, ErrGameActive
	}
	sess := &Session{UserID: userID, Kind: kind}
	r.sessions[key] = sess
	return sess, nil
}

func (r *Registry) Get(userID string, kind Kind) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, exists := r.sessions[sessionKey{userID: userID, kind: kind}]
	if !exists {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Resolve frees the slot. Safe to call for a slot already freed.
func (r *Registry) Resolve(userID string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionKey{userID: userID, kind: kind})
}

// Active reports how many sessions are live, for diagnostics.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
