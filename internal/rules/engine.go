// Package rules holds the per-variant decision functions. Every engine
// is pure: Apply derives all preconditions from the record it is given
// and returns either a new record or ErrRejected with no side effect,
// so a stale client racing an already-applied move degrades to a no-op.
package rules

import (
	"errors"
	"strconv"

	"github.com/sphereplay/arena/internal/domains/entities"
)

// ErrRejected marks a move that failed a precondition (stale turn,
// occupied slot, decided match, malformed input). Callers treat it as
// an expected race, never as a user-facing error.
var ErrRejected = errors.New("move rejected")

var ErrUnknownGameType = errors.New("unknown game type")

// Move carries the raw move data of a client payload. Each engine
// parses only the fields it knows about.
type Move map[string]string

func (m Move) Int(key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, ErrRejected
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ErrRejected
	}
	return n, nil
}

type Engine interface {
	// Apply validates the move against rec and returns the successor
	// record. rec itself is never mutated.
	Apply(rec *entities.MatchRecord, role entities.Role, move Move) (*entities.MatchRecord, error)

	// Reset zeroes the variant fields of rec in place, producing the
	// initial position. Used at creation and on rematch.
	Reset(rec *entities.MatchRecord)
}

func ForGameType(t entities.GameType) (Engine, error) {
	switch t {
	case entities.GameTicTacToe:
		return TicTacToe{}, nil
	case entities.GameConnect4:
		return Connect4{}, nil
	case entities.GameRPS:
		return RPS{}, nil
	case entities.GameDots:
		return DotsAndBoxes{}, nil
	}
	return nil, ErrUnknownGameType
}

// decided reports whether the match already has a terminal winner.
func decided(rec *entities.MatchRecord) bool {
	return rec.Winner != ""
}
