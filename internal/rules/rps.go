package rules

import "github.com/sphereplay/arena/internal/domains/entities"

// RPS plays rock-paper-scissors to the best of MaxRounds. Both sides
// submit blind; the round resolves once both moves are in.
type RPS struct{}

// beats maps each hand to the hand it defeats.
var beats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

func (RPS) Apply(rec *entities.MatchRecord, role entities.Role, move Move) (*entities.MatchRecord, error) {
	hand, ok := move["hand"]
	if !ok {
		return nil, ErrRejected
	}
	if _, known := beats[hand]; !known {
		return nil, ErrRejected
	}
	if rec.Moves == nil || rec.Scores == nil {
		return nil, ErrRejected
	}
	if decided(rec) || rec.RoundWinner != "" {
		return nil, ErrRejected
	}
	if submitted(rec.Moves, role) != "" {
		return nil, ErrRejected
	}

	next := rec.Clone()
	if role == entities.RoleHost {
		next.Moves.Host = hand
	} else {
		next.Moves.Guest = hand
	}
	if next.Moves.Host == "" || next.Moves.Guest == "" {
		return next, nil
	}

	// Both in: resolve the round.
	switch {
	case next.Moves.Host == next.Moves.Guest:
		next.RoundWinner = entities.WinnerDraw
	case beats[next.Moves.Host] == next.Moves.Guest:
		next.RoundWinner = string(entities.RoleHost)
		next.Scores.Host++
	default:
		next.RoundWinner = string(entities.RoleGuest)
		next.Scores.Guest++
	}

	threshold := next.MaxRounds/2 + 1
	if next.Scores.Host >= threshold {
		next.Winner = entities.WinnerHost
	} else if next.Scores.Guest >= threshold {
		next.Winner = entities.WinnerGuest
	}
	return next, nil
}

func (RPS) Reset(rec *entities.MatchRecord) {
	rec.Moves = &entities.RoundMoves{}
	rec.Scores = &entities.Scores{}
	rec.CurrentRound = 1
	rec.RoundWinner = ""
	if rec.MaxRounds == 0 {
		rec.MaxRounds = 3
	}
}

// NextRound clears the finished round. A drawn round is replayed under
// the same round number, so draws never consume the round budget.
func (RPS) NextRound(rec *entities.MatchRecord) (*entities.MatchRecord, error) {
	if rec.RoundWinner == "" || decided(rec) {
		return nil, ErrRejected
	}
	next := rec.Clone()
	if next.RoundWinner != entities.WinnerDraw {
		next.CurrentRound++
	}
	next.Moves = &entities.RoundMoves{}
	next.RoundWinner = ""
	return next, nil
}

func submitted(moves *entities.RoundMoves, role entities.Role) string {
	if moves == nil {
		return ""
	}
	if role == entities.RoleHost {
		return moves.Host
	}
	return moves.Guest
}
