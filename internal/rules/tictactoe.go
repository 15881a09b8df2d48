package rules

import "github.com/sphereplay/arena/internal/domains/entities"

// TicTacToe plays the classic 3x3 grid. Host is always "X".
type TicTacToe struct{}

var ticTacToeLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func (TicTacToe) Apply(rec *entities.MatchRecord, role entities.Role, move Move) (*entities.MatchRecord, error) {
	cell, err := move.Int("cell")
	if err != nil {
		return nil, err
	}
	if decided(rec) || rec.Turn != role {
		return nil, ErrRejected
	}
	if cell < 0 || cell >= 9 || len(rec.Board) != 9 || rec.Board[cell] != "" {
		return nil, ErrRejected
	}

	next := rec.Clone()
	symbol := "X"
	if role == entities.RoleGuest {
		symbol = "O"
	}
	next.Board[cell] = symbol

	for _, line := range ticTacToeLines {
		a, b, c := next.Board[line[0]], next.Board[line[1]], next.Board[line[2]]
		if a != "" && a == b && a == c {
			next.Winner = a
		}
	}
	if next.Winner == "" && boardFull(next.Board) {
		next.Winner = entities.WinnerDraw
	}
	next.Turn = role.Opponent()
	return next, nil
}

func (TicTacToe) Reset(rec *entities.MatchRecord) {
	rec.Board = make([]string, 9)
}

func boardFull(board []string) bool {
	for _, cell := range board {
		if cell == "" {
			return false
		}
	}
	return true
}
