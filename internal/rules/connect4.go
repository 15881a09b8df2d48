package rules

import "github.com/sphereplay/arena/internal/domains/entities"

const (
	connect4Rows = 6
	connect4Cols = 7
)

// Connect4 drops pieces into a 6x7 grid, row 0 on top. Cells carry the
// owning role token; the recorded winner uses the capitalized labels.
type Connect4 struct{}

func (Connect4) Apply(rec *entities.MatchRecord, role entities.Role, move Move) (*entities.MatchRecord, error) {
	col, err := move.Int("column")
	if err != nil {
		return nil, err
	}
	if decided(rec) || rec.Turn != role {
		return nil, ErrRejected
	}
	if col < 0 || col >= connect4Cols || len(rec.Board) != connect4Rows*connect4Cols {
		return nil, ErrRejected
	}

	// Gravity: the piece lands in the lowest empty row of the column.
	target := -1
	for row := connect4Rows - 1; row >= 0; row-- {
		if rec.Board[row*connect4Cols+col] == "" {
			target = row*connect4Cols + col
			break
		}
	}
	if target == -1 {
		return nil, ErrRejected
	}

	next := rec.Clone()
	next.Board[target] = string(role)
	if winner := connect4Winner(next.Board); winner != "" {
		next.Winner = winner
	} else if boardFull(next.Board) {
		next.Winner = entities.WinnerDraw
	}
	next.Turn = role.Opponent()
	return next, nil
}

func (Connect4) Reset(rec *entities.MatchRecord) {
	rec.Board = make([]string, connect4Rows*connect4Cols)
}

// connect4Winner scans every cell as a potential line start in the
// four axes (right, down, both diagonals).
func connect4Winner(board []string) string {
	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for row := 0; row < connect4Rows; row++ {
		for col := 0; col < connect4Cols; col++ {
			piece := board[row*connect4Cols+col]
			if piece == "" {
				continue
			}
			for _, d := range directions {
				dr, dc := d[0], d[1]
				endRow, endCol := row+3*dr, col+3*dc
				if endRow < 0 || endRow >= connect4Rows || endCol < 0 || endCol >= connect4Cols {
					continue
				}
				if board[(row+dr)*connect4Cols+col+dc] == piece &&
					board[(row+2*dr)*connect4Cols+col+2*dc] == piece &&
					board[endRow*connect4Cols+endCol] == piece {
					if piece == string(entities.RoleHost) {
						return entities.WinnerHost
					}
					return entities.WinnerGuest
				}
			}
		}
	}
	return ""
}
