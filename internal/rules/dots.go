package rules

import "github.com/sphereplay/arena/internal/domains/entities"

// DotsAndBoxes draws one line per move; completing a box claims it,
// scores a point and grants the same player another turn.
type DotsAndBoxes struct{}

func (DotsAndBoxes) Apply(rec *entities.MatchRecord, role entities.Role, move Move) (*entities.MatchRecord, error) {
	index, err := move.Int("index")
	if err != nil {
		return nil, err
	}
	lineType, ok := move["line"]
	if !ok {
		return nil, ErrRejected
	}
	if rec.GridSize == nil || rec.Scores == nil {
		return nil, ErrRejected
	}
	if decided(rec) || rec.Turn != role {
		return nil, ErrRejected
	}

	next := rec.Clone()
	switch lineType {
	case "h":
		if index < 0 || index >= len(next.HLines) || next.HLines[index] {
			return nil, ErrRejected
		}
		next.HLines[index] = true
	case "v":
		if index < 0 || index >= len(next.VLines) || next.VLines[index] {
			return nil, ErrRejected
		}
		next.VLines[index] = true
	default:
		return nil, ErrRejected
	}

	rows, cols := next.GridSize.Rows, next.GridSize.Cols
	if len(next.Boxes) != rows*cols ||
		len(next.HLines) != (rows+1)*cols ||
		len(next.VLines) != rows*(cols+1) {
		return nil, ErrRejected
	}
	boxMade := false
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			box := r*cols + c
			if next.Boxes[box] != "" {
				continue
			}
			top := next.HLines[r*cols+c]
			bottom := next.HLines[(r+1)*cols+c]
			left := next.VLines[r*(cols+1)+c]
			right := next.VLines[r*(cols+1)+c+1]
			if top && bottom && left && right {
				next.Boxes[box] = string(role)
				if role == entities.RoleHost {
					next.Scores.Host++
				} else {
					next.Scores.Guest++
				}
				boxMade = true
			}
		}
	}

	if next.Scores.Host+next.Scores.Guest == rows*cols {
		switch {
		case next.Scores.Host > next.Scores.Guest:
			next.Winner = entities.WinnerHost
		case next.Scores.Guest > next.Scores.Host:
			next.Winner = entities.WinnerGuest
		default:
			next.Winner = entities.WinnerDraw
		}
	}
	if boxMade {
		next.Turn = role
	} else {
		next.Turn = role.Opponent()
	}
	return next, nil
}

func (DotsAndBoxes) Reset(rec *entities.MatchRecord) {
	if rec.GridSize == nil {
		rec.GridSize = &entities.GridSize{Rows: 3, Cols: 3}
	}
	rows, cols := rec.GridSize.Rows, rec.GridSize.Cols
	rec.HLines = make([]bool, (rows+1)*cols)
	rec.VLines = make([]bool, rows*(cols+1))
	rec.Boxes = make([]string, rows*cols)
	rec.Scores = &entities.Scores{}
}
