package rules

import (
	"testing"

	"github.com/sphereplay/arena/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDotsRecord(rows, cols int) *entities.MatchRecord {
	rec := &entities.MatchRecord{
		GameType: entities.GameDots,
		HostId:   "host-1",
		GuestId:  "guest-1",
		Turn:     entities.RoleHost,
		GridSize: &entities.GridSize{Rows: rows, Cols: cols},
	}
	DotsAndBoxes{}.Reset(rec)
	return rec
}

func lineMove(lineType, index string) Move {
	return Move{"line": lineType, "index": index}
}

func TestDotsLineDrawPassesTurn(t *testing.T) {
	rec := newDotsRecord(3, 3)

	next, err := DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("h", "0"))
	require.NoError(t, err)
	assert.True(t, next.HLines[0])
	assert.Equal(t, entities.RoleGuest, next.Turn)
	assert.False(t, rec.HLines[0], "input snapshot untouched")
}

func TestDotsRejections(t *testing.T) {
	rec := newDotsRecord(3, 3)

	_, err := DotsAndBoxes{}.Apply(rec, entities.RoleGuest, lineMove("h", "0"))
	assert.ErrorIs(t, err, ErrRejected, "not the guest's turn")

	_, err = DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("x", "0"))
	assert.ErrorIs(t, err, ErrRejected, "unknown line type")

	_, err = DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("h", "12"))
	assert.ErrorIs(t, err, ErrRejected, "horizontal index out of range")

	_, err = DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("v", "12"))
	assert.ErrorIs(t, err, ErrRejected, "vertical index out of range")

	rec.HLines[2] = true
	_, err = DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("h", "2"))
	assert.ErrorIs(t, err, ErrRejected, "line already drawn")

	rec.Winner = entities.WinnerHost
	_, err = DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("h", "1"))
	assert.ErrorIs(t, err, ErrRejected, "match already decided")
}

// Drawing the fourth side claims the box and keeps the turn.
func TestDotsCompletingBoxGrantsExtraTurn(t *testing.T) {
	rec := newDotsRecord(3, 3)

	// Box (0,0): top h0, bottom h3, left v0, right v1.
	next, err := DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("h", "0"))
	require.NoError(t, err)
	next, err = DotsAndBoxes{}.Apply(next, entities.RoleGuest, lineMove("v", "0"))
	require.NoError(t, err)
	next, err = DotsAndBoxes{}.Apply(next, entities.RoleHost, lineMove("h", "3"))
	require.NoError(t, err)

	require.Equal(t, entities.RoleGuest, next.Turn)
	next, err = DotsAndBoxes{}.Apply(next, entities.RoleGuest, lineMove("v", "1"))
	require.NoError(t, err)

	assert.Equal(t, "guest", next.Boxes[0])
	assert.Equal(t, entities.Scores{Host: 0, Guest: 1}, *next.Scores)
	assert.Equal(t, entities.RoleGuest, next.Turn, "completing a box keeps the turn")
	assert.Empty(t, next.Winner)
}

func TestDotsBoxOwnerIsImmutable(t *testing.T) {
	rec := newDotsRecord(3, 3)
	rec.HLines[0] = true
	rec.HLines[3] = true
	rec.VLines[0] = true
	rec.VLines[1] = true
	rec.Boxes[0] = "guest"
	rec.Scores.Guest = 1

	// The host drawing elsewhere must not reassign the claimed box.
	next, err := DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("h", "8"))
	require.NoError(t, err)
	assert.Equal(t, "guest", next.Boxes[0])
	assert.Equal(t, 1, next.Scores.Guest)
}

// One line can close two boxes at once; both go to the mover, and the
// full grid resolves the match.
func TestDotsDoubleCompletionAndMatchEnd(t *testing.T) {
	rec := newDotsRecord(1, 2)
	// 1x2 grid: hLines 0-3, vLines 0-2. The shared vertical line v1 is
	// the last side of both boxes.
	moves := []struct {
		role  entities.Role
		line  string
		index string
	}{
		{entities.RoleHost, "h", "0"},
		{entities.RoleGuest, "h", "2"},
		{entities.RoleHost, "v", "0"},
		{entities.RoleGuest, "h", "1"},
		{entities.RoleHost, "h", "3"},
		{entities.RoleGuest, "v", "2"},
	}
	cur := rec
	for _, m := range moves {
		next, err := DotsAndBoxes{}.Apply(cur, m.role, lineMove(m.line, m.index))
		require.NoError(t, err)
		cur = next
	}

	require.Equal(t, entities.RoleHost, cur.Turn)
	final, err := DotsAndBoxes{}.Apply(cur, entities.RoleHost, lineMove("v", "1"))
	require.NoError(t, err)

	assert.Equal(t, []string{"host", "host"}, final.Boxes)
	assert.Equal(t, entities.Scores{Host: 2, Guest: 0}, *final.Scores)
	assert.Equal(t, entities.WinnerHost, final.Winner)
	assert.Equal(t, entities.RoleHost, final.Turn)
}

func TestDotsDrawOnSplitGrid(t *testing.T) {
	rec := newDotsRecord(1, 2)
	rec.HLines = []bool{true, true, true, true}
	rec.VLines = []bool{true, false, true}
	rec.Boxes[0] = "guest"
	rec.Scores.Guest = 1
	rec.Turn = entities.RoleHost

	// v1 closes the remaining box for the host: one box each.
	next, err := DotsAndBoxes{}.Apply(rec, entities.RoleHost, lineMove("v", "1"))
	require.NoError(t, err)
	assert.Equal(t, entities.Scores{Host: 1, Guest: 1}, *next.Scores)
	assert.Equal(t, entities.WinnerDraw, next.Winner)
}
