package rules

import (
	"testing"

	"github.com/sphereplay/arena/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnect4Record() *entities.MatchRecord {
	rec := &entities.MatchRecord{
		GameType: entities.GameConnect4,
		HostId:   "host-1",
		GuestId:  "guest-1",
		Turn:     entities.RoleHost,
	}
	Connect4{}.Reset(rec)
	return rec
}

func columnMove(col string) Move {
	return Move{"column": col}
}

func TestConnect4PieceFallsToLowestEmptyRow(t *testing.T) {
	rec := newConnect4Record()

	next, err := Connect4{}.Apply(rec, entities.RoleHost, columnMove("3"))
	require.NoError(t, err)
	assert.Equal(t, "host", next.Board[5*connect4Cols+3])
	assert.Equal(t, entities.RoleGuest, next.Turn)

	// The next piece in the same column stacks on top.
	next2, err := Connect4{}.Apply(next, entities.RoleGuest, columnMove("3"))
	require.NoError(t, err)
	assert.Equal(t, "guest", next2.Board[4*connect4Cols+3])
}

func TestConnect4FullColumnRejected(t *testing.T) {
	rec := newConnect4Record()
	for row := 0; row < connect4Rows; row++ {
		side := "host"
		if row%2 == 0 {
			side = "guest"
		}
		rec.Board[row*connect4Cols+2] = side
	}

	_, err := Connect4{}.Apply(rec, entities.RoleHost, columnMove("2"))
	assert.ErrorIs(t, err, ErrRejected)
}

func TestConnect4Rejections(t *testing.T) {
	rec := newConnect4Record()

	_, err := Connect4{}.Apply(rec, entities.RoleGuest, columnMove("0"))
	assert.ErrorIs(t, err, ErrRejected, "not the guest's turn")

	_, err = Connect4{}.Apply(rec, entities.RoleHost, columnMove("7"))
	assert.ErrorIs(t, err, ErrRejected, "column out of range")

	_, err = Connect4{}.Apply(rec, entities.RoleHost, Move{})
	assert.ErrorIs(t, err, ErrRejected, "missing column")

	rec.Winner = entities.WinnerGuest
	_, err = Connect4{}.Apply(rec, entities.RoleHost, columnMove("0"))
	assert.ErrorIs(t, err, ErrRejected, "match already decided")
}

func TestConnect4HorizontalWin(t *testing.T) {
	rec := newConnect4Record()
	// Host occupies columns 0-2 on the bottom row.
	for col := 0; col < 3; col++ {
		rec.Board[5*connect4Cols+col] = "host"
	}

	next, err := Connect4{}.Apply(rec, entities.RoleHost, columnMove("3"))
	require.NoError(t, err)
	assert.Equal(t, entities.WinnerHost, next.Winner)
}

func TestConnect4VerticalWin(t *testing.T) {
	rec := newConnect4Record()
	rec.Turn = entities.RoleGuest
	for row := 3; row < 6; row++ {
		rec.Board[row*connect4Cols+6] = "guest"
	}

	next, err := Connect4{}.Apply(rec, entities.RoleGuest, columnMove("6"))
	require.NoError(t, err)
	assert.Equal(t, entities.WinnerGuest, next.Winner)
}

func TestConnect4DiagonalWin(t *testing.T) {
	rec := newConnect4Record()
	// Rising diagonal for host from (5,0) to (2,3); the last drop on
	// column 3 lands at row 2 on top of the three fillers.
	rec.Board[5*connect4Cols+0] = "host"
	rec.Board[4*connect4Cols+1] = "host"
	rec.Board[5*connect4Cols+1] = "guest"
	rec.Board[3*connect4Cols+2] = "host"
	rec.Board[4*connect4Cols+2] = "guest"
	rec.Board[5*connect4Cols+2] = "guest"
	rec.Board[3*connect4Cols+3] = "guest"
	rec.Board[4*connect4Cols+3] = "guest"
	rec.Board[5*connect4Cols+3] = "host"

	next, err := Connect4{}.Apply(rec, entities.RoleHost, columnMove("3"))
	require.NoError(t, err)
	assert.Equal(t, "host", next.Board[2*connect4Cols+3])
	assert.Equal(t, entities.WinnerHost, next.Winner)
}

func TestConnect4TurnFlipsWithoutWin(t *testing.T) {
	rec := newConnect4Record()
	next, err := Connect4{}.Apply(rec, entities.RoleHost, columnMove("0"))
	require.NoError(t, err)
	assert.Empty(t, next.Winner)
	assert.Equal(t, entities.RoleGuest, next.Turn)
}
