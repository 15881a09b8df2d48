package entities

import "time"

type (
	GameType string
	Role     string
	Color    string
)

const (
	GameTicTacToe GameType = "tictactoe"
	GameConnect4  GameType = "connect4"
	GameRPS       GameType = "rps"
	GameDots      GameType = "dots"

	RoleHost  Role = "host"
	RoleGuest Role = "guest"

	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
)

// Winner labels shared by Connect4, RPS and Dots-and-Boxes.
// TicTacToe records the winning symbol ("X"/"O") instead.
const (
	WinnerHost  = "Host"
	WinnerGuest = "Guest"
	WinnerDraw  = "Draw"
)

func (t GameType) Valid() bool {
	switch t {
	case GameTicTacToe, GameConnect4, GameRPS, GameDots:
		return true
	}
	return false
}

func (c Color) Valid() bool {
	switch c {
	case ColorBlue, ColorRed, ColorGreen, ColorYellow:
		return true
	}
	return false
}

func (r Role) Opponent() Role {
	if r == RoleHost {
		return RoleGuest
	}
	return RoleHost
}

type RematchFlags struct {
	Host  bool `dynamodbav:"host" json:"host"`
	Guest bool `dynamodbav:"guest" json:"guest"`
}

type RoundMoves struct {
	Host  string `dynamodbav:"host" json:"host"`
	Guest string `dynamodbav:"guest" json:"guest"`
}

type Scores struct {
	Host  int `dynamodbav:"host" json:"host"`
	Guest int `dynamodbav:"guest" json:"guest"`
}

type GridSize struct {
	Rows int `dynamodbav:"rows" json:"rows"`
	Cols int `dynamodbav:"cols" json:"cols"`
}

// MatchRecord is the single shared document describing one game room.
// Nullable fields of the wire model are empty strings here; Version is
// the optimistic-lock counter every conditional write checks against.
type MatchRecord struct {
	RoomId     string   `dynamodbav:"roomId" json:"roomId"`
	GameType   GameType `dynamodbav:"gameType" json:"gameType"`
	HostId     string   `dynamodbav:"hostId" json:"hostId"`
	GuestId    string   `dynamodbav:"guestId" json:"guestId"`
	HostName   string   `dynamodbav:"hostName" json:"hostName"`
	GuestName  string   `dynamodbav:"guestName" json:"guestName"`
	HostColor  Color    `dynamodbav:"hostColor" json:"hostColor"`
	GuestColor Color    `dynamodbav:"guestColor" json:"guestColor"`

	Turn    Role         `dynamodbav:"turn" json:"turn"`
	Winner  string       `dynamodbav:"winner" json:"winner"`
	Rematch RematchFlags `dynamodbav:"rematch" json:"rematch"`

	// Timestamps are stored as epoch seconds so the staleness filter
	// compares numerically.
	CreatedAt time.Time `dynamodbav:"createdAt,unixtime" json:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"updatedAt,unixtime" json:"updatedAt"`
	Version   int64     `dynamodbav:"version" json:"version"`

	// TicTacToe: 9 cells of ""/"X"/"O".
	// Connect4: 42 cells of ""/"host"/"guest", row-major, row 0 on top.
	Board []string `dynamodbav:"board,omitempty" json:"board,omitempty"`

	// RPS.
	Moves        *RoundMoves `dynamodbav:"moves,omitempty" json:"moves,omitempty"`
	MaxRounds    int         `dynamodbav:"maxRounds,omitempty" json:"maxRounds,omitempty"`
	CurrentRound int         `dynamodbav:"currentRound,omitempty" json:"currentRound,omitempty"`
	RoundWinner  string      `dynamodbav:"roundWinner,omitempty" json:"roundWinner,omitempty"`

	// Dots-and-Boxes.
	GridSize *GridSize `dynamodbav:"gridSize,omitempty" json:"gridSize,omitempty"`
	HLines   []bool    `dynamodbav:"hLines,omitempty" json:"hLines,omitempty"`
	VLines   []bool    `dynamodbav:"vLines,omitempty" json:"vLines,omitempty"`
	Boxes    []string  `dynamodbav:"boxes,omitempty" json:"boxes,omitempty"`

	// RPS and Dots-and-Boxes.
	Scores *Scores `dynamodbav:"scores,omitempty" json:"scores,omitempty"`
}

// RoleOf resolves which side a participant plays, if any.
func (r *MatchRecord) RoleOf(participantId string) (Role, bool) {
	switch participantId {
	case "":
		return "", false
	case r.HostId:
		return RoleHost, true
	case r.GuestId:
		return RoleGuest, true
	}
	return "", false
}

func (r *MatchRecord) HasGuest() bool {
	return r.GuestId != ""
}

// Clone returns a deep copy so rule engines stay free of side effects
// on the caller's snapshot.
func (r *MatchRecord) Clone() *MatchRecord {
	c := *r
	if r.Board != nil {
		c.Board = append([]string(nil), r.Board...)
	}
	if r.HLines != nil {
		c.HLines = append([]bool(nil), r.HLines...)
	}
	if r.VLines != nil {
		c.VLines = append([]bool(nil), r.VLines...)
	}
	if r.Boxes != nil {
		c.Boxes = append([]string(nil), r.Boxes...)
	}
	if r.Moves != nil {
		m := *r.Moves
		c.Moves = &m
	}
	if r.Scores != nil {
		s := *r.Scores
		c.Scores = &s
	}
	if r.GridSize != nil {
		g := *r.GridSize
		c.GridSize = &g
	}
	return &c
}
