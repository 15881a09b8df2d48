package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sphereplay/arena/internal/domains/entities"
	"github.com/sphereplay/arena/internal/match"
	"github.com/sphereplay/arena/internal/rules"
	"github.com/sphereplay/arena/pkg/logging"
	"go.uber.org/zap"
)

// roomClient wraps one websocket participant. Snapshot pushes and error
// replies come from different goroutines, so writes are serialized.
type roomClient struct {
	conn          *websocket.Conn
	roomId        string
	participantId string
	mu            sync.Mutex
}

func newRoomClient(conn *websocket.Conn, roomId, participantId string) *roomClient {
	return &roomClient{
		conn:          conn,
		roomId:        roomId,
		participantId: participantId,
	}
}

func (c *roomClient) write(v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(v); err != nil {
		logging.Error("couldn't notify participant",
			zap.String("participant_id", c.participantId),
		)
	}
}

type createRoomRequest struct {
	GameType  string `json:"gameType"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	MaxRounds int    `json:"maxRounds"`
	GridRows  int    `json:"gridRows"`
	GridCols  int    `json:"gridCols"`
}

type createRoomResponse struct {
	RoomId string `json:"roomId"`
}

// Handler for creating a room over plain HTTP.
func (s *server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	participantId, err := s.auth(r)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(err.Error()))
		return
	}
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrStatusInvalidPayload, http.StatusBadRequest)
		return
	}

	cfg := match.Config{MaxRounds: req.MaxRounds}
	if req.GridRows > 0 && req.GridCols > 0 {
		cfg.Grid = &entities.GridSize{Rows: req.GridRows, Cols: req.GridCols}
	}
	roomId, err := s.controller.CreateMatch(
		r.Context(),
		entities.GameType(req.GameType),
		participantId,
		match.Profile{Name: req.Name, Color: entities.Color(req.Color)},
		cfg,
	)
	if err != nil {
		if errors.Is(err, match.ErrInvalidGameType) ||
			errors.Is(err, match.ErrInvalidColor) ||
			errors.Is(err, match.ErrInvalidConfig) {
			http.Error(w, ErrStatusInvalidPayload, http.StatusBadRequest)
			return
		}
		logging.Error("failed to create match", zap.Error(err))
		http.Error(w, ErrStatusCreationFailed, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(createRoomResponse{RoomId: roomId})
}

// handleRoomEnter joins the participant as guest when they are not yet
// part of the record and brought lobby settings along. Lifecycle
// rejections are reported on the socket before closing it.
func (s *server) handleRoomEnter(ctx context.Context, client *roomClient, query url.Values) bool {
	name, color := query.Get("name"), query.Get("color")
	if name == "" && color == "" {
		return true
	}
	err := s.controller.JoinMatch(ctx, client.roomId, client.participantId, match.Profile{
		Name:  name,
		Color: entities.Color(color),
	})
	switch {
	case err == nil:
		return true
	case errors.Is(err, match.ErrNotFound):
		client.write(errorResponse{Type: "error", Error: ErrStatusRoomNotFound})
	case errors.Is(err, match.ErrColorConflict):
		client.write(errorResponse{Type: "error", Error: ErrStatusColorConflict})
	case errors.Is(err, match.ErrRoomFull):
		client.write(errorResponse{Type: "error", Error: ErrStatusRoomFull})
	default:
		logging.Error("failed to join match",
			zap.String("room_id", client.roomId),
			zap.Error(err),
		)
		client.write(errorResponse{Type: "error", Error: ErrStatusInvalidPayload})
	}
	return false
}

// Handler for when a participant sends an action message.
func (s *server) handleClientMessage(ctx context.Context, client *roomClient, message []byte) {
	var p payload
	if err := json.Unmarshal(message, &p); err != nil {
		client.write(errorResponse{Type: "error", Error: ErrStatusInvalidPayload})
		return
	}

	var err error
	switch p.Type {
	case "move":
		err = s.controller.ApplyMove(ctx, client.roomId, client.participantId, rules.Move(p.Data))
	case "next_round":
		err = s.controller.NextRound(ctx, client.roomId, client.participantId)
	case "rematch":
		err = s.controller.RequestRematch(ctx, client.roomId, client.participantId)
	case "abandon":
		err = s.controller.AbandonMatch(ctx, client.roomId, client.participantId)
	default:
		client.write(errorResponse{Type: "error", Error: ErrStatusInvalidPayload})
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, rules.ErrRejected):
		// Expected race (stale turn, occupied slot, decided match);
		// the next snapshot realigns the client.
		logging.Debug("move rejected",
			zap.String("room_id", client.roomId),
			zap.String("participant_id", client.participantId),
			zap.String("action", p.Type),
		)
	case errors.Is(err, match.ErrNotFound):
		client.write(errorResponse{Type: "error", Error: ErrStatusRoomNotFound})
	default:
		logging.Error("action failed",
			zap.String("room_id", client.roomId),
			zap.String("action", p.Type),
			zap.Error(err),
		)
	}
}
