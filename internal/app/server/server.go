package server

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gorilla/websocket"
	"github.com/sphereplay/arena/internal/aws/notification"
	"github.com/sphereplay/arena/internal/aws/storage"
	"github.com/sphereplay/arena/internal/match"
	"github.com/sphereplay/arena/pkg/logging"
	"go.uber.org/zap"
)

type server struct {
	address  string
	upgrader websocket.Upgrader

	config     Config
	feed       *feedHub
	controller *match.Controller
}

// payload is the wire shape of every client action message.
type payload struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

type snapshotResponse struct {
	Type   string      `json:"type"`
	Record interface{} `json:"record"`
}

type errorResponse struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func NewServer() *server {
	cfg := NewConfig()
	awsCfg, _ := config.LoadDefaultConfig(
		context.TODO(),
		config.WithRegion(cfg.AwsRegion),
	)
	storageClient := storage.NewClient(
		dynamodb.NewFromConfig(awsCfg),
		storage.Config{
			MatchRecordsTableName:         aws.String(cfg.MatchRecordsTableName),
			ApplicationEndpointsTableName: aws.String(cfg.ApplicationEndpointsTableName),
		},
	)
	feed := newFeedHub()
	notifier := &joinNotifier{
		storageClient:      storageClient,
		notificationClient: notification.NewClient(sns.NewFromConfig(awsCfg)),
	}
	srv := &server{
		address: "0.0.0.0:" + cfg.Port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		config:     cfg,
		feed:       feed,
		controller: match.NewController(storageClient, feed, notifier),
	}
	return srv
}

// Start method    starts the room server
func (s *server) Start() error {
	http.HandleFunc("POST /rooms", s.handleCreateRoom)

	http.HandleFunc("/rooms/{roomId}/ws", func(w http.ResponseWriter, r *http.Request) {
		participantId, err := s.auth(r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(err.Error()))
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Error(
				"failed to upgrade connection",
				zap.String("error", err.Error()),
			)
			return
		}
		defer conn.Close()

		roomId := match.NormalizeRoomId(r.PathValue("roomId"))
		client := newRoomClient(conn, roomId, participantId)

		if !s.handleRoomEnter(r.Context(), client, r.URL.Query()) {
			return
		}

		// Push authoritative snapshots until the room closes or the
		// client hangs up.
		snapshots, cancel := s.feed.Subscribe(roomId)
		defer cancel()
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				_, message, err := conn.ReadMessage()
				if err != nil {
					logging.Info(
						"connection closed",
						zap.String("remote_address", conn.RemoteAddr().String()),
						zap.Error(err),
					)
					return
				}
				s.handleClientMessage(r.Context(), client, message)
			}
		}()

		if !s.sendCurrentSnapshot(r.Context(), client) {
			return
		}
		for {
			select {
			case record := <-snapshots:
				if record == nil {
					client.write(payload{Type: "room_closed"})
					logging.Info("room closed",
						zap.String("room_id", roomId),
						zap.String("participant_id", participantId),
					)
					return
				}
				client.write(snapshotResponse{Type: "snapshot", Record: record})
			case <-done:
				return
			}
		}
	})

	logging.Info("room server started", zap.String("port", s.config.Port))
	httpServer := &http.Server{
		Addr:        s.address,
		IdleTimeout: s.config.IdleTimeout,
	}
	return httpServer.ListenAndServe()
}

// sendCurrentSnapshot delivers the record as of subscribe time, so a
// client renders state before the first change arrives.
func (s *server) sendCurrentSnapshot(ctx context.Context, client *roomClient) bool {
	record, err := s.controller.GetMatch(ctx, client.roomId)
	if err != nil {
		client.write(errorResponse{Type: "error", Error: ErrStatusRoomNotFound})
		return false
	}
	client.write(snapshotResponse{Type: "snapshot", Record: &record})
	return true
}
