// Package match implements the match lifecycle controller: the single
// write path through which rooms are created, joined, played, reset and
// torn down. Every mutation is read-compute-conditional-write against
// the record store, then published to the change feed, so the store
// stays the authoritative serialization point between racing clients.
package match

import (
	"context"
	"errors"
	"time"

	"github.com/sphereplay/arena/internal/aws/storage"
	"github.com/sphereplay/arena/internal/domains/entities"
	"github.com/sphereplay/arena/internal/rules"
	"github.com/sphereplay/arena/pkg/logging"
	"go.uber.org/zap"
)

// casAttempts bounds the reload-and-retry loop on version conflicts.
const casAttempts = 3

// createAttempts bounds room id regeneration on collisions.
const createAttempts = 5

// maxGridDimension caps dots-and-boxes grids; the per-move box scan is
// O(rows*cols), so the record must not carry arbitrary sizes.
const maxGridDimension = 10

// Store is the document-store surface the controller needs. The
// DynamoDB client implements it; tests run an in-memory one. Sentinel
// errors are the storage package's.
type Store interface {
	GetMatchRecord(ctx context.Context, roomId string) (entities.MatchRecord, error)
	PutMatchRecord(ctx context.Context, record entities.MatchRecord) error
	UpdateMatchRecord(ctx context.Context, record entities.MatchRecord, expectedVersion int64) error
	DeleteMatchRecord(ctx context.Context, roomId string) error
}

// Feed receives every authoritative snapshot after a successful write.
// A nil record means the room was deleted.
type Feed interface {
	Publish(roomId string, record *entities.MatchRecord)
}

// Notifier delivers the best-effort opponent-joined push.
type Notifier interface {
	NotifyOpponentJoined(ctx context.Context, hostId, roomId, guestName string) error
}

// Profile carries the cosmetic participant settings picked in the
// lobby.
type Profile struct {
	Name  string
	Color entities.Color
}

// Config holds the variant options fixed at creation.
type Config struct {
	MaxRounds int                // rps: 1, 3 or 5
	Grid      *entities.GridSize // dots
}

type Controller struct {
	store    Store
	feed     Feed
	notifier Notifier
}

func NewController(store Store, feed Feed, notifier Notifier) *Controller {
	return &Controller{
		store:    store,
		feed:     feed,
		notifier: notifier,
	}
}

// CreateMatch allocates a room and writes the initial record: host side
// populated, guest side empty, host to move, no winner, rematch flags
// clear, variant fields zeroed by the rule engine.
func (c *Controller) CreateMatch(
	ctx context.Context,
	gameType entities.GameType,
	hostId string,
	profile Profile,
	cfg Config,
) (string, error) {
	engine, err := rules.ForGameType(gameType)
	if err != nil {
		return "", ErrInvalidGameType
	}
	if !profile.Color.Valid() {
		return "", ErrInvalidColor
	}

	now := time.Now().UTC()
	record := entities.MatchRecord{
		GameType:  gameType,
		HostId:    hostId,
		HostName:  profile.Name,
		HostColor: profile.Color,
		Turn:      entities.RoleHost,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
	switch gameType {
	case entities.GameRPS:
		// Zero means the engine default; otherwise best-of-1/3/5 only.
		switch cfg.MaxRounds {
		case 0, 1, 3, 5:
		default:
			return "", ErrInvalidConfig
		}
		record.MaxRounds = cfg.MaxRounds
	case entities.GameDots:
		if cfg.Grid != nil {
			if cfg.Grid.Rows < 1 || cfg.Grid.Rows > maxGridDimension ||
				cfg.Grid.Cols < 1 || cfg.Grid.Cols > maxGridDimension {
				return "", ErrInvalidConfig
			}
		}
		record.GridSize = cfg.Grid
	}
	engine.Reset(&record)

	for attempt := 0; attempt < createAttempts; attempt++ {
		record.RoomId = newRoomId()
		err := c.store.PutMatchRecord(ctx, record)
		if errors.Is(err, storage.ErrRoomIdTaken) {
			continue
		}
		if err != nil {
			return "", errors.Join(ErrCreation, err)
		}
		c.feed.Publish(record.RoomId, &record)
		logging.Info("match created",
			zap.String("room_id", record.RoomId),
			zap.String("game_type", string(gameType)),
		)
		return record.RoomId, nil
	}
	return "", ErrCreation
}

// GetMatch reads the current authoritative record.
func (c *Controller) GetMatch(ctx context.Context, roomId string) (entities.MatchRecord, error) {
	record, err := c.store.GetMatchRecord(ctx, NormalizeRoomId(roomId))
	if errors.Is(err, storage.ErrMatchRecordNotFound) {
		return entities.MatchRecord{}, ErrNotFound
	}
	return record, err
}

// JoinMatch admits a guest. Rejoining with the id already seated is an
// idempotent no-op; a second distinct guest gets ErrRoomFull.
func (c *Controller) JoinMatch(
	ctx context.Context,
	roomId string,
	guestId string,
	profile Profile,
) error {
	roomId = NormalizeRoomId(roomId)
	for attempt := 0; attempt < casAttempts; attempt++ {
		record, err := c.store.GetMatchRecord(ctx, roomId)
		if errors.Is(err, storage.ErrMatchRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if guestId == record.HostId || guestId == record.GuestId {
			return nil
		}
		if record.HasGuest() {
			return ErrRoomFull
		}
		if !profile.Color.Valid() {
			return ErrInvalidColor
		}
		if profile.Color == record.HostColor {
			return ErrColorConflict
		}

		next := record.Clone()
		next.GuestId = guestId
		next.GuestName = profile.Name
		next.GuestColor = profile.Color
		if err := c.writeNext(ctx, next, record.Version); err != nil {
			if errors.Is(err, storage.ErrVersionConflict) {
				continue
			}
			return err
		}
		c.notifyJoin(ctx, next)
		logging.Info("guest joined", zap.String("room_id", roomId))
		return nil
	}
	return ErrContention
}

// ApplyMove routes a move through the variant's rule engine.
// Preconditions are re-derived from a fresh read on every attempt, so a
// stale client's click lands as a silent rejection rather than a lost
// update.
func (c *Controller) ApplyMove(
	ctx context.Context,
	roomId string,
	participantId string,
	move rules.Move,
) error {
	roomId = NormalizeRoomId(roomId)
	for attempt := 0; attempt < casAttempts; attempt++ {
		record, err := c.store.GetMatchRecord(ctx, roomId)
		if errors.Is(err, storage.ErrMatchRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		role, ok := record.RoleOf(participantId)
		if !ok {
			return rules.ErrRejected
		}
		engine, err := rules.ForGameType(record.GameType)
		if err != nil {
			return err
		}
		next, err := engine.Apply(&record, role, move)
		if err != nil {
			return err
		}
		if err := c.writeNext(ctx, next, record.Version); err != nil {
			if errors.Is(err, storage.ErrVersionConflict) {
				continue
			}
			return err
		}
		return nil
	}
	return rules.ErrRejected
}

// NextRound advances a resolved RPS round.
func (c *Controller) NextRound(ctx context.Context, roomId, participantId string) error {
	roomId = NormalizeRoomId(roomId)
	for attempt := 0; attempt < casAttempts; attempt++ {
		record, err := c.store.GetMatchRecord(ctx, roomId)
		if errors.Is(err, storage.ErrMatchRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, ok := record.RoleOf(participantId); !ok {
			return rules.ErrRejected
		}
		if record.GameType != entities.GameRPS {
			return rules.ErrRejected
		}
		next, err := rules.RPS{}.NextRound(&record)
		if err != nil {
			return err
		}
		if err := c.writeNext(ctx, next, record.Version); err != nil {
			if errors.Is(err, storage.ErrVersionConflict) {
				continue
			}
			return err
		}
		return nil
	}
	return rules.ErrRejected
}

// RequestRematch sets the acting side's consent flag. Once both sides
// consent the record resets to a fresh match of the same variant, with
// the starting turn flipped, in the same conditional write.
func (c *Controller) RequestRematch(ctx context.Context, roomId, participantId string) error {
	roomId = NormalizeRoomId(roomId)
	for attempt := 0; attempt < casAttempts; attempt++ {
		record, err := c.store.GetMatchRecord(ctx, roomId)
		if errors.Is(err, storage.ErrMatchRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		role, ok := record.RoleOf(participantId)
		if !ok {
			return rules.ErrRejected
		}

		next := record.Clone()
		opponentConsented := record.Rematch.Guest
		if role == entities.RoleGuest {
			opponentConsented = record.Rematch.Host
		}
		if opponentConsented {
			engine, err := rules.ForGameType(record.GameType)
			if err != nil {
				return err
			}
			next.Winner = ""
			next.Turn = record.Turn.Opponent()
			next.Rematch = entities.RematchFlags{}
			engine.Reset(next)
			logging.Info("rematch started", zap.String("room_id", roomId))
		} else if role == entities.RoleHost {
			next.Rematch.Host = true
		} else {
			next.Rematch.Guest = true
		}

		if err := c.writeNext(ctx, next, record.Version); err != nil {
			if errors.Is(err, storage.ErrVersionConflict) {
				continue
			}
			return err
		}
		return nil
	}
	return rules.ErrRejected
}

// AbandonMatch deletes the record on behalf of one of its
// participants. Subscribers observe the absence as the terminal
// room-closed event.
func (c *Controller) AbandonMatch(ctx context.Context, roomId, participantId string) error {
	roomId = NormalizeRoomId(roomId)
	record, err := c.store.GetMatchRecord(ctx, roomId)
	if errors.Is(err, storage.ErrMatchRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if _, ok := record.RoleOf(participantId); !ok {
		return rules.ErrRejected
	}
	if err := c.store.DeleteMatchRecord(ctx, roomId); err != nil {
		return err
	}
	c.feed.Publish(roomId, nil)
	logging.Info("match abandoned", zap.String("room_id", roomId))
	return nil
}

func (c *Controller) writeNext(ctx context.Context, next *entities.MatchRecord, expectedVersion int64) error {
	next.Version = expectedVersion + 1
	next.UpdatedAt = time.Now().UTC()
	if err := c.store.UpdateMatchRecord(ctx, *next, expectedVersion); err != nil {
		return err
	}
	c.feed.Publish(next.RoomId, next)
	return nil
}

func (c *Controller) notifyJoin(ctx context.Context, record *entities.MatchRecord) {
	if c.notifier == nil {
		return
	}
	err := c.notifier.NotifyOpponentJoined(ctx, record.HostId, record.RoomId, record.GuestName)
	if err != nil {
		logging.Warn("join notification failed",
			zap.String("room_id", record.RoomId),
			zap.Error(err),
		)
	}
}
