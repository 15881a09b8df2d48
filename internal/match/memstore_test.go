package match

import (
	"context"
	"sync"

	"github.com/sphereplay/arena/internal/aws/storage"
	"github.com/sphereplay/arena/internal/domains/entities"
)

// memStore is an in-memory Store with the same conditional-write
// semantics as the DynamoDB client.
type memStore struct {
	mu      sync.Mutex
	records map[string]entities.MatchRecord

	failUpdates int
	putErr      error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]entities.MatchRecord)}
}

func (s *memStore) GetMatchRecord(_ context.Context, roomId string) (entities.MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[roomId]
	if !ok {
		return entities.MatchRecord{}, storage.ErrMatchRecordNotFound
	}
	return *record.Clone(), nil
}

func (s *memStore) PutMatchRecord(_ context.Context, record entities.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	if _, ok := s.records[record.RoomId]; ok {
		return storage.ErrRoomIdTaken
	}
	s.records[record.RoomId] = *record.Clone()
	return nil
}

func (s *memStore) UpdateMatchRecord(_ context.Context, record entities.MatchRecord, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdates > 0 {
		s.failUpdates--
		return storage.ErrVersionConflict
	}
	current, ok := s.records[record.RoomId]
	if !ok {
		return storage.ErrMatchRecordNotFound
	}
	if current.Version != expectedVersion {
		return storage.ErrVersionConflict
	}
	s.records[record.RoomId] = *record.Clone()
	return nil
}

func (s *memStore) DeleteMatchRecord(_ context.Context, roomId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, roomId)
	return nil
}

// memFeed records every published snapshot in order; nil marks
// deletion, as on the real feed.
type memFeed struct {
	mu        sync.Mutex
	snapshots []*entities.MatchRecord
}

func (f *memFeed) Publish(_ string, record *entities.MatchRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, record)
}

func (f *memFeed) last() *entities.MatchRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.snapshots) == 0 {
		return nil
	}
	return f.snapshots[len(f.snapshots)-1]
}

// memNotifier counts join notifications.
type memNotifier struct {
	mu    sync.Mutex
	joins []string
}

func (n *memNotifier) NotifyOpponentJoined(_ context.Context, hostId, roomId, guestName string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.joins = append(n.joins, roomId)
	return nil
}
