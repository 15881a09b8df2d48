package server

import (
	"testing"

	"github.com/sphereplay/arena/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedHubDeliversSnapshots(t *testing.T) {
	hub := newFeedHub()
	ch, cancel := hub.Subscribe("AB12")
	defer cancel()

	hub.Publish("AB12", &entities.MatchRecord{RoomId: "AB12", Version: 2})

	record := <-ch
	require.NotNil(t, record)
	assert.Equal(t, int64(2), record.Version)
}

func TestFeedHubCoalescesToLatest(t *testing.T) {
	hub := newFeedHub()
	ch, cancel := hub.Subscribe("AB12")
	defer cancel()

	// A slow consumer only ever sees the newest snapshot.
	hub.Publish("AB12", &entities.MatchRecord{RoomId: "AB12", Version: 2})
	hub.Publish("AB12", &entities.MatchRecord{RoomId: "AB12", Version: 3})

	record := <-ch
	require.NotNil(t, record)
	assert.Equal(t, int64(3), record.Version)
}

func TestFeedHubDeletionDeliversNil(t *testing.T) {
	hub := newFeedHub()
	ch, cancel := hub.Subscribe("AB12")
	defer cancel()

	hub.Publish("AB12", nil)
	assert.Nil(t, <-ch)
}

func TestFeedHubIsolatesRooms(t *testing.T) {
	hub := newFeedHub()
	ch, cancel := hub.Subscribe("AB12")
	defer cancel()

	hub.Publish("CD34", &entities.MatchRecord{RoomId: "CD34"})
	select {
	case record := <-ch:
		t.Fatalf("unexpected snapshot: %+v", record)
	default:
	}
}

func TestFeedHubCancelStopsDelivery(t *testing.T) {
	hub := newFeedHub()
	ch, cancel := hub.Subscribe("AB12")
	cancel()

	hub.Publish("AB12", &entities.MatchRecord{RoomId: "AB12"})
	select {
	case record := <-ch:
		t.Fatalf("unexpected snapshot: %+v", record)
	default:
	}
}
