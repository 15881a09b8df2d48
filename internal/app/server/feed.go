package server

import (
	"sync"

	"github.com/sphereplay/arena/internal/domains/entities"
)

// feedHub is the in-process change feed: every accepted write is
// published here and fanned out to each subscriber of the room. A nil
// record notifies deletion. Delivery is latest-wins; a slow consumer
// gets snapshots coalesced, never a blocked publisher.
type feedHub struct {
	mu          sync.Mutex
	subscribers map[string]map[*feedSubscription]struct{}
}

type feedSubscription struct {
	ch chan *entities.MatchRecord
}

func newFeedHub() *feedHub {
	return &feedHub{
		subscribers: make(map[string]map[*feedSubscription]struct{}),
	}
}

// Subscribe registers for snapshots of one room. The caller must run
// the returned cancel func when done.
func (h *feedHub) Subscribe(roomId string) (<-chan *entities.MatchRecord, func()) {
	sub := &feedSubscription{ch: make(chan *entities.MatchRecord, 1)}

	h.mu.Lock()
	subs, ok := h.subscribers[roomId]
	if !ok {
		subs = make(map[*feedSubscription]struct{})
		h.subscribers[roomId] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subscribers[roomId]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(h.subscribers, roomId)
			}
		}
	}
	return sub.ch, cancel
}

func (h *feedHub) Publish(roomId string, record *entities.MatchRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers[roomId] {
		// Replace a pending stale snapshot with the newest one.
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- record
	}
}
