package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mkessler/squares-backend/utils/logger"

	"github.com/redis/go-redis/v9"
)

type EventType string

const (
	EventSquareChanged  EventType = "square_changed"
	EventGameChanged    EventType = "game_changed"
	EventWinnerRecorded EventType = "winner_recorded"
)

// Event is one board mutation, fanned out to every viewer of the game.
// Delivery is best effort; clients re-fetch the board on reconnect, so
// nothing depends on an event arriving.
type Event struct {
	Type    EventType   `json:"type"`
	GameID  uint        `json:"game_id"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

const redisEventChannel = "squares:events"

// EventBus routes mutation events to the local websocket hub. With a redis
// client attached, events take a round trip through a pub/sub channel first
// so every instance's hub sees mutations committed by any of them.
type EventBus struct {
	hub *Hub
	rdb *redis.Client
}

func NewEventBus(hub *Hub, rdb *redis.Client) *EventBus {
	return &EventBus{hub: hub, rdb: rdb}
}

func (b *EventBus) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	if b.rdb == nil {
		b.hub.Deliver(ev)
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Errorf("[Events] marshal event: %v", err)
		return
	}
	if err := b.rdb.Publish(context.Background(), redisEventChannel, payload).Err(); err != nil {
		logger.Errorf("[Events] redis publish failed, delivering locally: %v", err)
		b.hub.Deliver(ev)
	}
}

// Run consumes the redis channel and feeds the local hub. No-op without
// redis. Returns when ctx is cancelled.
func (b *EventBus) Run(ctx context.Context) {
	if b.rdb == nil {
		return
	}

	sub := b.rdb.Subscribe(ctx, redisEventChannel)
	defer sub.Close()

	logger.Infof("[Events] subscribed to %s", redisEventChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Errorf("[Events] bad event payload: %v", err)
				continue
			}
			b.hub.Deliver(ev)
		}
	}
}
