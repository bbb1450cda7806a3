package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel carries every lifecycle event as JSON.
const Channel = "interviews"

const (
	TypeScheduled    = "interview_scheduled"
	TypeSessionEnded = "session_ended"
	TypeCompleted    = "interview_completed"
)

// Event is one lifecycle transition broadcast to interested services.
type Event struct {
	Type        string    `json:"type"`
	InterviewID string    `json:"interviewId,omitempty"`
	RoomID      string    `json:"roomId,omitempty"`
	Email       string    `json:"email,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher fans lifecycle events out over redis pub/sub. Publishing is
// best-effort: a failed publish is logged, never propagated.
type Publisher struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewPublisher(rdb *redis.Client, log *zap.Logger) *Publisher {
	return &Publisher{rdb: rdb, log: log}
}

func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if p == nil || p.rdb == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("marshal event", zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		p.log.Warn("publish event", zap.String("type", ev.Type), zap.Error(err))
	}
}

// Subscribe consumes lifecycle events until ctx is cancelled, invoking
// handle for each decoded event. Malformed payloads are skipped.
func Subscribe(ctx context.Context, rdb *redis.Client, log *zap.Logger, handle func(Event)) {
	sub := rdb.Subscribe(ctx, Channel)
	defer sub.Close()

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
				log.Warn("parse event", zap.Error(err))
				continue
			}
			handle(ev)
		}
	}
}
