package redisclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hackgods/meeting-scheduler/internal/scheduling"
)

// ChannelPrefix is prepended to the user id to form the pub/sub channel.
const ChannelPrefix = "scheduling:events:"

// EventPublisher forwards lifecycle events to Redis pub/sub so other surfaces
// (dashboards, notification lists) can refresh their projections.
type EventPublisher struct {
	client *redis.Client
}

func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

func Channel(userID string) string {
	return ChannelPrefix + userID
}

func (p *EventPublisher) HandleEvent(ctx context.Context, ev scheduling.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, Channel(ev.UserID), data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Subscribe decodes events published for userID until ctx is done.
func Subscribe(ctx context.Context, client *redis.Client, userID string, fn func(scheduling.Event)) error {
	sub := client.Subscribe(ctx, Channel(userID))
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", Channel(userID), err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev scheduling.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			fn(ev)
		}
	}
}
