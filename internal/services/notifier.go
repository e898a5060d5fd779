package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"seatwell/monitoring"

	"github.com/google/uuid"
)

const (
	EventTicketListed   = "ticket_listed"
	EventTicketSold     = "ticket_sold"
	EventTicketHeld     = "ticket_held"
	EventTicketReleased = "ticket_released"
	EventGameDeleted    = "game_deleted"
)

// MarketChannel carries every public marketplace event.
const MarketChannel = "market"

const publishTimeout = 5 * time.Second

// UserChannel is the private channel of one user, e.g. the seller of a sold ticket.
func UserChannel(userID int) string {
	return fmt.Sprintf("user-%d", userID)
}

// MarketEvent is the envelope pushed to realtime subscribers.
type MarketEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	GameID    int       `json:"gameId,omitempty"`
	TicketID  int       `json:"ticketId,omitempty"`
	Data      any       `json:"data,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMarketEvent(eventType string, data any) MarketEvent {
	return MarketEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, channel string, event MarketEvent) error
}

type namedPublisher struct {
	name string
	Publisher
}

// Broadcaster fans market events out to every registered publisher in the
// background. A failed publish is logged and counted, never returned to the
// request that caused it. A nil *Broadcaster drops every event.
type Broadcaster struct {
	mu         sync.RWMutex
	publishers []namedPublisher
	monitor    *monitoring.Monitor
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func NewBroadcaster(monitor *monitoring.Monitor, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{monitor: monitor, logger: logger}
}

func (b *Broadcaster) Add(name string, p Publisher) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.publishers = append(b.publishers, namedPublisher{name: name, Publisher: p})
}

// Notify publishes event to each channel on every publisher.
func (b *Broadcaster) Notify(event MarketEvent, channels ...string) {
	if b == nil {
		return
	}

	b.mu.RLock()
	publishers := append([]namedPublisher(nil), b.publishers...)
	b.mu.RUnlock()

	for _, p := range publishers {
		for _, channel := range channels {
			b.wg.Add(1)
			go func(p namedPublisher, channel string) {
				defer b.wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
				defer cancel()

				if err := p.Publish(ctx, channel, event); err != nil {
					b.logger.Error("Failed to publish market event",
						"publisher", p.name,
						"channel", channel,
						"event", event.Type,
						"error", err,
					)
					b.monitor.TrackNotification(p.name, "failed")
					return
				}
				b.monitor.TrackNotification(p.name, "sent")
			}(p, channel)
		}
	}
}

// Wait blocks until every in-flight publish has finished.
func (b *Broadcaster) Wait() {
	if b == nil {
		return
	}
	b.wg.Wait()
}
