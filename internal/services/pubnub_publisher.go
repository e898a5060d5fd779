package services

import (
	"context"
	"fmt"

	"seatwell/config"
	"seatwell/utils"

	pubnub "github.com/pubnub/go/v7"
)

func pubnubBreakerSettings() utils.Settings {
	settings := utils.DefaultSettings()
	settings.MaxRequests = 10
	return settings
}

// PubNubPublisher pushes market events to PubNub channels. Calls go through a
// circuit breaker so an unreachable PubNub does not pile up goroutines.
type PubNubPublisher struct {
	pubnub  *pubnub.PubNub
	breaker *utils.CircuitBreaker
	send    func(channel string, message any) error
}

func NewPubNubPublisher(cfg *config.Config) *PubNubPublisher {
	pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PubNubUserID))
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	p := &PubNubPublisher{
		pubnub:  pubnub.NewPubNub(pnConfig),
		breaker: utils.NewCircuitBreaker("pubnub", pubnubBreakerSettings()),
	}
	p.send = p.publish
	return p
}

func (p *PubNubPublisher) Publish(ctx context.Context, channel string, event MarketEvent) error {
	return p.breaker.Execute(ctx, func() error {
		return p.send(channel, event)
	})
}

func (p *PubNubPublisher) publish(channel string, message any) error {
	_, status, err := p.pubnub.Publish().
		Channel(channel).
		Message(message).
		Execute()
	if err != nil {
		return fmt.Errorf("pubnub publish to %s: %w", channel, err)
	}
	if status.Error != nil {
		return fmt.Errorf("pubnub publish to %s: status %d: %w", channel, status.StatusCode, status.Error)
	}
	return nil
}
