package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"seatwell/internal/status"
	"seatwell/models"

	"github.com/redis/go-redis/v9"
)

// HoldService reserves a listing for one buyer for a limited time using a
// Redis key per ticket. The key expiring releases the hold.
type HoldService struct {
	Redis *redis.Client
	ttl   time.Duration
	now   func() time.Time
}

func NewHoldService(redisClient *redis.Client, ttl time.Duration) *HoldService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HoldService{Redis: redisClient, ttl: ttl, now: time.Now}
}

// Enabled reports whether holds are backed by Redis. A nil service is disabled.
func (s *HoldService) Enabled() bool {
	return s != nil && s.Redis != nil
}

func holdKey(ticketID int) string {
	return fmt.Sprintf("ticket:hold:%d", ticketID)
}

// Hold reserves the ticket for buyerID. Holding a ticket again as the same
// buyer extends the hold.
func (s *HoldService) Hold(ctx context.Context, ticketID, buyerID int) (models.Hold, error) {
	if !s.Enabled() {
		return models.Hold{}, status.ErrHoldsDisabled
	}

	key := holdKey(ticketID)
	acquired, err := s.Redis.SetNX(ctx, key, strconv.Itoa(buyerID), s.ttl).Result()
	if err != nil {
		return models.Hold{}, fmt.Errorf("hold ticket %d: %w", ticketID, err)
	}

	if !acquired {
		holder, err := s.HolderOf(ctx, ticketID)
		if err != nil {
			return models.Hold{}, err
		}
		if holder != buyerID {
			return models.Hold{}, fmt.Errorf("ticket %d: %w", ticketID, status.ErrTicketHeld)
		}
		if err := s.Redis.Expire(ctx, key, s.ttl).Err(); err != nil {
			return models.Hold{}, fmt.Errorf("extend hold on ticket %d: %w", ticketID, err)
		}
	}

	return models.Hold{
		TicketID:  ticketID,
		BuyerID:   buyerID,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}, nil
}

// HolderOf returns the buyer holding the ticket, or 0 when nobody does.
func (s *HoldService) HolderOf(ctx context.Context, ticketID int) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}

	val, err := s.Redis.Get(ctx, holdKey(ticketID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read hold on ticket %d: %w", ticketID, err)
	}

	holder, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt hold on ticket %d: %q", ticketID, val)
	}
	return holder, nil
}

// Release drops the hold if buyerID owns it. Releasing a ticket nobody holds
// is not an error.
func (s *HoldService) Release(ctx context.Context, ticketID, buyerID int) error {
	if !s.Enabled() {
		return status.ErrHoldsDisabled
	}

	holder, err := s.HolderOf(ctx, ticketID)
	if err != nil {
		return err
	}
	if holder == 0 {
		return nil
	}
	if holder != buyerID {
		return fmt.Errorf("ticket %d: %w", ticketID, status.ErrNotHolder)
	}

	if err := s.Redis.Del(ctx, holdKey(ticketID)).Err(); err != nil {
		return fmt.Errorf("release ticket %d: %w", ticketID, err)
	}
	return nil
}
