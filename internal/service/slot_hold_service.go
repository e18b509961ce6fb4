package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another booking request currently holds
// the slot triple.
var ErrSlotHeld = errors.New("slot is currently being booked")

// SlotHoldKeyPrefix namespaces the hold keys in Redis.
const SlotHoldKeyPrefix = "appointment:hold:"

// releaseHoldScript deletes the hold only when it still belongs to the
// caller. Compare-and-delete in Lua so an expired hold reacquired by a
// competing request is never released by the original owner.
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotHoldService serializes concurrent booking attempts on the same
// (doctor, date, time_slot) triple. A hold is a short-lived SET NX key;
// the database partial unique index remains the final authority, the
// hold only keeps the common race out of the insert path.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotHoldService {
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Acquire takes the hold for the given slot triple. Returns a token the
// caller must pass to Release, or ErrSlotHeld when the triple is taken.
func (s *SlotHoldService) Acquire(ctx context.Context, key entity.SlotKey) (string, error) {
	token := uuid.New().String()

	ok, err := s.redisClient.SetNX(ctx, holdKey(key), token, s.ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot hold for %s: %+v", key, err)
		return "", fmt.Errorf("acquire slot hold for %s: %w", key, err)
	}
	if !ok {
		return "", ErrSlotHeld
	}

	return token, nil
}

// Release gives up a hold acquired earlier. Failure is non-fatal: the
// TTL bounds how long a leaked hold can block the slot.
func (s *SlotHoldService) Release(ctx context.Context, key entity.SlotKey, token string) {
	if err := releaseHoldScript.Run(ctx, s.redisClient, []string{holdKey(key)}, token).Err(); err != nil && err != redis.Nil {
		s.log.Warnf("Failed to release slot hold for %s (non-fatal): %+v", key, err)
	}
}

func holdKey(key entity.SlotKey) string {
	return SlotHoldKeyPrefix + key.String()
}
