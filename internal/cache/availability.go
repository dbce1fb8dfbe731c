package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/studiobelle/salon-scheduler/internal/config"
	domain "github.com/studiobelle/salon-scheduler/internal/domain/booking"
)

// TTL curto de propósito: a lista de horários é apenas consultiva e a
// validação autoritativa acontece na escrita, mas não queremos servir
// uma visão muito velha da agenda.
const availabilityTTL = 60 * time.Second

func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// AvailabilityCache guarda respostas de disponibilidade por
// (profissional, serviço, data). Qualquer escrita na agenda do
// profissional invalida o dia inteiro.
type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb}
}

func slotKey(staffID, serviceID uint, date string) string {
	return fmt.Sprintf("avail:%d:%s:%d", staffID, date, serviceID)
}

func (c *AvailabilityCache) Get(ctx context.Context, staffID, serviceID uint, date string) ([]domain.TimeSlot, bool) {
	raw, err := c.rdb.Get(ctx, slotKey(staffID, serviceID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("availability cache get:", err)
		}
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, staffID, serviceID uint, date string, slots []domain.TimeSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, slotKey(staffID, serviceID, date), raw, availabilityTTL).Err(); err != nil {
		log.Println("availability cache set:", err)
	}
}

// InvalidateStaffDay derruba todas as entradas do profissional na data,
// independente do serviço consultado.
func (c *AvailabilityCache) InvalidateStaffDay(ctx context.Context, staffID uint, date string) {
	pattern := fmt.Sprintf("avail:%d:%s:*", staffID, date)

	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		log.Println("availability cache invalidate:", err)
		return
	}

	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Println("availability cache invalidate:", err)
		}
	}
}
