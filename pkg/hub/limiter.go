package hub

import (
	"sync"

	"golang.org/x/time/rate"

	"devicerelay.xyz/device-relay-service/pkg/common"
)

// RateLimiterStore manages per-device upload limiters: device_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(deviceID string) *rate.Limiter {
	id := common.NormalizeDeviceID(deviceID)

	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[id]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[id] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(deviceID string, deviceRate rate.Limit, deviceBurst int) {
	id := common.NormalizeDeviceID(deviceID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[id] = rate.NewLimiter(deviceRate, deviceBurst)
}
