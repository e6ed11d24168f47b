package utils

import (
	"sync"
	"time"
)

// RateLimiter 是一个令牌桶限流器，用于约束单个连接每秒可提交的动作数
// （§5 并发模型：每连接限流，避免客户端刷屏式灌入非法动作）。
type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个限流器：rate 为每秒补充的令牌数，capacity 为桶容量
func NewRateLimiter(rate, capacity float64) *RateLimiter {
	return &RateLimiter{
		rate:       rate,
		capacity:   capacity,
		tokens:     capacity,
		lastRefill: time.Now(),
	}
}

// Allow 尝试消耗一个令牌；桶内令牌不足时返回 false
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.lastRefill = now

	rl.tokens += elapsed * rl.rate
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}

	if rl.tokens < 1 {
		return false
	}
	rl.tokens--
	return true
}
