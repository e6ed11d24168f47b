package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// PlayerRoomCache 记录每名在线玩家当前所在的房间号，供管理端 HTTP 接口与
// 重连流程快速定位，而不必遍历房间注册表。沿用 teacher 仓库
// user_route_cache.go 的 ristretto 存储模式，但把「玩家 -> 连接所在节点」
// 的分布式路由场景收窄为单进程下的「玩家 -> 房间号」映射。
type PlayerRoomCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewPlayerRoomCache 创建玩家房间路由缓存；ttl 为条目未刷新时的最大存活时间，
// 用于清理断线后未正常离座的僵尸映射。
func NewPlayerRoomCache(ttl time.Duration) (*PlayerRoomCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &PlayerRoomCache{cache: c, ttl: ttl}, nil
}

// SetRoute 记录玩家当前所在的房间号
func (c *PlayerRoomCache) SetRoute(playerID uuid.UUID, roomID string) {
	c.cache.SetWithTTL(playerID.String(), roomID, 1, c.ttl)
}

// GetRoute 查找玩家当前所在的房间号
func (c *PlayerRoomCache) GetRoute(playerID uuid.UUID) (string, bool) {
	v, ok := c.cache.Get(playerID.String())
	if !ok {
		return "", false
	}
	roomID, ok := v.(string)
	return roomID, ok
}

// ClearRoute 移除玩家的房间路由（离座或断线清理时调用）
func (c *PlayerRoomCache) ClearRoute(playerID uuid.UUID) {
	c.cache.Del(playerID.String())
}

// Close 释放底层缓存资源
func (c *PlayerRoomCache) Close() {
	c.cache.Close()
}
