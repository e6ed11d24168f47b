package ranking

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"guilinpaizi/common/database"
)

// leaderboardKey 是段位榜单在 Redis 中的有序集合 key，沿用 teacher 仓库中
// Redis key 构造方法的命名习惯（GetDisplayName 风格的 String() 方法见 Tier）。
const leaderboardKey = "ranking:leaderboard"

// System 维护进程内的段位与 Elo 映射，并把排行榜投影到 Redis 有序集合供
// 管理端查询（C11）。process-wide，调用方持有自己的锁颗粒度由房间决定，
// 此处用一把自身的互斥锁保护聚合更新。
type System struct {
	mu     sync.RWMutex
	redis  *database.RedisManager
	ranks  map[uuid.UUID]*Rank
	ratings map[uuid.UUID]*EloRating
}

// NewSystem 创建排名系统，redis 可为 nil（仅内存模式，测试场景）
func NewSystem(redis *database.RedisManager) *System {
	return &System{
		redis:   redis,
		ranks:   make(map[uuid.UUID]*Rank),
		ratings: make(map[uuid.UUID]*EloRating),
	}
}

// RegisterPlayer 为新玩家初始化青铜 0 星与 1000 分的 Elo
func (s *System) RegisterPlayer(playerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ranks[playerID]; !ok {
		rank := NewRank(Bronze, 0)
		s.ranks[playerID] = &rank
	}
	if _, ok := s.ratings[playerID]; !ok {
		elo := NewEloRating()
		s.ratings[playerID] = &elo
	}
}

// GetRank 返回玩家当前段位
func (s *System) GetRank(playerID uuid.UUID) (Rank, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ranks[playerID]
	if !ok {
		return Rank{}, false
	}
	return *r, true
}

// GetRating 返回玩家当前 Elo
func (s *System) GetRating(playerID uuid.UUID) (EloRating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[playerID]
	if !ok {
		return EloRating{}, false
	}
	return *r, true
}

// SeedRank 用持久化仓库加载出的段位/Elo 覆盖内存态（服务启动或玩家首次入座时调用）
func (s *System) SeedRank(playerID uuid.UUID, rank Rank, elo EloRating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := rank
	e := elo
	s.ranks[playerID] = &r
	s.ratings[playerID] = &e
}

// UpdateAfterMatch 更新胜者/败者的段位与 Elo，并把段位榜单同步到 Redis
func (s *System) UpdateAfterMatch(ctx context.Context, winner, loser uuid.UUID) error {
	s.mu.Lock()
	winnerRank, ok1 := s.ranks[winner]
	loserRank, ok2 := s.ranks[loser]
	winnerElo, ok3 := s.ratings[winner]
	loserElo, ok4 := s.ratings[loser]
	if !ok1 || !ok2 || !ok3 || !ok4 {
		s.mu.Unlock()
		return fmt.Errorf("ranking: player not registered")
	}
	UpdateAfterMatch(winnerElo, loserElo, winnerRank, loserRank)
	wScore := tierScore(winnerRank.Tier, winnerRank.Stars)
	lScore := tierScore(loserRank.Tier, loserRank.Stars)
	s.mu.Unlock()

	if s.redis == nil || s.redis.Cli == nil {
		return nil
	}
	pipe := s.redis.Cli.Pipeline()
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: wScore, Member: winner.String()})
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: lScore, Member: loser.String()})
	_, err := pipe.Exec(ctx)
	return err
}

// tierScore 把 (tier, stars) 压成一个单调递增的排序分数：tier*5+stars
func tierScore(t Tier, stars int) float64 {
	return float64(int(t)*5 + stars)
}

// TopN 从 Redis 有序集合读取前 n 名玩家 id（降序）
func (s *System) TopN(ctx context.Context, n int) ([]string, error) {
	if s.redis == nil || s.redis.Cli == nil {
		return nil, fmt.Errorf("ranking: redis not configured")
	}
	return s.redis.Cli.ZRevRange(ctx, leaderboardKey, 0, int64(n-1)).Result()
}

// Position 返回玩家在榜单中的排名（0 起始），未上榜返回 error
func (s *System) Position(ctx context.Context, playerID uuid.UUID) (int64, error) {
	if s.redis == nil || s.redis.Cli == nil {
		return 0, fmt.Errorf("ranking: redis not configured")
	}
	return s.redis.Cli.ZRevRank(ctx, leaderboardKey, playerID.String()).Result()
}
