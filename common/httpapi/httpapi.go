// Package httpapi exposes the admin/ops HTTP surface (C11): health, room
// listing, and leaderboard queries for dashboards and smoke tests. Grounded
// on the teacher's common/http wrapper around gin, plus the teacher's
// statsviz/gopsutil usage in its *_node main.go files for live process
// metrics.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	httpx "guilinpaizi/common/http"
	"guilinpaizi/ranking"
	"guilinpaizi/room"
)

// Surface 承载管理端路由所需的依赖
type Surface struct {
	rooms     *room.Manager
	ranking   *ranking.System
	started   time.Time
	jwtSecret string
}

// New 创建管理端 HTTP 接口；jwtSecret 用于鉴权 /api/v1 下需要登录态的查询接口
func New(rooms *room.Manager, rankingSystem *ranking.System, jwtSecret string) *Surface {
	return &Surface{rooms: rooms, ranking: rankingSystem, started: time.Now(), jwtSecret: jwtSecret}
}

// Mount 把管理端路由挂载到传入的 HttpServer，并注册 statsviz 实时监控页面
func (s *Surface) Mount(server *httpx.HttpServer) {
	server.Use(httpx.RecoveryMiddleware(), httpx.CorsMiddleware(), httpx.RequestIDMiddleware(),
		httpx.LoggerMiddleware(), httpx.SecurityMiddleware())

	server.GET("/ping", s.ping)
	server.GET("/health", s.health)

	api := server.Group("/api/v1", httpx.AuthMiddleware(s.jwtSecret), httpx.RateLimitMiddleware(20, time.Minute))
	api.GET("/rooms", s.listRooms)
	api.GET("/leaderboard", s.leaderboard)

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err == nil {
		server.GetEngine().GET("/debug/statsviz/*any", gin.WrapH(mux))
	}
}

func (s *Surface) ping(c *httpx.Context) error {
	c.String(http.StatusOK, "pong")
	return nil
}

// healthResponse 汇报进程存活时长、连接数与系统负载，供运维探针使用
type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Rooms         int     `json:"rooms"`
	Players       int     `json:"players"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemUsedBytes  uint64  `json:"mem_used_bytes"`
}

func (s *Surface) health(c *httpx.Context) error {
	stats := s.rooms.GetStats()

	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.started).Seconds(),
		Rooms:         stats.TotalRooms,
		Players:       stats.TotalPlayers,
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.MemUsedBytes = vm.Used
	}

	c.Success(resp)
	return nil
}

func (s *Surface) listRooms(c *httpx.Context) error {
	c.Success(s.rooms.ListRooms())
	return nil
}

func (s *Surface) leaderboard(c *httpx.Context) error {
	n := 10
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ids, err := s.ranking.TopN(ctx, n)
	if err != nil {
		c.Success(map[string][]string{"player_ids": []string{}})
		return nil
	}
	c.Success(map[string][]string{"player_ids": ids})
	return nil
}
