// Package server implements the WebSocket connection lifecycle (C9):
// accept, authenticate, dispatch intents into the room registry, and fan
// out room events back to the client. Grounded on the teacher's
// runtime/conn/worker.go (sharded client buckets, fnv32 hashing, JWT
// identifyUser) with the NATS/etcd cross-node plumbing dropped — this is a
// single-process monolith, so intents go straight into an in-process
// room.Manager instead of a message bus.
package server

import (
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"guilinpaizi/common/cache"
	"guilinpaizi/common/jwts"
	"guilinpaizi/common/log"
	"guilinpaizi/common/utils"
	"guilinpaizi/gameerrors"
	"guilinpaizi/protocol"
	"guilinpaizi/room"
)

const bucketCount = 32

// clientBucket 是一组连接的分片，沿用 teacher 仓库 ClientBucket 的命名与
// 分片策略：按连接 id 的 fnv32 哈希取模，避免单把全局锁。
type clientBucket struct {
	sync.RWMutex
	clients map[uuid.UUID]*connection
}

func newClientBucket() *clientBucket {
	return &clientBucket{clients: make(map[uuid.UUID]*connection)}
}

func fnv32(id uuid.UUID) uint32 {
	h := fnv.New32a()
	h.Write(id[:])
	return h.Sum32()
}

// connection 是一条已升级的 WebSocket 连接：一个读 goroutine + 一个写
// goroutine，二者通过 send channel 桥接（§5 并发模型：每连接一读一写，
// 由 channel 承担原本需要写锁保护的 WriteMessage 调用）。
type connection struct {
	id      uuid.UUID
	ws      *websocket.Conn
	send    chan []byte
	limiter *utils.RateLimiter

	server *Server

	mu          sync.Mutex
	currentRoom string
	unsubscribe func()
}

// Server 接受 WebSocket 连接，校验身份，并把已认证连接的 intent 投递给
// 房间注册表；房间产生的事件经由每连接的订阅 goroutine 写回客户端。
type Server struct {
	upgrader   websocket.Upgrader
	buckets    []*clientBucket
	bucketMask uint32
	rooms      *room.Manager
	routes     *cache.PlayerRoomCache
	jwtSecret  string

	rateLimitActionsPerSec float64
	rateLimitBurst         float64

	connCount int32
}

// New 创建连接网关；jwtSecret 用于校验升级请求 query 中的 token。
func New(rooms *room.Manager, routes *cache.PlayerRoomCache, jwtSecret string, rateActionsPerSec, rateBurst float64) *Server {
	s := &Server{
		rooms:                  rooms,
		routes:                 routes,
		jwtSecret:              jwtSecret,
		bucketMask:             uint32(bucketCount - 1),
		rateLimitActionsPerSec: rateActionsPerSec,
		rateLimitBurst:         rateBurst,
		upgrader: websocket.Upgrader{
			CheckOrigin:       func(r *http.Request) bool { return true },
			ReadBufferSize:    4096,
			WriteBufferSize:   4096,
			EnableCompression: true,
		},
	}
	s.buckets = make([]*clientBucket, bucketCount)
	for i := range s.buckets {
		s.buckets[i] = newClientBucket()
	}
	return s
}

func (s *Server) bucketFor(id uuid.UUID) *clientBucket {
	return s.buckets[fnv32(id)&s.bucketMask]
}

// identifyUser 从升级请求的 token query 参数解析 JWT，取出玩家 id，
// 对应 teacher 仓库 runtime/conn/worker.go::identifyUser。
func (s *Server) identifyUser(r *http.Request) (uuid.UUID, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return uuid.UUID{}, errors.New("缺少 token")
	}
	if s.jwtSecret == "" {
		return uuid.UUID{}, errors.New("未配置 jwt secret")
	}
	sub, err := jwts.ParseToken(token, s.jwtSecret)
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.Parse(sub)
}

// ServeHTTP 升级 /ws 端点的连接：鉴权 -> 升级 -> 注册 -> 启动读写泵。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	playerID, err := s.identifyUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		log.Warn("连接鉴权失败 remote=%s err=%v", r.RemoteAddr, err)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket 升级失败: %v", err)
		return
	}

	c := &connection{
		id:      playerID,
		ws:      ws,
		send:    make(chan []byte, 256),
		limiter: utils.NewRateLimiter(s.rateLimitActionsPerSec, s.rateLimitBurst),
		server:  s,
	}

	bucket := s.bucketFor(playerID)
	bucket.Lock()
	bucket.clients[playerID] = c
	bucket.Unlock()
	atomic.AddInt32(&s.connCount, 1)

	ws.SetReadDeadline(time.Now().Add(120 * time.Second))
	welcome, _ := json.Marshal(protocol.NewWelcome(playerID, "欢迎来到桂林牌字"))
	c.send <- welcome

	log.Info("WebSocket 建立连接: playerID=%s remote=%s", playerID, r.RemoteAddr)

	go c.writePump()
	c.readPump()
}

func (s *Server) removeConnection(c *connection) {
	bucket := s.bucketFor(c.id)
	bucket.Lock()
	delete(bucket.clients, c.id)
	bucket.Unlock()
	atomic.AddInt32(&s.connCount, -1)

	c.mu.Lock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.mu.Unlock()

	if c.currentRoom != "" {
		s.rooms.LeaveRoom(c.id)
		if s.routes != nil {
			s.routes.ClearRoute(c.id)
		}
	}
}

// ConnectionCount 返回当前活跃连接数，供 /health 使用
func (s *Server) ConnectionCount() int32 {
	return atomic.LoadInt32(&s.connCount)
}

func (c *connection) writePump() {
	defer c.ws.Close()
	for payload := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (c *connection) readPump() {
	defer func() {
		c.server.removeConnection(c)
		close(c.send)
	}()
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			c.sendError("", "操作过于频繁")
			continue
		}
		c.handleFrame(raw)
	}
}

func (c *connection) sendError(kind, message string) {
	payload, _ := json.Marshal(protocol.NewError(kind, message))
	select {
	case c.send <- payload:
	default:
	}
}

func (c *connection) handleFrame(raw []byte) {
	env, err := protocol.ParseIntent(raw)
	if err != nil {
		c.sendError("invalid_action", "无法解析的请求")
		return
	}

	switch env.Type {
	case protocol.IntentJoinRoom:
		c.join(env.RoomID)
		return
	case protocol.IntentLeaveRoom:
		c.leave()
		return
	}

	c.mu.Lock()
	roomID := c.currentRoom
	c.mu.Unlock()
	if roomID == "" {
		c.sendError("invalid_action", "尚未加入房间")
		return
	}
	r, ok := c.server.rooms.GetRoom(roomID)
	if !ok {
		c.sendError("invalid_action", "房间不存在")
		return
	}
	if err := r.SubmitIntent(c.id, env); err != nil {
		c.sendError(string(errKind(err)), err.Error())
	}
}

// errKind 取出 GameError 的 Kind 字符串，供 error 事件携带分类；非
// GameError（如网络/解析错误）归入 internal_error。
func errKind(err error) string {
	var ge *gameerrors.GameError
	if errors.As(err, &ge) {
		return string(ge.Kind)
	}
	return string(gameerrors.InternalError)
}

func (c *connection) join(roomID string) {
	if roomID == "" {
		roomID = c.server.rooms.CreateRoom().ID
	}
	r, err := c.server.rooms.JoinRoom(roomID, c.id, c.id.String())
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}

	c.mu.Lock()
	c.currentRoom = roomID
	c.mu.Unlock()
	if c.server.routes != nil {
		c.server.routes.SetRoute(c.id, roomID)
	}

	events := r.Subscribe(c.id)
	done := make(chan struct{})
	c.mu.Lock()
	c.unsubscribe = func() { close(done) }
	c.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				select {
				case c.send <- payload:
				default:
				}
			case <-done:
				return
			}
		}
	}()
}

func (c *connection) leave() {
	c.mu.Lock()
	roomID := c.currentRoom
	c.currentRoom = ""
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.mu.Unlock()
	if roomID == "" {
		return
	}
	c.server.rooms.LeaveRoom(c.id)
	if c.server.routes != nil {
		c.server.routes.ClearRoute(c.id)
	}
	payload, _ := json.Marshal(protocol.NewRoomLeft(roomID))
	select {
	case c.send <- payload:
	default:
	}
}
