package room

import (
	"sync"

	"github.com/google/uuid"

	"guilinpaizi/gameerrors"
)

// Manager 是进程内的房间注册表，grounded on runtime/game/room_manager.go's
// RoomManager：以 sync.RWMutex 守护的 map，而非每房间一个 actor goroutine。
type Manager struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	playerRoom map[uuid.UUID]string
	cfg        Config
	onHandEnd  func(HandResult)
}

// NewManager 创建房间注册表
func NewManager(cfg Config) *Manager {
	return &Manager{
		rooms:      make(map[string]*Room),
		playerRoom: make(map[uuid.UUID]string),
		cfg:        cfg,
	}
}

// OnHandEnd 注册一个对每个房间都生效的结算回调（每手牌结束时触发），
// 覆盖此前注册的回调；新建房间会自动接上该回调。
func (m *Manager) OnHandEnd(fn func(HandResult)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onHandEnd = fn
}

func (m *Manager) newRoomLocked(id string) *Room {
	r := New(id, m.cfg)
	r.OnHandEnd = m.onHandEnd
	m.rooms[id] = r
	return r
}

// CreateRoom 创建一个新房间并注册
func (m *Manager) CreateRoom() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newRoomLocked(GenerateRoomID())
}

// GetRoom 按房间号查找房间
func (m *Manager) GetRoom(roomID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

// GetPlayerRoom 查找玩家当前所在的房间号
func (m *Manager) GetPlayerRoom(playerID uuid.UUID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.playerRoom[playerID]
	return id, ok
}

// JoinRoom 让玩家加入指定房间，房间不存在时自动创建（便于通过房间号直接开局）
func (m *Manager) JoinRoom(roomID string, playerID uuid.UUID, name string) (*Room, error) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		r = m.newRoomLocked(roomID)
	}
	m.mu.Unlock()

	if err := r.Join(playerID, name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.playerRoom[playerID] = roomID
	m.mu.Unlock()
	return r, nil
}

// LeaveRoom 让玩家离开其当前房间；房间空置后从注册表移除。
func (m *Manager) LeaveRoom(playerID uuid.UUID) error {
	m.mu.Lock()
	roomID, ok := m.playerRoom[playerID]
	if !ok {
		m.mu.Unlock()
		return gameerrors.Simple(gameerrors.PlayerNotFound)
	}
	r, ok := m.rooms[roomID]
	delete(m.playerRoom, playerID)
	m.mu.Unlock()
	if !ok {
		return nil
	}

	r.Leave(playerID)
	if r.PlayerCount() == 0 {
		m.deleteRoom(roomID)
	}
	return nil
}

func (m *Manager) deleteRoom(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[roomID]; ok {
		r.Close()
		delete(m.rooms, roomID)
	}
}

// Stats 是房间注册表的轻量统计，供 /health 与 /api/v1/rooms 使用
type Stats struct {
	TotalRooms   int
	TotalPlayers int
}

// GetStats 返回当前房间注册表统计
func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := Stats{TotalRooms: len(m.rooms)}
	for _, r := range m.rooms {
		stats.TotalPlayers += r.PlayerCount()
	}
	return stats
}

// RoomSummary 是单个房间面向管理端的摘要
type RoomSummary struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	PlayerCount int   `json:"player_count"`
	MaxPlayers int    `json:"max_players"`
}

func (s RoomState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateSettling:
		return "settling"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ListRooms 返回所有房间的摘要，供管理端 HTTP 接口使用
func (m *Manager) ListRooms() []RoomSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	summaries := make([]RoomSummary, 0, len(m.rooms))
	for _, r := range m.rooms {
		summaries = append(summaries, RoomSummary{
			ID:          r.ID,
			State:       r.State().String(),
			PlayerCount: r.PlayerCount(),
			MaxPlayers:  r.cfg.MaxPlayers,
		})
	}
	return summaries
}
