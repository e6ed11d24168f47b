package skill

import (
	"sync"

	"github.com/google/uuid"

	"guilinpaizi/engine/state"
)

// Manager 持有每名玩家在当前这手牌中被分配到的技能实例集合。房间协调器
// 在 StartHand 时为每名玩家初始化一份 loadout，手牌结束后丢弃重建。
type Manager struct {
	mu      sync.RWMutex
	loadout map[uuid.UUID][]*Instance
}

// NewManager 创建空的技能管理器
func NewManager() *Manager {
	return &Manager{loadout: make(map[uuid.UUID][]*Instance)}
}

// AssignSkills 为玩家分配一份技能实例集合，覆盖上一手牌遗留的状态
func (m *Manager) AssignSkills(playerID uuid.UUID, skills []Skill) {
	m.mu.Lock()
	defer m.mu.Unlock()
	instances := make([]*Instance, 0, len(skills))
	for _, s := range skills {
		instances = append(instances, NewInstance(s))
	}
	m.loadout[playerID] = instances
}

// PlayerSkills 返回玩家当前的技能实例集合
func (m *Manager) PlayerSkills(playerID uuid.UUID) ([]*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	instances, ok := m.loadout[playerID]
	return instances, ok
}

// UseSkill 尝试使用玩家 loadout 中下标为 idx 的技能
func (m *Manager) UseSkill(playerID uuid.UUID, idx int, g *state.GameState, target *uuid.UUID) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	instances, ok := m.loadout[playerID]
	if !ok || idx < 0 || idx >= len(instances) {
		return Result{}, false
	}
	return instances[idx].TryUse(g, playerID, target), true
}

// Reset 清空所有玩家的 loadout，手牌结束后由协调器调用
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadout = make(map[uuid.UUID][]*Instance)
}
