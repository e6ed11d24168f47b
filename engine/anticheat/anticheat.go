// Package anticheat implements a pluggable cheat-detection interface (C8
// expansion, §9 open question "anti-cheat scope"): action-timing history
// and pattern sweeps, grounded on original_source's server::anti_cheat.
package anticheat

import (
	"container/ring"
	"fmt"
	"time"

	"github.com/google/uuid"

	"guilinpaizi/engine/state"
)

const historySize = 100

// PatternType 是一种可疑行为的分类
type PatternType int

const (
	PatternImpossibleWinRate PatternType = iota
	PatternTooFastActions
	PatternPredictableBehavior
	PatternMultipleAccounts
)

func (p PatternType) String() string {
	switch p {
	case PatternImpossibleWinRate:
		return "impossible_win_rate"
	case PatternTooFastActions:
		return "too_fast_actions"
	case PatternPredictableBehavior:
		return "predictable_behavior"
	case PatternMultipleAccounts:
		return "multiple_accounts"
	default:
		return "unknown"
	}
}

// SuspiciousPattern 是一次检测出的可疑行为
type SuspiciousPattern struct {
	PlayerID   uuid.UUID
	Type       PatternType
	Confidence float64
	Detected   time.Time
}

// Validation 是单次动作合法性校验的结果
type Validation struct {
	Valid   bool
	Invalid bool
	Reason  string
}

func valid() Validation            { return Validation{Valid: true} }
func invalid(reason string) Validation { return Validation{Invalid: true, Reason: reason} }

type actionRecord struct {
	action    state.GameAction
	observed  time.Time
}

// Detector 是反作弊系统的行为接口：记录动作、校验单次动作合法性、
// 周期性地扫描累积历史寻找可疑模式。一个房间持有一个 Detector 实例。
type Detector interface {
	RecordAction(playerID uuid.UUID, action state.GameAction, observed time.Time)
	Validate(g *state.GameState, playerID uuid.UUID, action state.GameAction) Validation
	CheckPatterns(playerID uuid.UUID) []SuspiciousPattern
	SuspiciousPlayers() []uuid.UUID
}

// BasicDetector 是 Detector 的唯一具体实现：固定容量环形历史 + 时序/合法性检查。
type BasicDetector struct {
	history    map[uuid.UUID]*ring.Ring
	suspicious []SuspiciousPattern
}

// NewBasicDetector 创建反作弊探测器
func NewBasicDetector() *BasicDetector {
	return &BasicDetector{history: make(map[uuid.UUID]*ring.Ring)}
}

// RecordAction 把一次动作追加到玩家的定长历史环，超出容量自动覆盖最旧记录
func (d *BasicDetector) RecordAction(playerID uuid.UUID, action state.GameAction, observed time.Time) {
	r, ok := d.history[playerID]
	if !ok {
		r = ring.New(historySize)
		d.history[playerID] = r
	}
	r.Value = actionRecord{action: action, observed: observed}
	d.history[playerID] = r.Next()
}

// Validate 校验一次动作是否在当前局面下合法：轮次归属、牌索引越界
func (d *BasicDetector) Validate(g *state.GameState, playerID uuid.UUID, action state.GameAction) Validation {
	if current := g.CurrentPlayer(); current != nil && current.ID != playerID {
		return invalid("不是当前玩家的回合")
	}
	if action.Kind == state.ActionPlayCard {
		h, ok := g.Hands[playerID]
		if ok && (action.CardIdx < 0 || action.CardIdx >= h.Len()) {
			return invalid(fmt.Sprintf("无效的牌索引 %d", action.CardIdx))
		}
	}
	return valid()
}

// CheckPatterns 扫描玩家历史动作的时间间隔，若最近若干次动作间隔异常一致
// 且样本量足够，判定为"操作过快"的可疑模式（机器人/脚本特征）。
func (d *BasicDetector) CheckPatterns(playerID uuid.UUID) []SuspiciousPattern {
	r, ok := d.history[playerID]
	if !ok {
		return nil
	}
	records := collectRecords(r)
	if len(records) < 20 {
		return nil
	}
	recent := records
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	if allIntervalsUnderThreshold(recent, 50*time.Millisecond) {
		p := SuspiciousPattern{
			PlayerID: playerID, Type: PatternTooFastActions,
			Confidence: 0.7, Detected: time.Now(),
		}
		d.suspicious = append(d.suspicious, p)
		return []SuspiciousPattern{p}
	}
	return nil
}

func collectRecords(r *ring.Ring) []actionRecord {
	records := make([]actionRecord, 0, r.Len())
	r.Do(func(v any) {
		if v == nil {
			return
		}
		records = append(records, v.(actionRecord))
	})
	return records
}

func allIntervalsUnderThreshold(records []actionRecord, threshold time.Duration) bool {
	if len(records) < 2 {
		return false
	}
	for i := 1; i < len(records); i++ {
		gap := records[i].observed.Sub(records[i-1].observed)
		if gap < 0 {
			gap = -gap
		}
		if gap > threshold {
			return false
		}
	}
	return true
}

// SuspiciousPlayers 返回所有累计触发过可疑模式的玩家（去重）
func (d *BasicDetector) SuspiciousPlayers() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var players []uuid.UUID
	for _, p := range d.suspicious {
		if !seen[p.PlayerID] {
			seen[p.PlayerID] = true
			players = append(players, p.PlayerID)
		}
	}
	return players
}
