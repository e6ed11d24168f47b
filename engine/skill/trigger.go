package skill

import (
	"github.com/google/uuid"

	"guilinpaizi/engine/state"
)

// Trigger 标记技能效果应当被检查的时机
type Trigger int

const (
	TriggerOnTurnStart Trigger = iota
	TriggerOnTurnEnd
	TriggerOnCardPlayed
	TriggerOnMeldFormed
	TriggerOnDrawCard
	TriggerOnOpponentDiscard
	TriggerOnHu
	TriggerOnGameEnd
	TriggerManual
)

// Condition 是技能自动触发的判定条件
type Condition struct {
	kind       conditionKind
	handSize   int
	huxiFloor  int
	lastRounds int
}

type conditionKind int

const (
	condAlways conditionKind = iota
	condHandSize
	condHuxiAbove
	condInTing
	condLastRounds
)

func Always() Condition                  { return Condition{kind: condAlways} }
func HandSize(size int) Condition         { return Condition{kind: condHandSize, handSize: size} }
func HuxiAbove(threshold int) Condition   { return Condition{kind: condHuxiAbove, huxiFloor: threshold} }
func InTing() Condition                   { return Condition{kind: condInTing} }
func LastRounds(n int) Condition          { return Condition{kind: condLastRounds, lastRounds: n} }

// Check 判断该条件在当前局面下对该玩家是否成立
func (c Condition) Check(g *state.GameState, playerID uuid.UUID) bool {
	switch c.kind {
	case condAlways:
		return true
	case condHandSize:
		h, ok := g.Hands[playerID]
		return ok && h.Len() == c.handSize
	case condHuxiAbove:
		h, ok := g.Hands[playerID]
		return ok && h.TotalHuxi() >= c.huxiFloor
	case condInTing:
		canHu, err := g.CanHu(playerID)
		return err == nil && canHu
	case condLastRounds:
		return g.Deck.Len() <= c.lastRounds
	default:
		return false
	}
}

// Context 绑定一个触发时机与其判定条件
type Context struct {
	Trigger   Trigger
	Condition Condition
}

// NewContext 创建一个触发上下文
func NewContext(t Trigger, c Condition) Context {
	return Context{Trigger: t, Condition: c}
}

// ShouldTrigger 判断该触发上下文当前是否满足条件
func (c Context) ShouldTrigger(g *state.GameState, playerID uuid.UUID) bool {
	return c.Condition.Check(g, playerID)
}
