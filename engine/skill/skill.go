// Package skill 实现 C5 技能系统：12 种可配置技能及其每手牌的次数限制，
// 对应 original_source 中 skills::{lib,skills,trigger,effect} 的设计。
package skill

import (
	"github.com/google/uuid"

	"guilinpaizi/engine/state"
)

// Category 是技能的四个大类
type Category int

const (
	CategoryInformation Category = iota
	CategoryErrorCorrection
	CategoryEconomy
	CategoryRisk
)

func (c Category) String() string {
	switch c {
	case CategoryInformation:
		return "信息类"
	case CategoryErrorCorrection:
		return "容错类"
	case CategoryEconomy:
		return "收益类"
	case CategoryRisk:
		return "风险类"
	default:
		return "未知"
	}
}

// Result 是一次技能使用的结果
type Result struct {
	Success    bool
	Message    string
	EffectData map[string]any
}

func success(msg string) Result { return Result{Success: true, Message: msg} }
func failure(msg string) Result { return Result{Success: false, Message: msg} }

func (r Result) withData(data map[string]any) Result {
	r.EffectData = data
	return r
}

// Skill 是单个技能的行为接口，每手牌由 SkillManager 分配给玩家一个实例
type Skill interface {
	ID() int
	Name() string
	Description() string
	Category() Category
	MaxUses() int
	CanUse(g *state.GameState, playerID uuid.UUID) bool
	Use(g *state.GameState, playerID uuid.UUID, target *uuid.UUID) Result
}

// Instance 包裹一个技能与其在本手牌中的剩余次数
type Instance struct {
	Skill         Skill
	RemainingUses int
}

// NewInstance 创建一个全新的技能实例，剩余次数设为该技能的上限
func NewInstance(s Skill) *Instance {
	return &Instance{Skill: s, RemainingUses: s.MaxUses()}
}

// TryUse 检查次数与可用性后执行技能；成功则消耗一次
func (in *Instance) TryUse(g *state.GameState, playerID uuid.UUID, target *uuid.UUID) Result {
	if in.RemainingUses == 0 {
		return failure("技能使用次数已耗尽")
	}
	if !in.Skill.CanUse(g, playerID) {
		return failure("当前无法使用该技能")
	}
	result := in.Skill.Use(g, playerID, target)
	if result.Success {
		in.RemainingUses--
	}
	return result
}
