package economy

import (
	"math"

	"github.com/google/uuid"
)

// GameOutcome 是房间协调器在一手牌结束时交给结算器的每名参与者结果
type GameOutcome struct {
	PlayerID       uuid.UUID
	IsWinner       bool
	Huxi           int
	Duo            int
	Fan            int
	IsZimo         bool
	IsTianhu       bool
	IsDihu         bool
	WinBonusMods   float64 // 技能叠加的赢家加成比例之和
	LossReductMods float64 // 技能叠加的输家减损比例之和
}

// SettlementResult 是单个玩家的结算结果
type SettlementResult struct {
	PlayerID      uuid.UUID `json:"player_id"`
	Outcome       bool      `json:"is_winner"`
	BaseBeans     int64     `json:"base_beans"`
	SkillBonus    int64     `json:"skill_bonus"`
	RakeDeduction int64     `json:"rake_deduction"`
	FinalBeans    int64     `json:"final_beans"`
}

// Calculator 按 §4.5 的七步流程计算一手牌的结算
type Calculator struct {
	cfg EconomyConfig
}

// NewCalculator 创建结算器
func NewCalculator(cfg EconomyConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate 计算一手牌所有参与者的结算结果，严格遵循 §4.5 的七步流程：
// 赢家拿走抽水后的底池并按 zimo/tianhu/dihu 翻倍，输家只损失底注并享受
// 技能减损；赢家的翻倍部分是庄家/系统贴出的额外收益，不参与底池再分配，
// 因此当倍数大于 1 时 Σ final 不会严格等于 -rake，这是设计使然（见 S7）。
func (c *Calculator) Calculate(baseBet int64, outcomes []GameOutcome) []SettlementResult {
	n := int64(len(outcomes))
	pot := baseBet * n
	rake := int64(math.Floor(float64(pot) * c.cfg.RakePercentage))
	distributable := pot - rake

	results := make([]SettlementResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.IsWinner {
			base := distributable
			bonus := int64(float64(base) * o.WinBonusMods)
			multiplier := int64(1) << uint(boolToInt(o.IsZimo)+boolToInt(o.IsTianhu)+boolToInt(o.IsDihu))
			final := (base + bonus) * multiplier
			results = append(results, SettlementResult{
				PlayerID: o.PlayerID, Outcome: true,
				BaseBeans: base, SkillBonus: bonus, RakeDeduction: rake, FinalBeans: final,
			})
		} else {
			base := -baseBet
			reduction := int64(float64(baseBet) * o.LossReductMods)
			final := base + reduction
			results = append(results, SettlementResult{
				PlayerID: o.PlayerID, Outcome: false,
				BaseBeans: base, SkillBonus: reduction, RakeDeduction: rake, FinalBeans: final,
			})
		}
	}
	return results
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
