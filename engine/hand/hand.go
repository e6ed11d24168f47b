// Package hand models a single player's owned cards and declared melds for
// the lifetime of one game hand.
package hand

import (
	"sort"

	"guilinpaizi/engine/card"
	"guilinpaizi/engine/meld"
)

// Hand 归属单个玩家，在一局牌的生命周期内持有未声明的手牌与已声明的牌组。
type Hand struct {
	cards []card.Card
	melds []meld.Meld
}

// New 用给定手牌构造一个 Hand，melds 初始为空
func New(cards []card.Card) *Hand {
	h := &Hand{cards: append([]card.Card(nil), cards...)}
	return h
}

// Cards 返回当前未声明的手牌，按 (suit, value) 规范排序
func (h *Hand) Cards() []card.Card {
	return append([]card.Card(nil), h.cards...)
}

// Melds 返回已声明的牌组，按声明顺序
func (h *Hand) Melds() []meld.Meld {
	return append([]meld.Meld(nil), h.melds...)
}

// Len 返回未声明手牌张数
func (h *Hand) Len() int {
	return len(h.cards)
}

// Sort 按 (suit, value) 升序对手牌重新排序
func (h *Hand) Sort() {
	sort.Slice(h.cards, func(i, j int) bool {
		return h.cards[i].Less(h.cards[j])
	})
}

// AddCard 摸入一张牌并维持排序
func (h *Hand) AddCard(c card.Card) {
	h.cards = append(h.cards, c)
	h.Sort()
}

// RemoveCard 按索引移除一张手牌，返回该牌；索引越界返回 (Card{}, false)
func (h *Hand) RemoveCard(idx int) (card.Card, bool) {
	if idx < 0 || idx >= len(h.cards) {
		return card.Card{}, false
	}
	c := h.cards[idx]
	h.cards = append(h.cards[:idx], h.cards[idx+1:]...)
	return c, true
}

// FindCard 返回第一张等值手牌的索引，找不到返回 -1
func (h *Hand) FindCard(c card.Card) int {
	for i, hc := range h.cards {
		if hc.Equal(c) {
			return i
		}
	}
	return -1
}

// CountCard 统计手牌中与 c 等值的张数
func (h *Hand) CountCard(c card.Card) int {
	n := 0
	for _, hc := range h.cards {
		if hc.Equal(c) {
			n++
		}
	}
	return n
}

// AddMeld 向已声明牌组追加一个牌组
func (h *Hand) AddMeld(m meld.Meld) {
	h.melds = append(h.melds, m)
}

// CanPeng 手牌中是否持有至少两张与 c 等值的牌，可碰
func (h *Hand) CanPeng(c card.Card) bool {
	return h.CountCard(c) >= 2
}

// CanSao 与碰同构：手牌中两张相同可组成扫（由放铳牌触发时额外判定在协调器层完成）
func (h *Hand) CanSao(c card.Card) bool {
	return h.CountCard(c) >= 2
}

// TotalHuxi 累加所有已声明牌组的胡息（饱和到 uint8 范围）
func (h *Hand) TotalHuxi() int {
	total := 0
	for _, m := range h.melds {
		total += m.Huxi()
		if total > 255 {
			total = 255
		}
	}
	return total
}

// CanHu 判断当前是否满足和牌条件：累计胡息达到门槛，且尚未声明的手牌能
// 完整拆分为合法牌组加一对将牌，不含破坏和牌形态的散牌。
func (h *Hand) CanHu() bool {
	return h.TotalHuxi() >= meld.MinHuxiToWin && meld.IsCompleteWinShape(h.cards)
}
