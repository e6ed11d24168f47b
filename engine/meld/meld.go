// Package meld validates meld shapes and computes huxi/duo/fan scoring per
// spec §4.2.
package meld

import "guilinpaizi/engine/card"

// Type 是牌组的形状分类
type Type int

const (
	Chi Type = iota
	Peng
	Sao
	SaoChuan
	KaiDuo
	Kan
)

func (t Type) String() string {
	switch t {
	case Chi:
		return "chi"
	case Peng:
		return "peng"
	case Sao:
		return "sao"
	case SaoChuan:
		return "sao_chuan"
	case KaiDuo:
		return "kai_duo"
	case Kan:
		return "kan"
	default:
		return "unknown"
	}
}

// MinHuxiToWin 是和牌所需的最低胡息
const MinHuxiToWin = 10

// Meld 是一个已声明的牌组
type Meld struct {
	Type         Type        `json:"type"`
	Cards        []card.Card `json:"cards"`
	FromOpponent bool        `json:"from_opponent"`
}

// New 构造一个牌组
func New(t Type, cards []card.Card, fromOpponent bool) Meld {
	return Meld{Type: t, Cards: append([]card.Card(nil), cards...), FromOpponent: fromOpponent}
}

// hasBig 判断牌组中是否含有大牌花色的牌
func hasBig(cards []card.Card) bool {
	for _, c := range cards {
		if c.Suit == card.Big {
			return true
		}
	}
	return false
}

// baseHuxi 是每种牌组类型在纯小牌 / 含大牌两种情形下的基础胡息
var baseHuxi = map[Type][2]int{
	Chi:      {3, 6},
	Peng:     {3, 6},
	Sao:      {6, 9},
	SaoChuan: {9, 12},
	KaiDuo:   {6, 9},
	Kan:      {9, 12},
}

// Huxi 返回该牌组贡献的胡息
func (m Meld) Huxi() int {
	pair, ok := baseHuxi[m.Type]
	if !ok {
		return 0
	}
	if hasBig(m.Cards) {
		return pair[1]
	}
	return pair[0]
}

// duoThresholds 是胡息到番（duo）的阶梯表：huxi >= threshold[i] 对应 duo = i+1
var duoThresholds = []int{10, 13, 16, 19, 22, 25, 28, 31, 34, 37}

// Duo 按阶梯函数把总胡息换算为番数：duo(huxi) = max{d : threshold(d) <= huxi}
func Duo(huxi int) int {
	duo := 0
	for _, t := range duoThresholds {
		if huxi >= t {
			duo++
		} else {
			break
		}
	}
	return duo
}

// Fan 计算最终番数：duo + 自摸/天胡/地胡加成
func Fan(duo int, isZimo, isTianhu, isDihu bool) int {
	fan := duo
	if isZimo {
		fan++
	}
	if isTianhu {
		fan += 2
	}
	if isDihu {
		fan += 2
	}
	return fan
}
