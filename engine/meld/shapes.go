package meld

import "guilinpaizi/engine/card"

// IsValidChiRun 判断三张牌是否构成同花色连续三点的顺子（chi run）
func IsValidChiRun(cards []card.Card) bool {
	if len(cards) != 3 {
		return false
	}
	suit := cards[0].Suit
	values := make([]int, 3)
	for i, c := range cards {
		if c.Suit != suit {
			return false
		}
		values[i] = c.Value
	}
	sortInts(values)
	return values[1] == values[0]+1 && values[2] == values[1]+1
}

// IsValid2710 判断三张牌是否构成同花色 2-7-10 固定型
func IsValid2710(cards []card.Card) bool {
	if len(cards) != 3 {
		return false
	}
	suit := cards[0].Suit
	seen := map[int]bool{}
	for _, c := range cards {
		if c.Suit != suit {
			return false
		}
		seen[c.Value] = true
	}
	return seen[2] && seen[7] && seen[10]
}

// IsValidSanDa 判断三张牌是否构成"散搭"：大小牌混搭 2+1 或 1+2 的形状。
//
// 按设计说明保留此谓词但不接入 chi 的接受路径——规则来源未确认该形状是否
// 真的可由 chi 声明，游戏流程目前只接受 IsValidChiRun 与 IsValid2710。
func IsValidSanDa(cards []card.Card) bool {
	if len(cards) != 3 {
		return false
	}
	bigCount := 0
	for _, c := range cards {
		if c.Suit == card.Big {
			bigCount++
		}
	}
	return bigCount == 1 || bigCount == 2
}

// IsValidPeng 判断三张牌是否为同一张牌的三连（碰）
func IsValidPeng(cards []card.Card) bool {
	if len(cards) != 3 {
		return false
	}
	return cards[0].Equal(cards[1]) && cards[1].Equal(cards[2])
}

// IsValidKan 暗杠与碰同构：同一张牌的三连，自行宣告
func IsValidKan(cards []card.Card) bool {
	return IsValidPeng(cards)
}

func sortInts(values []int) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}

// IsCompleteWinShape 判断一组未声明的手牌（不含已声明牌组的牌）是否能完整
// 拆分为零个或多个三张合法牌组（chi/peng/2-7-10 的形状）外加恰好一对将牌，
// 没有剩余散牌。对应 core::Hand 以牌面计数为基础的判定风格
// (original_source crates/core/src/hand.rs::get_card_counts/has_meld)，但
// hand.rs 本身只判定碰/扫的计数门槛，并未实现组型的完整拆分——这里据 spec
// §4.1 的结构合法性要求补上。
func IsCompleteWinShape(cards []card.Card) bool {
	if len(cards) == 0 {
		return true
	}
	if len(cards)%3 != 2 {
		return false
	}
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if !cards[i].Equal(cards[j]) {
				continue
			}
			rest := removeAt(cards, i, j)
			if canGroupTriplets(rest) {
				return true
			}
		}
	}
	return false
}

// canGroupTriplets 判断一组牌是否能完整拆分为若干三张合法牌组
func canGroupTriplets(cards []card.Card) bool {
	if len(cards) == 0 {
		return true
	}
	if len(cards)%3 != 0 {
		return false
	}
	first := cards[0]
	rest := cards[1:]
	for i := 0; i < len(rest); i++ {
		for j := i + 1; j < len(rest); j++ {
			group := []card.Card{first, rest[i], rest[j]}
			if IsValidPeng(group) || IsValidChiRun(group) || IsValid2710(group) {
				remainder := removeAt(rest, i, j)
				if canGroupTriplets(remainder) {
					return true
				}
			}
		}
	}
	return false
}

// removeAt 返回去掉索引 i、j（i<j）两张牌后的新切片
func removeAt(cards []card.Card, i, j int) []card.Card {
	out := make([]card.Card, 0, len(cards)-2)
	for k, c := range cards {
		if k == i || k == j {
			continue
		}
		out = append(out, c)
	}
	return out
}
