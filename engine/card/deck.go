package card

import "math/rand"

// Deck 是一副有序的牌堆，顶端（索引 0）是下一张被摸取的牌。
// 洗牌使用可注入种子的 RNG，保证测试下的确定性。
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New 创建一副完整的 80 张未洗牌的牌堆：2 花色 × 10 点数 × 4 副
func New() *Deck {
	return NewSeeded(0)
}

// NewSeeded 创建一副使用给定种子 RNG 的牌堆
func NewSeeded(seed int64) *Deck {
	cards := make([]Card, 0, 80)
	for _, suit := range []Suit{Small, Big} {
		for value := 1; value <= 10; value++ {
			for copyIdx := 0; copyIdx < 4; copyIdx++ {
				cards = append(cards, New(suit, value))
			}
		}
	}
	return &Deck{cards: cards, rng: rand.New(rand.NewSource(seed))}
}

// Len 返回剩余牌数
func (d *Deck) Len() int {
	return len(d.cards)
}

// Shuffle 就地打乱牌堆
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw 从顶端摸一张牌；牌堆为空时返回 (Card{}, false)
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// DrawN 摸 n 张牌；牌堆不足时返回能摸到的全部
func (d *Deck) DrawN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := append([]Card(nil), d.cards[:n]...)
	d.cards = d.cards[n:]
	return drawn
}

// Cards 返回牌堆剩余牌的只读快照，供守恒检查使用
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
