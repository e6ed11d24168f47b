// Package economy implements the HappyBeans currency ledger, the daily-bonus
// claim, and hand settlement (C6 + §4.7), grounded on original_source's
// economy::currency and economy::settlement modules.
package economy

import (
	"sync"
	"time"
)

// TransactionType 标记一条流水的来源
type TransactionType string

const (
	TransactionWin        TransactionType = "win"
	TransactionLoss       TransactionType = "loss"
	TransactionDailyBonus TransactionType = "daily_bonus"
	TransactionAdjustment TransactionType = "adjustment"
)

// Transaction 是一条追加写入的流水记录
type Transaction struct {
	Type      TransactionType `json:"type" bson:"type"`
	Amount    int64           `json:"amount" bson:"amount"`
	Timestamp time.Time       `json:"timestamp" bson:"timestamp"`
}

// HappyBeans 是单个玩家的欢乐豆余额：balance = total_earned - total_spent，
// 余额永不为负——扣款失败而不是下溢。
type HappyBeans struct {
	Balance      int64         `json:"balance" bson:"balance"`
	TotalEarned  int64         `json:"total_earned" bson:"total_earned"`
	TotalSpent   int64         `json:"total_spent" bson:"total_spent"`
	Transactions []Transaction `json:"transactions" bson:"transactions"`
}

// NewHappyBeans 创建一个初始余额为 initial 的账户
func NewHappyBeans(initial int64) HappyBeans {
	return HappyBeans{Balance: initial, TotalEarned: initial}
}

// Credit 增加余额并记录一条流水
func (b *HappyBeans) Credit(amount int64, t TransactionType, now time.Time) {
	if amount <= 0 {
		return
	}
	b.Balance += amount
	b.TotalEarned += amount
	b.Transactions = append(b.Transactions, Transaction{Type: t, Amount: amount, Timestamp: now})
}

// Deduct 尝试扣款；amount > balance 时失败且余额不变
func (b *HappyBeans) Deduct(amount int64, t TransactionType, now time.Time) bool {
	if amount <= 0 {
		return true
	}
	if amount > b.Balance {
		return false
	}
	b.Balance -= amount
	b.TotalSpent += amount
	b.Transactions = append(b.Transactions, Transaction{Type: t, Amount: -amount, Timestamp: now})
	return true
}

// EconomyConfig 持有结算、抽水与每日奖励相关的可配置参数，默认值取自
// original_source 的 EconomyConfig::default。
type EconomyConfig struct {
	RakePercentage     float64 `mapstructure:"rakePercentage"`
	MinBeansForMatch   int64   `mapstructure:"minBeansForMatch"`
	DailyFreeBeans     int64   `mapstructure:"dailyFreeBeans"`
	WinBonusBase       float64 `mapstructure:"winBonusBase"`
	LossReductionSkill float64 `mapstructure:"lossReductionSkill"`
	WinBonusSkill      float64 `mapstructure:"winBonusSkill"`
}

// DefaultEconomyConfig 返回默认经济参数
func DefaultEconomyConfig() EconomyConfig {
	return EconomyConfig{
		RakePercentage:     0.05,
		MinBeansForMatch:   1000,
		DailyFreeBeans:     5000,
		WinBonusBase:       1.0,
		LossReductionSkill: 0.05,
		WinBonusSkill:      0.03,
	}
}

// CurrencySystem 是进程内的玩家余额聚合，process-wide，只在每手牌结束时更新。
type CurrencySystem struct {
	mu          sync.Mutex
	cfg         EconomyConfig
	balances    map[string]*HappyBeans
	lastClaimed map[string]time.Time
}

// NewCurrencySystem 创建货币系统
func NewCurrencySystem(cfg EconomyConfig) *CurrencySystem {
	return &CurrencySystem{
		cfg:         cfg,
		balances:    make(map[string]*HappyBeans),
		lastClaimed: make(map[string]time.Time),
	}
}

// Seed 用持久化层读取到的余额覆盖内存态
func (c *CurrencySystem) Seed(playerID string, beans HappyBeans) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := beans
	c.balances[playerID] = &b
}

// Balance 返回玩家当前余额账户的拷贝；不存在时返回零值账户
func (c *CurrencySystem) Balance(playerID string) HappyBeans {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.balances[playerID]
	if !ok {
		return HappyBeans{}
	}
	return *b
}

// Apply 把一次结算变动（正负皆可）应用到玩家余额
func (c *CurrencySystem) Apply(playerID string, delta int64, t TransactionType, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.balances[playerID]
	if !ok {
		zero := HappyBeans{}
		c.balances[playerID] = &zero
		b = c.balances[playerID]
	}
	if delta >= 0 {
		b.Credit(delta, t, now)
		return
	}
	if !b.Deduct(-delta, t, now) {
		// 结算产生的扣款不应超过余额；欠账止步于 0，差额记为调整流水。
		shortfall := -delta - b.Balance
		b.Deduct(b.Balance, t, now)
		b.Transactions = append(b.Transactions, Transaction{Type: TransactionAdjustment, Amount: -shortfall, Timestamp: now})
	}
}

// CanClaimDailyBonus 距上次领取是否已满 24 小时
func (c *CurrencySystem) CanClaimDailyBonus(playerID string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.lastClaimed[playerID]
	if !ok {
		return true
	}
	return now.Sub(last) >= 24*time.Hour
}

// ClaimDailyBonus 领取每日欢乐豆奖励；成功时返回新余额
func (c *CurrencySystem) ClaimDailyBonus(playerID string, now time.Time) (int64, bool) {
	if !c.CanClaimDailyBonus(playerID, now) {
		return 0, false
	}
	c.mu.Lock()
	b, ok := c.balances[playerID]
	if !ok {
		zero := HappyBeans{}
		c.balances[playerID] = &zero
		b = c.balances[playerID]
	}
	b.Credit(c.cfg.DailyFreeBeans, TransactionDailyBonus, now)
	c.lastClaimed[playerID] = now
	balance := b.Balance
	c.mu.Unlock()
	return balance, true
}
