package state

import (
	"github.com/google/uuid"

	"guilinpaizi/engine/card"
)

// ActionKind 标记最近一次动作的种类，供事件投影与 last_action 展示
type ActionKind int

const (
	ActionPlayCard ActionKind = iota
	ActionChi
	ActionPeng
	ActionSao
	ActionKan
	ActionHu
	ActionPass
)

// GameAction 记录了状态机中最近发生的一次动作
type GameAction struct {
	Kind      ActionKind  `json:"kind"`
	Player    uuid.UUID   `json:"player"`
	CardIdx   int         `json:"card_idx,omitempty"`
	Cards     []int       `json:"cards,omitempty"`
	Card      *card.Card  `json:"card,omitempty"`
	IsZimo    bool        `json:"is_zimo,omitempty"`
}

// WinResult 描述一次和牌的评分结果
type WinResult struct {
	Winner   uuid.UUID `json:"winner"`
	Huxi     int       `json:"huxi"`
	Duo      int       `json:"duo"`
	Fan      int       `json:"fan"`
	IsZimo   bool       `json:"is_zimo"`
	IsTianhu bool       `json:"is_tianhu"`
	IsDihu   bool       `json:"is_dihu"`
}
