package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"guilinpaizi/engine/card"
)

// RoundRecord 手牌记录（每手牌一个文档），存储该手牌的事件流与结算结果
type RoundRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	GameRecordID primitive.ObjectID `bson:"game_record_id"`
	HandNumber   int                `bson:"hand_number"`
	DealerSeat   int                `bson:"dealer_seat"`
	Events       []RoundEvent       `bson:"events"`
	RoundResult  *RoundResult       `bson:"round_result"`
	StartTime    time.Time          `bson:"start_time"`
	EndTime      time.Time          `bson:"end_time"`
	Duration     int                `bson:"duration"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// RoundEvent 手牌内的一次事件（只存事件，不存快照）
type RoundEvent struct {
	Sequence  int                    `bson:"sequence"`
	EventType string                 `bson:"event_type"`
	Timestamp time.Time              `bson:"timestamp"`
	SeatIndex int                    `bson:"seat_index"` // -1 表示系统事件
	Data      map[string]interface{} `bson:"data"`
}

// RoundResult 手牌结算结果
type RoundResult struct {
	EndType    string    `bson:"end_type"` // "HU", "DRAW_EXHAUSTIVE"
	Claims     []HuClaim `bson:"claims"`
	Delta      [4]int64  `bson:"delta"`  // 欢乐豆变动（按座位索引）
	Beans      [4]int64  `bson:"beans"`  // 手牌结束后的欢乐豆（按座位索引）
	Reason     string    `bson:"reason"` // 流局原因（如果有）
	NextDealer int       `bson:"next_dealer"`
}

// HuClaim 和牌信息
type HuClaim struct {
	WinnerSeat int       `bson:"winner_seat"`
	LoserSeat  int       `bson:"loser_seat"` // 荣和时为放铳玩家座位，自摸为 -1
	WinCard    card.Card `bson:"win_card"`
	Huxi       int       `bson:"huxi"`
	Duo        int       `bson:"duo"`
	Fan        int       `bson:"fan"`
	IsZimo     bool      `bson:"is_zimo"`
	IsTianhu   bool      `bson:"is_tianhu"`
	IsDihu     bool      `bson:"is_dihu"`
}

// NewRoundRecord 创建手牌记录
func NewRoundRecord(gameRecordID primitive.ObjectID, handNumber, dealerSeat int) *RoundRecord {
	return &RoundRecord{
		ID:           primitive.NewObjectID(),
		GameRecordID: gameRecordID,
		HandNumber:   handNumber,
		DealerSeat:   dealerSeat,
		Events:       make([]RoundEvent, 0, 100),
		StartTime:    time.Now(),
		CreatedAt:    time.Now(),
	}
}

// AddEvent 追加一条事件
func (rr *RoundRecord) AddEvent(eventType string, seatIndex int, data map[string]interface{}) {
	event := RoundEvent{
		Sequence:  len(rr.Events),
		EventType: eventType,
		Timestamp: time.Now(),
		SeatIndex: seatIndex,
		Data:      data,
	}
	rr.Events = append(rr.Events, event)
}

// CompleteRound 完成手牌（设置结算结果）
func (rr *RoundRecord) CompleteRound(result *RoundResult) {
	rr.EndTime = time.Now()
	rr.Duration = int(rr.EndTime.Sub(rr.StartTime).Seconds())
	rr.RoundResult = result
}

// 事件类型常量
const (
	EventTypeHandStart = "hand_start"
	EventTypeDraw      = "draw"
	EventTypeDiscard   = "discard"
	EventTypeChi       = "chi"
	EventTypePeng      = "peng"
	EventTypeSao       = "sao"
	EventTypeKan       = "kan"
	EventTypeHu        = "hu"
	EventTypePass      = "pass"
	EventTypeHandEnd   = "hand_end"
)
