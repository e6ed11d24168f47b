package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRecord 游戏记录元数据（聚合根）
// 存储一整局（多手牌）的基本信息、玩家信息与最终结果
type GameRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	RoomID      string             `bson:"room_id"`
	Players     []PlayerInfo       `bson:"players"`
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	Duration    int                `bson:"duration"`
	FinalResult *GameFinalResult   `bson:"final_result"`
	Status      string             `bson:"status"` // "completed", "aborted"
	CreatedAt   time.Time          `bson:"created_at"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	UserID    string `bson:"user_id"`
	SeatIndex int    `bson:"seat_index"`
	Nickname  string `bson:"nickname,omitempty"`
}

// GameFinalResult 游戏最终结果：按欢乐豆变动排序的名次表
type GameFinalResult struct {
	Rankings []PlayerRanking `bson:"rankings"`
	Beans    [4]int64        `bson:"beans"` // 最终欢乐豆变动（按座位索引）
}

// PlayerRanking 玩家排名
type PlayerRanking struct {
	SeatIndex int    `bson:"seat_index"`
	UserID    string `bson:"user_id"`
	Beans     int64  `bson:"beans"`
	Rank      int    `bson:"rank"` // 1 起始
}

// NewGameRecord 创建游戏记录
func NewGameRecord(roomID string, players []PlayerInfo) *GameRecord {
	return &GameRecord{
		ID:        primitive.NewObjectID(),
		RoomID:    roomID,
		Players:   players,
		StartTime: time.Now(),
		Status:    "in_progress",
		CreatedAt: time.Now(),
	}
}

// CompleteGame 完成游戏（设置最终结果）
func (gr *GameRecord) CompleteGame(finalResult *GameFinalResult) {
	gr.EndTime = time.Now()
	gr.Duration = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.FinalResult = finalResult
	gr.Status = "completed"
}

// AbortGame 中止游戏
func (gr *GameRecord) AbortGame() {
	gr.EndTime = time.Now()
	gr.Duration = int(gr.EndTime.Sub(gr.StartTime).Seconds())
	gr.Status = "aborted"
}
