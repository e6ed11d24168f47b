// Package persist drives the C10 game-record repository from a room's hand
// lifecycle. Grounded on the teacher's
// runtime/game/engines/mahjong/persist.go::GamePersister, which the teacher
// owns per room-engine and feeds at round boundaries
// (StartRound/CompleteRound/FinalizeGame/SaveCurrentRound). This module
// keeps the same shape — one Recorder per process, one in-memory
// entity.GameRecord per active room, advanced one entity.RoundRecord per
// finished hand — but is driven by room.Room's OnHandEnd callback instead of
// being embedded in an engine struct, since this module has no per-room
// engine object of its own.
package persist

import (
	"context"
	"strings"
	"sync"
	"time"

	"guilinpaizi/common/log"
	"guilinpaizi/core/domain/entity"
	"guilinpaizi/core/domain/repository"
	"guilinpaizi/engine/card"
	"guilinpaizi/room"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recorder 把每个房间每一手牌的结果落盘到 GameRecordRepository。一局（多手牌）
// 对应一个 GameRecord，一手牌对应一个 RoundRecord。
type Recorder struct {
	repo repository.GameRecordRepository

	mu    sync.Mutex
	games map[string]*entity.GameRecord // roomID -> 当前进行中的 GameRecord
}

// NewRecorder 创建一个持久化记录器
func NewRecorder(repo repository.GameRecordRepository) *Recorder {
	return &Recorder{repo: repo, games: make(map[string]*entity.GameRecord)}
}

// OnHandEnd 作为 room.Room.OnHandEnd 回调装配；首次见到某房间时落一条
// GameRecord，随后每手牌都落一条 RoundRecord。
func (rec *Recorder) OnHandEnd(result room.HandResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	gameRecordID := rec.gameRecordFor(ctx, result)

	round := entity.NewRoundRecord(gameRecordID, result.HandNumber, result.DealerSeat)
	round.CompleteRound(buildRoundResult(result))

	if err := rec.repo.SaveRoundRecords(ctx, []*entity.RoundRecord{round}); err != nil {
		log.Warn("保存手牌记录失败: room=%s hand=%d err=%v", result.RoomID, result.HandNumber, err)
	}
}

// gameRecordFor 返回该房间当前一局对应的 GameRecord ID，首次调用时创建并保存。
func (rec *Recorder) gameRecordFor(ctx context.Context, result room.HandResult) primitive.ObjectID {
	rec.mu.Lock()
	gr, ok := rec.games[result.RoomID]
	if ok {
		rec.mu.Unlock()
		return gr.ID
	}
	players := make([]entity.PlayerInfo, 0, len(result.Seats))
	for playerID, seat := range result.Seats {
		players = append(players, entity.PlayerInfo{UserID: playerID.String(), SeatIndex: seat})
	}
	gr = entity.NewGameRecord(result.RoomID, players)
	rec.games[result.RoomID] = gr
	rec.mu.Unlock()

	if err := rec.repo.SaveGameRecord(ctx, gr); err != nil {
		log.Warn("保存游戏记录失败: room=%s err=%v", result.RoomID, err)
	}
	return gr.ID
}

// Finalize 在一局彻底结束（房间解散）时标记 GameRecord 完成，供房间管理器在
// 清理房间时调用；尚未开局过的房间直接忽略。
func (rec *Recorder) Finalize(roomID string, finalBeans [4]int64, rankings []entity.PlayerRanking) {
	rec.mu.Lock()
	gr, ok := rec.games[roomID]
	delete(rec.games, roomID)
	rec.mu.Unlock()
	if !ok {
		return
	}
	gr.CompleteGame(&entity.GameFinalResult{Rankings: rankings, Beans: finalBeans})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rec.repo.SaveGameRecord(ctx, gr); err != nil {
		log.Warn("保存游戏终局记录失败: room=%s err=%v", roomID, err)
	}
}

func buildRoundResult(result room.HandResult) *entity.RoundResult {
	rr := &entity.RoundResult{
		EndType:    strings.ToUpper(result.EndType),
		NextDealer: (result.DealerSeat + 1) % len(result.Seats),
	}
	if result.Winner == nil {
		return rr
	}
	winnerSeat, ok := result.Seats[*result.Winner]
	if !ok {
		return rr
	}
	win, ok := result.Outcomes[*result.Winner]
	if !ok {
		return rr
	}
	loserSeat := -1
	if !result.IsZimo {
		for playerID, seat := range result.Seats {
			if playerID != *result.Winner {
				loserSeat = seat
				break
			}
		}
	}
	rr.Claims = []entity.HuClaim{{
		WinnerSeat: winnerSeat,
		LoserSeat:  loserSeat,
		WinCard:    card.Card{},
		Huxi:       win.Huxi,
		Duo:        win.Duo,
		Fan:        win.Fan,
		IsZimo:     result.IsZimo,
		IsTianhu:   result.IsTianhu,
		IsDihu:     result.IsDihu,
	}}
	return rr
}
