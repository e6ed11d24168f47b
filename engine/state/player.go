package state

import "github.com/google/uuid"

// PlayerState 描述玩家在一局牌中的生命周期状态
type PlayerState int

const (
	Idle PlayerState = iota
	Ready
	Playing
	Waiting
	Finished
	Disconnected
)

func (s PlayerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Waiting:
		return "waiting"
	case Finished:
		return "finished"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Player 是座上的一名玩家
type Player struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	State        PlayerState `json:"state"`
	IsDealer     bool        `json:"is_dealer"`
	SeatPosition int         `json:"seat_position"`
}

// NewPlayer 创建一名新玩家，加入房间时调用
func NewPlayer(id uuid.UUID, name string) *Player {
	return &Player{ID: id, Name: name, State: Idle}
}
