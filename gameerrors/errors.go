// Package gameerrors defines the error taxonomy shared by the rules engine,
// room coordinator, and skill pipeline.
package gameerrors

import "fmt"

// Kind 对应规则层的拒绝原因分类
type Kind string

const (
	GameFull         Kind = "game_full"
	PlayerNotFound   Kind = "player_not_found"
	InvalidAction    Kind = "invalid_action"
	NotYourTurn      Kind = "not_your_turn"
	CardNotInHand    Kind = "card_not_in_hand"
	InvalidMeld      Kind = "invalid_meld"
	GameNotStarted   Kind = "game_not_started"
	GameAlreadyEnded Kind = "game_already_ended"
	SkillError       Kind = "skill_error"
	NetworkError     Kind = "network_error"
	InternalError    Kind = "internal_error"
)

// GameError 是规则引擎与房间协调器对外抛出的唯一错误类型，绝不 panic 穿过房间边界。
type GameError struct {
	Kind Kind
	Msg  string
}

func (e *GameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New 构造一个带格式化消息的 GameError
func New(kind Kind, format string, args ...any) *GameError {
	return &GameError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is 支持 errors.Is 按 Kind 比较
func (e *GameError) Is(target error) bool {
	other, ok := target.(*GameError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel 构造器，供 errors.Is(err, gameerrors.Sentinel(kind)) 场景使用
func Sentinel(kind Kind) *GameError {
	return &GameError{Kind: kind}
}

// 常用中文提示文本，面向终端玩家
var messages = map[Kind]string{
	GameFull:         "房间已满",
	PlayerNotFound:   "玩家不存在",
	InvalidAction:    "非法操作",
	NotYourTurn:      "还没轮到你",
	CardNotInHand:    "手牌中没有这张牌",
	InvalidMeld:      "不合法的牌组",
	GameNotStarted:   "对局尚未开始",
	GameAlreadyEnded: "对局已经结束",
	SkillError:       "技能条件不满足",
	NetworkError:     "网络错误",
	InternalError:    "内部错误",
}

// Simple 构造携带默认中文提示的 GameError
func Simple(kind Kind) *GameError {
	msg, ok := messages[kind]
	if !ok {
		msg = string(kind)
	}
	return &GameError{Kind: kind, Msg: msg}
}
