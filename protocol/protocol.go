// Package protocol defines the wire protocol (§6): client intents and
// server events exchanged as newline-delimited UTF-8 JSON frames, each
// carrying a "type" discriminator.
package protocol

import (
	"encoding/json"

	"github.com/google/uuid"

	"guilinpaizi/engine/card"
	"guilinpaizi/engine/meld"
)

// 客户端 -> 服务端 intent 的 type 取值
const (
	IntentAuthenticate   = "authenticate"
	IntentJoinRoom       = "join_room"
	IntentLeaveRoom      = "leave_room"
	IntentReady          = "ready"
	IntentStartGame      = "start_game"
	IntentPlayCard       = "play_card"
	IntentChi            = "chi"
	IntentPeng           = "peng"
	IntentSao            = "sao"
	IntentHu             = "hu"
	IntentPass           = "pass"
	IntentUseSkill       = "use_skill"
	IntentChat           = "chat"
	IntentClaimDailyBonus = "claim_daily_bonus"
)

// 服务端 -> 客户端 event 的 type 取值
const (
	EventWelcome       = "welcome"
	EventError         = "error"
	EventRoomJoined    = "room_joined"
	EventRoomLeft      = "room_left"
	EventPlayerJoined  = "player_joined"
	EventPlayerLeft    = "player_left"
	EventPlayerReady   = "player_ready"
	EventGameStarted   = "game_started"
	EventGameStateUpdate = "game_state_update"
	EventYourTurn      = "your_turn"
	EventCardPlayed    = "card_played"
	EventMeldFormed    = "meld_formed"
	EventPlayerHu      = "player_hu"
	EventGameEnded     = "game_ended"
	EventSkillUsed     = "skill_used"
	EventBeanUpdate    = "bean_update"
	EventRankUpdate    = "rank_update"
	EventChatMessage   = "chat_message"
)

// IntentEnvelope 把客户端 intent 帧的所有可能字段平铺在一起，按 Type 取用。
type IntentEnvelope struct {
	Type        string     `json:"type"`
	Token       string     `json:"token,omitempty"`
	RoomID      string     `json:"room_id,omitempty"`
	CardIdx     int        `json:"card_idx,omitempty"`
	CardIndices []int      `json:"card_indices,omitempty"`
	SkillID     int        `json:"skill_id,omitempty"`
	Target      *uuid.UUID `json:"target,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// ParseIntent 解析一帧原始 JSON 为 IntentEnvelope，供服务端按 Type 分派。
func ParseIntent(raw []byte) (IntentEnvelope, error) {
	var env IntentEnvelope
	err := json.Unmarshal(raw, &env)
	return env, err
}

// Event 是服务端广播给客户端的一帧事件
type Event struct {
	Type string `json:"type"`
}

func newEvent(t string) Event { return Event{Type: t} }

// Welcome 连接建立并通过身份验证后下发
type Welcome struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
	Message  string    `json:"message"`
}

func NewWelcome(playerID uuid.UUID, message string) Welcome {
	return Welcome{Event: newEvent(EventWelcome), PlayerID: playerID, Message: message}
}

// ErrorEvent 承载规则层拒绝原因，绝不中断房间状态（§7）
type ErrorEvent struct {
	Event
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func NewError(kind, message string) ErrorEvent {
	return ErrorEvent{Event: newEvent(EventError), Kind: kind, Message: message}
}

type RoomJoined struct {
	Event
	RoomID   string    `json:"room_id"`
	PlayerID uuid.UUID `json:"player_id"`
}

func NewRoomJoined(roomID string, playerID uuid.UUID) RoomJoined {
	return RoomJoined{Event: newEvent(EventRoomJoined), RoomID: roomID, PlayerID: playerID}
}

type RoomLeft struct {
	Event
	RoomID string `json:"room_id"`
}

func NewRoomLeft(roomID string) RoomLeft {
	return RoomLeft{Event: newEvent(EventRoomLeft), RoomID: roomID}
}

type PlayerJoined struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
}

func NewPlayerJoined(playerID uuid.UUID, name string) PlayerJoined {
	return PlayerJoined{Event: newEvent(EventPlayerJoined), PlayerID: playerID, Name: name}
}

type PlayerLeft struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
}

func NewPlayerLeft(playerID uuid.UUID) PlayerLeft {
	return PlayerLeft{Event: newEvent(EventPlayerLeft), PlayerID: playerID}
}

type PlayerReady struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
}

func NewPlayerReady(playerID uuid.UUID) PlayerReady {
	return PlayerReady{Event: newEvent(EventPlayerReady), PlayerID: playerID}
}

type GameStarted struct {
	Event
	Dealer uuid.UUID `json:"dealer"`
}

func NewGameStarted(dealer uuid.UUID) GameStarted {
	return GameStarted{Event: newEvent(EventGameStarted), Dealer: dealer}
}

// GameStateUpdate 是投影给单个玩家的状态快照：不含对手的隐藏手牌内容
// （§8 性质 10，投影屏蔽）。
type GameStateUpdate struct {
	Event
	State PlayerProjection `json:"state"`
}

func NewGameStateUpdate(p PlayerProjection) GameStateUpdate {
	return GameStateUpdate{Event: newEvent(EventGameStateUpdate), State: p}
}

// PlayerProjection 是单个玩家视角下的公开 + 自身私有信息
type PlayerProjection struct {
	Phase         string          `json:"phase"`
	CurrentPlayer uuid.UUID       `json:"current_player"`
	DealerSeat    int             `json:"dealer_seat"`
	DeckRemaining int             `json:"deck_remaining"`
	Dangdi        *card.Card      `json:"dangdi,omitempty"`
	DiscardPile   []card.Card     `json:"discard_pile"`
	YourHand      []card.Card     `json:"your_hand"`
	Opponents     []OpponentView  `json:"opponents"`
}

// OpponentView 公开可见的对手信息：座位、手牌数量、已声明的牌组
type OpponentView struct {
	PlayerID  uuid.UUID    `json:"player_id"`
	Seat      int          `json:"seat"`
	HandCount int          `json:"hand_count"`
	Melds     []meld.Meld  `json:"melds"`
}

type YourTurn struct {
	Event
}

func NewYourTurn() YourTurn { return YourTurn{Event: newEvent(EventYourTurn)} }

type CardPlayed struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
	Card     card.Card `json:"card"`
}

func NewCardPlayed(playerID uuid.UUID, c card.Card) CardPlayed {
	return CardPlayed{Event: newEvent(EventCardPlayed), PlayerID: playerID, Card: c}
}

type MeldFormed struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
	Meld     meld.Meld `json:"meld"`
}

func NewMeldFormed(playerID uuid.UUID, m meld.Meld) MeldFormed {
	return MeldFormed{Event: newEvent(EventMeldFormed), PlayerID: playerID, Meld: m}
}

type PlayerHu struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
	IsZimo   bool      `json:"is_zimo"`
}

func NewPlayerHu(playerID uuid.UUID, isZimo bool) PlayerHu {
	return PlayerHu{Event: newEvent(EventPlayerHu), PlayerID: playerID, IsZimo: isZimo}
}

type GameEnded struct {
	Event
	Winner *uuid.UUID `json:"winner,omitempty"`
}

func NewGameEnded(winner *uuid.UUID) GameEnded {
	return GameEnded{Event: newEvent(EventGameEnded), Winner: winner}
}

type SkillUsed struct {
	Event
	PlayerID  uuid.UUID      `json:"player_id"`
	SkillName string         `json:"skill_name"`
	Effect    map[string]any `json:"effect,omitempty"`
}

func NewSkillUsed(playerID uuid.UUID, skillName string, effect map[string]any) SkillUsed {
	return SkillUsed{Event: newEvent(EventSkillUsed), PlayerID: playerID, SkillName: skillName, Effect: effect}
}

type BeanUpdate struct {
	Event
	Balance int64 `json:"balance"`
}

func NewBeanUpdate(balance int64) BeanUpdate {
	return BeanUpdate{Event: newEvent(EventBeanUpdate), Balance: balance}
}

type RankUpdate struct {
	Event
	Tier  string `json:"tier"`
	Stars int    `json:"stars"`
}

func NewRankUpdate(tier string, stars int) RankUpdate {
	return RankUpdate{Event: newEvent(EventRankUpdate), Tier: tier, Stars: stars}
}

type ChatMessage struct {
	Event
	PlayerID uuid.UUID `json:"player_id"`
	Message  string    `json:"message"`
}

func NewChatMessage(playerID uuid.UUID, message string) ChatMessage {
	return ChatMessage{Event: newEvent(EventChatMessage), PlayerID: playerID, Message: message}
}
