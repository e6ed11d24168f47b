// Package room implements the per-room authoritative coordinator (C8):
// client intents in, events out. Grounded on the teacher's
// runtime/game/room_manager.go (Room/RoomManager) and
// original_source/crates/server/src/room.rs (GameRoom/RoomState).
package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"guilinpaizi/common/config"
	"guilinpaizi/engine/anticheat"
	"guilinpaizi/engine/card"
	"guilinpaizi/engine/skill"
	"guilinpaizi/engine/state"
	"guilinpaizi/gameerrors"
	"guilinpaizi/protocol"
)

// RoomState 是房间的宏观生命周期状态
type RoomState int

const (
	StateWaiting RoomState = iota
	StatePlaying
	StateSettling
	StateClosed
)

// Config 是房间的规则配置（对应 RoomConf，由启动配置注入）
type Config struct {
	BaseBet     int64
	MaxPlayers  int
	ClaimWindow time.Duration
	SkillMode   string // "standard" — 固定配给；未来可扩展其他模式
}

// DefaultConfig 返回一组合理的默认房间规则
func DefaultConfig() Config {
	return Config{BaseBet: 1000, MaxPlayers: state.MaxPlayers, ClaimWindow: 2 * time.Second, SkillMode: "standard"}
}

// HandResult 是一手牌结束时交给外层（房间管理器 / 结算 / 持久化）的汇总
type HandResult struct {
	RoomID     string
	HandNumber int
	EndType    string // "hu" | "draw_exhaustive"
	Winner     *uuid.UUID
	IsZimo     bool
	IsTianhu   bool
	IsDihu     bool
	DealerSeat int
	Outcomes   map[uuid.UUID]state.WinResult
	Seats      map[uuid.UUID]int // 入座玩家 -> 座位号，供结算/持久化定位赢家/放铳方座位
}

// subscriber 持有投递给一个入座连接的事件队列；房间拆除时关闭。
type subscriber struct {
	events chan any
}

// Room 是一局牌桌，单写锁守护其状态机（§5 策略 a）：任意时刻至多一个
// intent 在修改房间状态，从而可以直接调用规则引擎/技能/反作弊检测而无需
// 跨 goroutine 的消息传递。
type Room struct {
	mu sync.Mutex

	ID       string
	cfg      Config
	state    RoomState
	players  []*state.Player
	readySet map[uuid.UUID]bool
	game     *state.GameState
	skills   *skill.Manager
	detector anticheat.Detector
	hand     int

	claimTick *state.Ticker
	turnTick  *state.Ticker

	subscribers map[uuid.UUID]*subscriber

	// OnHandEnd 在一手牌结束（和牌或流局）后被调用，供外层驱动结算/持久化。
	OnHandEnd func(HandResult)
}

// GenerateRoomID 生成一个时间戳+随机后缀的房间号，沿用 teacher 仓库
// framework/game/room.go::GenerateRoomID 的命名习惯。
func GenerateRoomID() string {
	return fmt.Sprintf("room-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// New 创建一个处于 waiting 状态的空房间
func New(id string, cfg Config) *Room {
	return &Room{
		ID:          id,
		cfg:         cfg,
		state:       StateWaiting,
		readySet:    make(map[uuid.UUID]bool),
		skills:      skill.NewManager(),
		detector:    anticheat.NewBasicDetector(),
		subscribers: make(map[uuid.UUID]*subscriber),
	}
}

// Subscribe 注册一个入座连接的事件队列，返回只读 channel。
func (r *Room) Subscribe(playerID uuid.UUID) <-chan any {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := &subscriber{events: make(chan any, 64)}
	r.subscribers[playerID] = sub
	return sub.events
}

// broadcast 把一个事件投递给所有入座连接；单个订阅者队列写满时丢弃该
// 事件而不阻塞房间锁（慢连接不应拖慢整桌）。
func (r *Room) broadcast(event any) {
	for _, sub := range r.subscribers {
		select {
		case sub.events <- event:
		default:
		}
	}
}

func (r *Room) emitTo(playerID uuid.UUID, event any) {
	sub, ok := r.subscribers[playerID]
	if !ok {
		return
	}
	select {
	case sub.events <- event:
	default:
	}
}

// Close 拆除房间：关闭所有订阅者的事件队列。
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateClosed {
		return
	}
	r.state = StateClosed
	if r.claimTick != nil {
		r.claimTick.Cancel()
	}
	if r.turnTick != nil {
		r.turnTick.Cancel()
	}
	for _, sub := range r.subscribers {
		close(sub.events)
	}
}

// PlayerCount 返回当前入座人数
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// State 返回房间当前的宏观状态
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Join 让一名玩家入座；房间已满或已在进行中时拒绝。
func (r *Room) Join(playerID uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateWaiting {
		return gameerrors.Simple(gameerrors.InvalidAction)
	}
	if len(r.players) >= r.cfg.MaxPlayers {
		return gameerrors.Simple(gameerrors.GameFull)
	}
	for _, p := range r.players {
		if p.ID == playerID {
			return nil
		}
	}
	p := state.NewPlayer(playerID, name)
	r.players = append(r.players, p)
	r.broadcast(protocol.NewPlayerJoined(playerID, name))
	r.emitTo(playerID, protocol.NewRoomJoined(r.ID, playerID))
	return nil
}

// Leave 让一名玩家离座；进行中的对局里离座视为掉线自动弃权。
func (r *Room) Leave(playerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game != nil && r.state == StatePlaying {
		r.game.DisconnectAutoPass(playerID)
	}
	delete(r.readySet, playerID)
	for i, p := range r.players {
		if p.ID == playerID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	if sub, ok := r.subscribers[playerID]; ok {
		close(sub.events)
		delete(r.subscribers, playerID)
	}
	r.broadcast(protocol.NewPlayerLeft(playerID))
}

// Ready 标记一名玩家已准备；当所有入座玩家均已准备且 ≥2 人时自动开局。
func (r *Room) Ready(playerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateWaiting {
		return gameerrors.Simple(gameerrors.InvalidAction)
	}
	found := false
	for _, p := range r.players {
		if p.ID == playerID {
			found = true
			break
		}
	}
	if !found {
		return gameerrors.Simple(gameerrors.PlayerNotFound)
	}
	r.readySet[playerID] = true
	r.broadcast(protocol.NewPlayerReady(playerID))
	if len(r.readySet) == len(r.players) && len(r.players) >= state.MinPlayers {
		return r.startHandLocked()
	}
	return nil
}

// startHandLocked 要求调用方已持有 r.mu
func (r *Room) startHandLocked() error {
	r.hand++
	r.game = state.New(card.New())
	for _, p := range r.players {
		p.State = state.Idle
		if err := r.game.AddPlayer(p); err != nil {
			return err
		}
	}
	dealerSeat := (r.hand - 1) % len(r.players)
	if err := r.game.StartHand(dealerSeat); err != nil {
		return err
	}
	r.skills.Reset()
	for _, p := range r.players {
		r.skills.AssignSkills(p.ID, enabledSkills())
	}
	r.state = StatePlaying
	dealer := r.game.Players[dealerSeat].ID
	r.broadcast(protocol.NewGameStarted(dealer))
	r.projectAll()
	r.armTurnTimer()
	return nil
}

// projectAll 向每名入座玩家投递各自视角的状态快照（投影屏蔽，§8 性质10）
func (r *Room) projectAll() {
	if r.game == nil {
		return
	}
	for _, p := range r.players {
		r.emitTo(p.ID, protocol.NewGameStateUpdate(r.projectFor(p.ID)))
	}
	if current := r.game.CurrentPlayer(); current != nil {
		r.emitTo(current.ID, protocol.NewYourTurn())
	}
}

func (r *Room) projectFor(viewer uuid.UUID) protocol.PlayerProjection {
	g := r.game
	proj := protocol.PlayerProjection{
		Phase:         g.Phase.String(),
		DealerSeat:    g.DealerSeat,
		DeckRemaining: g.Deck.Len(),
		Dangdi:        g.Dangdi,
	}
	if current := g.CurrentPlayer(); current != nil {
		proj.CurrentPlayer = current.ID
	}
	for _, d := range g.DiscardPile {
		proj.DiscardPile = append(proj.DiscardPile, d.Card)
	}
	for _, p := range r.players {
		h, ok := g.Hands[p.ID]
		if !ok {
			continue
		}
		if p.ID == viewer {
			proj.YourHand = h.Cards()
			continue
		}
		proj.Opponents = append(proj.Opponents, protocol.OpponentView{
			PlayerID:  p.ID,
			Seat:      p.SeatPosition,
			HandCount: h.Len(),
			Melds:     h.Melds(),
		})
	}
	return proj
}

// armTurnTimer 为当前轮到的玩家启动摸牌/弃牌超时计时器
func (r *Room) armTurnTimer() {
	if r.turnTick != nil {
		r.turnTick.Cancel()
		r.turnTick = nil
	}
	current := r.game.CurrentPlayer()
	if current == nil {
		return
	}
	playerID := current.ID
	r.turnTick = state.NewTicker(30*time.Second, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.game == nil || r.state != StatePlaying {
			return
		}
		if c := r.game.CurrentPlayer(); c == nil || c.ID != playerID {
			return
		}
		r.game.DisconnectAutoPass(playerID)
		r.afterTurnAdvance()
	})
}

// afterTurnAdvance 在弃牌/认领窗口结束、轮转到下一位玩家后重新投影并计时
func (r *Room) afterTurnAdvance() {
	if r.game.Phase == state.PhaseSettling {
		r.finishHandLocked()
		return
	}
	r.projectAll()
	if r.game.SubState == state.AwaitingDraw {
		r.armTurnTimer()
	}
}

// armClaimTimer 在弃牌后开启认领窗口计时器；超时则按已收到的认领裁决。
func (r *Room) armClaimTimer() {
	if r.claimTick != nil {
		r.claimTick.Cancel()
	}
	r.claimTick = state.NewTicker(r.cfg.ClaimWindow, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.game == nil || r.game.SubState != state.AwaitingClaims {
			return
		}
		r.resolveClaimsLocked()
	})
}

func (r *Room) resolveClaimsLocked() {
	resolution, err := r.game.ResolveClaimWindow()
	if err != nil {
		return
	}
	if resolution.Won && resolution.Type == state.ClaimHu {
		r.broadcast(protocol.NewPlayerHu(resolution.Winner, false))
		r.finishHandLocked()
		return
	}
	if resolution.Won && resolution.Meld != nil {
		r.broadcast(protocol.NewMeldFormed(resolution.Winner, *resolution.Meld))
	}
	r.afterTurnAdvance()
}

func (r *Room) finishHandLocked() {
	r.state = StateSettling
	result := HandResult{RoomID: r.ID, HandNumber: r.hand, DealerSeat: r.game.DealerSeat, Outcomes: make(map[uuid.UUID]state.WinResult), Seats: make(map[uuid.UUID]int)}
	for _, p := range r.players {
		result.Seats[p.ID] = p.SeatPosition
	}
	if last := r.game.LastAction; last != nil && last.Kind == state.ActionHu {
		w := last.Player
		result.Winner = &w
		result.IsZimo = last.IsZimo
		result.EndType = "hu"
	} else {
		result.EndType = "draw_exhaustive"
	}
	winnerPtr := result.Winner
	r.broadcast(protocol.NewGameEnded(winnerPtr))
	r.state = StateWaiting
	r.readySet = make(map[uuid.UUID]bool)
	if r.OnHandEnd != nil {
		handler := r.OnHandEnd
		go handler(result)
	}
}

// SubmitIntent 是服务端唯一的写入口：校验座位与合法性，分派到规则引擎
// （必要时技能），产生事件批次。返回的 error 在协议层转译为 error 事件,
// 不破坏房间状态（§7）。
func (r *Room) SubmitIntent(playerID uuid.UUID, env protocol.IntentEnvelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch env.Type {
	case protocol.IntentReady:
		return r.Ready(playerID)
	case protocol.IntentPlayCard:
		return r.handlePlayCard(playerID, env.CardIdx)
	case protocol.IntentChi:
		return r.handleClaim(playerID, state.ClaimChi, env.CardIndices)
	case protocol.IntentPeng:
		return r.handleClaim(playerID, state.ClaimPeng, nil)
	case protocol.IntentSao:
		return r.handleClaim(playerID, state.ClaimSao, nil)
	case protocol.IntentHu:
		return r.handleHu(playerID)
	case protocol.IntentPass:
		return r.handlePass(playerID)
	case protocol.IntentUseSkill:
		return r.handleUseSkill(playerID, env.SkillID, env.Target)
	case protocol.IntentChat:
		r.broadcast(protocol.NewChatMessage(playerID, env.Message))
		return nil
	default:
		return gameerrors.Simple(gameerrors.InvalidAction)
	}
}

func (r *Room) requireGame() error {
	if r.game == nil || r.state != StatePlaying {
		return gameerrors.Simple(gameerrors.GameNotStarted)
	}
	return nil
}

func (r *Room) handlePlayCard(playerID uuid.UUID, cardIdx int) error {
	if err := r.requireGame(); err != nil {
		return err
	}
	action := state.GameAction{Kind: state.ActionPlayCard, Player: playerID, CardIdx: cardIdx}
	if v := r.detector.Validate(r.game, playerID, action); v.Invalid {
		return gameerrors.New(gameerrors.InvalidAction, "%s", v.Reason)
	}
	c, err := r.game.Discard(playerID, cardIdx)
	if err != nil {
		return err
	}
	r.detector.RecordAction(playerID, action, time.Now())
	r.broadcast(protocol.NewCardPlayed(playerID, c))
	if r.turnTick != nil {
		r.turnTick.Cancel()
		r.turnTick = nil
	}
	r.armClaimTimer()
	r.projectAll()
	return nil
}

func (r *Room) handleClaim(playerID uuid.UUID, claimType state.ClaimType, cardIndices []int) error {
	if err := r.requireGame(); err != nil {
		return err
	}
	return r.game.SubmitClaim(state.ClaimRequest{Player: playerID, Type: claimType, CardIndices: cardIndices})
}

func (r *Room) handleHu(playerID uuid.UUID) error {
	if err := r.requireGame(); err != nil {
		return err
	}
	switch r.game.SubState {
	case state.AwaitingDiscard:
		_, err := r.game.DeclareZimoHu(playerID)
		if err != nil {
			return err
		}
		r.broadcast(protocol.NewPlayerHu(playerID, true))
		r.finishHandLocked()
		return nil
	case state.AwaitingClaims:
		return r.game.SubmitClaim(state.ClaimRequest{Player: playerID, Type: state.ClaimHu})
	default:
		return gameerrors.Simple(gameerrors.InvalidAction)
	}
}

func (r *Room) handlePass(playerID uuid.UUID) error {
	if err := r.requireGame(); err != nil {
		return err
	}
	r.game.Pass(playerID)
	return nil
}

func (r *Room) handleUseSkill(playerID uuid.UUID, skillIdx int, target *uuid.UUID) error {
	if err := r.requireGame(); err != nil {
		return err
	}
	result, ok := r.skills.UseSkill(playerID, skillIdx, r.game, target)
	if !ok {
		return gameerrors.Simple(gameerrors.SkillError)
	}
	if !result.Success {
		return gameerrors.New(gameerrors.SkillError, "%s", result.Message)
	}
	instances, _ := r.skills.PlayerSkills(playerID)
	name := fmt.Sprintf("skill_%d", skillIdx)
	if skillIdx >= 0 && skillIdx < len(instances) {
		name = instances[skillIdx].Skill.Name()
	}
	r.broadcast(protocol.NewSkillUsed(playerID, name, result.EffectData))
	r.projectAll()
	return nil
}

// enabledSkills 返回当前热更新调参下仍然启用的技能配给（config.InjectedConfig
// 为 nil 时——例如单元测试不经由 main 加载调参文件——全部启用）。
func enabledSkills() []skill.Skill {
	all := skill.All()
	if config.InjectedConfig == nil {
		return all
	}
	enabled := make([]skill.Skill, 0, len(all))
	for _, s := range all {
		if config.InjectedConfig.IsSkillEnabled(s.Name()) {
			enabled = append(enabled, s)
		}
	}
	return enabled
}
