// Package state implements the rules-engine turn/claim state machine (C4):
// phases, turn order, draw/discard, claim arbitration, and hu detection.
package state

import (
	"github.com/google/uuid"

	"guilinpaizi/engine/card"
	"guilinpaizi/engine/hand"
	"guilinpaizi/engine/meld"
	"guilinpaizi/gameerrors"
)

// GamePhase 是一局牌的宏观阶段
type GamePhase int

const (
	PhaseWaiting GamePhase = iota
	PhaseDealing
	PhasePlaying
	PhaseSettling
	PhaseFinished
)

func (p GamePhase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseDealing:
		return "dealing"
	case PhasePlaying:
		return "playing"
	case PhaseSettling:
		return "settling"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SubState 细分 playing 阶段内的等待状态
type SubState int

const (
	SubNone SubState = iota
	AwaitingDraw
	AwaitingDiscard
	AwaitingClaims
)

const (
	DealerCardCount = 21
	PlayerCardCount = 20
	MaxPlayers      = 4
	MinPlayers      = 2
)

// DiscardEntry 是弃牌堆中的一条记录
type DiscardEntry struct {
	Player uuid.UUID `json:"player"`
	Card   card.Card `json:"card"`
}

// ClaimType 是认领弃牌的种类，优先级 Hu > Peng/Sao > Chi
type ClaimType int

const (
	ClaimHu ClaimType = iota
	ClaimPeng
	ClaimSao
	ClaimChi
)

func (t ClaimType) priority() int {
	switch t {
	case ClaimHu:
		return 3
	case ClaimPeng, ClaimSao:
		return 2
	case ClaimChi:
		return 1
	default:
		return 0
	}
}

// ClaimRequest 是一次认领弃牌的请求
type ClaimRequest struct {
	Player      uuid.UUID
	Type        ClaimType
	CardIndices []int // chi 时为手牌中两张参与组成顺子的索引
}

// ClaimResolution 是认领窗口关闭后的结算结果
type ClaimResolution struct {
	Won       bool
	Winner    uuid.UUID
	Type      ClaimType
	Meld      *meld.Meld
	HuResult  *WinResult
	NoClaimed bool // 无人认领，轮转到下一家
}

// GameState 是一局牌完整的可变状态
type GameState struct {
	Phase             GamePhase
	SubState          SubState
	Players           []*Player
	Hands             map[uuid.UUID]*hand.Hand
	Deck              *card.Deck
	DiscardPile       []DiscardEntry
	CurrentPlayerSeat int
	DealerSeat        int
	Round             int
	LastAction        *GameAction
	Dangdi            *card.Card

	pendingClaims map[uuid.UUID]ClaimRequest
	claimDiscard  *DiscardEntry
}

// New 创建一个处于 waiting 阶段的空 GameState
func New(deck *card.Deck) *GameState {
	return &GameState{
		Phase:         PhaseWaiting,
		Hands:         make(map[uuid.UUID]*hand.Hand),
		Deck:          deck,
		pendingClaims: make(map[uuid.UUID]ClaimRequest),
	}
}

// AddPlayer 加入一名玩家，要求总人数不超过 MaxPlayers
func (g *GameState) AddPlayer(p *Player) error {
	if len(g.Players) >= MaxPlayers {
		return gameerrors.Simple(gameerrors.GameFull)
	}
	p.SeatPosition = len(g.Players)
	g.Players = append(g.Players, p)
	return nil
}

// CurrentPlayer 返回当前轮到的玩家，尚无玩家时返回 nil
func (g *GameState) CurrentPlayer() *Player {
	if g.CurrentPlayerSeat < 0 || g.CurrentPlayerSeat >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentPlayerSeat]
}

func (g *GameState) playerBySeat(seat int) *Player {
	if seat < 0 || seat >= len(g.Players) {
		return nil
	}
	return g.Players[seat]
}

// StartHand 从 waiting 进入 dealing 再自动转入 playing：洗牌、发牌、记录 dangdi。
// 要求已有 2 到 4 名入座玩家。
func (g *GameState) StartHand(dealerSeat int) error {
	if len(g.Players) < MinPlayers || len(g.Players) > MaxPlayers {
		return gameerrors.Simple(gameerrors.InvalidAction)
	}
	g.Phase = PhaseDealing
	g.DealerSeat = dealerSeat
	g.Deck.Shuffle()

	for idx, p := range g.Players {
		p.State = Playing
		p.IsDealer = idx == dealerSeat
		count := PlayerCardCount
		if idx == dealerSeat {
			count = DealerCardCount
		}
		cards := g.Deck.DrawN(count)
		h := hand.New(cards)
		h.Sort()
		if idx == dealerSeat && len(cards) > 0 {
			last := h.Cards()[len(h.Cards())-1]
			g.Dangdi = &last
		}
		g.Hands[p.ID] = h
	}

	g.Phase = PhasePlaying
	g.CurrentPlayerSeat = dealerSeat
	g.SubState = AwaitingDiscard // dealer already holds 21 cards, discards without drawing first
	return nil
}

// DrawForCurrent 是当前轮到玩家的摸牌步骤；牌堆耗尽则转入 settling（流局）。
func (g *GameState) DrawForCurrent() (card.Card, bool, error) {
	if g.Phase != PhasePlaying {
		return card.Card{}, false, gameerrors.Simple(gameerrors.InvalidAction)
	}
	if g.SubState != AwaitingDraw {
		return card.Card{}, false, gameerrors.Simple(gameerrors.InvalidAction)
	}
	player := g.CurrentPlayer()
	if player == nil {
		return card.Card{}, false, gameerrors.Simple(gameerrors.PlayerNotFound)
	}
	c, ok := g.Deck.Draw()
	if !ok {
		g.Phase = PhaseSettling
		return card.Card{}, false, nil
	}
	g.Hands[player.ID].AddCard(c)
	g.SubState = AwaitingDiscard
	return c, true, nil
}

// Discard 由当前轮到的玩家提交弃牌，开启认领窗口。
func (g *GameState) Discard(playerID uuid.UUID, cardIdx int) (card.Card, error) {
	if g.Phase != PhasePlaying || g.SubState != AwaitingDiscard {
		return card.Card{}, gameerrors.Simple(gameerrors.InvalidAction)
	}
	current := g.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return card.Card{}, gameerrors.Simple(gameerrors.NotYourTurn)
	}
	h := g.Hands[playerID]
	c, ok := h.RemoveCard(cardIdx)
	if !ok {
		return card.Card{}, gameerrors.Simple(gameerrors.CardNotInHand)
	}
	entry := DiscardEntry{Player: playerID, Card: c}
	g.DiscardPile = append(g.DiscardPile, entry)
	g.claimDiscard = &entry
	g.pendingClaims = make(map[uuid.UUID]ClaimRequest)
	g.SubState = AwaitingClaims
	g.LastAction = &GameAction{Kind: ActionPlayCard, Player: playerID, CardIdx: cardIdx, Card: &c}
	return c, nil
}

// DeclareSelfMeld 允许当前轮到的玩家在摸牌后、弃牌前声明一个自摸牌组（如暗杠）。
func (g *GameState) DeclareSelfMeld(playerID uuid.UUID, t meld.Type, cardIndices []int) (*meld.Meld, error) {
	if g.Phase != PhasePlaying || g.SubState != AwaitingDiscard {
		return nil, gameerrors.Simple(gameerrors.InvalidAction)
	}
	current := g.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, gameerrors.Simple(gameerrors.NotYourTurn)
	}
	h := g.Hands[playerID]
	cards := make([]card.Card, 0, len(cardIndices))
	for _, idx := range cardIndices {
		if idx < 0 || idx >= h.Len() {
			return nil, gameerrors.Simple(gameerrors.CardNotInHand)
		}
	}
	snapshot := h.Cards()
	for _, idx := range cardIndices {
		cards = append(cards, snapshot[idx])
	}
	if t == meld.Kan && !meld.IsValidKan(cards) {
		return nil, gameerrors.Simple(gameerrors.InvalidMeld)
	}
	sortedIdx := append([]int(nil), cardIndices...)
	for i := len(sortedIdx) - 1; i >= 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if sortedIdx[j] < sortedIdx[i] {
				sortedIdx[i], sortedIdx[j] = sortedIdx[j], sortedIdx[i]
			}
		}
	}
	for _, idx := range sortedIdx {
		h.RemoveCard(idx)
	}
	m := meld.New(t, cards, false)
	h.AddMeld(m)
	g.LastAction = &GameAction{Kind: ActionKan, Player: playerID}
	return &m, nil
}

// SubmitClaim 记录一次在认领窗口内提交的认领请求
func (g *GameState) SubmitClaim(req ClaimRequest) error {
	if g.Phase != PhasePlaying || g.SubState != AwaitingClaims {
		return gameerrors.Simple(gameerrors.InvalidAction)
	}
	if g.claimDiscard != nil && req.Player == g.claimDiscard.Player {
		return gameerrors.Simple(gameerrors.InvalidAction)
	}
	g.pendingClaims[req.Player] = req
	return nil
}

// Pass 显式放弃本轮认领
func (g *GameState) Pass(playerID uuid.UUID) {
	delete(g.pendingClaims, playerID)
}

// seatDistanceClockwise 返回从 from 顺时针走到 to 的座位距离
func (g *GameState) seatDistanceClockwise(from, to int) int {
	n := len(g.Players)
	return ((to-from)%n + n) % n
}

// ResolveClaimWindow 按优先级（hu > peng/sao > chi）与顺时针最近原则裁决认领窗口。
// 无人认领时轮转到下一家并回到摸牌步骤。
func (g *GameState) ResolveClaimWindow() (*ClaimResolution, error) {
	if g.Phase != PhasePlaying || g.SubState != AwaitingClaims || g.claimDiscard == nil {
		return nil, gameerrors.Simple(gameerrors.InvalidAction)
	}
	discard := *g.claimDiscard
	discarderSeat := g.playerSeat(discard.Player)

	if len(g.pendingClaims) == 0 {
		g.advanceTurnAfterNoClaim(discarderSeat)
		return &ClaimResolution{NoClaimed: true}, nil
	}

	var best *ClaimRequest
	bestDistance := len(g.Players) + 1
	for playerID, req := range g.pendingClaims {
		claimerSeat := g.playerSeat(playerID)
		dist := g.seatDistanceClockwise(discarderSeat, claimerSeat)
		if best == nil {
			r := req
			best, bestDistance = &r, dist
			continue
		}
		if req.Type.priority() > best.Type.priority() {
			r := req
			best, bestDistance = &r, dist
			continue
		}
		if req.Type.priority() == best.Type.priority() && dist < bestDistance {
			r := req
			best, bestDistance = &r, dist
		}
	}

	if best.Type == ClaimChi {
		expectedChiSeat := (discarderSeat + 1) % len(g.Players)
		if g.playerSeat(best.Player) != expectedChiSeat {
			g.advanceTurnAfterNoClaim(discarderSeat)
			return &ClaimResolution{NoClaimed: true}, nil
		}
	}

	if best.Type == ClaimHu {
		isDihu := len(g.DiscardPile) == 1
		totalDiscardsBefore := len(g.DiscardPile)
		_ = totalDiscardsBefore
		huResult, err := g.claimHu(best.Player, false, false, isDihu)
		if err != nil {
			return nil, err
		}
		g.Phase = PhaseSettling
		g.pendingClaims = make(map[uuid.UUID]ClaimRequest)
		g.claimDiscard = nil
		return &ClaimResolution{Won: true, Winner: best.Player, Type: ClaimHu, HuResult: huResult}, nil
	}

	m, err := g.applyMeldClaim(*best, discard)
	if err != nil {
		return nil, err
	}
	g.CurrentPlayerSeat = g.playerSeat(best.Player)
	g.SubState = AwaitingDiscard
	g.pendingClaims = make(map[uuid.UUID]ClaimRequest)
	g.claimDiscard = nil
	g.LastAction = &GameAction{Kind: claimKindToAction(best.Type), Player: best.Player}
	return &ClaimResolution{Won: true, Winner: best.Player, Type: best.Type, Meld: m}, nil
}

func claimKindToAction(t ClaimType) ActionKind {
	switch t {
	case ClaimPeng:
		return ActionPeng
	case ClaimSao:
		return ActionSao
	case ClaimChi:
		return ActionChi
	default:
		return ActionPass
	}
}

func (g *GameState) applyMeldClaim(req ClaimRequest, discard DiscardEntry) (*meld.Meld, error) {
	h := g.Hands[req.Player]
	switch req.Type {
	case ClaimPeng, ClaimSao:
		if !h.CanPeng(discard.Card) {
			return nil, gameerrors.Simple(gameerrors.InvalidMeld)
		}
		for i := 0; i < 2; i++ {
			idx := h.FindCard(discard.Card)
			h.RemoveCard(idx)
		}
		cards := []card.Card{discard.Card, discard.Card, discard.Card}
		mt := meld.Peng
		if req.Type == ClaimSao {
			mt = meld.Sao
		}
		m := meld.New(mt, cards, true)
		h.AddMeld(m)
		g.removeLastDiscard()
		return &m, nil
	case ClaimChi:
		if len(req.CardIndices) != 2 {
			return nil, gameerrors.Simple(gameerrors.InvalidMeld)
		}
		snapshot := h.Cards()
		for _, idx := range req.CardIndices {
			if idx < 0 || idx >= len(snapshot) {
				return nil, gameerrors.Simple(gameerrors.CardNotInHand)
			}
		}
		meldCards := []card.Card{discard.Card, snapshot[req.CardIndices[0]], snapshot[req.CardIndices[1]]}
		if !meld.IsValidChiRun(meldCards) && !meld.IsValid2710(meldCards) {
			return nil, gameerrors.Simple(gameerrors.InvalidMeld)
		}
		sortedIdx := append([]int(nil), req.CardIndices...)
		if sortedIdx[0] < sortedIdx[1] {
			sortedIdx[0], sortedIdx[1] = sortedIdx[1], sortedIdx[0]
		}
		for _, idx := range sortedIdx {
			h.RemoveCard(idx)
		}
		m := meld.New(meld.Chi, meldCards, true)
		h.AddMeld(m)
		g.removeLastDiscard()
		return &m, nil
	default:
		return nil, gameerrors.Simple(gameerrors.InvalidAction)
	}
}

func (g *GameState) removeLastDiscard() {
	if len(g.DiscardPile) > 0 {
		g.DiscardPile = g.DiscardPile[:len(g.DiscardPile)-1]
	}
}

func (g *GameState) advanceTurnAfterNoClaim(discarderSeat int) {
	g.CurrentPlayerSeat = (discarderSeat + 1) % len(g.Players)
	g.SubState = AwaitingDraw
	g.pendingClaims = make(map[uuid.UUID]ClaimRequest)
	g.claimDiscard = nil
}

func (g *GameState) playerSeat(id uuid.UUID) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// CanHu 判断某玩家当前是否达到和牌门槛
func (g *GameState) CanHu(playerID uuid.UUID) (bool, error) {
	h, ok := g.Hands[playerID]
	if !ok {
		return false, gameerrors.Simple(gameerrors.PlayerNotFound)
	}
	return h.CanHu(), nil
}

// DeclareZimoHu 由当前轮到的玩家在摸牌后声明自摸和牌
func (g *GameState) DeclareZimoHu(playerID uuid.UUID) (*WinResult, error) {
	if g.Phase != PhasePlaying || g.SubState != AwaitingDiscard {
		return nil, gameerrors.Simple(gameerrors.InvalidAction)
	}
	current := g.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, gameerrors.Simple(gameerrors.NotYourTurn)
	}
	canHu, err := g.CanHu(playerID)
	if err != nil {
		return nil, err
	}
	if !canHu {
		return nil, gameerrors.Simple(gameerrors.InvalidMeld)
	}
	isTianhu := current.IsDealer && len(g.DiscardPile) == 0
	result, err := g.claimHu(playerID, true, isTianhu, false)
	if err != nil {
		return nil, err
	}
	g.Phase = PhaseSettling
	return result, nil
}

func (g *GameState) claimHu(playerID uuid.UUID, isZimo, isTianhu, isDihu bool) (*WinResult, error) {
	h, ok := g.Hands[playerID]
	if !ok {
		return nil, gameerrors.Simple(gameerrors.PlayerNotFound)
	}
	huxi := h.TotalHuxi()
	duo := meld.Duo(huxi)
	fan := meld.Fan(duo, isZimo, isTianhu, isDihu)
	g.LastAction = &GameAction{Kind: ActionHu, Player: playerID, IsZimo: isZimo}
	return &WinResult{
		Winner: playerID, Huxi: huxi, Duo: duo, Fan: fan,
		IsZimo: isZimo, IsTianhu: isTianhu, IsDihu: isDihu,
	}, nil
}

// AllCards 返回当前可达状态下牌的全集（用于守恒不变量检查）：
// 牌堆 ∪ 各手牌 ∪ 各已声明牌组 ∪ 弃牌堆。dangdi 只是指向庄家某张手牌的
// 展示标记，该牌仍留在庄家手中，不作为额外元素并入全集。
func (g *GameState) AllCards() []card.Card {
	all := append([]card.Card(nil), g.Deck.Cards()...)
	for _, h := range g.Hands {
		all = append(all, h.Cards()...)
		for _, m := range h.Melds() {
			all = append(all, m.Cards...)
		}
	}
	for _, d := range g.DiscardPile {
		all = append(all, d.Card)
	}
	return all
}

// DisconnectAutoPass 处理掉线玩家：若正当其轮，哨兵弃牌（最近摸到的牌）；
// 若正处于认领窗口，其认领资格失效。
func (g *GameState) DisconnectAutoPass(playerID uuid.UUID) {
	for _, p := range g.Players {
		if p.ID == playerID {
			p.State = Disconnected
		}
	}
	if g.SubState == AwaitingClaims {
		g.Pass(playerID)
		return
	}
	current := g.CurrentPlayer()
	if current != nil && current.ID == playerID && g.SubState == AwaitingDiscard {
		h := g.Hands[playerID]
		if h.Len() > 0 {
			g.Discard(playerID, h.Len()-1)
		}
	}
}
