package ranking

import "math"

// EloRating 是隐藏的匹配分轨道
type EloRating struct {
	Rating      int `json:"rating" bson:"rating"`
	GamesPlayed int `json:"games_played" bson:"games_played"`
	Wins        int `json:"wins" bson:"wins"`
	Losses      int `json:"losses" bson:"losses"`
}

// NewEloRating 创建初始 Elo：1000 分，零对局
func NewEloRating() EloRating {
	return EloRating{Rating: 1000}
}

// KFactor 根据对局数与当前分数返回 K 值
func (e EloRating) KFactor() int {
	if e.GamesPlayed < 30 {
		return 32
	}
	if e.Rating < 2000 {
		return 24
	}
	return 16
}

// ExpectedScore 计算对阵给定分数对手的期望胜率
func (e EloRating) ExpectedScore(opponentRating int) float64 {
	diff := float64(opponentRating - e.Rating)
	return 1.0 / (1.0 + math.Pow(10, diff/400.0))
}

// UpdateRating 按本局胜负更新分数，分数下限为 0
func (e *EloRating) UpdateRating(opponentRating int, won bool) {
	k := float64(e.KFactor())
	expected := e.ExpectedScore(opponentRating)
	actual := 0.0
	if won {
		actual = 1.0
	}
	change := int(math.Round(k * (actual - expected)))
	e.Rating += change
	if e.Rating < 0 {
		e.Rating = 0
	}
	e.GamesPlayed++
	if won {
		e.Wins++
	} else {
		e.Losses++
	}
}

// WinRate 返回胜率，尚无对局时为 0
func (e EloRating) WinRate() float64 {
	if e.GamesPlayed == 0 {
		return 0
	}
	return float64(e.Wins) / float64(e.GamesPlayed)
}

// UpdateAfterMatch 同时更新胜者与败者的 Elo 与段位星数
func UpdateAfterMatch(winnerElo, loserElo *EloRating, winnerRank, loserRank *Rank) {
	winnerRating := winnerElo.Rating
	loserRating := loserElo.Rating

	winnerElo.UpdateRating(loserRating, true)
	loserElo.UpdateRating(winnerRating, false)

	winnerRank.AddStar()
	loserRank.Demote()
}
