package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"guilinpaizi/common/cache"
	"guilinpaizi/common/config"
	httpx "guilinpaizi/common/http"
	"guilinpaizi/common/httpapi"
	"guilinpaizi/common/log"
	"guilinpaizi/core/infrastructure"
	"guilinpaizi/economy"
	"guilinpaizi/persist"
	"guilinpaizi/ranking"
	"guilinpaizi/room"
	"guilinpaizi/server"
)

// 加载配置 -> 启动监控/管理端 -> 启动 WebSocket 网关
// 阿里云代理 go env -w GOPROXY=https://mirrors.aliyun.com/goproxy/,direct
var configFile string

var rootCmd = &cobra.Command{
	Use:   "guilinpaizi",
	Short: "桂林牌字游戏服务",
	Long:  `桂林牌字游戏服务：房间协调、规则引擎、结算与排位的单进程实现`,
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig(configFile)
		config.InitTuningConfig(configFile)

		log.InitLog(config.Conf.AppName)
		log.Info("配置文件: %+v", config.Conf)

		if err := run(context.Background()); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "resource/application.yml", "resource file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	container := infrastructure.New()
	if container == nil {
		return fmt.Errorf("依赖容器初始化失败")
	}
	defer container.Close()

	rankingSystem := ranking.NewSystem(container.GetRedis())
	currency := economy.NewCurrencySystem(economy.EconomyConfig{
		RakePercentage:     config.Conf.EconomyConf.RakePercentage,
		MinBeansForMatch:   config.Conf.RoomConf.BaseBet,
		DailyFreeBeans:     config.Conf.EconomyConf.DailyBonusAmount,
		WinBonusBase:       1.0,
		LossReductionSkill: 0.05,
		WinBonusSkill:      0.03,
	})
	calculator := economy.NewCalculator(economy.EconomyConfig{
		RakePercentage: config.Conf.EconomyConf.RakePercentage,
	})

	roomCfg := room.Config{
		BaseBet:     config.Conf.RoomConf.BaseBet,
		MaxPlayers:  config.Conf.RoomConf.MaxPlayers,
		ClaimWindow: time.Duration(config.Conf.RoomConf.ClaimWindowMs) * time.Millisecond,
		SkillMode:   "standard",
	}
	if roomCfg.MaxPlayers == 0 {
		roomCfg.MaxPlayers = room.DefaultConfig().MaxPlayers
	}
	if roomCfg.ClaimWindow == 0 {
		roomCfg.ClaimWindow = room.DefaultConfig().ClaimWindow
	}

	rooms := room.NewManager(roomCfg)
	routes, err := cache.NewPlayerRoomCache(10 * time.Minute)
	if err != nil {
		return fmt.Errorf("初始化玩家路由缓存失败: %w", err)
	}
	defer routes.Close()

	settler := newSettler(calculator, currency, rankingSystem, roomCfg.BaseBet)
	recorder := persist.NewRecorder(container.GetGameRecordRepository())
	rooms.OnHandEnd(func(result room.HandResult) {
		settler.settle(result)
		recorder.OnHandEnd(result)
	})

	gateway := server.New(rooms, routes, config.Conf.JwtConf.Secret,
		config.Conf.RateLimit.ActionsPerSecond, config.Conf.RateLimit.Burst)

	adminSurface := httpapi.New(rooms, rankingSystem, config.Conf.JwtConf.Secret)
	httpServer := httpx.NewHttpServer(httpx.WithPort(config.Conf.HttpPort))
	adminSurface.Mount(httpServer)

	go func() {
		log.Info("管理端 HTTP 接口启动，端口 %d", config.Conf.HttpPort)
		if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("管理端 HTTP 服务退出: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway)
	wsServer := &http.Server{Addr: fmt.Sprintf(":%d", config.Conf.WsPort), Handler: mux}

	go func() {
		log.Info("WebSocket 网关启动，端口 %d", config.Conf.WsPort)
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("WebSocket 网关退出: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	log.Info("收到停止信号，开始优雅关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	_ = wsServer.Shutdown(shutdownCtx)
	return nil
}

// settler 把一手牌的结算结果写入欢乐豆流水并更新排位，供每个房间的
// OnHandEnd 回调复用。
type settler struct {
	calculator *economy.Calculator
	currency   *economy.CurrencySystem
	ranking    *ranking.System
	baseBet    int64
}

func newSettler(calculator *economy.Calculator, currency *economy.CurrencySystem, rankingSystem *ranking.System, baseBet int64) *settler {
	return &settler{calculator: calculator, currency: currency, ranking: rankingSystem, baseBet: baseBet}
}

func (s *settler) settle(result room.HandResult) {
	if result.EndType != "hu" || len(result.Outcomes) == 0 {
		return
	}

	outcomes := make([]economy.GameOutcome, 0, len(result.Outcomes))
	var winner, loser *uuid.UUID
	for playerID, win := range result.Outcomes {
		pid := playerID
		isWinner := result.Winner != nil && pid == *result.Winner
		if isWinner {
			winner = &pid
		} else {
			loser = &pid
		}
		outcomes = append(outcomes, economy.GameOutcome{
			PlayerID: pid,
			IsWinner: isWinner,
			Huxi:     win.Huxi,
			Duo:      win.Duo,
			Fan:      win.Fan,
			IsZimo:   win.IsZimo,
			IsTianhu: win.IsTianhu,
			IsDihu:   win.IsDihu,
		})
	}

	settlements := s.calculator.Calculate(s.baseBet, outcomes)
	now := time.Now()
	for _, sr := range settlements {
		txType := economy.TransactionLoss
		if sr.Outcome {
			txType = economy.TransactionWin
		}
		s.currency.Apply(sr.PlayerID.String(), sr.FinalBeans, txType, now)
	}

	if winner != nil && loser != nil {
		s.ranking.RegisterPlayer(*winner)
		s.ranking.RegisterPlayer(*loser)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := s.ranking.UpdateAfterMatch(ctx, *winner, *loser); err != nil {
			log.Warn("更新排位失败: %v", err)
		}
		cancel()
	}
}
