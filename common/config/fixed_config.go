package config

import (
	"fmt"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

// Config 是桂林牌字服务器进程的启动配置（单进程部署，不再拆分为多节点角色）
type Config struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	HttpPort     int          `mapstructure:"httpPort"`
	WsPort       int          `mapstructure:"wsPort"`
	MetricPort   int          `mapstructure:"metricPort"`
	JwtConf      JwtConf      `mapstructure:"jwt"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
	EconomyConf  EconomyConf  `mapstructure:"economy"`
	RoomConf     RoomConf     `mapstructure:"room"`
	RateLimit    RateLimitConf `mapstructure:"rateLimit"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type JwtConf struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

// EconomyConf 对应 economy.EconomyConfig 的可配置部分（抽水比例、每日红包额度等）
type EconomyConf struct {
	RakePercentage   float64 `mapstructure:"rakePercentage"`
	DailyBonusAmount int64   `mapstructure:"dailyBonusAmount"`
	StartingBeans    int64   `mapstructure:"startingBeans"`
}

// RoomConf 控制牌局房间的默认规则
type RoomConf struct {
	BaseBet    int64 `mapstructure:"baseBet"`
	MaxPlayers int   `mapstructure:"maxPlayers"`
	ClaimWindowMs int `mapstructure:"claimWindowMs"`
}

// RateLimitConf 控制单连接限流（令牌桶）参数
type RateLimitConf struct {
	ActionsPerSecond float64 `mapstructure:"actionsPerSecond"`
	Burst            float64 `mapstructure:"burst"`
}

func InitConfig(configFile string) {
	Conf = new(Config)
	v := viper.New()
	v.SetConfigFile(configFile)
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		err := v.Unmarshal(&Conf)
		if err != nil {
			panic(fmt.Errorf("解析配置文件出错 2, err:%v", err))
		}
	})

	err := v.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("读取配置文件出错, err:%v", err))
	}

	err = v.Unmarshal(&Conf)
	if err != nil {
		panic(fmt.Errorf("解析配置文件出错 1, err:%v", err))
	}
}
