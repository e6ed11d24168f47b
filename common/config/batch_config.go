package config

import (
	"fmt"

	"guilinpaizi/common/log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// InjectedConfig 保存运行期可热更新的玩法调参（与 InitConfig 的启动配置分开管理，
// 便于运营在不重启进程的情况下调整抽水比例、技能开关等数值）
var InjectedConfig *TuningConfig

// TuningConfig 是可以在进程运行期间通过编辑配置文件热更新的玩法参数
type TuningConfig struct {
	Economy      EconomyConf     `mapstructure:"economy"`
	Room         RoomConf        `mapstructure:"room"`
	SkillEnabled map[string]bool `mapstructure:"skillEnabled"`
}

// InitTuningConfig 加载可热更新的玩法调参文件，并注册变更监听
func InitTuningConfig(configFile string) {
	InjectedConfig = new(TuningConfig)

	v := viper.New()
	v.SetConfigFile(configFile)
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		var tc TuningConfig
		if err := v.Unmarshal(&tc); err != nil {
			log.Error("玩法调参热更新解析失败: %v", err)
			return
		}
		InjectedConfig = &tc
		log.Info("玩法调参已热更新")
	})

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取玩法调参文件出错, err:%v", err))
	}
	if err := v.Unmarshal(InjectedConfig); err != nil {
		panic(fmt.Errorf("解析玩法调参文件出错, err:%v", err))
	}
}

// IsSkillEnabled 返回指定技能是否在当前调参下启用，未出现在配置中的技能默认启用
func (tc *TuningConfig) IsSkillEnabled(name string) bool {
	if tc == nil || tc.SkillEnabled == nil {
		return true
	}
	enabled, ok := tc.SkillEnabled[name]
	if !ok {
		return true
	}
	return enabled
}
