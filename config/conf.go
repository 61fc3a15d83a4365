package config

import (
	"flag"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var confPath string

func init() {
	flag.StringVar(&confPath, "conf", "configs/", "default config path")
}

var (
	Server server
	MySql  mysql
	Chain  chain
)

// Server 配置
type server struct {
	Env     string `yaml:"env"`
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	SignKey string `yaml:"sign_key"`
}

type mysql struct {
	Host         string `yaml:"host"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// Chain 记账引擎相关配置
type chain struct {
	Owner         string `yaml:"owner"`          // 运营方地址
	CompanyWallet string `yaml:"company_wallet"` // 利润接收钱包
	AssetURL      string `yaml:"asset_url"`      // 资产账本服务地址
	AssetKey      string `yaml:"asset_key"`      // 资产账本签名密钥
	DgraphRPC     string `yaml:"dgraph_rpc"`     // 关系镜像 dgraph 地址（可空）
	StatSchedule  string `yaml:"stat_schedule"`  // 快照定时任务
}

func Init() {
	unmarshalServer()
	unmarshalMysql()
	unmarshalChain()
}

func unmarshalServer() {
	viper.SetConfigName("server")
	viper.AddConfigPath(confPath)
	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {             // Handle errors reading the config file
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	err = viper.Unmarshal(&Server, func(config *mapstructure.DecoderConfig) {
		config.TagName = "yaml"
	})
	if err != nil {
		panic(fmt.Errorf("Fatal error unmarshal config file: %s \n", err))
	}
}

func unmarshalMysql() {
	viper.SetConfigName("mysql")
	viper.AddConfigPath(confPath)
	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {             // Handle errors reading the config file
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	err = viper.Unmarshal(&MySql, func(config *mapstructure.DecoderConfig) {
		config.TagName = "yaml"
	})
	if err != nil {
		panic(fmt.Errorf("Fatal error unmarshal config file: %s \n", err))
	}
}

func unmarshalChain() {
	viper.SetConfigName("chain")
	viper.AddConfigPath(confPath)
	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {             // Handle errors reading the config file
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}

	err = viper.Unmarshal(&Chain, func(config *mapstructure.DecoderConfig) {
		config.TagName = "yaml"
	})
	if err != nil {
		panic(fmt.Errorf("Fatal error unmarshal config file: %s \n", err))
	}
}
