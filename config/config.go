package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Room   RoomConfig   `mapstructure:"room"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type RoomConfig struct {
	TTLMinutes   int `mapstructure:"ttl_minutes"`   // 0 disables eviction
	SweepSeconds int `mapstructure:"sweep_seconds"` // expiry check resolution
}

// TTL 返回房间空闲回收时限。
func (c RoomConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Sweep 返回过期检查分辨率。
func (c RoomConfig) Sweep() time.Duration {
	if c.SweepSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SweepSeconds) * time.Second
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9100")
	viper.SetDefault("room.ttl_minutes", 120)
	viper.SetDefault("room.sweep_seconds", 30)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
