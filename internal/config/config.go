package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env-default:"9090"`
	SocketPort  string      `yaml:"socket-port" env-default:"9091"`
	Redis       Redis       `yaml:"redis"`
	Preferences Preferences `yaml:"preferences"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Preferences selects where the display theme is persisted.
type Preferences struct {
	Backend    string `yaml:"backend" env-default:"redis"`
	SQLitePath string `yaml:"sqlite-path" env-default:"preferences.db"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
