package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Game holds the puzzle tuning knobs.
type Game struct {
	// TTL bounds how long an untouched game stays in redis.
	TTL time.Duration `yaml:"ttl" env-default:"2h"`
	// PartitionAttempts is how many path partitions a single generation draws before giving up.
	PartitionAttempts int `yaml:"partition-attempts" env-default:"64"`
	// GenerationRetries is how many fresh seeds a session tries before surfacing the failure.
	GenerationRetries int `yaml:"generation-retries" env-default:"5"`
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
