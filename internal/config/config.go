package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `yaml:"env" env:"APP_ENV" env-default:"local"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
		ApiKey string `yaml:"key" env:"PLATFORM_API_KEY" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Host         string        `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port         string        `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User         string        `yaml:"user" env:"MONGO_USER" env-default:""`
		Password     string        `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Directory    string        `yaml:"directory" env-default:"erp_directory"`
		TenantPrefix string        `yaml:"tenant_prefix" env-default:"school_"`
		PingTTL      time.Duration `yaml:"ping_ttl" env-default:"30s"`
	} `yaml:"mongo"`
	Auth struct {
		Secret   string        `yaml:"secret" env:"AUTH_SECRET" env-default:""`
		TokenTTL time.Duration `yaml:"token_ttl" env-default:"24h"`
	} `yaml:"auth"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		BotName string `yaml:"bot_name" env-default:"SchoolSOSBot"`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
	} `yaml:"telegram"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
