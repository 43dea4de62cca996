package config

import (
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	IsProduction bool `env:"PRODUCTION"`
	API          API
}

type API struct {
	Port string `env:"API_PORT"`
}

func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	var config Config
	if err := env.ParseWithOptions(&config, env.Options{RequiredIfNoDef: true}); err != nil {
		return Config{}, err
	}

	return config, nil
}
