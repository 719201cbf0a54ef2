package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv loads envFile into the process environment (a missing file is
// fine) and overlays every ARNOR_* variable that is set. Variables that are
// not set leave the current value alone.
//
// Panics on a malformed env file or value, like parseJson.
func parseEnv(cfg *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
