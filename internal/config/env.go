package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment keys read by LoadEnv.
const (
	EnvMode   = "SCRAP_ARENA_MODE"
	EnvTuning = "SCRAP_ARENA_TUNING"
	EnvSeed   = "SCRAP_ARENA_SEED"
)

// Env holds launch defaults taken from the environment. Command-line flags
// override them.
type Env struct {
	Mode   string
	Tuning string
	Seed   uint32
}

// LoadEnv reads the optional dotenv file at path, then lets non-empty
// process environment values override it. Keys left empty keep def.
func LoadEnv(path string, def Env) (Env, error) {
	vals := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return def, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range m {
			vals[k] = v
		}
	}
	for _, k := range []string{EnvMode, EnvTuning, EnvSeed} {
		if v := os.Getenv(k); v != "" {
			vals[k] = v
		}
	}

	env := def
	if v := vals[EnvMode]; v != "" {
		env.Mode = v
	}
	if v := vals[EnvTuning]; v != "" {
		env.Tuning = v
	}
	if v := vals[EnvSeed]; v != "" {
		seed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return def, fmt.Errorf("%s=%q: %w", EnvSeed, v, ErrInvalid)
		}
		env.Seed = uint32(seed)
	}
	return env, nil
}
