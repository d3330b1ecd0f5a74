package run

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/relex/ndjson-transformer/defs"
)

var envNamesByKey = map[string]string{
	defs.KeyInputs:        defs.EnvInputs,
	defs.KeyOutput:        defs.EnvOutput,
	defs.KeyDuplicates:    defs.EnvDuplicates,
	defs.KeyIntervals:     defs.EnvIntervals,
	defs.KeyResponseTimes: defs.EnvResponseTimes,
}

// Settings resolves configuration keys from, in order of precedence: command-line arguments, environment variables
// and config file. Empty values are treated as unset at every level.
type Settings struct {
	Args      map[string]string                // by config key
	LookupEnv func(name string) (string, bool) // nil = no environment
	File      *Config                          // nil = no config file
}

// LoadSettings creates Settings from command-line arguments, process environment and optional config file
//
// Variables defined in .env of the working directory are loaded into the environment first, without overriding
// existing ones.
func LoadSettings(args map[string]string, configPath string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf(".env: %w", err)
	}
	settings := Settings{
		Args:      args,
		LookupEnv: os.LookupEnv,
		File:      nil,
	}
	if len(configPath) > 0 {
		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			return Settings{}, err
		}
		settings.File = cfg
	}
	return settings, nil
}

// Lookup fetches the value of config key from the first level where it's set
func (s Settings) Lookup(key string) (string, bool) {
	if value := s.Args[key]; len(value) > 0 {
		return value, true
	}
	if envName, ok := envNamesByKey[key]; ok && s.LookupEnv != nil {
		if value, found := s.LookupEnv(envName); found && len(value) > 0 {
			return value, true
		}
	}
	if s.File != nil {
		if value := s.File.lookup(key); len(value) > 0 {
			return value, true
		}
	}
	return "", false
}

// FileConfig returns the config file contents, or empty Config if there is none
func (s Settings) FileConfig() Config {
	if s.File == nil {
		return Config{}
	}
	return *s.File
}
