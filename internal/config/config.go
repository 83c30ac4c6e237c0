package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"

	"cluedo/internal/domain"
)

const (
	defaultMinPlayers = 3
	defaultMaxPlayers = 6
)

// GameConfig describes the card catalogue and table limits.
type GameConfig struct {
	Suspects   []string `json:"suspects"`
	Rooms      []string `json:"rooms"`
	Weapons    []string `json:"weapons"`
	MinPlayers int      `json:"min_players"`
	MaxPlayers int      `json:"max_players"`
}

// Env holds settings read from the process environment.
type Env struct {
	ConfigPath string `env:"CLUE_CONFIG_PATH" envDefault:"/nakama/data/modules/clue.json"`
	LogLevel   string `env:"CLUE_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ParseEnvMap loads Env from the given variables, falling back to the
// process environment for anything missing. Nakama hands runtime variables to
// modules as a map.
func ParseEnvMap(vars map[string]string) (Env, error) {
	var e Env
	merged := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	for k, v := range vars {
		merged[k] = v
	}
	if err := env.ParseWithOptions(&e, env.Options{Environment: merged}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

var (
	cfg      *GameConfig
	deck     *domain.Deck
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := parseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
		deck = domain.NewDeck(c.Suspects, c.Rooms, c.Weapons)
	})
	return loadErr
}

func parseGameConfig(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every kind has cards and the player limits make sense.
// Zero limits take the classic defaults.
func (c *GameConfig) Validate() error {
	if len(c.Suspects) == 0 || len(c.Rooms) == 0 || len(c.Weapons) == 0 {
		return fmt.Errorf("game config needs at least one suspect, room and weapon")
	}
	if c.MinPlayers == 0 {
		c.MinPlayers = defaultMinPlayers
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = defaultMaxPlayers
	}
	if c.MinPlayers < 2 || c.MaxPlayers < c.MinPlayers {
		return fmt.Errorf("invalid player limits %d..%d", c.MinPlayers, c.MaxPlayers)
	}
	return nil
}

// GetGameConfig returns the global game configuration, or nil before a
// successful load.
func GetGameConfig() *GameConfig {
	return cfg
}

// Deck returns the configured deck, or the classic deck if none was loaded.
func Deck() *domain.Deck {
	if deck == nil {
		return domain.ClassicDeck()
	}
	return deck
}

// PlayerLimits returns the allowed table size.
func PlayerLimits() (minPlayers, maxPlayers int) {
	if cfg == nil {
		return defaultMinPlayers, defaultMaxPlayers
	}
	return cfg.MinPlayers, cfg.MaxPlayers
}
