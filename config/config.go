package config

import (
	"time"

	commonconfig "github.com/coxswain-io/coxswain/common/config"
	"github.com/coxswain-io/coxswain/factory"
)

const (
	_defaultRoundTimeout      = 1 * time.Second
	_defaultMaxParallelRounds = 4
)

// Config is the static configuration of the scheduling core.
type Config struct {
	Identity factory.Identity `yaml:"identity"`
	Matching MatchingConfig   `yaml:"matching"`
}

// MatchingConfig tunes offer matching rounds.
type MatchingConfig struct {
	// RoundTimeout bounds how long one offer may be evaluated before it
	// is flagged for resend.
	RoundTimeout time.Duration `yaml:"round_timeout" validate:"min=1"`

	// MaxParallelRounds bounds how many offers are matched concurrently.
	MaxParallelRounds int `yaml:"max_parallel_rounds" validate:"min=1"`
}

// Default returns the configuration defaults applied before files are
// merged in.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			RoundTimeout:      _defaultRoundTimeout,
			MaxParallelRounds: _defaultMaxParallelRounds,
		},
	}
}

// Load parses and validates configuration from the given files, later
// files overriding earlier ones.
func Load(files ...string) (*Config, error) {
	cfg := Default()
	if err := commonconfig.Parse(cfg, files...); err != nil {
		return nil, err
	}
	return cfg, nil
}
