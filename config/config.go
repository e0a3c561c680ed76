package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// Config holds the engine configuration.
type Config struct {
	Fees shared.Fees `yaml:"fees"`
	Log  struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Quote struct {
		SlippageBps uint16 `yaml:"slippage_bps"`
	} `yaml:"quote"`
	SnapshotFile string `yaml:"snapshot_file"`
}

func Default() *Config {
	cfg := &Config{Fees: shared.DefaultFees()}
	cfg.Log.Level = "info"
	cfg.Quote.SlippageBps = 50
	return cfg
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("BONDCURVE_FEE"); v != "" {
		fee, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("BONDCURVE_FEE: %w", err)
		}
		cfg.Fees.Fee = uint16(fee)
	}
	if v := os.Getenv("BONDCURVE_PROTOCOL_FEE"); v != "" {
		fee, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("BONDCURVE_PROTOCOL_FEE: %w", err)
		}
		cfg.Fees.ProtocolFee = uint16(fee)
	}
	if v := os.Getenv("BONDCURVE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if err := c.Fees.Validate(); err != nil {
		return fmt.Errorf("fees: %w", err)
	}
	if _, err := c.level(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Quote.SlippageBps > 10000 {
		return fmt.Errorf("quote.slippage_bps must be at most 10000")
	}
	return nil
}

func (c *Config) level() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, err
	}
	return level, nil
}

// NewLogger builds the logger described by the log section.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
