// Package config provides configuration for the menu transaction core.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the complete application configuration.
type Config struct {
	Forge     StationConfig
	Tailoring StationConfig
	Shop      ShopConfig
	Log       LogConfig

	InventorySize int
	Seed          int64
	CatalogPath   string
	SoundDir      string
}

// StationConfig holds crafting station timing.
type StationConfig struct {
	Duration time.Duration
}

// ShopConfig holds shop economy settings.
type ShopConfig struct {
	SafetyTimer    time.Duration
	SellPercentage decimal.Decimal
	RestockChance  float64
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
	File   string
}

func Default() Config {
	return Config{
		Forge:     StationConfig{Duration: 1600 * time.Millisecond},
		Tailoring: StationConfig{Duration: 1500 * time.Millisecond},
		Shop: ShopConfig{
			SafetyTimer:    250 * time.Millisecond,
			SellPercentage: decimal.NewFromInt(1),
			RestockChance:  0.04,
		},
		Log:           LogConfig{Level: "info"},
		InventorySize: 36,
		Seed:          1,
	}
}

// Load creates a Config from environment variables over Default.
func Load() (Config, error) {
	d := Default()
	cfg := Config{
		Forge:     StationConfig{Duration: getEnvDuration("BF_FORGE_DURATION", d.Forge.Duration)},
		Tailoring: StationConfig{Duration: getEnvDuration("BF_TAILORING_DURATION", d.Tailoring.Duration)},
		Shop: ShopConfig{
			SafetyTimer:    getEnvDuration("BF_SHOP_SAFETY_TIMER", d.Shop.SafetyTimer),
			SellPercentage: getEnvDecimal("BF_SELL_PERCENTAGE", d.Shop.SellPercentage),
			RestockChance:  getEnvFloat("BF_RESTOCK_CHANCE", d.Shop.RestockChance),
		},
		Log: LogConfig{
			Level:  getEnv("BF_LOG_LEVEL", d.Log.Level),
			Pretty: getEnvBool("BF_LOG_PRETTY", d.Log.Pretty),
			File:   getEnv("BF_LOG_FILE", d.Log.File),
		},
		InventorySize: getEnvInt("BF_INVENTORY_SIZE", d.InventorySize),
		Seed:          int64(getEnvInt("BF_SEED", int(d.Seed))),
		CatalogPath:   getEnv("BF_CATALOG", d.CatalogPath),
		SoundDir:      getEnv("BF_SOUND_DIR", d.SoundDir),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Forge.Duration <= 0 {
		return fmt.Errorf("%w: forge duration must be positive, got %s", ErrInvalidConfig, c.Forge.Duration)
	}
	if c.Tailoring.Duration <= 0 {
		return fmt.Errorf("%w: tailoring duration must be positive, got %s", ErrInvalidConfig, c.Tailoring.Duration)
	}
	if c.Shop.SafetyTimer < 0 {
		return fmt.Errorf("%w: shop safety timer must not be negative", ErrInvalidConfig)
	}
	if c.Shop.SellPercentage.IsNegative() {
		return fmt.Errorf("%w: sell percentage must not be negative, got %s", ErrInvalidConfig, c.Shop.SellPercentage)
	}
	if c.Shop.RestockChance < 0 || c.Shop.RestockChance > 1 {
		return fmt.Errorf("%w: restock chance must be within [0,1], got %v", ErrInvalidConfig, c.Shop.RestockChance)
	}
	if c.InventorySize < 1 {
		return fmt.Errorf("%w: inventory size must be at least 1, got %d", ErrInvalidConfig, c.InventorySize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return defaultValue
}
