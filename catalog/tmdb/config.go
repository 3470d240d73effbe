package tmdb

import (
	"time"

	"github.com/spf13/viper"

	"github.com/rubsen49-sketch/MovieMatch/internal/retry"
)

type Config struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Language  string        `mapstructure:"language"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	Retry     retry.Config  `mapstructure:"retry"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig stops calling TMDB for OpenTimeout once FailureThreshold
// consecutive lookups have failed.
type BreakerConfig struct {
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout"`
}

// Enabled reports whether an API key is configured.
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("api_key"), "")
	v.SetDefault(p("base_url"), "https://api.themoviedb.org/3")
	v.SetDefault(p("language"), "fr-FR")
	v.SetDefault(p("timeout"), "10s")
	v.SetDefault(p("cache_size"), 2048)
	v.SetDefault(p("cache_ttl"), "10m")
	v.SetDefault(p("breaker.failure_threshold"), 5)
	v.SetDefault(p("breaker.open_timeout"), "30s")
	retry.Setup(v, p("retry"))
}
