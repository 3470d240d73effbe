package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/viper"

	"github.com/rubsen49-sketch/MovieMatch/internal/log"
)

type Retry interface {
	Do(ctx context.Context, operation func() error) error
}

type Config struct {
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
	MaxAttempts     uint64        `mapstructure:"max_attempts"`
}

// Permanent marks err as not worth retrying; Do returns it unwrapped.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

func New(logger *log.Logger, cfg Config) Retry {
	return &retryImpl{logger: logger, cfg: cfg}
}

type retryImpl struct {
	logger *log.Logger
	cfg    Config
}

func (r *retryImpl) Do(ctx context.Context, operation func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.cfg.InitialInterval
	eb.MaxInterval = r.cfg.MaxInterval
	eb.MaxElapsedTime = r.cfg.MaxElapsedTime

	var b backoff.BackOff = eb
	if r.cfg.MaxAttempts > 0 {
		// WithMaxRetries counts retries, not attempts
		b = backoff.WithMaxRetries(b, r.cfg.MaxAttempts-1)
	}

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := operation()
		if err != nil {
			r.logger.Debug("attempt failed",
				log.Int("attempt", attempt),
				log.Error(err))
		}
		return err
	}, backoff.WithContext(b, ctx))
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("initial_interval"), "200ms")
	v.SetDefault(p("max_interval"), "2s")
	v.SetDefault(p("max_elapsed_time"), "10s")
	v.SetDefault(p("max_attempts"), 3)
}
