package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigFile names an optional yaml/json/toml file merged under env vars.
const EnvConfigFile = "CONFIG_FILE"

// EnvDotEnvFile names a dotenv file loaded into the process environment.
// Without it ./.env is loaded when present. Variables already set win.
const EnvDotEnvFile = "DOTENV_FILE"

func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	return v
}

// Load applies defaults through configure, then the optional config file,
// then env vars, and decodes the result into c.
func Load[T any](c *T, configure func(v *viper.Viper)) (*T, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := NewViper()
	configure(v)

	if file := strings.TrimSpace(os.Getenv(EnvConfigFile)); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return c, nil
}

func loadDotEnv() error {
	file := strings.TrimSpace(os.Getenv(EnvDotEnvFile))
	if file == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "read .env")
		}
		return nil
	}
	return errors.Wrapf(godotenv.Load(file), "read dotenv file %s", file)
}
