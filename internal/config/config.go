// Package config resolves the process settings from hard-coded
// defaults, an optional config file, a local .env override and
// APP__ prefixed environment variables, in that precedence order.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// DefaultFile is the conventional config file location used when no
	// explicit path is given.
	DefaultFile = "config.toml"

	// envPrefix carries a trailing underscore because viper joins the
	// prefix and the key with a single one, yielding variables of the
	// form APP__DATABASE__HOST.
	envPrefix    = "APP_"
	envSeparator = "__"
)

// Resolve builds the Settings value. A missing config file or .env file
// is not an error; a present but unparsable file is. The result is
// validated before it is returned.
func Resolve(filePath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if filePath == "" {
		filePath = DefaultFile
	}

	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
		return nil, errors.Wrapf(ErrParseFailure, "%s: %v", filePath, err)
	}

	// .env values reach viper through the environment. godotenv never
	// overwrites variables that are already set, so real environment
	// variables keep the highest precedence.
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envSeparator))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrapf(ErrParseFailure, "%v", err)
	}

	return &s, validate(&s)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "go-scaffold")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "go_scaffold")
	v.SetDefault("database.username", "go_scaffold")
	v.SetDefault("database.password", "")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "pretty")
	v.SetDefault("log.file", "")
	v.SetDefault("log.file_max_size", 100)
	v.SetDefault("log.file_max_backups", 3)
	v.SetDefault("log.file_max_age", 28)
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}

	return os.IsNotExist(errors.Cause(err))
}

// validate reports the first field that fails basic validation.
func validate(s *Settings) error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errors.Wrapf(ErrInvalidValue, "%s failed on '%s'", fieldErrs[0].Namespace(), fieldErrs[0].Tag())
	}

	return errors.Wrapf(ErrInvalidValue, "%v", err)
}
