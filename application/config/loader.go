// Package config loads runtime settings from defaults, a YAML file and the
// environment.
package config

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/gh0stintheshe11/Web-Client/domain/entities"
	"github.com/gh0stintheshe11/Web-Client/domain/errors"
	"github.com/gh0stintheshe11/Web-Client/infrastructure/parser"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. WEBCLIENT_TIMEOUT=5s.
const EnvPrefix = "WEBCLIENT_"

// validate is a package-level singleton; building a validator is expensive.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Option is a functional option for configuring Load.
type Option func(*loaderConfig)

type loaderConfig struct {
	defaultPath string
	dotenvFiles []string
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		defaultPath: DefaultPath(),
	}
}

// WithDefaultPath sets the optional settings file read when no explicit path
// is given. An empty path disables it.
func WithDefaultPath(path string) Option {
	return func(c *loaderConfig) {
		c.defaultPath = path
	}
}

// WithDotenv sets the .env files to load. Default is ".env" in the working
// directory.
func WithDotenv(files ...string) Option {
	return func(c *loaderConfig) {
		c.dotenvFiles = files
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/webclient/config.yaml, or "" when no
// user config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "webclient", "config.yaml")
}

// Load builds Settings by layering, in order: defaults, the settings file,
// and WEBCLIENT_* environment variables. Variables from .env files are added
// to the environment first without overriding ones already set.
//
// An explicit path must exist. Without one, the default path is read only if
// present. Every failure is returned as *errors.ConfigError.
func Load(path string, opts ...Option) (*entities.Settings, error) {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := godotenv.Load(cfg.dotenvFiles...); err != nil && !stdErrors.Is(err, fs.ErrNotExist) {
		return nil, &errors.ConfigError{Field: "dotenv", Err: err}
	}

	k := koanf.New(".")

	file := path
	if file == "" && fileExists(cfg.defaultPath) {
		file = cfg.defaultPath
	}
	if file != "" {
		if err := k.Load(parser.File(file), parser.NewYamlSettingsParser()); err != nil {
			return nil, &errors.ConfigError{Field: "config", Err: fmt.Errorf("%s: %w", file, err)}
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, &errors.ConfigError{Field: "env", Err: err}
	}

	settings := entities.DefaultSettings()
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, &errors.ConfigError{Err: err}
	}

	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks settings against their struct tags. The first failing
// field is reported as *errors.ConfigError.
func Validate(s *entities.Settings) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stdErrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &errors.ConfigError{
			Field: fe.Field(),
			Err:   fmt.Errorf("value %v does not satisfy %q", fe.Value(), constraint(fe)),
		}
	}
	return &errors.ConfigError{Err: err}
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
