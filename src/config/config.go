// Package config resolves featureplot settings from defaults, FEATUREFLUX_* environment
// variables, an optional config file and explicitly set command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iafilius/featureflux/src/logging"
)

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "FEATUREFLUX"

const dateLayout = "2006-01-02"

// Keys
const (
	KeyFile          = "file"
	KeyOut           = "out"
	KeyHeadless      = "headless"
	KeyWidth         = "width"
	KeyHeight        = "height"
	KeyTitle         = "title"
	KeyReferenceDate = "reference_date"
	KeyLogLevel      = "log_level"
	KeyConfig        = "config"
)

// Config holds the settings of one run.
type Config struct {
	File          string
	Out           string
	Headless      bool
	Width         int
	Height        int
	Title         string
	ReferenceDate time.Time
	LogLevel      string
}

// New returns a viper instance carrying the defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyOut, "")
	v.SetDefault(KeyHeadless, false)
	v.SetDefault(KeyWidth, 1100)
	v.SetDefault(KeyHeight, 700)
	v.SetDefault(KeyTitle, "1730-130 features")
	v.SetDefault(KeyReferenceDate, "2016-01-28")
	v.SetDefault(KeyLogLevel, "info")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// BindFlags copies the flags that were set on the command line into v.
// Flag names use dashes, keys use underscores.
func BindFlags(v *viper.Viper, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})
}

// Load reads the optional config file named by the "config" key and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		logging.Debugf("config file %s loaded", v.ConfigFileUsed())
	}
	ref, err := time.ParseInLocation(dateLayout, strings.TrimSpace(v.GetString(KeyReferenceDate)), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid reference_date %q: want YYYY-MM-DD", v.GetString(KeyReferenceDate))
	}
	cfg := &Config{
		File:          strings.TrimSpace(v.GetString(KeyFile)),
		Out:           strings.TrimSpace(v.GetString(KeyOut)),
		Headless:      v.GetBool(KeyHeadless),
		Width:         v.GetInt(KeyWidth),
		Height:        v.GetInt(KeyHeight),
		Title:         v.GetString(KeyTitle),
		ReferenceDate: ref,
		LogLevel:      v.GetString(KeyLogLevel),
	}
	if cfg.File == "" {
		return nil, errors.New("input file is required")
	}
	if cfg.Headless && cfg.Out == "" {
		return nil, errors.New("headless mode needs an output path (-out)")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", cfg.Width, cfg.Height)
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	return cfg, nil
}
