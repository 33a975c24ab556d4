// Package config loads padcam settings from flags, a YAML file and PADCAM_
// environment variables, in that order of precedence.
package config

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
)

const (
	BackendSDL    = "sdl"
	BackendEbiten = "ebiten"
)

const envPrefix = "PADCAM"

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	Addr    string          `mapstructure:"addr"`
	Backend string          `mapstructure:"backend"`
	TPS     int             `mapstructure:"tps"`
	Gamepad int             `mapstructure:"gamepad"`
	Tray    bool            `mapstructure:"tray"`
	Log     LogConfig       `mapstructure:"log"`
	Params  controls.Params `mapstructure:"params"`

	v        *viper.Viper
	watching sync.Once
}

// TickInterval is the duration of one tick at TPS.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TPS)
}

// File returns the config file in use, or "" when running on defaults.
func (c *Config) File() string {
	return c.v.ConfigFileUsed()
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("padcam", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (default ./padcam.yaml)")
	fs.String("addr", ":8080", "viewer listen address")
	fs.String("backend", BackendSDL, "gamepad backend: sdl or ebiten")
	fs.Int("tps", 60, "ticks per second")
	fs.Int("gamepad", -1, "only use this gamepad, -1 binds the latest connection; SDL joystick instance ID or ebiten gamepad ID depending on backend")
	fs.Bool("tray", true, "show the system tray icon on windows")
	fs.String("log-level", "info", "log level")
	fs.Bool("dev", false, "development logging")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("backend", BackendSDL)
	v.SetDefault("tps", 60)
	v.SetDefault("gamepad", -1)
	v.SetDefault("tray", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	p := controls.DefaultParams()
	v.SetDefault("params.right_stick_x_threshold", p.RightStickXThreshold)
	v.SetDefault("params.right_stick_y_threshold", p.RightStickYThreshold)
	v.SetDefault("params.left_stick_x_threshold", p.LeftStickXThreshold)
	v.SetDefault("params.left_stick_y_threshold", p.LeftStickYThreshold)
	v.SetDefault("params.right_trigger_threshold", p.RightTriggerThreshold)
	v.SetDefault("params.left_trigger_threshold", p.LeftTriggerThreshold)
	v.SetDefault("params.rotate_delta", p.RotateDelta)
	v.SetDefault("params.forward_delta", p.ForwardDelta)
	v.SetDefault("params.sideways_delta", p.SidewaysDelta)
	v.SetDefault("params.dolly_delta", p.DollyDelta)
	v.SetDefault("params.elevate_delta", p.ElevateDelta)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	keys := map[string]string{
		"addr":            "addr",
		"backend":         "backend",
		"tps":             "tps",
		"gamepad":         "gamepad",
		"tray":            "tray",
		"log.level":       "log-level",
		"log.development": "dev",
	}
	for key, name := range keys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

// Load reads the configuration. fs must already be parsed. A missing default
// config file is not an error; a missing --config file is.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, fs); err != nil {
		return nil, err
	}

	file, _ := fs.GetString("config")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("padcam")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendSDL, BackendEbiten:
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if c.TPS <= 0 {
		return errors.Errorf("tps must be positive: %d", c.TPS)
	}
	return errors.Wrap(c.Params.Validate(), "params")
}

// Watch calls fn with the new mapping params every time the config file
// changes. fn runs on the watcher goroutine. Invalid edits are logged and
// skipped. Watch does nothing without a config file and only installs the
// watcher once.
func (c *Config) Watch(log *zap.Logger, fn func(controls.Params)) {
	if c.File() == "" {
		return
	}

	c.watching.Do(func() {
		log = log.With(zap.String("component", "config"))

		c.v.OnConfigChange(func(e fsnotify.Event) {
			var next Config
			if err := c.v.Unmarshal(&next); err != nil {
				log.Warn("config reload failed", zap.String("file", e.Name), zap.Error(err))
				return
			}

			p := next.Params
			if err := p.Validate(); err != nil {
				log.Warn("config reload rejected", zap.String("file", e.Name), zap.Error(err))
				return
			}

			log.Info("mapping params reloaded", zap.String("file", e.Name))
			fn(p)
		})
		c.v.WatchConfig()
	})
}
