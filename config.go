package keysctl

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds everything a single invocation needs
type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Backlight BacklightConfig `mapstructure:"backlight"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

type AudioConfig struct {
	Backend  string        `mapstructure:"backend"`
	Card     string        `mapstructure:"card"`
	Playback ElementConfig `mapstructure:"playback"`
	Capture  ElementConfig `mapstructure:"capture"`
}

type BacklightConfig struct {
	Root string `mapstructure:"root"`
}

type NotifyConfig struct {
	Method     string `mapstructure:"method"`
	Process    string `mapstructure:"process"`
	SignalBase int    `mapstructure:"signal_base"`
}

// Element returns the element configuration for mode
func (c AudioConfig) Element(mode MixerMode) ElementConfig {
	if mode == MixerModeCapture {
		return c.Capture
	}
	return c.Playback
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", logrus.WarnLevel.String())
	v.SetDefault("audio.backend", BackendALSA)
	v.SetDefault("audio.card", defaultCard)
	v.SetDefault("audio.playback.element", "Master")
	v.SetDefault("audio.playback.index", 0)
	v.SetDefault("audio.capture.element", "Capture")
	v.SetDefault("audio.capture.index", 0)
	v.SetDefault("backlight.root", DefaultBacklightRoot)
	v.SetDefault("notify.method", NotifySignal)
	v.SetDefault("notify.process", DefaultStatusBarCmd)
	v.SetDefault("notify.signal_base", DefaultSignalBase)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/keysctl/config.yaml
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keysctl", "config.yaml")
}

// LoadConfig reads path (a missing file is fine), applies KEYSCTL_* environment
// overrides and validates the result
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("keysctl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backends, notify methods and log levels
func (c *Config) Validate() error {
	switch c.Audio.Backend {
	case BackendALSA, BackendPulse:
	default:
		return errors.Errorf("unknown audio backend '%s'", c.Audio.Backend)
	}

	switch c.Notify.Method {
	case NotifySignal, NotifyDBus, NotifyNone:
	default:
		return errors.Errorf("unknown notify method '%s'", c.Notify.Method)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return os.IsNotExist(errors.Cause(err))
}
