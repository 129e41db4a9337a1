package config

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/haus/pkg/errors"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "HAUS_"

// Settings holds the process-wide settings that are not flags
type Settings struct {
	// Path overrides the installation root (HAUS_PATH)
	Path string `koanf:"path"`
	// Verbosity is the base log verbosity, raised by -v (HAUS_VERBOSITY)
	Verbosity int `koanf:"verbosity"`
	// LogFile enables the log file under XDG_STATE_HOME (HAUS_LOG_FILE)
	LogFile bool `koanf:"log_file"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"path":      "",
		"verbosity": 0,
		"log_file":  false,
	}
}

// Load layers the defaults and the HAUS_* environment
func Load() (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var settings Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &settings,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &settings, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal settings")
	}

	if settings.Verbosity < 0 {
		settings.Verbosity = 0
	}

	return &settings, nil
}
