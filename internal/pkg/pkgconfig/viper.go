package pkgconfig

import (
	"path"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when looking values up in the environment.
const EnvPrefix = "RETIP"

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// Options controls where NewViper looks for values.
type Options struct {
	// File is an optional config file; the type is inferred from its extension.
	File string
	// Defaults are the lowest-priority values.
	Defaults map[string]any
	// Flags maps config keys to command-line flags that override everything else.
	Flags map[string]*pflag.Flag
}

// NewViper loads configuration and returns a Viper-backed Config.
//
// Priority, highest first: bound flags, RETIP_* environment variables, the
// config file, defaults. A dotted key such as "dataset.test_size" is read from
// RETIP_DATASET_TEST_SIZE.
func NewViper(opts Options) (*Viper, error) {
	v := viper.New()

	for key, value := range opts.Defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		filename := path.Base(opts.File)
		filePath := path.Dir(opts.File)

		configName := path.Base(filename[:len(filename)-len(path.Ext(filename))])

		v.AddConfigPath(filePath)
		v.SetConfigName(configName)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, err
		}
	}

	return &Viper{v: v}, nil
}

// GetInt returns the value for key as int64.
func (vc *Viper) GetInt(key string) int64 {
	return vc.v.GetInt64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetFloat returns the value for key as float64.
func (vc *Viper) GetFloat(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetDuration returns the value for key as a time.Duration ("90s", "1h").
func (vc *Viper) GetDuration(key string) time.Duration {
	return vc.v.GetDuration(key)
}

// GetArray returns the value for key as a list.
//
// Strings (flags, environment) are split by commas; YAML sequences are
// returned as-is.
func (vc *Viper) GetArray(key string) []string {
	var parts []string
	if raw, ok := vc.v.Get(key).(string); ok {
		parts = strings.Split(raw, ",")
	} else {
		parts = vc.v.GetStringSlice(key)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// IsSet reports whether key has a value from any source, defaults included.
func (vc *Viper) IsSet(key string) bool {
	return vc.v.IsSet(key)
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	// No resources to close for ViperConfig; this is just for interface completeness.
	return nil
}
