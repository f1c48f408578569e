// Package config resolves the search settings from defaults, an optional
// YAML file, ZEROHUNTER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Amr-9/ZeroHunter/pkg/generator"
	"github.com/Amr-9/ZeroHunter/pkg/generator/digest"
)

// Accepted closed range for both the zero count and the target count.
const (
	MinCount = 1
	MaxCount = 10
)

const (
	// EnvPrefix prefixes environment overrides, e.g. ZEROHUNTER_ZEROS=4.
	EnvPrefix = "ZEROHUNTER"
	// FileName is the default config file looked up in the working directory.
	FileName = "zerohunter.yaml"
)

// Config keys, shared by flags, env and the YAML file.
const (
	KeyZeros        = "zeros"
	KeyFind         = "find"
	KeyWorkers      = "workers"
	KeyStart        = "start"
	KeyAlgorithm    = "algorithm"
	KeyOutput       = "output"
	KeyProgress     = "progress"
	KeyHighPriority = "high_priority"
	KeyLogLevel     = "log_level"
)

var (
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("value out of range")
)

// Config is the fully resolved tool configuration.
type Config struct {
	ZeroCount    int    `mapstructure:"zeros" yaml:"zeros"`
	TargetCount  int    `mapstructure:"find" yaml:"find"`
	Workers      int    `mapstructure:"workers" yaml:"workers"`
	Start        uint64 `mapstructure:"start" yaml:"start"`
	Algorithm    string `mapstructure:"algorithm" yaml:"algorithm"`
	Output       string `mapstructure:"output" yaml:"output"`
	Progress     bool   `mapstructure:"progress" yaml:"progress"`
	HighPriority bool   `mapstructure:"high_priority" yaml:"high_priority"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ZeroCount:   1,
		TargetCount: 1,
		Workers:     0,
		Start:       1,
		Algorithm:   generator.SHA256.String(),
		Progress:    true,
		LogLevel:    "warn",
	}
}

// SetDefaults registers the built-in values and env handling on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyZeros, d.ZeroCount)
	v.SetDefault(KeyFind, d.TargetCount)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyStart, d.Start)
	v.SetDefault(KeyAlgorithm, d.Algorithm)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyProgress, d.Progress)
	v.SetDefault(KeyHighPriority, d.HighPriority)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the config file (path, or ./zerohunter.yaml if path is empty
// and the file exists), then decodes and validates v.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field. Counts outside [MinCount, MaxCount] are
// rejected so the search can neither match trivially nor run forever.
func (c Config) Validate() error {
	if err := CheckCount(KeyZeros, c.ZeroCount); err != nil {
		return err
	}
	if err := CheckCount(KeyFind, c.TargetCount); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %s=%d, must be 0 (all cores) or positive", ErrOutOfRange, KeyWorkers, c.Workers)
	}
	alg, err := generator.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return err
	}
	if n := digest.HexLen(alg); c.ZeroCount > n {
		return fmt.Errorf("%w: %s=%d exceeds the %d-digit %s digest", ErrOutOfRange, KeyZeros, c.ZeroCount, n, alg)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return nil
}

// Generator converts c into the engine's search configuration.
func (c Config) Generator() (*generator.Config, error) {
	alg, err := generator.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return nil, err
	}
	return &generator.Config{
		ZeroCount:   c.ZeroCount,
		TargetCount: c.TargetCount,
		Workers:     c.Workers,
		Start:       c.Start,
		Algorithm:   alg,
	}, nil
}

// CheckCount rejects values outside [MinCount, MaxCount].
func CheckCount(name string, value int) error {
	if value < MinCount || value > MaxCount {
		return fmt.Errorf("%w: %s=%d, accepted range is %d-%d", ErrOutOfRange, name, value, MinCount, MaxCount)
	}
	return nil
}

// ParseCount parses s as a count and checks its range.
func ParseCount(name, s string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q, accepted range is %d-%d", ErrNotANumber, name, s, MinCount, MaxCount)
	}
	if err := CheckCount(name, value); err != nil {
		return 0, err
	}
	return value, nil
}

// WriteDefault writes the default configuration to dir/zerohunter.yaml.
// An existing file is left untouched and created is false.
func WriteDefault(dir string) (path string, created bool, err error) {
	path = filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, false, fmt.Errorf("create %s: %w", dir, err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return path, false, fmt.Errorf("encode default config: %w", err)
	}
	header := []byte("# zerohunter configuration; every key can be overridden with " + EnvPrefix + "_<KEY>\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return path, false, fmt.Errorf("write %s: %w", path, err)
	}
	return path, true, nil
}
