package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KaramelBytes/csv-inspector/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CSVINSPECT_OUT_DIR.
const EnvPrefix = "CSVINSPECT"

// Config holds the persisted defaults of an inspection run.
type Config struct {
	OutDir        string  `mapstructure:"out_dir" yaml:"out_dir" validate:"required"`
	MaxHist       int     `mapstructure:"max_hist" yaml:"max_hist" validate:"gte=0"`
	ZThresh       float64 `mapstructure:"zthresh" yaml:"zthresh" validate:"gte=0"`
	OutlierMethod string  `mapstructure:"outlier_method" yaml:"outlier_method" validate:"oneof=z iqr"`
	IQRMult       float64 `mapstructure:"iqr_mult" yaml:"iqr_mult" validate:"gte=0"`
	Title         string  `mapstructure:"title" yaml:"title"`
	CorrMin       float64 `mapstructure:"corr_min" yaml:"corr_min" validate:"gte=0,lte=1"`
	TopK          int     `mapstructure:"top_k" yaml:"top_k" validate:"gte=0"`
	TemplatesDir  string  `mapstructure:"templates_dir" yaml:"templates_dir"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
}

// Keys lists the configuration keys in display order.
var Keys = []string{
	"out_dir", "max_hist", "zthresh", "outlier_method", "iqr_mult", "title",
	"corr_min", "top_k", "templates_dir", "log_level", "log_format",
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutDir:        "reports",
		MaxHist:       8,
		ZThresh:       3.0,
		OutlierMethod: "z",
		IQRMult:       1.5,
		Title:         "CSV Inspector Report",
		CorrMin:       0.0,
		TopK:          5,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// DefaultPath is ~/.csv-inspector/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".csv-inspector", "config.yaml"), nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
// An explicitly named config file must exist.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("max_hist", d.MaxHist)
	v.SetDefault("zthresh", d.ZThresh)
	v.SetDefault("outlier_method", d.OutlierMethod)
	v.SetDefault("iqr_mult", d.IQRMult)
	v.SetDefault("title", d.Title)
	v.SetDefault("corr_min", d.CorrMin)
	v.SetDefault("top_k", d.TopK)
	v.SetDefault("templates_dir", d.TemplatesDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigError{Field: "config", Reason: err.Error()}
		}
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
		if _, err := os.Stat(path); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, &ConfigError{Field: "config", Reason: err.Error()}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, &ConfigError{Field: "config", Reason: fmt.Sprintf("unmarshal: %v", err)}
	}
	return &c, nil
}

// Save writes c as YAML to cfgFile, or to the default path when cfgFile is empty.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Set parses val into the field named by key and validates the result.
// c is left unchanged on error.
func (c *Config) Set(key, val string) error {
	next := *c
	switch key {
	case "out_dir":
		next.OutDir = val
	case "title":
		next.Title = val
	case "templates_dir":
		next.TemplatesDir = val
	case "outlier_method":
		next.OutlierMethod = val
	case "log_level":
		next.LogLevel = val
	case "log_format":
		next.LogFormat = val
	case "max_hist", "top_k":
		i, err := strconv.Atoi(val)
		if err != nil {
			return &ConfigError{Field: key, Reason: fmt.Sprintf("invalid int %q", val)}
		}
		if key == "max_hist" {
			next.MaxHist = i
		} else {
			next.TopK = i
		}
	case "zthresh", "iqr_mult", "corr_min":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return &ConfigError{Field: key, Reason: fmt.Sprintf("invalid float %q", val)}
		}
		switch key {
		case "zthresh":
			next.ZThresh = f
		case "iqr_mult":
			next.IQRMult = f
		default:
			next.CorrMin = f
		}
	default:
		return &ConfigError{Field: key, Reason: "unknown key"}
	}
	if err := Validate(&next); err != nil {
		return err
	}
	*c = next
	return nil
}

// Get returns the string form of the value stored under key.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "out_dir":
		return c.OutDir, true
	case "max_hist":
		return strconv.Itoa(c.MaxHist), true
	case "zthresh":
		return strconv.FormatFloat(c.ZThresh, 'g', -1, 64), true
	case "outlier_method":
		return c.OutlierMethod, true
	case "iqr_mult":
		return strconv.FormatFloat(c.IQRMult, 'g', -1, 64), true
	case "title":
		return c.Title, true
	case "corr_min":
		return strconv.FormatFloat(c.CorrMin, 'g', -1, 64), true
	case "top_k":
		return strconv.Itoa(c.TopK), true
	case "templates_dir":
		return c.TemplatesDir, true
	case "log_level":
		return c.LogLevel, true
	case "log_format":
		return c.LogFormat, true
	}
	return "", false
}
