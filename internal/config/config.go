// Package config loads jtm settings from defaults, a TOML file and JTM_
// environment variables, in increasing order of precedence. Command-line
// flags bound to the same keys take precedence over all of them.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/dhamidi/classmodel/classpath"
	"github.com/dhamidi/classmodel/format"
)

type Config struct {
	// Classpath entries are directories, jars, zips or jmods. Each entry may
	// itself be a list joined by the OS path list separator.
	Classpath []string `mapstructure:"classpath"`
	// JavaHome adds every jmod under $JAVA_HOME/jmods after the classpath.
	JavaHome               string    `mapstructure:"java_home"`
	Format                 string    `mapstructure:"format"`
	AlwaysAvailablePackage string    `mapstructure:"always_available_package"`
	Log                    LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// New returns a viper instance with defaults and environment binding in
// place. No file is read yet.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// ReadFile merges a TOML config file into v. With an empty path it looks
// for jtm.toml in the working directory and then in the user config
// directory, and a missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config file %s", path)
		}
		return nil
	}

	v.SetConfigName(FileName)
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, FileName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "read config file")
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(format.Names(), c.Format) {
		return errors.Newf("format %q is not one of %s", c.Format, strings.Join(format.Names(), ", "))
	}
	if c.AlwaysAvailablePackage == "" {
		return errors.New("always_available_package must not be empty")
	}
	if strings.Contains(c.AlwaysAvailablePackage, "/") {
		return errors.Newf("always_available_package %q must use dots", c.AlwaysAvailablePackage)
	}
	return nil
}

// ClasspathEntries expands the configured classpath in search order: the
// classpath entries first, then the platform modules of JavaHome sorted by
// name.
func (c *Config) ClasspathEntries() ([]string, error) {
	var entries []string
	for _, e := range c.Classpath {
		entries = append(entries, classpath.SplitPath(e)...)
	}
	if c.JavaHome == "" {
		return entries, nil
	}
	jmods, err := filepath.Glob(filepath.Join(c.JavaHome, "jmods", "*.jmod"))
	if err != nil {
		return nil, errors.Wrap(err, "list platform modules")
	}
	if len(jmods) == 0 {
		return nil, errors.Newf("no jmods found under %s", filepath.Join(c.JavaHome, "jmods"))
	}
	slices.Sort(jmods)
	return append(entries, jmods...), nil
}
