package config

import "github.com/spf13/viper"

const (
	EnvPrefix = "JTM"
	FileName  = "jtm"
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("classpath", []string{})
	v.SetDefault("java_home", "")
	v.SetDefault("format", "line")
	v.SetDefault("always_available_package", "java.lang")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
}
