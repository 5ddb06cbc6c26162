// Package config loads the glinspect CLI configuration with viper.
//
// Values come from, in increasing priority: built-in defaults, an optional
// glinspect.toml or glinspect.yaml file, and GLINSPECT_* environment
// variables. Nested keys map to environment names by replacing dots with
// underscores, so log.level becomes GLINSPECT_LOG_LEVEL.
package config
