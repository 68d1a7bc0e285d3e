// Package config loads settings from defaults, the anifetch.toml file and ANIFETCH_ environment variables through viper.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/filesystem"
	"github.com/anisan-cli/anifetch/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps keys to environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings, then reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// Path returns the location of the configuration file, whether or not it exists yet.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Write persists the current configuration, creating the file if it is missing.
func Write() error {
	return viper.WriteConfigAs(Path())
}

// Set validates v against the field of k and persists it.
func Set(k string, v any) error {
	field, err := Lookup(k)
	if err != nil {
		return err
	}

	if err := field.Validate(v); err != nil {
		return err
	}

	viper.Set(k, v)
	return Write()
}

// ResetKeys restores the given keys, or every key when none is given, to their defaults and persists them.
func ResetKeys(keys ...string) error {
	if len(keys) == 0 {
		keys = Keys()
	}

	for _, k := range keys {
		field, err := Lookup(k)
		if err != nil {
			return err
		}
		viper.Set(k, field.Value)
	}

	return Write()
}
