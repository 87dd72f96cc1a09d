package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PRETTYLOG"

// loadConfig layers flags over PRETTYLOG_* environment variables over the
// optional YAML config file.
func loadConfig(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := v.GetString(flagConfig)
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile()
	}
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if ext := filepath.Ext(path); ext == "" || ext == "." {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// defaultConfigFile returns the first existing default config location.
func defaultConfigFile() string {
	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "prettylog", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".prettylog.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// printConfig writes the effective settings in config file form.
func printConfig(w io.Writer, v *viper.Viper) error {
	settings := make(map[string]any)
	for _, key := range v.AllKeys() {
		switch key {
		case flagConfig, flagListPalettes, flagPrintConfig:
			continue
		}
		settings[key] = v.Get(key)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
