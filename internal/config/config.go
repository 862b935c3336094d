package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for hestiaviz.
type Config struct {
	Input InputConfig `toml:"input"`
	Data  DataConfig  `toml:"data"`
}

type InputConfig struct {
	TEI string `toml:"tei"`
	CSV string `toml:"csv"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Input: InputConfig{TEI: "herodotus.tei.xml", CSV: "annotations.csv"},
		Data:  DataConfig{Dir: "public/data"},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
