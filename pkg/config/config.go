// Package config loads and saves the engine's YAML configuration: which
// dictionaries to load, and which romaji/keymap/model resource set to use.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DictEncoding is the character encoding a dictionary file is stored in.
type DictEncoding string

const (
	EncodingEUCJP DictEncoding = "euc-jp"
	EncodingUTF8  DictEncoding = "utf-8"
)

// DictType is the on-disk format of a dictionary file.
type DictType string

const DictTypeSKK DictType = "skk"

// DictUsage controls how a dictionary participates in conversion.
type DictUsage string

const (
	UsageNormal     DictUsage = "Normal"
	UsageSingleTerm DictUsage = "SingleTerm"
	UsageDisabled   DictUsage = "Disabled"
)

// TextJP returns the Japanese label shown for this usage in a
// configuration UI.
func (u DictUsage) TextJP() string {
	switch u {
	case UsageSingleTerm:
		return "単項"
	case UsageDisabled:
		return "無効"
	default:
		return "通常辞書"
	}
}

// DictConfig names one dictionary file to load, its encoding, format, and
// how it should be used in conversion.
type DictConfig struct {
	Path     string       `yaml:"path"`
	Encoding DictEncoding `yaml:"encoding"`
	DictType DictType     `yaml:"dict_type"`
	Usage    DictUsage    `yaml:"usage"`
}

// Config is the engine's top-level configuration.
type Config struct {
	Dicts []DictConfig `yaml:"dicts"`

	// Romkan selects the romaji-to-kana mapping: "default" (or empty) is the
	// built-in table; any other value is read as the path of a YAML mapping file.
	Romkan string `yaml:"romkan"`
	// Keymap names the keybinding table to use ("default", "atok", ...).
	Keymap string `yaml:"keymap"`
	// Model names the language-model resource set to use ("default", ...).
	Model string `yaml:"model"`
}

// Default returns a Config pointing at the bundled "default" resource set
// with no configured dictionaries.
func Default() *Config {
	return &Config{Romkan: "default", Keymap: "default", Model: "default"}
}

func (c *Config) applyDefaults() {
	if c.Romkan == "" {
		c.Romkan = "default"
	}
	if c.Keymap == "" {
		c.Keymap = "default"
	}
	if c.Model == "" {
		c.Model = "default"
	}
	for i := range c.Dicts {
		if c.Dicts[i].Encoding == "" {
			c.Dicts[i].Encoding = EncodingUTF8
		}
		if c.Dicts[i].DictType == "" {
			c.Dicts[i].DictType = DictTypeSKK
		}
		if c.Dicts[i].Usage == "" {
			c.Dicts[i].Usage = UsageNormal
		}
	}
}

// LoadFromFile parses the YAML configuration at path.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.applyDefaults()
	return &c, nil
}

// FileName returns the standard XDG config path for the configuration
// file (~/.config/akaza/config.yml on most Linux setups).
func FileName() (string, error) {
	return xdg.ConfigFile("akaza/config.yml")
}

// Load reads the configuration from its standard XDG path. A missing or
// invalid file is not fatal - it's logged, and the default configuration
// is returned instead, the same as a first run with no config.yml yet.
func Load() (*Config, error) {
	path, err := FileName()
	if err != nil {
		return nil, err
	}
	c, err := LoadFromFile(path)
	if err != nil {
		log.Printf("config: cannot load %s, using defaults: %v", path, err)
		return Default(), nil
	}
	return c, nil
}

// Save writes c to the standard XDG config path.
func (c *Config) Save() error {
	path, err := FileName()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
