package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for upward from the working directory.
const FileName = ".retransdiff.yaml"

// EnvConfig names an explicit config file path.
const EnvConfig = "RETRANSDIFF_CONFIG"

// Keys, as used in YAML, the settings table, and (upper-cased, prefixed) environment variables.
const (
	KeyDBPath      = "db_path"
	KeyDefaultLang = "default_lang"
	KeyGranularity = "granularity"
	KeyColor       = "color"
	KeyLogLevel    = "log_level"
	KeyListen      = "listen"
)

// Source identifies the layer that supplied a value.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceDB      Source = "db"
	SourceEnv     Source = "env"
)

// Provenance records where a field's value came from.
type Provenance struct {
	Source     Source
	Identifier string // file path or env var name; "" for defaults and db.
}

func (p Provenance) String() string {
	if p.Identifier == "" {
		return string(p.Source)
	}
	return string(p.Source) + ":" + p.Identifier
}

// Config is the resolved configuration.
type Config struct {
	DBPath      string `yaml:"db_path" validate:"required"`
	DefaultLang string `yaml:"default_lang" validate:"required,langcode"`
	Granularity string `yaml:"granularity" validate:"oneof=auto word rune char grapheme"`
	Color       string `yaml:"color" validate:"oneof=auto always never"`
	LogLevel    string `yaml:"log_level" validate:"oneof=trace debug info warn error disabled"`
	Listen      string `yaml:"listen" validate:"required,hostname_port"`

	provenance map[string]Provenance
}

// fileConfig mirrors Config with pointers so absent keys are distinguishable from empty ones.
type fileConfig struct {
	DBPath      *string `yaml:"db_path"`
	DefaultLang *string `yaml:"default_lang"`
	Granularity *string `yaml:"granularity"`
	Color       *string `yaml:"color"`
	LogLevel    *string `yaml:"log_level"`
	Listen      *string `yaml:"listen"`
}

// SettingKeys are the keys that may be stored in the database settings table.
var SettingKeys = []string{KeyDefaultLang, KeyGranularity}

// Keys returns every config key in display order.
func Keys() []string {
	return []string{KeyDBPath, KeyDefaultLang, KeyGranularity, KeyColor, KeyLogLevel, KeyListen}
}

// EnvVar returns the environment variable overriding key (ex: "default_lang" -> "RETRANSDIFF_DEFAULT_LANG").
func EnvVar(key string) string {
	return "RETRANSDIFF_" + strings.ToUpper(key)
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{
		DBPath:      ExpandPath("~/.retransdiff/history.db"),
		DefaultLang: "ja",
		Granularity: "auto",
		Color:       "auto",
		LogLevel:    "info",
		Listen:      "127.0.0.1:8787",
		provenance:  map[string]Provenance{},
	}
	for _, k := range Keys() {
		c.provenance[k] = Provenance{Source: SourceDefault}
	}
	return c
}

// Options control Load.
type Options struct {
	// Path is an explicit config file. When empty, $RETRANSDIFF_CONFIG is used, then the nearest FileName above WorkDir.
	Path string

	// WorkDir starts the upward search. Defaults to the current working directory.
	WorkDir string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves defaults, the config file, and the environment, then validates the result. An explicitly named file must exist; a missing nearest file is not an error.
func Load(opts Options) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	c := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if p, ok := lookup(EnvConfig); ok && strings.TrimSpace(p) != "" {
			path, explicit = p, true
		}
	}
	if explicit {
		path = ExpandPath(path)
		if err := c.applyFile(path); err != nil {
			return nil, err
		}
	} else if found := findNearest(FileName, opts.WorkDir); found != "" {
		if err := c.applyFile(found); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	c.applyEnv(lookup)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	prov := Provenance{Source: SourceFile, Identifier: path}
	for key, v := range map[string]*string{
		KeyDBPath:      fc.DBPath,
		KeyDefaultLang: fc.DefaultLang,
		KeyGranularity: fc.Granularity,
		KeyColor:       fc.Color,
		KeyLogLevel:    fc.LogLevel,
		KeyListen:      fc.Listen,
	} {
		if v == nil {
			continue
		}
		value := *v
		if key == KeyDBPath {
			value = resolveRelative(value, filepath.Dir(path))
		}
		c.set(key, value, prov)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for _, key := range Keys() {
		name := EnvVar(key)
		if v, ok := lookup(name); ok && v != "" {
			if key == KeyDBPath && v != ":memory:" {
				v = ExpandPath(v)
			}
			c.set(key, v, Provenance{Source: SourceEnv, Identifier: name})
		}
	}
}

// ApplySettings overlays values read from the settings table. Only SettingKeys are considered, unknown keys are ignored, and values that came from the environment keep priority.
// The merged config is validated; on error c is left unchanged.
func (c *Config) ApplySettings(settings map[string]string) error {
	next := c.Clone()
	for _, key := range SettingKeys {
		v, ok := settings[key]
		if !ok {
			continue
		}
		if next.Provenance(key).Source == SourceEnv {
			continue
		}
		next.set(key, v, Provenance{Source: SourceDB})
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = *next
	return nil
}

// Get returns the value for key.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case KeyDBPath:
		return c.DBPath, true
	case KeyDefaultLang:
		return c.DefaultLang, true
	case KeyGranularity:
		return c.Granularity, true
	case KeyColor:
		return c.Color, true
	case KeyLogLevel:
		return c.LogLevel, true
	case KeyListen:
		return c.Listen, true
	}
	return "", false
}

// Provenance returns where key's value came from. Unknown keys and configs not built by Default/Load report the zero Provenance.
func (c *Config) Provenance(key string) Provenance {
	return c.provenance[key]
}

func (c *Config) set(key, value string, prov Provenance) {
	switch key {
	case KeyDBPath:
		c.DBPath = value
	case KeyDefaultLang:
		c.DefaultLang = value
	case KeyGranularity:
		c.Granularity = value
	case KeyColor:
		c.Color = value
	case KeyLogLevel:
		c.LogLevel = value
	case KeyListen:
		c.Listen = value
	default:
		return
	}
	if c.provenance == nil {
		c.provenance = map[string]Provenance{}
	}
	c.provenance[key] = prov
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.provenance = make(map[string]Provenance, len(c.provenance))
	for k, v := range c.provenance {
		out.provenance[k] = v
	}
	return &out
}

// Entry is one resolved key for display.
type Entry struct {
	Key        string
	Value      string
	Provenance Provenance
}

// Entries returns every key with its value and provenance, in Keys order.
func (c *Config) Entries() []Entry {
	var out []Entry
	for _, k := range Keys() {
		v, _ := c.Get(k)
		out = append(out, Entry{Key: k, Value: v, Provenance: c.Provenance(k)})
	}
	return out
}

// IsSettingKey reports whether key may be stored in the settings table.
func IsSettingKey(key string) bool {
	i := sort.SearchStrings(sortedSettingKeys, key)
	return i < len(sortedSettingKeys) && sortedSettingKeys[i] == key
}

var sortedSettingKeys = func() []string {
	out := append([]string(nil), SettingKeys...)
	sort.Strings(out)
	return out
}()
