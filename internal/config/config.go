// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/source"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

// EnvPrefix is the prefix for environment overrides, e.g. RDFX_SOURCE_PATH.
const EnvPrefix = "RDFX"

// Config is the top-level rdfexplorer configuration.
type Config struct {
	Source     SourceConfig     `mapstructure:"source"`
	Networking NetworkingConfig `mapstructure:"networking"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	View       ViewConfig       `mapstructure:"view"`
	Log        LogConfig        `mapstructure:"log"`
}

// SourceConfig selects the ontology document.
type SourceConfig struct {
	Path     string        `mapstructure:"path"`
	Format   string        `mapstructure:"format"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// NetworkingConfig controls how the API server listens.
type NetworkingConfig struct {
	Listen       string        `mapstructure:"listen"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// VocabularyConfig picks a vocabulary profile and optional overrides.
type VocabularyConfig struct {
	Profile            string       `mapstructure:"profile"`
	DomainTypes        []string     `mapstructure:"domain_types"`
	SemanticPredicates []string     `mapstructure:"semantic_predicates"`
	AbstractRoots      []string     `mapstructure:"abstract_roots"`
	ClassLabels        []ClassLabel `mapstructure:"class_labels"`
}

// ClassLabel names a class for display. Labels are a list rather than a map
// because viper splits map keys on dots and lowercases them.
type ClassLabel struct {
	URI   string `mapstructure:"uri"`
	Label string `mapstructure:"label"`
}

// ViewConfig tunes windowing, caching and search.
type ViewConfig struct {
	DefaultLimit          int   `mapstructure:"default_limit"`
	LargeDatasetThreshold int   `mapstructure:"large_dataset_threshold"`
	LimitSteps            []int `mapstructure:"limit_steps"`
	CacheSize             int   `mapstructure:"cache_size"`
	SearchMaxResults      int   `mapstructure:"search_max_results"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.path", "")
	v.SetDefault("source.format", string(source.FormatAuto))
	v.SetDefault("source.watch", false)
	v.SetDefault("source.debounce", "500ms")
	v.SetDefault("networking.listen", "127.0.0.1:3000")
	v.SetDefault("networking.cors_origins", []string{"*"})
	v.SetDefault("networking.read_timeout", "15s")
	v.SetDefault("networking.write_timeout", "30s")
	v.SetDefault("vocabulary.profile", vocab.DefaultProfile)
	v.SetDefault("view.default_limit", navigate.DefaultLimit)
	v.SetDefault("view.large_dataset_threshold", navigate.LargeDatasetThreshold)
	v.SetDefault("view.limit_steps", append([]int(nil), navigate.DefaultLimitSteps...))
	v.SetDefault("view.cache_size", 128)
	v.SetDefault("view.search_max_results", navigate.DefaultSearchResults)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// SetupEnv binds RDFX_* environment variables.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix RDFX_).
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, rdferr.Errorf(rdferr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, rdferr.Errorf(rdferr.CodeConfigParseInvalidFormat, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, rdferr.Errorf(rdferr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Overrides converts the vocabulary section into profile overrides.
func (c VocabularyConfig) Overrides() vocab.Overrides {
	o := vocab.Overrides{
		DomainTypes:        c.DomainTypes,
		SemanticPredicates: c.SemanticPredicates,
		AbstractRoots:      c.AbstractRoots,
	}
	if len(c.ClassLabels) > 0 {
		o.ClassLabels = make(map[string]string, len(c.ClassLabels))
		for _, cl := range c.ClassLabels {
			o.ClassLabels[cl.URI] = cl.Label
		}
	}
	return o
}

// Validate checks the configuration for logical errors.
// It returns a slice of all validation errors found, collecting all issues
// rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateSource()...)
	errs = append(errs, c.validateNetworking()...)
	errs = append(errs, c.validateVocabulary()...)
	errs = append(errs, c.validateView()...)
	errs = append(errs, c.validateLog()...)

	return errs
}

func invalid(format string, args ...any) error {
	return rdferr.Errorf(rdferr.CodeConfigValidateInvalidValue, "config: "+format, args...)
}

func (c *Config) validateSource() []error {
	var errs []error

	if _, err := source.ParseFormat(c.Source.Format); err != nil {
		errs = append(errs, invalid("source.format must be one of [auto, turtle, rdfxml, ntriples, nquads, sqlite], got %q",
			c.Source.Format))
	}

	if c.Source.Debounce < 0 {
		errs = append(errs, invalid("source.debounce must not be negative, got %s", c.Source.Debounce))
	}

	if c.Source.Watch && c.Source.Path == "" {
		errs = append(errs, invalid("source.watch requires source.path"))
	}

	return errs
}

func (c *Config) validateNetworking() []error {
	var errs []error

	if c.Networking.Listen == "" {
		errs = append(errs, invalid("networking.listen must not be empty"))
	} else {
		_, portStr, err := net.SplitHostPort(c.Networking.Listen)
		if err != nil {
			errs = append(errs, invalid("networking.listen must be a valid host:port address, got %q: %w",
				c.Networking.Listen, err))
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				errs = append(errs, invalid("networking.listen port must be a number, got %q", portStr))
			} else if port < 1 || port > 65535 {
				errs = append(errs, invalid("networking.listen port must be between 1 and 65535, got %d", port))
			}
		}
	}

	if c.Networking.ReadTimeout < 0 {
		errs = append(errs, invalid("networking.read_timeout must not be negative, got %s", c.Networking.ReadTimeout))
	}
	if c.Networking.WriteTimeout < 0 {
		errs = append(errs, invalid("networking.write_timeout must not be negative, got %s", c.Networking.WriteTimeout))
	}

	return errs
}

func (c *Config) validateVocabulary() []error {
	var errs []error

	known := false
	for _, name := range vocab.Profiles() {
		if name == c.Vocabulary.Profile {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, invalid("vocabulary.profile must be one of [%s], got %q",
			strings.Join(vocab.Profiles(), ", "), c.Vocabulary.Profile))
	}

	for i, uri := range c.Vocabulary.DomainTypes {
		if strings.TrimSpace(uri) == "" {
			errs = append(errs, invalid("vocabulary.domain_types[%d] must not be empty", i))
		}
	}
	for i, uri := range c.Vocabulary.SemanticPredicates {
		if strings.TrimSpace(uri) == "" {
			errs = append(errs, invalid("vocabulary.semantic_predicates[%d] must not be empty", i))
		}
	}

	for i, cl := range c.Vocabulary.ClassLabels {
		if cl.URI == "" || cl.Label == "" {
			errs = append(errs, invalid("vocabulary.class_labels[%d] needs both uri and label", i))
		}
	}

	return errs
}

func (c *Config) validateView() []error {
	var errs []error

	if c.View.DefaultLimit <= 0 {
		errs = append(errs, invalid("view.default_limit must be greater than 0, got %d", c.View.DefaultLimit))
	}
	if c.View.LargeDatasetThreshold <= 0 {
		errs = append(errs, invalid("view.large_dataset_threshold must be greater than 0, got %d",
			c.View.LargeDatasetThreshold))
	}
	if c.View.CacheSize <= 0 {
		errs = append(errs, invalid("view.cache_size must be greater than 0, got %d", c.View.CacheSize))
	}
	if c.View.SearchMaxResults <= 0 {
		errs = append(errs, invalid("view.search_max_results must be greater than 0, got %d", c.View.SearchMaxResults))
	}

	if len(c.View.LimitSteps) == 0 {
		errs = append(errs, invalid("view.limit_steps must not be empty"))
	}
	for i, step := range c.View.LimitSteps {
		if step <= 0 {
			errs = append(errs, invalid("view.limit_steps[%d] must be greater than 0, got %d", i, step))
			continue
		}
		if i > 0 && step <= c.View.LimitSteps[i-1] {
			errs = append(errs, invalid("view.limit_steps must be strictly increasing, got %d after %d",
				step, c.View.LimitSteps[i-1]))
		}
	}

	return errs
}

func (c *Config) validateLog() []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, invalid("log.level must be one of [debug, info, warn, error], got %q", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, invalid("log.format must be one of [text, json], got %q", c.Log.Format))
	}

	return errs
}
