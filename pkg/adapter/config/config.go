// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the csweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// may be validated in the relevant end-component such as a UseCase.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dwarthen/coffeeshops/pkg/adapter/config/settings"
	"github.com/dwarthen/coffeeshops/pkg/core/log"
	"gopkg.in/yaml.v3"
)

// Supported seed sources.
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Supported geocoding providers.
const (
	ProviderGoogle    = "google"
	ProviderNominatim = "nominatim"
)

// Default values of the optional settings.
const (
	DefaultPort            = 3000
	DefaultSeedPath        = "configs/locations.csv"
	DefaultUserAgent       = "csweb"
	DefaultGeocoderTimeout = 5 * time.Second
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration format can be kept intact while other
// layers can change freely.
type Config struct {
	Server   Server   // HTTP listener settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // default slog handler settings
	Seed     Seed     // where the initial coffee shops are read from
	Geocoder Geocoder // address to coordinate resolution settings
}

// Server contains the HTTP listener settings.
type Server struct {
	Port int // TCP port, overridden by the PORT environment variable
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing items are enabled by default.
type Gin struct {
	Logger   *bool `yaml:"logger"`   // Whether to log each request
	Recovery *bool `yaml:"recovery"` // Whether to recover from panics
	CORS     *bool `yaml:"cors"`     // Whether to allow any origin
}

// Logging contains the default slog handler settings.
type Logging struct {
	Level  string // debug, info, warn, or error
	Format string // text or json
}

// Seed describes the source of the coffee shops which populate the
// registry at startup. Only the settings of the chosen Source are used.
type Seed struct {
	Source   string   // file, s3, or postgres
	Path     string   // CSV file path, if Source is file
	S3       S3       `yaml:"s3"`
	Database Database // if Source is postgres
}

// S3 contains the S3-compatible object storage settings for reading
// the seed CSV file.
type S3 struct {
	Endpoint  string
	Bucket    string
	Object    string
	AccessKey string `yaml:"access-key"`
	SecretKey string `yaml:"secret-key"`
	UseSSL    bool   `yaml:"use-ssl"`
	Region    string
}

// Database contains the PostgreSQL connection settings for reading the
// seed records from the coffee_shops table.
type Database struct {
	URL string // overridden by the DATABASE_URL environment variable
}

// Geocoder contains the geocoding provider settings.
type Geocoder struct {
	Provider  string             // google or nominatim
	APIKey    string             `yaml:"api-key"`
	BaseURL   string             `yaml:"base-url"`
	UserAgent string             `yaml:"user-agent"`
	Timeout   *settings.Duration // bounds each geocoding request
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
// Environment variables override the settings of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse unmarshals the data byte slice as a Config instance, overrides
// its settings by the environment variables, and then validates and
// normalizes it. Extra items in the data will be ignored and missing
// items will take their default values.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.overrideFromEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) overrideFromEnv(
	lookup func(key string) (string, bool),
) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PORT: %w", err)
		}
		c.Server.Port = port
	}
	for key, dst := range map[string]*string{
		"DATABASE_URL":     &c.Seed.Database.URL,
		"GEOCODER_API_KEY": &c.Geocoder.APIKey,
		"MINIO_ACCESS_KEY": &c.Seed.S3.AccessKey,
		"MINIO_SECRET_KEY": &c.Seed.S3.SecretKey,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	return nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	var errs []error
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if p := c.Server.Port; p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port: %d", p))
	}
	c.Gin.normalize()
	if err := c.Logging.validateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if err := c.Seed.validateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("seed: %w", err))
	}
	if err := c.Geocoder.validateAndNormalize(); err != nil {
		errs = append(errs, fmt.Errorf("geocoder: %w", err))
	}
	return errors.Join(errs...)
}

func (g *Gin) normalize() {
	for _, b := range []**bool{&g.Logger, &g.Recovery, &g.CORS} {
		if *b == nil {
			t := true
			*b = &t
		}
	}
}

func (l *Logging) validateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return err
	}
	switch l.Format {
	case "":
		l.Format = log.FormatText
	case log.FormatText, log.FormatJSON:
	default:
		return fmt.Errorf("unsupported format: %q", l.Format)
	}
	return nil
}

func (s *Seed) validateAndNormalize() error {
	switch s.Source {
	case "":
		s.Source = SourceFile
		fallthrough
	case SourceFile:
		if s.Path == "" {
			s.Path = DefaultSeedPath
		}
	case SourceS3:
		switch {
		case s.S3.Endpoint == "":
			return errors.New("s3 endpoint is required")
		case s.S3.Bucket == "" || s.S3.Object == "":
			return errors.New("s3 bucket and object are required")
		}
	case SourcePostgres:
		if s.Database.URL == "" {
			return errors.New("database url is required")
		}
	default:
		return fmt.Errorf("unsupported source: %q", s.Source)
	}
	return nil
}

func (g *Geocoder) validateAndNormalize() error {
	switch g.Provider {
	case ProviderGoogle:
		if g.APIKey == "" {
			return errors.New("google provider requires an api-key")
		}
	case ProviderNominatim:
		if g.UserAgent == "" {
			g.UserAgent = DefaultUserAgent
		}
	default:
		return fmt.Errorf("unsupported provider: %q", g.Provider)
	}
	if g.Timeout == nil {
		d := settings.Duration(DefaultGeocoderTimeout)
		g.Timeout = &d
	}
	if *g.Timeout <= 0 {
		return fmt.Errorf("non-positive timeout: %s", g.Timeout)
	}
	return nil
}

// LogValue implements slog.LogValuer, so the effective settings can be
// logged at startup. Secrets and connection URLs are not included.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("port", c.Server.Port),
		slog.Group("gin",
			slog.Bool("logger", *c.Gin.Logger),
			slog.Bool("recovery", *c.Gin.Recovery),
			slog.Bool("cors", *c.Gin.CORS),
		),
		slog.Group("logging",
			slog.String("level", c.Logging.Level),
			slog.String("format", c.Logging.Format),
		),
		slog.String("seed", c.Seed.String()),
		slog.Group("geocoder",
			slog.String("provider", c.Geocoder.Provider),
			slog.Any("timeout", *c.Geocoder.Timeout),
		),
	)
}

// String describes the seed source without its credentials.
func (s Seed) String() string {
	switch s.Source {
	case SourceS3:
		return fmt.Sprintf("s3://%s/%s", s.S3.Bucket, s.S3.Object)
	case SourcePostgres:
		return "postgres"
	default:
		return s.Path
	}
}
