// Package config loads the YAML configuration of the gwgen command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-gw/bbhx"
	"github.com/RyanBlaney/sonido-gw/logging"
	"github.com/RyanBlaney/sonido-gw/nr"
)

// Logging configures the command's logger. With File empty, records go to
// stdout and stderr.
type Logging struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// File is the configuration file layout.
type File struct {
	Logging Logging     `yaml:"logging" json:"logging"`
	NR      nr.Config   `yaml:"nr" json:"nr"`
	FD      bbhx.Config `yaml:"fd" json:"fd"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Logging: Logging{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		NR: *nr.DefaultConfig(),
		FD: *bbhx.DefaultConfig(),
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML document over the defaults. An empty document yields
// the defaults.
func Decode(r io.Reader) (*File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no usable interpretation.
func (c *File) Validate() error {
	if c.NR.MaxL < 2 {
		return fmt.Errorf("nr.max_l must be at least 2, got %d", c.NR.MaxL)
	}
	if c.FD.NyquistFreq <= 0 {
		return fmt.Errorf("fd.nyquist_freq must be positive, got %g", c.FD.NyquistFreq)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must not be negative")
	}
	return nil
}

// NewLogger builds the logger described by l. When File is set, records are
// written to a size-rotated file; the returned closer releases it.
func (l Logging) NewLogger() (logging.Logger, io.Closer) {
	var logger *logging.DefaultLogger
	var closer io.Closer = nopCloser{}

	if l.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			MaxAge:     l.MaxAgeDays,
			Compress:   l.Compress,
		}
		logger = logging.NewWriterLogger(rotator)
		closer = rotator
	} else {
		logger = logging.NewDefaultLogger()
	}

	logger.SetLevel(logging.ParseLevel(l.Level))
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
