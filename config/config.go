// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and saves the fracpay node configuration, a plain
// "key = value" file under the data directory.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/ledger"
)

// Config holds the settings of a fracpay node.
type Config struct {
	DataDir  string
	LogLevel string
	LogFile  string // empty logs to stderr

	// ProgramID is the base58 program id. Empty selects the built-in id.
	ProgramID string

	LamportsPerByteYear uint64
	ExemptionYears      uint64
}

// DefaultDataDir returns ~/.fracpay, or .fracpay in the working directory
// when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fracpay"
	}
	return filepath.Join(home, ".fracpay")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:             DefaultDataDir(),
		LogLevel:            "info",
		LamportsPerByteYear: ledger.DefaultLamportsPerByteYear,
		ExemptionYears:      ledger.DefaultExemptionYears,
	}
}

// ConfigPath returns the config file location inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads path on top of DefaultConfig. Blank lines and lines
// starting with '#' are skipped; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	var b strings.Builder
	b.WriteString("# fracpay configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "programid = %s\n", cfg.ProgramID)
	b.WriteString("\n# rent\n")
	fmt.Fprintf(&b, "lamportsperbyteyear = %d\n", cfg.LamportsPerByteYear)
	fmt.Fprintf(&b, "exemptionyears = %d\n", cfg.ExemptionYears)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// Rent returns the rent parameters of cfg.
func (c Config) Rent() ledger.Rent {
	return ledger.Rent{
		LamportsPerByteYear: c.LamportsPerByteYear,
		ExemptionYears:      c.ExemptionYears,
	}
}

// Program returns the parsed program id, or the zero key if unset.
func (c Config) Program() (address.Pubkey, error) {
	if c.ProgramID == "" {
		return address.Pubkey{}, nil
	}
	id, err := address.Parse(c.ProgramID)
	if err != nil {
		return address.Pubkey{}, fmt.Errorf("%w: %w", ErrInvalidProgramID, err)
	}
	return id, nil
}

// Level returns the zerolog level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	name := strings.ToLower(c.LogLevel)
	if !validLogLevels[name] {
		return zerolog.NoLevel, ErrInvalidLogLevel
	}
	return zerolog.ParseLevel(name)
}

func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "loglevel":
		c.LogLevel = value
	case "logfile":
		c.LogFile = value
	case "programid":
		c.ProgramID = value
	case "lamportsperbyteyear":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		c.LamportsPerByteYear = n
	case "exemptionyears":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		c.ExemptionYears = n
	}
	return nil
}

// parseKeyValue splits "key = value" on the first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, strings.TrimSpace(value), nil
}
