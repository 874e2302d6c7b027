// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/ledger"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFile", cfg.LogFile, ""},
		{"ProgramID", cfg.ProgramID, ""},
		{"LamportsPerByteYear", cfg.LamportsPerByteYear, uint64(3480)},
		{"ExemptionYears", cfg.ExemptionYears, uint64(2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if cfg.Rent() != ledger.DefaultRent() {
		t.Errorf("Rent = %+v, want %+v", cfg.Rent(), ledger.DefaultRent())
	}
}

func TestDefaultDataDir_EndsWith_DotFracpay(t *testing.T) {
	dir := DefaultDataDir()
	if !strings.HasSuffix(dir, ".fracpay") {
		t.Errorf("DefaultDataDir() = %q, want suffix %q", dir, ".fracpay")
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	original := Config{
		DataDir:             "/tmp/test-fracpay",
		LogLevel:            "debug",
		LogFile:             "/tmp/fracpay.log",
		ProgramID:           address.Hash([]byte("test program")).String(),
		LamportsPerByteYear: 10,
		ExemptionYears:      3,
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded != original {
		t.Errorf("loaded %+v, want %+v", loaded, original)
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config")

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

func TestSaveConfig_OutputFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# fracpay configuration") {
		t.Error("saved config should start with the header comment")
	}
	for _, key := range []string{"datadir", "loglevel", "logfile", "programid", "lamportsperbyteyear", "exemptionyears"} {
		if !strings.Contains(content, key+" = ") {
			t.Errorf("saved config should contain key %q", key)
		}
	}
}

// ---------------------------------------------------------------------------
// LoadConfig parser tests
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no_equals", "this-is-not-key-value\n"},
		{"empty_key", " = value\n"},
		{"bad_number", "exemptionyears = two\n"},
		{"negative_number", "lamportsperbyteyear = -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			if !errors.Is(err, ErrInvalidConfigLine) {
				t.Errorf("LoadConfig: got %v, want ErrInvalidConfigLine", err)
			}
		})
	}
}

func TestLoadConfigCommentsAndBlanks(t *testing.T) {
	path := writeConfig(t, `# This is a comment
loglevel = debug

# Another comment
exemptionyears = 5
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.ExemptionYears != 5 {
		t.Errorf("ExemptionYears = %d, want 5", cfg.ExemptionYears)
	}
	// Unset fields should retain defaults.
	if cfg.LamportsPerByteYear != ledger.DefaultLamportsPerByteYear {
		t.Errorf("LamportsPerByteYear = %d, want default", cfg.LamportsPerByteYear)
	}
}

func TestLoadConfigUnknownKeysIgnored(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "futurekey = futurevalue\nloglevel = warn\n"))
	if err != nil {
		t.Fatalf("LoadConfig with unknown key: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestLoadConfig_MultipleEquals(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "logfile=/tmp/a=b.log\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogFile != "/tmp/a=b.log" {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, "/tmp/a=b.log")
	}
}

func TestLoadConfig_WhitespaceAndCase(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "  LogLevel = error  \n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "error")
	}
}

func TestLoadConfig_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission test not reliable on Windows")
	}
	if os.Getuid() == 0 {
		t.Skip("cannot test permission denial as root")
	}

	path := writeConfig(t, "loglevel=debug\n")
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(path, 0600) })

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig on unreadable file: expected error, got nil")
	}
	if errors.Is(err, ErrConfigNotFound) {
		t.Error("LoadConfig on unreadable file should not return ErrConfigNotFound")
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfigDefaults(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Errorf("ValidateConfig(DefaultConfig()) = %v, want nil", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "empty_datadir",
			modify:  func(c *Config) { c.DataDir = "" },
			wantErr: ErrEmptyDataDir,
		},
		{
			name:    "bad_loglevel",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "bad_program_id",
			modify:  func(c *Config) { c.ProgramID = "not-base58-0OIl" },
			wantErr: ErrInvalidProgramID,
		},
		{
			name:    "zero_lamports_per_byte_year",
			modify:  func(c *Config) { c.LamportsPerByteYear = 0 },
			wantErr: ErrInvalidRent,
		},
		{
			name:    "zero_exemption_years",
			modify:  func(c *Config) { c.ExemptionYears = 0 },
			wantErr: ErrInvalidRent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := ValidateConfig(cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateConfig: got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateConfig_LogLevelCaseInsensitive(t *testing.T) {
	for _, level := range []string{"INFO", "Debug", "WARN", "Error", "dEbUg"} {
		t.Run(level, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LogLevel = level
			if err := ValidateConfig(cfg); err != nil {
				t.Errorf("ValidateConfig with LogLevel %q: %v", level, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Accessor tests
// ---------------------------------------------------------------------------

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tc := range tests {
		cfg := Config{LogLevel: tc.in}
		got, err := cfg.Level()
		if err != nil {
			t.Errorf("Level(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Level(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := (Config{LogLevel: "trace"}).Level(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Level(trace): got %v, want ErrInvalidLogLevel", err)
	}
}

func TestConfig_Program(t *testing.T) {
	id, err := Config{}.Program()
	if err != nil || !id.IsZero() {
		t.Errorf("empty ProgramID: got %v, %v; want zero key", id, err)
	}

	want := address.Hash([]byte("program"))
	got, err := Config{ProgramID: want.String()}.Program()
	if err != nil {
		t.Fatalf("Program: %v", err)
	}
	if got != want {
		t.Errorf("Program = %s, want %s", got, want)
	}
}

// ---------------------------------------------------------------------------
// ConfigPath tests
// ---------------------------------------------------------------------------

func TestConfigPath(t *testing.T) {
	got := ConfigPath("/home/user/.fracpay")
	want := filepath.Join("/home/user/.fracpay", "config")
	if got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}

func TestConfigPath_WithTrailingSlash(t *testing.T) {
	got := ConfigPath("/foo/")
	want := filepath.Join("/foo", "config")
	if got != want {
		t.Errorf("ConfigPath(%q) = %q, want %q", "/foo/", got, want)
	}
}
