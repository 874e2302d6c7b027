package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/bitfsorg/fracpay-go/config"
	"github.com/bitfsorg/fracpay-go/ledger"
	"github.com/bitfsorg/fracpay-go/processor"
	"github.com/bitfsorg/fracpay-go/wallet"
)

// PasswordEnv is read when --password is not given.
const PasswordEnv = "FRACPAY_PASSWORD"

// LedgerFile is the bbolt database inside the data directory.
const LedgerFile = "ledger.db"

var errNoPassword = errors.New("fracpay: keystore password required (--password or " + PasswordEnv + ")")

// globals holds the persistent flags shared by every command.
type globals struct {
	dataDir  string
	password string
	account  uint32
}

// session is what a command needs to talk to the ledger.
type session struct {
	cfg     config.Config
	log     zerolog.Logger
	store   ledger.Store
	proc    *processor.Processor
	closers []io.Closer
}

func (g *globals) passwordOrEnv() (string, error) {
	if g.password != "" {
		return g.password, nil
	}
	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		return pw, nil
	}
	return "", errNoPassword
}

// loadConfig reads the config in the data directory, falling back to the
// defaults when none was written yet.
func (g *globals) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(config.ConfigPath(g.dataDir))
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.DefaultConfig()
		err = nil
	}
	if err != nil {
		return cfg, err
	}
	cfg.DataDir = g.dataDir
	if err := config.ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (g *globals) open() (*session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}

	log, closer, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	s.log = log
	if closer != nil {
		s.closers = append(s.closers, closer)
	}

	store, err := ledger.OpenBoltStore(filepath.Join(cfg.DataDir, LedgerFile))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.store = store
	s.closers = append(s.closers, store)

	programID, err := cfg.Program()
	if err != nil {
		s.Close()
		return nil, err
	}
	s.proc, err = processor.New(store, processor.Options{
		ProgramID: programID,
		Rent:      cfg.Rent(),
		Logger:    &s.log,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (g *globals) operator() (*wallet.KeyPair, error) {
	pw, err := g.passwordOrEnv()
	if err != nil {
		return nil, err
	}
	w, err := wallet.Open(wallet.KeystorePath(g.dataDir), pw)
	if err != nil {
		return nil, err
	}
	return w.DeriveOperatorKey(g.account)
}

// Close releases the session's store and log file.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// newLogger builds a zerolog logger from cfg: a console writer on stderr, or
// JSON lines appended to cfg.LogFile.
func newLogger(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	level, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if cfg.LogFile == "" {
		out := zerolog.ConsoleWriter{Out: os.Stderr}
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("fracpay: open log file: %w", err)
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
}
