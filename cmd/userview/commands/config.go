package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/zoobzio/projector"
	"github.com/zoobzio/projector/user"
)

// Config holds the userview settings. Environment variables provide the
// defaults and command-line flags override them.
type Config struct {
	Delay   time.Duration `env:"USERVIEW_DELAY" envDefault:"1s"`
	Fail    string        `env:"USERVIEW_FAIL"`
	Name    string        `env:"USERVIEW_NAME" envDefault:"Name"`
	Age     int           `env:"USERVIEW_AGE" envDefault:"5"`
	File    string        `env:"USERVIEW_FILE"`
	Wait    bool          `env:"USERVIEW_WAIT"`
	Format  string        `env:"USERVIEW_FORMAT" envDefault:"auto"`
	Verbose bool          `env:"USERVIEW_VERBOSE"`
}

// loadConfig reads Config from the environment.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// buildRepository picks the repository the screen is bound to: a file
// repository when a file is set, the stub otherwise.
func buildRepository(cfg Config) (user.Repository, error) {
	if cfg.File != "" {
		repo := user.NewFileRepository(cfg.File)
		if cfg.Format != "" && cfg.Format != "auto" {
			codec, err := projector.ParseCodec(cfg.Format)
			if err != nil {
				return nil, err
			}
			repo.Codec(codec)
		}
		if cfg.Wait {
			repo.WaitForCreate()
		}
		return repo, nil
	}

	if _, err := projector.ParseCodec(cfg.Format); err != nil {
		return nil, err
	}

	opts := []user.StubOption{
		user.WithDelay(cfg.Delay),
		user.WithUser(user.User{Name: cfg.Name, Age: cfg.Age}),
	}
	if cfg.Fail != "" {
		opts = append(opts, user.WithError(errors.New(cfg.Fail)))
	}
	return user.NewStubRepository(opts...), nil
}
