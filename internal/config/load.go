// Package config defines environment configuration structs and loaders.
package config

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sethvargo/go-envconfig"
)

type AppConfig struct {
	EvalEnvConfig
	CLIEnvConfig
}

func LoadConfig(ctx context.Context) (*AppConfig, error) {
	return LoadConfigWith(ctx, envconfig.OsLookuper())
}

// LoadConfigWith reads configuration through the given lookuper, which lets
// tests supply values without touching the process environment.
func LoadConfigWith(ctx context.Context, lookuper envconfig.Lookuper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("REID_WORKERS must be >= 0, got %d", cfg.Workers)
	}
	return cfg, nil
}

// EvalEnvConfig configures the rank evaluator.
type EvalEnvConfig struct {
	APMethod string `env:"REID_AP_METHOD, default=step"`
	Workers  int    `env:"REID_WORKERS, default=1"`
}

// EffectiveWorkers resolves Workers, where 0 means one goroutine per CPU.
func (c EvalEnvConfig) EffectiveWorkers() int {
	if c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// CLIEnvConfig configures the evaluate command.
type CLIEnvConfig struct {
	Plot bool `env:"REID_PLOT, default=false"`
}
