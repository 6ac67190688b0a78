package config

import (
	"fmt"
	"runtime"
	"strconv"

	"pngo/pngdecoder"

	"github.com/rs/zerolog"
)

type PngoConfig struct {
	LogLevel zerolog.Level
	Decoder  DecoderConfig
	Batch    BatchConfig
}

type DecoderConfig struct {
	// ColorGate is "all" or "indexed".
	ColorGate  string
	RowWorkers int
}

type BatchConfig struct {
	// Workers bounds how many files the CLI decodes at once.
	Workers int
}

var Config = Default()

func Default() PngoConfig {
	return PngoConfig{
		LogLevel: zerolog.InfoLevel,
		Decoder: DecoderConfig{
			ColorGate:  "all",
			RowWorkers: 1,
		},
		Batch: BatchConfig{
			Workers: runtime.NumCPU(),
		},
	}
}

func (c DecoderConfig) Options(logger *zerolog.Logger) (pngdecoder.Options, error) {
	gate, err := pngdecoder.ParseColorGate(c.ColorGate)
	if err != nil {
		return pngdecoder.Options{}, err
	}
	return pngdecoder.Options{
		Gate:       gate,
		RowWorkers: c.RowWorkers,
		Logger:     logger,
	}, nil
}

// LoadFromEnv overrides cfg with any PNGO_* variables getenv knows about.
func LoadFromEnv(cfg *PngoConfig, getenv func(string) string) error {
	if v := getenv("PNGO_LOG_LEVEL"); v != "" {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("PNGO_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}
	if v := getenv("PNGO_COLOR_GATE"); v != "" {
		if _, err := pngdecoder.ParseColorGate(v); err != nil {
			return fmt.Errorf("PNGO_COLOR_GATE: %w", err)
		}
		cfg.Decoder.ColorGate = v
	}
	if err := positiveInt(getenv, "PNGO_ROW_WORKERS", &cfg.Decoder.RowWorkers); err != nil {
		return err
	}
	return positiveInt(getenv, "PNGO_BATCH_WORKERS", &cfg.Batch.Workers)
}

func positiveInt(getenv func(string) string, name string, dst *int) error {
	v := getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fmt.Errorf("%s: want a positive integer, got %q", name, v)
	}
	*dst = n
	return nil
}
