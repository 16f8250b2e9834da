// Package config loads run settings from the environment.
//
// Every setting has a default, so an empty environment yields a valid
// configuration:
//
//	ALLCOLORS_BITS=6                 bits per channel (1-8)
//	ALLCOLORS_EVALUATOR=avg-euclidean
//	ALLCOLORS_STRICT=false           exact-size canvas, random seed point
//	ALLCOLORS_WORKERS=1              goroutines per frontier scan
//	ALLCOLORS_FORMAT=png             png, bmp, tiff, jpeg or gif
//	ALLCOLORS_SCALE=1                integer upscale of the written image
//	ALLCOLORS_OUTPUT_DIR=.           "~" is expanded
//	ALLCOLORS_BLACK_IS_UNSET=false   treat placed black as empty when scoring
//	ALLCOLORS_LOG_LEVEL=info         debug, info, warn or error
package config

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/evaluator"
	"github.com/ironsheep/allcolors/internal/sink"
)

// Environment variable names.
const (
	EnvBits         = "ALLCOLORS_BITS"
	EnvEvaluator    = "ALLCOLORS_EVALUATOR"
	EnvStrict       = "ALLCOLORS_STRICT"
	EnvWorkers      = "ALLCOLORS_WORKERS"
	EnvFormat       = "ALLCOLORS_FORMAT"
	EnvScale        = "ALLCOLORS_SCALE"
	EnvOutputDir    = "ALLCOLORS_OUTPUT_DIR"
	EnvBlackIsUnset = "ALLCOLORS_BLACK_IS_UNSET"
	EnvLogLevel     = "ALLCOLORS_LOG_LEVEL"
)

// MaxScale bounds the output upscale factor.
const MaxScale = 16

// Config holds the settings for a generation run.
type Config struct {
	Bits         int
	Evaluator    string
	Strict       bool
	Workers      int
	Format       sink.Format
	Scale        int
	OutputDir    string
	BlackIsUnset bool
	LogLevel     log.Level
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Bits:      6,
		Evaluator: evaluator.Default,
		Workers:   1,
		Format:    sink.PNG,
		Scale:     1,
		OutputDir: ".",
		LogLevel:  log.InfoLevel,
	}
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load builds a configuration from getenv, which returns "" for unset
// variables. The result is validated.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()
	var err error

	if v := getenv(EnvBits); v != "" {
		if cfg.Bits, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvBits, err)
		}
	}
	if v := getenv(EnvEvaluator); v != "" {
		cfg.Evaluator = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv(EnvStrict); v != "" {
		if cfg.Strict, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvStrict, err)
		}
	}
	if v := getenv(EnvWorkers); v != "" {
		if cfg.Workers, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
	}
	if v := getenv(EnvFormat); v != "" {
		if cfg.Format, err = sink.ParseFormat(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFormat, err)
		}
	}
	if v := getenv(EnvScale); v != "" {
		if cfg.Scale, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvScale, err)
		}
	}
	if v := getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv(EnvBlackIsUnset); v != "" {
		if cfg.BlackIsUnset, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvBlackIsUnset, err)
		}
	}
	if v := getenv(EnvLogLevel); v != "" {
		if cfg.LogLevel, err = log.ParseLevel(v); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if cfg.OutputDir, err = homedir.Expand(cfg.OutputDir); err != nil {
		return cfg, fmt.Errorf("%s: %w", EnvOutputDir, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := colorspace.ValidateBits(c.Bits); err != nil {
		return err
	}
	if _, err := evaluator.Lookup(c.Evaluator); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Scale < 1 || c.Scale > MaxScale {
		return fmt.Errorf("scale must be 1-%d, got %d", MaxScale, c.Scale)
	}
	if _, err := sink.ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return nil
}

// SeedFromString derives a stable generator seed from a name using 64-bit
// FNV-1a, so the same name always renders the same image.
func SeedFromString(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
