// Package render turns a name and a configuration into a mosaic file.
//
// It is the single generation path shared by the command line and the MCP
// server: derive the seed, grow the canvas, write the image.
package render

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/allcolors/internal/canvas"
	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/config"
	"github.com/ironsheep/allcolors/internal/evaluator"
	"github.com/ironsheep/allcolors/internal/geometry"
	"github.com/ironsheep/allcolors/internal/placer"
	"github.com/ironsheep/allcolors/internal/sink"
)

// ErrInvalidName is returned for names that are empty or contain a path
// separator.
var ErrInvalidName = errors.New("invalid output name")

// progressReports is how many progress lines a run logs.
const progressReports = 20

// Request describes one render.
type Request struct {
	// Name becomes the output file name and, unless Seed is set, the seed.
	Name string

	// Seed overrides the seed derived from Name.
	Seed *int64

	Config config.Config
}

// Report describes a finished render.
type Report struct {
	RunID       string         `json:"run_id"`
	Name        string         `json:"name"`
	Path        string         `json:"path"`
	Format      sink.Format    `json:"format"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Colors      int            `json:"colors"`
	Bits        int            `json:"bits"`
	Strict      bool           `json:"strict"`
	Seed        int64          `json:"seed"`
	Evaluator   string         `json:"evaluator"`
	Start       geometry.Pixel `json:"start"`
	MaxFrontier int            `json:"max_frontier"`
	DurationMS  int64          `json:"duration_ms"`

	Canvas *canvas.Canvas `json:"-"`
}

// ValidateName rejects names that cannot be used as a file name. A leading
// "~" is rejected because the output path is home-expanded when saved.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, "~") || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Render grows a mosaic for req and saves it under req.Config.OutputDir.
func Render(ctx context.Context, req Request) (*Report, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}
	cfg := req.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eval, err := evaluator.Lookup(cfg.Evaluator)
	if err != nil {
		return nil, err
	}
	if !cfg.Format.Lossless() {
		log.WithFields(log.Fields{"name": req.Name, "format": cfg.Format}).Warn("lossy output format will merge neighboring colors")
	}

	seed := config.SeedFromString(req.Name)
	if req.Seed != nil {
		seed = *req.Seed
	}

	runID := uuid.New().String()
	logger := log.WithFields(log.Fields{
		"run_id":    runID,
		"name":      req.Name,
		"bits":      cfg.Bits,
		"evaluator": eval.Name(),
	})

	p, err := placer.New(placer.Options{
		Bits:          cfg.Bits,
		Strict:        cfg.Strict,
		Seed:          seed,
		Evaluator:     eval,
		Workers:       cfg.Workers,
		BlackIsUnset:  cfg.BlackIsUnset,
		ProgressEvery: max(1, colorspace.Count(cfg.Bits)/progressReports),
		Progress: func(pr placer.Progress) {
			logger.WithFields(log.Fields{
				"placed":   pr.Placed,
				"total":    pr.Total,
				"frontier": pr.Frontier,
				"elapsed":  pr.Elapsed.Round(time.Millisecond),
			}).Info("placing colors")
		},
	})
	if err != nil {
		return nil, err
	}

	logger.WithField("seed", seed).Info("render started")
	res, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	written, err := sink.Save(filepath.Join(cfg.OutputDir, req.Name+cfg.Format.Ext()), res.Canvas, sink.SaveOptions{
		Scale:  cfg.Scale,
		Format: cfg.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", req.Name, err)
	}
	logger.WithFields(log.Fields{
		"path":     written,
		"duration": res.Duration.Round(time.Millisecond),
	}).Info("render finished")

	return &Report{
		RunID:       runID,
		Name:        req.Name,
		Path:        written,
		Format:      cfg.Format,
		Width:       res.Width,
		Height:      res.Height,
		Colors:      res.Colors,
		Bits:        res.Bits,
		Strict:      res.Strict,
		Seed:        res.Seed,
		Evaluator:   res.Evaluator,
		Start:       res.Start,
		MaxFrontier: res.MaxFrontier,
		DurationMS:  res.Duration.Milliseconds(),
		Canvas:      res.Canvas,
	}, nil
}
