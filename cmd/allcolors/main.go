package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/allcolors/internal/config"
	"github.com/ironsheep/allcolors/internal/render"
	"github.com/ironsheep/allcolors/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

func usage() {
	fmt.Println("allcolors - render images that use every color exactly once")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  allcolors <name>    Render <name>.<format>; the name also seeds the layout")
	fmt.Println("  allcolors serve     Run the MCP server on stdin/stdout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=6               Bits per channel (1-8)\n", config.EnvBits)
	fmt.Printf("  %s=avg-euclidean   Placement evaluator\n", config.EnvEvaluator)
	fmt.Printf("  %s=false          Exactly sized canvas\n", config.EnvStrict)
	fmt.Printf("  %s=1             Goroutines per frontier scan\n", config.EnvWorkers)
	fmt.Printf("  %s=png            png, bmp, tiff, jpeg or gif\n", config.EnvFormat)
	fmt.Printf("  %s=1               Integer upscale of the written file\n", config.EnvScale)
	fmt.Printf("  %s=.         Output directory\n", config.EnvOutputDir)
	fmt.Printf("  %s=false  Ignore placed black when scoring\n", config.EnvBlackIsUnset)
	fmt.Printf("  %s=info         Log level\n", config.EnvLogLevel)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "allcolors: missing output name")
		fmt.Fprintln(os.Stderr, "Usage: allcolors <name> | allcolors serve")
		os.Exit(exitUsage)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("allcolors %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	// stdout carries the MCP protocol in serve mode
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(exitFailure)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Args[1] == "serve" {
		log.WithFields(log.Fields{
			"version": Version,
			"built":   BuildTime,
			"commit":  GitCommit,
		}).Debug("allcolors MCP server starting")

		if err := server.New(cfg, Version).Run(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("server error")
			stop()
			os.Exit(exitFailure)
		}
		return
	}

	report, err := render.Render(ctx, render.Request{Name: os.Args[1], Config: cfg})
	if err != nil {
		log.WithError(err).Error("render failed")
		stop()
		os.Exit(exitFailure)
	}
	fmt.Println(report.Path)
}
