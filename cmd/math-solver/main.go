package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/math-solver/internal/config"
	"github.com/ironsheep/math-solver/internal/imaging"
	"github.com/ironsheep/math-solver/internal/ocr"
	"github.com/ironsheep/math-solver/internal/server"
	"github.com/ironsheep/math-solver/internal/solver"
	"github.com/ironsheep/math-solver/internal/web"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "-v", "version":
		fmt.Printf("math-solver %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printHelp()
		return
	case "serve", "solve":
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printHelp()
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Math Solver v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	s, err := newSolver(cfg)
	if err != nil {
		log.Fatalf("OCR setup error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd == "solve" {
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: math-solver solve <image>")
			os.Exit(2)
		}
		if err := solveFile(ctx, s, args[1]); err != nil {
			stop()
			log.Fatalf("Solve error: %v", err)
		}
		return
	}

	if info := s.Engine(); !info.Available {
		log.Printf("Warning: OCR unavailable, every solve will fail: %s", info.Error)
	}

	srv, err := server.New(server.Config{
		Addr:            cfg.Addr(),
		Version:         Version,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Page: web.PageConfig{
			HistoryLimit: cfg.HistoryLimit,
		},
		Debug: cfg.Debug(),
	}, s)
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}

	if err := srv.Run(ctx); err != nil {
		stop()
		log.Fatalf("Server error: %v", err)
	}
}

func newSolver(cfg *config.Config) (*solver.Solver, error) {
	opts, err := ocr.OptionsForMode(cfg.OCRMode)
	if err != nil {
		return nil, err
	}

	engine := ocr.New(ocr.Config{
		Language:       cfg.OCRLanguage,
		TessdataPrefix: cfg.TessdataPrefix,
		Options:        opts,
		Debug:          cfg.Debug(),
	})

	return solver.New(engine, solver.Config{
		Preprocess:  cfg.Preprocess,
		Imaging:     imaging.DefaultOptions(),
		Concurrency: cfg.OCRConcurrency,
		Timeout:     cfg.SolveTimeout,
	}), nil
}

// solveFile runs one image through the solver and prints the steps.
func solveFile(ctx context.Context, s *solver.Solver, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res, err := s.Solve(ctx, data)
	if err != nil {
		return err
	}

	fmt.Println(res.Steps)
	return nil
}

func printHelp() {
	fmt.Println("math-solver - photograph a math expression, get the answer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  math-solver [serve]          Start the web server")
	fmt.Println("  math-solver solve <image>    Solve the expression in an image file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PORT=3000                      Listen port")
	fmt.Println("  MATH_SOLVER_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  OCR_MODE=strict|loose          Character whitelist on or off")
	fmt.Println("  OCR_LANGUAGE=eng               Tesseract language")
	fmt.Println("  TESSDATA_PREFIX=<dir>          Tesseract data directory")
	fmt.Println("  OCR_CONCURRENCY=<n>            Simultaneous recognitions (default: CPU count)")
	fmt.Println("  PREPROCESS=true                Clean up images before OCR")
	fmt.Println("  MAX_UPLOAD_BYTES=10485760      Upload size limit")
	fmt.Println("  SOLVE_TIMEOUT=30s              Per-request deadline")
	fmt.Println("  SHUTDOWN_TIMEOUT=10s           Graceful shutdown window")
	fmt.Println("  HISTORY_LIMIT=50               Scans kept in the browser")
}
