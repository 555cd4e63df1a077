// Package solver turns a photographed expression into an answer: it
// preprocesses the image, runs OCR, normalizes the text and evaluates it.
//
// A Solver is safe for concurrent use. OCR is CPU-heavy, so at most
// Config.Concurrency recognitions run at once; further requests wait for a
// slot until their context expires.
package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ironsheep/math-solver/internal/expr"
	"github.com/ironsheep/math-solver/internal/imaging"
)

// ErrNoText is returned when recognition produced nothing but whitespace.
var ErrNoText = errors.New("no text recognized")

// Recognizer is the OCR capability the solver depends on.
type Recognizer interface {
	// Recognize returns the text found in an encoded image.
	Recognize(ctx context.Context, image []byte) (string, error)

	// Info describes the engine for health reporting.
	Info() EngineInfo
}

// EngineInfo describes an OCR engine.
type EngineInfo struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Backend   string `json:"backend"`
	Language  string `json:"language,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Result is a solved expression.
type Result struct {
	// Text is the normalized expression that was evaluated.
	Text string `json:"text"`

	// Result is the value of the expression.
	Result expr.Value `json:"result"`

	// Steps echoes the expression and its value for display.
	Steps string `json:"steps"`
}

// Config controls a Solver.
type Config struct {
	// Preprocess runs the imaging pipeline before OCR. When false the
	// uploaded bytes go to the recognizer untouched.
	Preprocess bool

	// Imaging configures preprocessing.
	Imaging imaging.Options

	// Concurrency bounds simultaneous recognitions. Zero means
	// runtime.NumCPU().
	Concurrency int

	// Timeout bounds a whole Solve call. Zero means no timeout beyond the
	// caller's context.
	Timeout time.Duration
}

// Solver orchestrates recognition and evaluation.
type Solver struct {
	rec Recognizer
	cfg Config
	sem *semaphore.Weighted
}

// New creates a Solver around a recognizer.
func New(rec Recognizer, cfg Config) *Solver {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	return &Solver{
		rec: rec,
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.Concurrency)),
	}
}

// Engine reports the recognizer's status.
func (s *Solver) Engine() EngineInfo {
	return s.rec.Info()
}

// Solve reads the expression in an encoded image and evaluates it.
//
// Any failure (undecodable image, OCR error, empty text, invalid
// expression, timeout) is returned as an error; there are no partial results.
func (s *Solver) Solve(ctx context.Context, image []byte) (*Result, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	text, err := s.recognize(ctx, image)
	if err != nil {
		return nil, err
	}
	return s.SolveText(ctx, text)
}

// SolveText normalizes recognized text and evaluates it.
func (s *Solver) SolveText(ctx context.Context, text string) (*Result, error) {
	normalized := expr.Normalize(text)
	// "2+2=" is displayed as "2+2". Only the evaluator drops the "=", so
	// "2+2==" still fails there.
	expression := strings.TrimSuffix(normalized, "=")
	if expression == "" {
		return nil, ErrNoText
	}

	value, err := expr.Evaluate(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", normalized, err)
	}

	return &Result{
		Text:   expression,
		Result: value,
		Steps:  fmt.Sprintf("Resolved: %s = %s", expression, value),
	}, nil
}

type recognition struct {
	text string
	err  error
}

// recognize waits for an OCR slot and runs preprocessing and OCR in a
// goroutine that owns the slot. If ctx expires first the call returns
// immediately; the slot is released when the engine finishes.
func (s *Solver) recognize(ctx context.Context, image []byte) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for OCR slot: %w", err)
	}

	done := make(chan recognition, 1)
	go func() {
		defer s.sem.Release(1)
		text, err := s.prepareAndRecognize(ctx, image)
		done <- recognition{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

func (s *Solver) prepareAndRecognize(ctx context.Context, data []byte) (string, error) {
	if s.cfg.Preprocess {
		img, _, err := imaging.Decode(data)
		if err != nil {
			return "", err
		}
		data, err = imaging.EncodePNG(imaging.Prepare(img, s.cfg.Imaging))
		if err != nil {
			return "", err
		}
	}

	text, err := s.rec.Recognize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
