package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ironsheep/math-solver/internal/solver"
)

// ErrorMessage is the only failure text /solve ever returns.
const ErrorMessage = "Invalid or unrecognized expression"

// ImageField is the multipart field carrying the upload.
const ImageField = "image"

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	OCR     solver.EngineInfo `json:"ocr"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// handleSolve runs OCR and evaluation on the uploaded image.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	data, err := s.readImage(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.solver.Solve(r.Context(), data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if s.cfg.Debug {
		log.Printf("Solved %q = %s", res.Text, res.Result)
	}
	writeJSON(w, http.StatusOK, res)
}

// readImage extracts the upload from a size-limited multipart body.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile(ImageField)
	if err != nil {
		return nil, fmt.Errorf("read %q field: %w", ImageField, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty %q field", ImageField)
	}
	return data, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Solve failed for %s: %v", r.RemoteAddr, err)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorMessage})
}

// handleHealth reports liveness and the OCR engine's status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.cfg.Version,
		OCR:     s.solver.Engine(),
	})
}
