package webui

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gifify/internal/deps"
	"gifify/internal/gifbuild"
	"gifify/internal/logging"
)

//go:embed static/index.html
var indexHTML []byte

type errorResponse struct {
	Error string `json:"error"`
}

type depsResponse struct {
	Tools []depStatus `json:"tools"`
}

type depStatus struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Optional  bool   `json:"optional"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

type historyResponse struct {
	Items []historyItem `json:"items"`
}

type historyItem struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	OutputBytes int64     `json:"output_bytes"`
	FPS         float64   `json:"fps"`
	MaxWidth    int       `json:"max_width"`
	Colors      int       `json:"colors"`
	Dither      string    `json:"dither"`
	Optimized   bool      `json:"optimized"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleDeps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	statuses := deps.Check(s.cfg)
	payload := depsResponse{Tools: make([]depStatus, 0, len(statuses))}
	for _, status := range statuses {
		payload.Tools = append(payload.Tools, depStatus{
			Name:      status.Name,
			Command:   status.Command,
			Optional:  status.Optional,
			Available: status.Available,
			Detail:    status.Detail,
		})
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	payload := historyResponse{Items: []historyItem{}}
	if s.store != nil {
		items, err := s.store.List(r.Context(), s.cfg.UI.HistoryLimit)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, item := range items {
			payload.Items = append(payload.Items, historyItem{
				ID:          item.ID,
				Source:      filepath.Base(item.Source),
				OutputBytes: item.OutputBytes,
				FPS:         item.Params.FPS,
				MaxWidth:    item.Params.MaxWidth,
				Colors:      item.Params.Colors,
				Dither:      string(item.Params.Dither),
				Optimized:   item.Optimized,
				ElapsedMS:   item.Elapsed.Milliseconds(),
				CreatedAt:   item.CreatedAt,
			})
		}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("parse form: %v", err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	req, err := s.requestFromForm(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Per-request scratch directory; removed whole once the response is
	// written so a failed conversion never leaks partial files.
	jobDir := filepath.Join(s.cfg.Paths.WorkDir, "upload-"+uuid.NewString())
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("create job dir: %v", err))
		return
	}
	defer func() {
		_ = os.RemoveAll(jobDir)
	}()

	inputPath, err := saveUpload(file, header, jobDir)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	req.Input = inputPath
	req.Output = filepath.Join(jobDir, "output.gif")
	req.Overwrite = true

	result, err := s.converter.Convert(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if isValidationError(err) {
			status = http.StatusBadRequest
		}
		s.logger.Error("ui conversion failed", logging.Error(err), logging.String("source", header.Filename))
		s.writeError(w, status, err.Error())
		return
	}

	gif, err := os.ReadFile(result.Output)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("read result: %v", err))
		return
	}

	downloadName := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)) + ".gif"
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Content-Length", strconv.Itoa(len(gif)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gif)
}

// requestFromForm builds a conversion request from form fields, falling back
// to the configured defaults for anything unset.
func (s *Server) requestFromForm(r *http.Request) (gifbuild.Request, error) {
	defaults := s.cfg.Defaults
	req := gifbuild.Request{
		FPS:      defaults.FPS,
		MaxWidth: defaults.MaxWidth,
		Colors:   defaults.Colors,
		Dither:   gifbuild.Dither(defaults.Dither),
		Loop:     defaults.Loop,
		Lossy:    gifbuild.LossyUnset,
	}

	var err error
	if value := formValue(r, "fps"); value != "" {
		if req.FPS, err = strconv.ParseFloat(value, 64); err != nil {
			return req, fmt.Errorf("invalid fps %q", value)
		}
	}
	if value := formValue(r, "max_width"); value != "" {
		if req.MaxWidth, err = strconv.Atoi(value); err != nil {
			return req, fmt.Errorf("invalid max_width %q", value)
		}
	}
	if value := formValue(r, "colors"); value != "" {
		if req.Colors, err = strconv.Atoi(value); err != nil {
			return req, fmt.Errorf("invalid colors %q", value)
		}
	}
	if value := formValue(r, "dither"); value != "" {
		dither, err := gifbuild.ParseDither(value)
		if err != nil {
			return req, fmt.Errorf("invalid dither %q", value)
		}
		req.Dither = dither
	}
	if value := formValue(r, "loop"); value != "" {
		if req.Loop, err = strconv.Atoi(value); err != nil {
			return req, fmt.Errorf("invalid loop %q", value)
		}
	}
	req.Start = formValue(r, "start")
	req.Duration = formValue(r, "duration")
	req.To = formValue(r, "to")
	req.Optimize = parseBool(formValue(r, "optimize"))
	if value := formValue(r, "lossy"); value != "" {
		if req.Lossy, err = strconv.Atoi(value); err != nil {
			return req, fmt.Errorf("invalid lossy %q", value)
		}
	}
	return req, nil
}

func saveUpload(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".bin"
	}
	path := filepath.Join(dir, "input"+ext)
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("flush upload: %w", err)
	}
	return path, nil
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		gifbuild.ErrNoInput,
		gifbuild.ErrNoOutput,
		gifbuild.ErrFPSRange,
		gifbuild.ErrColorsRange,
		gifbuild.ErrDitherUnknown,
		gifbuild.ErrLoopRange,
		gifbuild.ErrTrimConflict,
		gifbuild.ErrLossyRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
